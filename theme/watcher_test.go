package theme

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
)

func TestWatcherSubscribesOnlyInSystemMode(t *testing.T) {
	signal := NewSignal(false)
	root := newFakeRoot()
	watcher := NewWatcher(signal, NewApplier(root))

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeDark
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, 0, signal.SubscriberCount())

	set.Mode = api.ThemeModeSystem
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, 1, signal.SubscriberCount())

	// Leaving system mode must release the listener.
	set.Mode = api.ThemeModeLight
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, 0, signal.SubscriberCount())
}

func TestWatcherRestrictedRoleNeverSubscribes(t *testing.T) {
	signal := NewSignal(true)
	root := newFakeRoot()
	watcher := NewWatcher(signal, NewApplier(root))

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeSystem
	watcher.Update(set, api.Customer)
	require.Equal(t, 0, signal.SubscriberCount())
	require.True(t, root.classes["light"])
}

func TestWatcherReappliesOnAmbientChange(t *testing.T) {
	signal := NewSignal(false)
	root := newFakeRoot()
	applier := NewApplier(root)
	watcher := NewWatcher(signal, applier)

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeSystem
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, api.ThemeModeLight, applier.AppliedMode())

	signal.Set(true)
	require.Equal(t, api.ThemeModeDark, applier.AppliedMode())

	signal.Set(false)
	require.Equal(t, api.ThemeModeLight, applier.AppliedMode())
}

func TestWatcherRepeatedUpdatesKeepSingleSubscription(t *testing.T) {
	signal := NewSignal(false)
	watcher := NewWatcher(signal, NewApplier(newFakeRoot()))

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeSystem
	for i := 0; i < 5; i++ {
		watcher.Update(set, api.StoreAdmin)
	}
	require.Equal(t, 1, signal.SubscriberCount())
}

func TestWatcherCloseReleasesSubscription(t *testing.T) {
	signal := NewSignal(false)
	watcher := NewWatcher(signal, NewApplier(newFakeRoot()))

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeSystem
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, 1, signal.SubscriberCount())

	watcher.Close()
	require.Equal(t, 0, signal.SubscriberCount())

	// Updates after teardown stay inert.
	watcher.Update(set, api.StoreAdmin)
	require.Equal(t, 0, signal.SubscriberCount())
	watcher.Close()
}

func TestSignalSetIsIdempotentPerValue(t *testing.T) {
	signal := NewSignal(false)
	fired := 0
	cancel := signal.Subscribe(func(bool) { fired++ })
	defer cancel()

	signal.Set(true)
	signal.Set(true)
	require.Equal(t, 1, fired)
}

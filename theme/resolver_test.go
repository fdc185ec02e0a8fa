package theme

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
)

type fakeRoot struct {
	classes map[string]bool
	dir     string

	addOps    int
	removeOps int
	dirOps    int
}

func newFakeRoot() *fakeRoot {
	return &fakeRoot{classes: map[string]bool{}}
}

func (r *fakeRoot) AddClass(name string) {
	r.classes[name] = true
	r.addOps++
}

func (r *fakeRoot) RemoveClass(name string) {
	delete(r.classes, name)
	r.removeOps++
}

func (r *fakeRoot) SetDir(dir string) {
	r.dir = dir
	r.dirOps++
}

func TestResolveEffectiveMode(t *testing.T) {
	tests := []struct {
		name        string
		mode        api.ThemeMode
		role        api.Role
		ambientDark bool
		want        api.ThemeMode
	}{
		{"restricted system coerces to light", api.ThemeModeSystem, api.Customer, true, api.ThemeModeLight},
		{"restricted super admin system coerces to light", api.ThemeModeSystem, api.SuperAdmin, true, api.ThemeModeLight},
		{"restricted dark passes", api.ThemeModeDark, api.Customer, false, api.ThemeModeDark},
		{"restricted light passes", api.ThemeModeLight, api.Customer, true, api.ThemeModeLight},
		{"unrestricted explicit dark overrides ambient", api.ThemeModeDark, api.StoreAdmin, false, api.ThemeModeDark},
		{"unrestricted explicit light overrides ambient", api.ThemeModeLight, api.StoreAdmin, true, api.ThemeModeLight},
		{"unrestricted system mirrors dark ambient", api.ThemeModeSystem, api.StoreAdmin, true, api.ThemeModeDark},
		{"unrestricted system mirrors light ambient", api.ThemeModeSystem, api.StoreAdmin, false, api.ThemeModeLight},
		{"anonymous system mirrors ambient", api.ThemeModeSystem, api.Role(""), true, api.ThemeModeDark},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set := api.DefaultPreferenceSet()
			set.Mode = test.mode
			require.Equal(t, test.want, ResolveEffectiveMode(set, test.role, test.ambientDark))
		})
	}
}

func TestResolveEffectiveModeNilSet(t *testing.T) {
	// A missing set behaves as the defaults: system for unrestricted roles.
	require.Equal(t, api.ThemeModeDark, ResolveEffectiveMode(nil, api.StoreAdmin, true))
	require.Equal(t, api.ThemeModeLight, ResolveEffectiveMode(nil, api.Customer, true))
}

func TestResolveDeterministic(t *testing.T) {
	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeSystem
	first := Resolve(set, api.StoreAdmin, true)
	second := Resolve(set, api.StoreAdmin, true)
	require.Equal(t, first, second)
}

func TestResolveDirection(t *testing.T) {
	set := api.DefaultPreferenceSet()
	require.Equal(t, "ltr", Resolve(set, api.StoreAdmin, false).Direction)
	set.RTL = true
	require.Equal(t, "rtl", Resolve(set, api.StoreAdmin, false).Direction)
}

func TestApplierIdempotent(t *testing.T) {
	root := newFakeRoot()
	applier := NewApplier(root)

	state := Resolve(api.DefaultPreferenceSet(), api.StoreAdmin, true)
	require.Equal(t, api.ThemeModeDark, state.Mode)

	applier.Apply(state)
	require.True(t, root.classes["dark"])
	require.False(t, root.classes["light"])
	addOps, removeOps, dirOps := root.addOps, root.removeOps, root.dirOps

	// Re-applying the identical state must not touch the root again.
	applier.Apply(state)
	require.Equal(t, addOps, root.addOps)
	require.Equal(t, removeOps, root.removeOps)
	require.Equal(t, dirOps, root.dirOps)
}

func TestApplierKeepsSingleModeClass(t *testing.T) {
	root := newFakeRoot()
	applier := NewApplier(root)

	set := api.DefaultPreferenceSet()
	set.Mode = api.ThemeModeDark
	applier.Apply(Resolve(set, api.StoreAdmin, false))
	require.True(t, root.classes["dark"])

	set.Mode = api.ThemeModeLight
	applier.Apply(Resolve(set, api.StoreAdmin, false))
	require.True(t, root.classes["light"])
	require.False(t, root.classes["dark"])
	require.Equal(t, api.ThemeModeLight, applier.AppliedMode())
}

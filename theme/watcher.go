package theme

import (
	"sync"

	"fashionhub/api"
	"fashionhub/policy"
)

// AmbientSource reports whether the operating environment prefers a dark
// appearance and notifies subscribers when that changes. Subscribe returns a
// cancel func; callers must invoke it to release the listener.
type AmbientSource interface {
	Dark() bool
	Subscribe(fn func(dark bool)) (cancel func())
}

// Signal is an in-process AmbientSource.
type Signal struct {
	mu          sync.Mutex
	dark        bool
	nextID      int
	subscribers map[int]func(bool)
}

func NewSignal(dark bool) *Signal {
	return &Signal{
		dark:        dark,
		subscribers: make(map[int]func(bool)),
	}
}

func (s *Signal) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Set updates the ambient value and fires subscribers on change.
func (s *Signal) Set(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	fns := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

func (s *Signal) Subscribe(fn func(dark bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SubscriberCount reports the live listener count, for leak checks.
func (s *Signal) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Watcher owns one viewer's theme session: it applies resolved state through
// an Applier and holds an ambient subscription only while the system
// meta-mode is active. Leaving system mode, or Close, releases the listener.
type Watcher struct {
	mu      sync.Mutex
	source  AmbientSource
	applier *Applier

	set    *api.PreferenceSet
	role   api.Role
	cancel func()
	closed bool
}

func NewWatcher(source AmbientSource, applier *Applier) *Watcher {
	return &Watcher{
		source:  source,
		applier: applier,
	}
}

// Update resolves and applies the given preferences, then reconciles the
// ambient subscription with the active mode.
func (w *Watcher) Update(set *api.PreferenceSet, role api.Role) {
	if set == nil {
		set = api.DefaultPreferenceSet()
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.set = set
	w.role = role

	wantAmbient := set.Mode == api.ThemeModeSystem && !policy.IsRestricted(role)
	if wantAmbient && w.cancel == nil {
		w.cancel = w.source.Subscribe(w.onAmbientChange)
	} else if !wantAmbient && w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.applier.Apply(Resolve(set, role, w.source.Dark()))
}

func (w *Watcher) onAmbientChange(dark bool) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	set, role := w.set, w.role
	w.mu.Unlock()

	w.applier.Apply(Resolve(set, role, dark))
}

// Close releases the ambient subscription. Safe to call more than once.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.closed = true
}

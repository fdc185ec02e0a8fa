// Package theme turns a persisted preference set into the concrete
// presentation state applied to a document root.
package theme

import (
	"sync"

	"fashionhub/api"
	"fashionhub/policy"
)

// ResolveEffectiveMode collapses the mode preference to a concrete light or
// dark value. Restricted roles never receive the system meta-mode: anything
// other than an explicit light/dark coerces to light. Unrestricted roles get
// the ambient appearance when system is selected and their explicit choice
// otherwise.
func ResolveEffectiveMode(set *api.PreferenceSet, role api.Role, ambientDark bool) api.ThemeMode {
	if set == nil {
		set = api.DefaultPreferenceSet()
	}
	if policy.IsRestricted(role) {
		if set.Mode == api.ThemeModeDark {
			return api.ThemeModeDark
		}
		return api.ThemeModeLight
	}
	if set.Mode == api.ThemeModeSystem {
		if ambientDark {
			return api.ThemeModeDark
		}
		return api.ThemeModeLight
	}
	return set.Mode
}

// EffectiveState is the fully resolved presentation: the concrete mode plus
// the pass-through appearance fields.
type EffectiveState struct {
	Mode      api.ThemeMode   `json:"mode"`
	Color     api.ThemeColor  `json:"color"`
	Radius    api.ThemeRadius `json:"radius"`
	Font      api.ThemeFont   `json:"font"`
	Direction string          `json:"direction"`
}

// Resolve computes the effective presentation state for a viewer.
func Resolve(set *api.PreferenceSet, role api.Role, ambientDark bool) EffectiveState {
	if set == nil {
		set = api.DefaultPreferenceSet()
	}
	direction := "ltr"
	if set.RTL {
		direction = "rtl"
	}
	return EffectiveState{
		Mode:      ResolveEffectiveMode(set, role, ambientDark),
		Color:     set.Color,
		Radius:    set.Radius,
		Font:      set.Font,
		Direction: direction,
	}
}

// Root abstracts the document root element the resolved state is applied to.
type Root interface {
	AddClass(name string)
	RemoveClass(name string)
	SetDir(dir string)
}

// Applier applies resolved state to a Root, keeping exactly one of the two
// mode classes present. Re-applying an identical state is a no-op so callers
// can apply on every resolution without flicker.
type Applier struct {
	mu   sync.Mutex
	root Root

	appliedMode api.ThemeMode
	appliedDir  string
}

func NewApplier(root Root) *Applier {
	return &Applier{root: root}
}

func (a *Applier) Apply(state EffectiveState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if state.Mode != a.appliedMode {
		if state.Mode == api.ThemeModeDark {
			a.root.RemoveClass(string(api.ThemeModeLight))
		} else {
			a.root.RemoveClass(string(api.ThemeModeDark))
		}
		a.root.AddClass(string(state.Mode))
		a.appliedMode = state.Mode
	}
	if state.Direction != a.appliedDir {
		a.root.SetDir(state.Direction)
		a.appliedDir = state.Direction
	}
}

// AppliedMode returns the mode class currently on the root.
func (a *Applier) AppliedMode() api.ThemeMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.appliedMode
}

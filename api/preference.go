package api

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// PreferenceKey is the namespaced durable-storage key for one PreferenceSet
// field. The names mirror the storefront's storage keys so a persisted
// value survives a client/server migration unchanged.
type PreferenceKey string

const (
	PreferenceKeyMode   PreferenceKey = "fashion-hub-theme-mode"
	PreferenceKeyColor  PreferenceKey = "fashion-hub-theme-color"
	PreferenceKeyRadius PreferenceKey = "fashion-hub-theme-radius"
	PreferenceKeyFont   PreferenceKey = "fashion-hub-theme-font"
	PreferenceKeyRTL    PreferenceKey = "fashion-hub-theme-rtl"
)

func (k PreferenceKey) String() string {
	switch k {
	case PreferenceKeyMode:
		return "fashion-hub-theme-mode"
	case PreferenceKeyColor:
		return "fashion-hub-theme-color"
	case PreferenceKeyRadius:
		return "fashion-hub-theme-radius"
	case PreferenceKeyFont:
		return "fashion-hub-theme-font"
	case PreferenceKeyRTL:
		return "fashion-hub-theme-rtl"
	}
	return ""
}

// PreferenceKeys lists every persisted field key.
var PreferenceKeys = []PreferenceKey{
	PreferenceKeyMode,
	PreferenceKeyColor,
	PreferenceKeyRadius,
	PreferenceKeyFont,
	PreferenceKeyRTL,
}

// ValueSet returns the closed enumeration for the key. Booleans are
// persisted as the literal strings "true"/"false".
func (k PreferenceKey) ValueSet() []string {
	switch k {
	case PreferenceKeyMode:
		return ThemeModeValue
	case PreferenceKeyColor:
		return ThemeColorValue
	case PreferenceKeyRadius:
		return ThemeRadiusValue
	case PreferenceKeyFont:
		return ThemeFontValue
	case PreferenceKeyRTL:
		return ThemeRTLValue
	}
	return nil
}

type UserPreference struct {
	UserID int           `json:"-"`
	Key    PreferenceKey `json:"key"`
	Value  string        `json:"value"`
}

type UserPreferenceUpsert struct {
	UserID int
	Key    PreferenceKey `json:"key"`
	Value  string        `json:"value"`
}

// Validate checks that the key is known and the value is a member of the
// key's enumeration. Role gating is the policy package's concern, not ours.
func (upsert UserPreferenceUpsert) Validate() error {
	valueSet := upsert.Key.ValueSet()
	if valueSet == nil {
		return fmt.Errorf("invalid preference key: %s", upsert.Key)
	}
	if !slices.Contains(valueSet, upsert.Value) {
		return fmt.Errorf("invalid preference value %q for key %s", upsert.Value, upsert.Key)
	}
	return nil
}

type UserPreferenceFind struct {
	UserID int
	Key    PreferenceKey
}

type UserPreferenceDelete struct {
	UserID int
}

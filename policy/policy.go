// Package policy decides which appearance preferences a viewer role may set.
// The rules live in data tables so adding a role or a field is a data change.
package policy

import (
	"golang.org/x/exp/slices"

	"fashionhub/api"
)

// fullValueSets grants every field with its complete enumeration.
var fullValueSets = map[api.PreferenceKey][]string{
	api.PreferenceKeyMode:   api.ThemeModeValue,
	api.PreferenceKeyColor:  api.ThemeColorValue,
	api.PreferenceKeyRadius: api.ThemeRadiusValue,
	api.PreferenceKeyFont:   api.ThemeFontValue,
	api.PreferenceKeyRTL:    api.ThemeRTLValue,
}

// restrictedValueSets grants only a fixed light/dark choice.
var restrictedValueSets = map[api.PreferenceKey][]string{
	api.PreferenceKeyMode: {string(api.ThemeModeLight), string(api.ThemeModeDark)},
}

// roleValueSets maps each role to its field table. Roles absent from the map
// fall back to the full table, matching the storefront behavior where
// anonymous and default viewers keep the full appearance menu.
var roleValueSets = map[api.Role]map[api.PreferenceKey][]string{
	api.StoreAdmin: fullValueSets,
	api.SuperAdmin: restrictedValueSets,
	api.Customer:   restrictedValueSets,
}

func valueSetsFor(role api.Role) map[api.PreferenceKey][]string {
	if sets, ok := roleValueSets[role]; ok {
		return sets
	}
	return fullValueSets
}

// IsRestricted reports whether the role is limited to the light/dark choice.
func IsRestricted(role api.Role) bool {
	sets := valueSetsFor(role)
	return len(sets) != len(fullValueSets)
}

// IsFieldMutable reports whether the role may set the given field at all.
func IsFieldMutable(role api.Role, key api.PreferenceKey) bool {
	_, ok := valueSetsFor(role)[key]
	return ok
}

// AllowedValues returns the enumeration members the role may select for the
// field. A nil result means the field is not mutable for the role.
func AllowedValues(role api.Role, key api.PreferenceKey) []string {
	return valueSetsFor(role)[key]
}

// MutableFields lists the fields the role may set, in storage-key order.
func MutableFields(role api.Role) []api.PreferenceKey {
	sets := valueSetsFor(role)
	keys := make([]api.PreferenceKey, 0, len(sets))
	for _, key := range api.PreferenceKeys {
		if _, ok := sets[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Check validates a preference mutation against the role table. Disallowed
// mutations are rejected outright, never coerced.
func Check(role api.Role, key api.PreferenceKey, value string) bool {
	allowed := AllowedValues(role, key)
	if allowed == nil {
		return false
	}
	return slices.Contains(allowed, value)
}

package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
)

func TestIsFieldMutable(t *testing.T) {
	tests := []struct {
		role api.Role
		key  api.PreferenceKey
		want bool
	}{
		{api.StoreAdmin, api.PreferenceKeyMode, true},
		{api.StoreAdmin, api.PreferenceKeyColor, true},
		{api.StoreAdmin, api.PreferenceKeyRadius, true},
		{api.StoreAdmin, api.PreferenceKeyFont, true},
		{api.StoreAdmin, api.PreferenceKeyRTL, true},
		{api.Customer, api.PreferenceKeyMode, true},
		{api.Customer, api.PreferenceKeyColor, false},
		{api.Customer, api.PreferenceKeyRadius, false},
		{api.Customer, api.PreferenceKeyFont, false},
		{api.Customer, api.PreferenceKeyRTL, false},
		{api.SuperAdmin, api.PreferenceKeyMode, true},
		{api.SuperAdmin, api.PreferenceKeyColor, false},
		// Anonymous/default viewers keep the full menu.
		{api.Role(""), api.PreferenceKeyColor, true},
		{api.Role(""), api.PreferenceKeyMode, true},
	}
	for _, test := range tests {
		require.Equal(t, test.want, IsFieldMutable(test.role, test.key), "role=%s key=%s", test.role, test.key)
	}
}

func TestAllowedValues(t *testing.T) {
	require.Equal(t, []string{"light", "dark"}, AllowedValues(api.Customer, api.PreferenceKeyMode))
	require.Equal(t, []string{"light", "dark"}, AllowedValues(api.SuperAdmin, api.PreferenceKeyMode))
	require.Equal(t, api.ThemeModeValue, AllowedValues(api.StoreAdmin, api.PreferenceKeyMode))
	require.Equal(t, api.ThemeColorValue, AllowedValues(api.StoreAdmin, api.PreferenceKeyColor))
	require.Nil(t, AllowedValues(api.Customer, api.PreferenceKeyFont))
}

func TestAllowedValuesDeterministic(t *testing.T) {
	for _, role := range []api.Role{api.SuperAdmin, api.StoreAdmin, api.Customer, api.Role("")} {
		for _, key := range api.PreferenceKeys {
			first := AllowedValues(role, key)
			second := AllowedValues(role, key)
			require.Equal(t, first, second)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		role  api.Role
		key   api.PreferenceKey
		value string
		want  bool
	}{
		{api.Customer, api.PreferenceKeyMode, "dark", true},
		{api.Customer, api.PreferenceKeyMode, "system", false},
		{api.Customer, api.PreferenceKeyColor, "blue", false},
		{api.StoreAdmin, api.PreferenceKeyMode, "system", true},
		{api.StoreAdmin, api.PreferenceKeyColor, "forest", true},
		{api.StoreAdmin, api.PreferenceKeyColor, "nope", false},
		{api.StoreAdmin, api.PreferenceKeyRTL, "true", true},
		{api.SuperAdmin, api.PreferenceKeyMode, "light", true},
		{api.SuperAdmin, api.PreferenceKeyRTL, "true", false},
	}
	for _, test := range tests {
		require.Equal(t, test.want, Check(test.role, test.key, test.value), "role=%s key=%s value=%s", test.role, test.key, test.value)
	}
}

func TestMutableFields(t *testing.T) {
	require.Equal(t, api.PreferenceKeys, MutableFields(api.StoreAdmin))
	require.Equal(t, []api.PreferenceKey{api.PreferenceKeyMode}, MutableFields(api.Customer))
	require.Equal(t, []api.PreferenceKey{api.PreferenceKeyMode}, MutableFields(api.SuperAdmin))
}

func TestIsRestricted(t *testing.T) {
	require.True(t, IsRestricted(api.Customer))
	require.True(t, IsRestricted(api.SuperAdmin))
	require.False(t, IsRestricted(api.StoreAdmin))
	require.False(t, IsRestricted(api.Role("")))
}

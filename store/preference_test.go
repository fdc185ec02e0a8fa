package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fashionhub/api"
	"fashionhub/common"
	"fashionhub/service/profile"
	"fashionhub/store/db"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	testProfile := &profile.Profile{
		Mode: "dev",
		Data: t.TempDir(),
	}
	testProfile.DSN = filepath.Join(testProfile.Data, "fashionhub_test.db")

	testDB := db.NewDB(testProfile)
	require.NoError(t, testDB.Open(context.Background()))
	t.Cleanup(func() {
		_ = testDB.DBInstance.Close()
	})

	return New(testDB.DBInstance, testProfile), testDB.DBInstance
}

func createTestUser(t *testing.T, s *Store, role api.Role) *api.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), &api.UserCreate{
		Name:         "tester-" + string(role),
		Role:         role,
		Nickname:     "tester",
		PasswordHash: "hash",
		OpenID:       common.GenUUID(),
	})
	require.NoError(t, err)
	return user
}

func TestLoadPreferencesEmptyStorage(t *testing.T) {
	s, _ := newTestStore(t)
	user := createTestUser(t, s, api.Customer)

	set := s.LoadPreferences(context.Background(), user.ID)
	require.Equal(t, api.DefaultPreferenceSet(), set)
}

func TestPreferenceRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	user := createTestUser(t, s, api.StoreAdmin)
	ctx := context.Background()

	for _, key := range api.PreferenceKeys {
		for _, value := range key.ValueSet() {
			s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{
				UserID: user.ID,
				Key:    key,
				Value:  value,
			})

			pref, err := s.FindUserPreference(ctx, &api.UserPreferenceFind{UserID: user.ID, Key: key})
			require.NoError(t, err)
			require.NotNil(t, pref)
			require.Equal(t, value, pref.Value)
		}
	}
}

func TestLoadPreferencesAppliesStoredValues(t *testing.T) {
	s, _ := newTestStore(t)
	user := createTestUser(t, s, api.StoreAdmin)
	ctx := context.Background()

	s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{UserID: user.ID, Key: api.PreferenceKeyMode, Value: "dark"})
	s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{UserID: user.ID, Key: api.PreferenceKeyColor, Value: "forest"})
	s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{UserID: user.ID, Key: api.PreferenceKeyRTL, Value: "true"})

	set := s.LoadPreferences(ctx, user.ID)
	require.Equal(t, api.ThemeModeDark, set.Mode)
	require.Equal(t, api.ThemeColor("forest"), set.Color)
	require.True(t, set.RTL)
	// Untouched fields keep their defaults.
	require.Equal(t, api.ThemeRadiusMedium, set.Radius)
	require.Equal(t, api.ThemeFontSans, set.Font)
}

func TestLoadPreferencesDiscardsInvalidValues(t *testing.T) {
	s, rawDB := newTestStore(t)
	user := createTestUser(t, s, api.Customer)
	ctx := context.Background()

	// Bypass the store to plant out-of-enum values, as a hand-edited or
	// stale storage would.
	for key, value := range map[api.PreferenceKey]string{
		api.PreferenceKeyMode:   "purple",
		api.PreferenceKeyColor:  "ultraviolet",
		api.PreferenceKeyRadius: "xxl",
		api.PreferenceKeyFont:   "comic-sans",
		api.PreferenceKeyRTL:    "maybe",
	} {
		_, err := rawDB.ExecContext(ctx, `
			INSERT INTO user_preference (user_id, key, value) VALUES (?, ?, ?)
		`, user.ID, key.String(), value)
		require.NoError(t, err)
	}

	set := s.LoadPreferences(ctx, user.ID)
	require.Equal(t, api.DefaultPreferenceSet(), set)
}

func TestUpsertOverwritesPreviousValue(t *testing.T) {
	s, _ := newTestStore(t)
	user := createTestUser(t, s, api.Customer)
	ctx := context.Background()

	s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{UserID: user.ID, Key: api.PreferenceKeyMode, Value: "dark"})
	s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{UserID: user.ID, Key: api.PreferenceKeyMode, Value: "light"})

	set := s.LoadPreferences(ctx, user.ID)
	require.Equal(t, api.ThemeModeLight, set.Mode)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_preference WHERE user_id = ? AND key = ?
	`, user.ID, api.PreferenceKeyMode.String()).Scan(&count))
	require.Equal(t, 1, count)
}

func TestPreferenceWriteSkipsSilentlyWhenStorageUnavailable(t *testing.T) {
	s, rawDB := newTestStore(t)
	user := createTestUser(t, s, api.Customer)
	ctx := context.Background()

	require.NoError(t, rawDB.Close())

	// The write degrades to session-only: no panic, no error, and the
	// caller still gets the value back.
	pref := s.UpsertUserPreference(ctx, &api.UserPreferenceUpsert{
		UserID: user.ID,
		Key:    api.PreferenceKeyMode,
		Value:  "dark",
	})
	require.Equal(t, "dark", pref.Value)

	// Loading from the dead storage falls back to defaults.
	set := s.LoadPreferences(ctx, user.ID)
	require.Equal(t, api.DefaultPreferenceSet(), set)
}

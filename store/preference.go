package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"fashionhub/api"
	"fashionhub/common/log"
)

type userPreferenceRaw struct {
	UserID int
	Key    api.PreferenceKey
	Value  string
}

func (raw *userPreferenceRaw) toUserPreference() *api.UserPreference {
	return &api.UserPreference{
		UserID: raw.UserID,
		Key:    raw.Key,
		Value:  raw.Value,
	}
}

func getUserPreferenceCacheKey(raw userPreferenceRaw) string {
	return strconv.Itoa(raw.UserID) + "-" + raw.Key.String()
}

func getUserPreferenceFindCacheKey(find *api.UserPreferenceFind) string {
	return strconv.Itoa(find.UserID) + "-" + find.Key.String()
}

// UpsertUserPreference writes one preference field to its namespaced key.
// A storage failure is skipped silently so the preference degrades to
// session-only instead of surfacing an error to the viewer.
func (s *Store) UpsertUserPreference(ctx context.Context, upsert *api.UserPreferenceUpsert) *api.UserPreference {
	raw := &userPreferenceRaw{
		UserID: upsert.UserID,
		Key:    upsert.Key,
		Value:  upsert.Value,
	}

	if err := s.upsertUserPreference(ctx, upsert); err != nil {
		log.Warn("skipping preference write, storage unavailable",
			zap.String("key", upsert.Key.String()), zap.Error(err))
	} else {
		s.userPreferenceCache.Store(getUserPreferenceCacheKey(*raw), raw)
	}
	return raw.toUserPreference()
}

func (s *Store) upsertUserPreference(ctx context.Context, upsert *api.UserPreferenceUpsert) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FormatError(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_preference (
			user_id,
			key,
			value
		)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE
		SET value = EXCLUDED.value
	`
	if _, err := tx.ExecContext(ctx, query, upsert.UserID, upsert.Key.String(), upsert.Value); err != nil {
		return FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return FormatError(err)
	}
	return nil
}

// LoadPreferences reads every preference field for the user and always
// returns a fully populated, valid set: missing rows, storage errors, and
// out-of-enum values all fall back to the built-in default for that field.
// Unrecognized persisted values are discarded here, never propagated.
func (s *Store) LoadPreferences(ctx context.Context, userID int) *api.PreferenceSet {
	set := api.DefaultPreferenceSet()

	list, err := s.FindUserPreferenceList(ctx, &api.UserPreferenceFind{UserID: userID})
	if err != nil {
		log.Warn("failed to load preferences, falling back to defaults",
			zap.Int("userID", userID), zap.Error(err))
		return set
	}

	for _, pref := range list {
		if !slices.Contains(pref.Key.ValueSet(), pref.Value) {
			continue
		}
		switch pref.Key {
		case api.PreferenceKeyMode:
			set.Mode = api.ThemeMode(pref.Value)
		case api.PreferenceKeyColor:
			set.Color = api.ThemeColor(pref.Value)
		case api.PreferenceKeyRadius:
			set.Radius = api.ThemeRadius(pref.Value)
		case api.PreferenceKeyFont:
			set.Font = api.ThemeFont(pref.Value)
		case api.PreferenceKeyRTL:
			set.RTL = pref.Value == "true"
		}
	}
	return set
}

func (s *Store) FindUserPreferenceList(ctx context.Context, find *api.UserPreferenceFind) ([]*api.UserPreference, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	userPreferenceRawList, err := findUserPreferenceList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	list := []*api.UserPreference{}
	for _, raw := range userPreferenceRawList {
		s.userPreferenceCache.Store(getUserPreferenceCacheKey(*raw), raw)
		list = append(list, raw.toUserPreference())
	}

	return list, nil
}

func (s *Store) FindUserPreference(ctx context.Context, find *api.UserPreferenceFind) (*api.UserPreference, error) {
	if pref, ok := s.userPreferenceCache.Load(getUserPreferenceFindCacheKey(find)); ok {
		if pref == nil {
			return nil, nil
		}
		return pref.(*userPreferenceRaw).toUserPreference(), nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := findUserPreferenceList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		s.userPreferenceCache.Store(getUserPreferenceFindCacheKey(find), nil)
		return nil, nil
	}

	userPreferenceRaw := list[0]
	s.userPreferenceCache.Store(getUserPreferenceCacheKey(*userPreferenceRaw), userPreferenceRaw)
	return userPreferenceRaw.toUserPreference(), nil
}

func findUserPreferenceList(ctx context.Context, tx *sql.Tx, find *api.UserPreferenceFind) ([]*userPreferenceRaw, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.Key.String(); v != "" {
		where, args = append(where, "key = ?"), append(args, v)
	}

	where, args = append(where, "user_id = ?"), append(args, find.UserID)

	query := `
		SELECT
			user_id,
			key,
			value
		FROM user_preference
		WHERE ` + strings.Join(where, " AND ")
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	userPreferenceRawList := make([]*userPreferenceRaw, 0)
	for rows.Next() {
		var userPreferenceRaw userPreferenceRaw
		if err := rows.Scan(
			&userPreferenceRaw.UserID,
			&userPreferenceRaw.Key,
			&userPreferenceRaw.Value,
		); err != nil {
			return nil, FormatError(err)
		}

		userPreferenceRawList = append(userPreferenceRawList, &userPreferenceRaw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return userPreferenceRawList, nil
}

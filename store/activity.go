package store

import (
	"context"
	"database/sql"
	"strings"

	"fashionhub/api"
)

type activityRaw struct {
	ID int

	CreatorID int
	CreatedTs int64

	// Domain specific fields
	Type    api.ActivityType
	Level   api.ActivityLevel
	Payload string
}

func (raw *activityRaw) toActivity() *api.Activity {
	return &api.Activity{
		ID: raw.ID,

		CreatorID: raw.CreatorID,
		CreatedTs: raw.CreatedTs,

		Type:    raw.Type,
		Level:   raw.Level,
		Payload: raw.Payload,
	}
}

func (s *Store) CreateActivity(ctx context.Context, create *api.ActivityCreate) (*api.Activity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	activityRaw, err := createActivity(ctx, tx, create)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	return activityRaw.toActivity(), nil
}

func createActivity(ctx context.Context, tx *sql.Tx, create *api.ActivityCreate) (*activityRaw, error) {
	query := `
		INSERT INTO activity (
			creator_id,
			type,
			level,
			payload
		)
		VALUES (?, ?, ?, ?)
		RETURNING id, creator_id, created_ts, type, level, payload
	`
	var activityRaw activityRaw
	if err := tx.QueryRowContext(ctx, query,
		create.CreatorID,
		create.Type,
		create.Level,
		create.Payload,
	).Scan(
		&activityRaw.ID,
		&activityRaw.CreatorID,
		&activityRaw.CreatedTs,
		&activityRaw.Type,
		&activityRaw.Level,
		&activityRaw.Payload,
	); err != nil {
		return nil, FormatError(err)
	}

	return &activityRaw, nil
}

// FindActivityList returns the newest activities for a creator, most recent first.
func (s *Store) FindActivityList(ctx context.Context, creatorID int, limit int) ([]*api.Activity, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	where, args := []string{"creator_id = ?"}, []any{creatorID}

	query := `
		SELECT id, creator_id, created_ts, type, level, payload
		FROM activity
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC
		LIMIT ?
	`
	args = append(args, limit)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	list := []*api.Activity{}
	for rows.Next() {
		var raw activityRaw
		if err := rows.Scan(
			&raw.ID,
			&raw.CreatorID,
			&raw.CreatedTs,
			&raw.Type,
			&raw.Level,
			&raw.Payload,
		); err != nil {
			return nil, FormatError(err)
		}
		list = append(list, raw.toActivity())
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return list, nil
}

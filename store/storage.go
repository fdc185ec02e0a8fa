package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"fashionhub/api"
	"fashionhub/common"

	"github.com/pkg/errors"
)

type storageRaw struct {
	ID     int
	Name   string
	Type   api.StorageType
	Config string
}

func (raw *storageRaw) toStorage() (*api.Storage, error) {
	config, err := api.UnmarshalStorageConfig(raw.Config, raw.Type)
	if err != nil {
		return nil, err
	}
	return &api.Storage{
		ID:     raw.ID,
		Name:   raw.Name,
		Type:   raw.Type,
		Config: config,
	}, nil
}

func (s *Store) CreateStorage(ctx context.Context, create *api.StorageCreate) (*api.Storage, error) {
	configBytes, err := json.Marshal(create.Config.S3Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal storage config")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO storage (
			name,
			type,
			config
		)
		VALUES (?, ?, ?)
		RETURNING id, name, type, config
	`
	var raw storageRaw
	if err := tx.QueryRowContext(ctx, query, create.Name, create.Type, string(configBytes)).Scan(
		&raw.ID,
		&raw.Name,
		&raw.Type,
		&raw.Config,
	); err != nil {
		return nil, FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	s.storageCache.Store(raw.ID, &raw)
	return raw.toStorage()
}

func (s *Store) PatchStorage(ctx context.Context, patch *api.StoragePatch) (*api.Storage, error) {
	set, args := []string{}, []any{}
	if v := patch.Name; v != nil {
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := patch.Config; v != nil {
		configBytes, err := json.Marshal(v.S3Config)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal storage config")
		}
		set, args = append(set, "config = ?"), append(args, string(configBytes))
	}
	if len(set) == 0 {
		return nil, common.Errorf(common.Invalid, "nothing to patch for storage %d", patch.ID)
	}
	args = append(args, patch.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	query := `
		UPDATE storage
		SET ` + strings.Join(set, ", ") + `
		WHERE id = ?
		RETURNING id, name, type, config
	`
	var raw storageRaw
	if err := tx.QueryRowContext(ctx, query, args...).Scan(
		&raw.ID,
		&raw.Name,
		&raw.Type,
		&raw.Config,
	); err != nil {
		return nil, FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	s.storageCache.Store(raw.ID, &raw)
	return raw.toStorage()
}

func (s *Store) FindStorage(ctx context.Context, find *api.StorageFind) (*api.Storage, error) {
	if find.ID != nil {
		if storage, ok := s.storageCache.Load(*find.ID); ok {
			return storage.(*storageRaw).toStorage()
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := findStorageRawList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, common.Errorf(common.NotFound, "storage not found with filter %+v", find)
	}

	raw := list[0]
	s.storageCache.Store(raw.ID, raw)
	return raw.toStorage()
}

func (s *Store) FindStorageList(ctx context.Context, find *api.StorageFind) ([]*api.Storage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	rawList, err := findStorageRawList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	list := []*api.Storage{}
	for _, raw := range rawList {
		storage, err := raw.toStorage()
		if err != nil {
			return nil, err
		}
		list = append(list, storage)
	}

	return list, nil
}

func (s *Store) DeleteStorage(ctx context.Context, delete *api.StorageDelete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FormatError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM storage WHERE id = ?`, delete.ID); err != nil {
		return FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return FormatError(err)
	}

	s.storageCache.Delete(delete.ID)
	return nil
}

func findStorageRawList(ctx context.Context, tx *sql.Tx, find *api.StorageFind) ([]*storageRaw, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			name,
			type,
			config
		FROM storage
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id DESC
	`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	rawList := make([]*storageRaw, 0)
	for rows.Next() {
		var raw storageRaw
		if err := rows.Scan(
			&raw.ID,
			&raw.Name,
			&raw.Type,
			&raw.Config,
		); err != nil {
			return nil, FormatError(err)
		}
		rawList = append(rawList, &raw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return rawList, nil
}

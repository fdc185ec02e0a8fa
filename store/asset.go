package store

import (
	"context"
	"database/sql"
	"strings"

	"fashionhub/api"
	"fashionhub/common"
)

type assetRaw struct {
	ID int

	CreatorID int
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Filename     string
	Blob         []byte
	InternalPath string
	ExternalLink string
	Type         string
	Size         int64
	PublicID     string
}

func (raw *assetRaw) toAsset() *api.Asset {
	return &api.Asset{
		ID: raw.ID,

		CreatorID: raw.CreatorID,
		CreatedTs: raw.CreatedTs,
		UpdatedTs: raw.UpdatedTs,

		Filename:     raw.Filename,
		Blob:         raw.Blob,
		InternalPath: raw.InternalPath,
		ExternalLink: raw.ExternalLink,
		Type:         raw.Type,
		Size:         raw.Size,
		PublicID:     raw.PublicID,
	}
}

func (s *Store) CreateAsset(ctx context.Context, create *api.AssetCreate) (*api.Asset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	assetRaw, err := createAsset(ctx, tx, create)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}

	return assetRaw.toAsset(), nil
}

func createAsset(ctx context.Context, tx *sql.Tx, create *api.AssetCreate) (*assetRaw, error) {
	query := `
		INSERT INTO asset (
			creator_id,
			filename,
			blob,
			internal_path,
			external_link,
			type,
			size,
			public_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, creator_id, created_ts, updated_ts, filename, internal_path, external_link, type, size, public_id
	`
	var assetRaw assetRaw
	if err := tx.QueryRowContext(ctx, query,
		create.CreatorID,
		create.Filename,
		create.Blob,
		create.InternalPath,
		create.ExternalLink,
		create.Type,
		create.Size,
		create.PublicID,
	).Scan(
		&assetRaw.ID,
		&assetRaw.CreatorID,
		&assetRaw.CreatedTs,
		&assetRaw.UpdatedTs,
		&assetRaw.Filename,
		&assetRaw.InternalPath,
		&assetRaw.ExternalLink,
		&assetRaw.Type,
		&assetRaw.Size,
		&assetRaw.PublicID,
	); err != nil {
		return nil, FormatError(err)
	}

	return &assetRaw, nil
}

func (s *Store) FindAsset(ctx context.Context, find *api.AssetFind) (*api.Asset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := findAssetList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, common.Errorf(common.NotFound, "asset not found with filter %+v", find)
	}

	return list[0].toAsset(), nil
}

func (s *Store) FindAssetList(ctx context.Context, find *api.AssetFind) ([]*api.Asset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	assetRawList, err := findAssetList(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	list := []*api.Asset{}
	for _, raw := range assetRawList {
		list = append(list, raw.toAsset())
	}

	return list, nil
}

func (s *Store) DeleteAsset(ctx context.Context, delete *api.AssetDelete) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FormatError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, delete.ID); err != nil {
		return FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return FormatError(err)
	}
	return nil
}

// FindAssetBlob fetches the stored blob for a database-backed asset.
func (s *Store) FindAssetBlob(ctx context.Context, id int) ([]byte, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	var blob []byte
	if err := tx.QueryRowContext(ctx, `SELECT blob FROM asset WHERE id = ?`, id).Scan(&blob); err != nil {
		return nil, FormatError(err)
	}
	return blob, nil
}

func findAssetList(ctx context.Context, tx *sql.Tx, find *api.AssetFind) ([]*assetRaw, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "creator_id = ?"), append(args, *v)
	}
	if v := find.PublicID; v != nil {
		where, args = append(where, "public_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			creator_id,
			created_ts,
			updated_ts,
			filename,
			internal_path,
			external_link,
			type,
			size,
			public_id
		FROM asset
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC
	`
	if find.Limit != nil {
		query += ` LIMIT ?`
		args = append(args, *find.Limit)
		if find.Offset != nil {
			query += ` OFFSET ?`
			args = append(args, *find.Offset)
		}
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	assetRawList := make([]*assetRaw, 0)
	for rows.Next() {
		var assetRaw assetRaw
		if err := rows.Scan(
			&assetRaw.ID,
			&assetRaw.CreatorID,
			&assetRaw.CreatedTs,
			&assetRaw.UpdatedTs,
			&assetRaw.Filename,
			&assetRaw.InternalPath,
			&assetRaw.ExternalLink,
			&assetRaw.Type,
			&assetRaw.Size,
			&assetRaw.PublicID,
		); err != nil {
			return nil, FormatError(err)
		}
		assetRawList = append(assetRawList, &assetRaw)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return assetRawList, nil
}

package store

import (
	"database/sql"
	"sync"

	"fashionhub/service/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	db      *sql.DB
	profile *profile.Profile

	userCache           sync.Map // map[int]*userRaw
	userPreferenceCache sync.Map // map[string]*userPreferenceRaw
	systemSettingCache  sync.Map // map[string]*systemSettingRaw
	storageCache        sync.Map // map[int]*storageRaw
}

// New creates a new instance of Store.
func New(db *sql.DB, profile *profile.Profile) *Store {
	return &Store{
		db:      db,
		profile: profile,
	}
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection keys. Each key holds one JSON document: an array for the four
// record collections, an object for the session pointer, a string list for the
// search history.
const (
	KeyUsers          = "users"
	KeyCourses        = "courses"
	KeyEnrollments    = "enrollments"
	KeyAssignments    = "assignments"
	KeyCurrentUser    = "currentUser"
	KeyRecentSearches = "recentSearches"
)

// ErrNotFound indicates a key holds no value. Collection readers never see it;
// Load leaves the destination zero instead. It is returned only by Exists-style
// probes that need to distinguish absence.
var ErrNotFound = errors.New("storage: key not found")

// Blob is one serialized collection.
type Blob struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName keeps the storage table clearly separated from any relational data.
func (Blob) TableName() string { return "storage_blobs" }

// Store persists whole-collection JSON blobs. Every mutation is a
// read-modify-write of the affected keys inside a single database transaction,
// so multi-collection operations (enroll, cascade delete) cannot tear.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open migrates the blob table and returns a ready store.
func Open(db *gorm.DB, logger zerolog.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("storage: database handle must not be nil")
	}
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("storage: migrate blob table: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// Txn exposes keyed reads and writes bound to one transaction.
type Txn struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// View runs fn with read access. Reads outside a mutation use it too; the
// store makes no snapshot guarantee beyond what the driver provides.
func (s *Store) View(ctx context.Context, fn func(tx *Txn) error) error {
	return fn(&Txn{db: s.db.WithContext(ctx), logger: s.logger})
}

// Update runs fn inside a database transaction. Returning an error rolls back
// every key written during fn.
func (s *Store) Update(ctx context.Context, fn func(tx *Txn) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Txn{db: tx, logger: s.logger})
	})
}

// Load unmarshals the value under key into dest. A missing key or a corrupt
// blob leaves dest untouched and returns nil: callers always see an empty
// collection rather than a hard failure.
func (t *Txn) Load(key string, dest any) error {
	var blob Blob
	err := t.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: load %q: %w", key, err)
	}

	if unmarshalErr := json.Unmarshal(blob.Value, dest); unmarshalErr != nil {
		t.logger.Warn().Err(unmarshalErr).Str("key", key).Msg("corrupt blob treated as empty collection")
	}
	return nil
}

// Save marshals value and upserts it under key.
func (t *Txn) Save(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: marshal %q: %w", key, err)
	}

	blob := Blob{Key: key, Value: datatypes.JSON(payload)}
	err = t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting an absent key is a no-op.
func (t *Txn) Delete(key string) error {
	if err := t.db.Delete(&Blob{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// Exists reports whether key holds a value.
func (t *Txn) Exists(key string) (bool, error) {
	var count int64
	if err := t.db.Model(&Blob{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("storage: probe %q: %w", key, err)
	}
	return count > 0, nil
}

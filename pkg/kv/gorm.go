package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/db"
	"gorm.io/gorm"
)

type entryRow struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Payload   string `gorm:"column:payload"`
	Revision  int64  `gorm:"column:revision"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (entryRow) TableName() string { return "kv_entries" }

// GormStore keeps entries in the kv_entries table created by pkg/migrate.
type GormStore struct {
	conn *gorm.DB
	now  func() time.Time
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{conn: conn, now: time.Now}
}

func (s *GormStore) Get(ctx context.Context, key string) (Entry, error) {
	var row entryRow
	err := s.conn.WithContext(ctx).Where("entry_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("select %s: %w", key, err)
	}
	return Entry{Value: []byte(row.Payload), Revision: row.Revision}, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	now := s.now().UTC()
	if expected == 0 {
		row := entryRow{Key: key, Payload: string(value), Revision: 1, CreatedAt: now, UpdatedAt: now}
		if err := s.conn.WithContext(ctx).Create(&row).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return 0, ErrRevisionConflict
			}
			return 0, fmt.Errorf("insert %s: %w", key, err)
		}
		return 1, nil
	}

	res := s.conn.WithContext(ctx).
		Model(&entryRow{}).
		Where("entry_key = ? AND revision = ?", key, expected).
		Updates(map[string]any{
			"payload":    string(value),
			"revision":   expected + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrRevisionConflict
	}
	return expected + 1, nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.conn.WithContext(ctx).Where("entry_key = ?", key).Delete(&entryRow{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

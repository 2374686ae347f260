package slots

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pg-connect/internal/store"
)

type stateSlot struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (stateSlot) TableName() string {
	return "state_slots"
}

type PostgresRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var row stateSlot
	err := findSlot(r.db.WithContext(ctx), key, &row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (r *PostgresRepository) Put(ctx context.Context, key string, payload []byte) error {
	row := stateSlot{
		Key:       key,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: r.now().UTC(),
	}
	return upsertSlot(r.db.WithContext(ctx), &row).Error
}

func findSlot(tx *gorm.DB, key string, row *stateSlot) *gorm.DB {
	return tx.Where("key = ?", key).First(row)
}

// upsertSlot overwrites the payload of an existing key.
func upsertSlot(tx *gorm.DB, row *stateSlot) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(row)
}

func (r *PostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

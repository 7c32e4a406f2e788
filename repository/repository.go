package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
)

// Store is the persistence layer for every entity of the API.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// lookup maps gorm's not-found error to the API's not-found error for entity.
func lookup(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFound(entity + " not found")
	}
	return fmt.Errorf("load %s: %w", entity, err)
}

// firstOrCreate inserts row unless a row with the same unique key exists, in
// which case the existing row is loaded into row. The unique index decides,
// so concurrent callers end up with the same record.
func (s *Store) firstOrCreate(ctx context.Context, row any, key any) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	if err := s.db.WithContext(ctx).Where(key).First(row).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (s *Store) exists(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// save writes every column of row without touching its associations.
func (s *Store) save(ctx context.Context, row any) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewConflict("A record with the same values already exists")
	}
	return err
}

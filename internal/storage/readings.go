package storage

import (
	"context"
	"fmt"

	"bmi-advisor/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ReadingStore persists BMI readings.
type ReadingStore struct {
	db *gorm.DB
}

func NewReadingStore(db *gorm.DB) *ReadingStore {
	return &ReadingStore{db: db}
}

func (s *ReadingStore) Create(ctx context.Context, r *models.Reading) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("save reading: %w", err)
	}
	return nil
}

// ListByUser returns one page of a user's readings, newest first, with the
// total number of readings the user has.
func (s *ReadingStore) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]models.Reading, int64, error) {
	page, perPage = NormalizePage(page, perPage)

	owned := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Reading{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count readings: %w", err)
	}

	readings := make([]models.Reading, 0, perPage)
	err := owned().Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&readings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list readings: %w", err)
	}
	return readings, total, nil
}

// NormalizePage clamps pagination arguments.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

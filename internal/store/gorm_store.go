// Package store backs the access.Store interface with gorm/postgres and
// carries the rating queries the analytics handlers feed into the
// aggregator.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/access"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindEventByCode(ctx context.Context, code string, modeFilter *models.AccessMode) (*models.Event, error) {
	query := s.db.WithContext(ctx).
		Where("UPPER(access_code) = UPPER(?)", code).
		Where("is_active = ?", true)
	if modeFilter != nil {
		query = query.Where("access_mode = ?", *modeFilter)
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding event by code: %w", err)
	}
	return &event, nil
}

func (s *GormStore) FindEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding event by id: %w", err)
	}
	return &event, nil
}

func (s *GormStore) FindTempProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_temporary = ?", email, true).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding profile by email: %w", err)
	}
	return &profile, nil
}

func (s *GormStore) CreateTempProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", access.ErrConflict, profile.Email)
		}
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (s *GormStore) UpdateProfileExpiration(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("loading profile for renewal: %w", err)
	}
	profile.ExpiresAt = &expiresAt
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("renewing profile expiration: %w", err)
	}
	return &profile, nil
}

// ListRatingsForWines loads all ratings for the given wines with their
// wine, owner and descriptor joins, oldest first. The result feeds
// analytics.RowsFromRatings.
func (s *GormStore) ListRatingsForWines(ctx context.Context, wineIDs []uuid.UUID) ([]models.Rating, error) {
	if len(wineIDs) == 0 {
		return []models.Rating{}, nil
	}
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Preload("Wine").
		Preload("Profile").
		Preload("Descriptors").
		Where("wine_id IN ?", wineIDs).
		Order("created_at ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("listing ratings: %w", err)
	}
	return ratings, nil
}

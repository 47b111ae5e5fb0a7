package repository

import (
	"context"
	"errors"

	"github.com/instabill/instabill-api/internal/domain/entity"
	domainRepo "github.com/instabill/instabill-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetStoreProfile retrieves the store profile, falling back to the default
// when none has been saved yet.
func (r *settingsRepository) GetStoreProfile(ctx context.Context) (*entity.StoreProfile, error) {
	var profile entity.StoreProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultStoreProfile(), nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveStoreProfile upserts the singleton profile row.
func (r *settingsRepository) SaveStoreProfile(ctx context.Context, profile *entity.StoreProfile) error {
	profile.ID = 1
	return r.db.WithContext(ctx).Save(profile).Error
}

package service

import (
	"context"

	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/repository"
)

// SettingsService manages the store profile stamped onto receipts.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetStoreProfile returns the store profile, falling back to the default
// when none has been saved.
func (s *SettingsService) GetStoreProfile(ctx context.Context) (*entity.StoreProfile, error) {
	return s.settingsRepo.GetStoreProfile(ctx)
}

// UpdateStoreProfileInput represents the update store profile input
type UpdateStoreProfileInput struct {
	Name         *string
	AddressLine1 *string
	AddressLine2 *string
	GSTIN        *string
	Phone        *string
	Email        *string
}

// UpdateStoreProfile updates the store profile singleton.
func (s *SettingsService) UpdateStoreProfile(ctx context.Context, input *UpdateStoreProfileInput) (*entity.StoreProfile, error) {
	profile, err := s.settingsRepo.GetStoreProfile(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.AddressLine1 != nil {
		profile.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		profile.AddressLine2 = *input.AddressLine2
	}
	if input.GSTIN != nil {
		profile.GSTIN = *input.GSTIN
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}

	if err := s.settingsRepo.SaveStoreProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

package repository

import (
	"context"

	"github.com/instabill/instabill-api/internal/domain/entity"
)

// SettingsRepository manages the store profile singleton.
type SettingsRepository interface {
	GetStoreProfile(ctx context.Context) (*entity.StoreProfile, error)
	SaveStoreProfile(ctx context.Context, profile *entity.StoreProfile) error
}

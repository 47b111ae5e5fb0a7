package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog data operations.
// GetByBarcode returning (nil, nil) is the "fall back to manual entry"
// signal, never an error.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	Count(ctx context.Context) (int64, error)
}

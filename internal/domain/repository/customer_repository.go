package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// There is deliberately no Delete: customers persist indefinitely once
// created.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/pkg/pagination"
)

// TransactionRepository is the append-only sales ledger. Transactions are
// never updated or reordered; DeleteAll is the admin-only history wipe.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// ListByCustomer returns the customer's transactions in chronological
	// insertion order; most-recent-first is the caller's concern.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error)
	ListAll(ctx context.Context) ([]entity.Transaction, error)
	DeleteAll(ctx context.Context) error
}

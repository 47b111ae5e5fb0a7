package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/pkg/apperror"
	"github.com/instabill/instabill-api/pkg/pagination"
)

// CustomerService handles admin-side customer operations. Terminal-side
// login and registration go through BillingService, which owns the
// session.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, txnRepo repository.TransactionRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, txnRepo: txnRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address string
}

// CreateCustomer creates a new customer. The phone number is the natural
// key; a collision is a conflict here, unlike the terminal registration
// flow which signs the existing customer in.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Phone == "" {
		return nil, apperror.NewBadRequestError("Phone number is required")
	}

	existing, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this phone number already exists")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and search.
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Address *string
}

// UpdateCustomer updates a customer's name or address. The phone number
// is immutable, it is the customer's identity.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomerHistory returns the customer's past transactions in
// chronological order.
func (s *CustomerService) GetCustomerHistory(ctx context.Context, id uuid.UUID) ([]entity.Transaction, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.txnRepo.ListByCustomer(ctx, id)
}

package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/billing"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/pkg/apperror"
	"github.com/instabill/instabill-api/pkg/pagination"
)

// TransactionService exposes the append-only sales ledger to the admin
// area. There is no update path anywhere: transactions are immutable once
// written.
type TransactionService struct {
	txnRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// ListTransactions lists ledger entries with pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// ClearLedger deletes all transactions. Irreversible; admin only.
func (s *TransactionService) ClearLedger(ctx context.Context) error {
	return s.txnRepo.DeleteAll(ctx)
}

// ExportCSV writes the entire ledger as CSV.
func (s *TransactionService) ExportCSV(ctx context.Context, w io.Writer) error {
	txns, err := s.txnRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Receipt No", "Date", "Customer", "Payment Method", "Total", "Items"}); err != nil {
		return err
	}

	for _, txn := range txns {
		customer := "Guest"
		if txn.CustomerName != nil {
			customer = *txn.CustomerName
		}

		var items []string
		for _, item := range txn.Items {
			items = append(items, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		}

		record := []string{
			txn.ReceiptNo,
			txn.Date,
			customer,
			txn.PaymentMethod.String(),
			fmt.Sprintf("%.2f", billing.DecimalFromCents(txn.TotalCents)),
			strings.Join(items, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

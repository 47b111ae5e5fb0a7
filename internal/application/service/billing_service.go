package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/billing"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/enum"
	"github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/pkg/apperror"
	"github.com/instabill/instabill-api/pkg/identify"
	"github.com/instabill/instabill-api/pkg/utils"
)

// Scan/mutation result statuses.
const (
	StatusAdded       = "added"
	StatusSuppressed  = "suppressed"
	StatusDropped     = "dropped"
	StatusManualEntry = "manual_entry_required"
)

// Terminal cue identifiers carried on responses so the client can play
// the matching sound.
const (
	CueSuccess = "success-beep"
	CueError   = "error-beep"
)

// BudgetExceededError reports a rejected cart mutation that would have
// pushed the projected bill past the budget ceiling. Nothing was mutated.
type BudgetExceededError struct {
	LimitCents     int64
	ProjectedCents int64
}

func (e *BudgetExceededError) Error() string {
	return "budget limit exceeded"
}

// ReceiptPrinter prints a finalized transaction. Implemented by
// ReceiptService; printing is best-effort after payment.
type ReceiptPrinter interface {
	PrintReceipt(ctx context.Context, txn *entity.Transaction) error
}

// BillingService owns the active sale: cart, budget guard, scan gate,
// selected customer and last receipt. It serializes every mutation behind
// a single mutex, emulating a run-to-completion event loop; only the
// external identification round-trip happens outside the lock, protected
// by the scan gate's in-flight slot instead.
type BillingService struct {
	mu sync.Mutex

	cart   *billing.Cart
	budget *billing.BudgetGuard
	gate   *billing.ScanGate

	customer    *entity.Customer
	lastReceipt *entity.Transaction

	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	txnRepo      repository.TransactionRepository
	sessionRepo  repository.SessionRepository
	identifier   identify.Identifier
	receipts     ReceiptPrinter
}

// NewBillingService creates the billing core. scanCooldown <= 0 falls back
// to the default dedup window.
func NewBillingService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	txnRepo repository.TransactionRepository,
	sessionRepo repository.SessionRepository,
	identifier identify.Identifier,
	receipts ReceiptPrinter,
	scanCooldown time.Duration,
) *BillingService {
	return &BillingService{
		cart:         billing.NewCart(),
		budget:       billing.NewBudgetGuard(),
		gate:         billing.NewScanGate(scanCooldown),
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		sessionRepo:  sessionRepo,
		identifier:   identifier,
		receipts:     receipts,
	}
}

// Gate exposes the scan gate for clock injection in tests.
func (s *BillingService) Gate() *billing.ScanGate {
	return s.gate
}

// ManualPrefill is the template handed back when a scan falls through to
// manual entry, so the terminal can open the form pre-filled.
type ManualPrefill struct {
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Category string  `json:"category,omitempty"`
	Barcode  string  `json:"barcode,omitempty"`
}

// ScanResult is the outcome of a scan or manual-entry save.
type ScanResult struct {
	Status  string
	Item    *billing.LineItem
	Prefill *ManualPrefill
	Cue     string
	Speech  string
}

// Scan resolves a barcode or image capture into a cart mutation. Order of
// checks: budget must be set, the in-flight gate, duplicate suppression
// (barcode only), then catalog lookup, then the external identifier, then
// manual-entry fallback.
func (s *BillingService) Scan(ctx context.Context, scanType enum.ScanType, value string) (*ScanResult, error) {
	if !scanType.Valid() {
		return nil, apperror.NewBadRequestError("Invalid scan type")
	}

	s.mu.Lock()
	_, budgetSet := s.budget.Limit()
	s.mu.Unlock()
	if !budgetSet {
		return nil, apperror.ErrBudgetNotSet
	}

	if scanType == enum.ScanBarcode && value == "" {
		return nil, apperror.NewBadRequestError("Barcode value is required")
	}

	// One scan resolution at a time; a scan racing an outstanding one is
	// dropped rather than queued. The drop check runs before the cooldown
	// so a dropped scan does not suppress its own retry.
	if !s.gate.TryAcquire() {
		return &ScanResult{Status: StatusDropped}, nil
	}
	defer s.gate.Release()

	if scanType == enum.ScanBarcode && !s.gate.AdmitBarcode(value) {
		return &ScanResult{Status: StatusSuppressed}, nil
	}

	if scanType == enum.ScanImage {
		return s.scanImage(ctx, value)
	}
	return s.scanBarcode(ctx, value)
}

func (s *BillingService) scanBarcode(ctx context.Context, code string) (*ScanResult, error) {
	// Fast path: the item is already in the cart, bump its quantity.
	s.mu.Lock()
	if item, ok := s.cart.FindByBarcode(code); ok {
		res, err := s.incrementLocked(ctx, item.ID)
		s.mu.Unlock()
		return res, err
	}
	s.mu.Unlock()

	product, err := s.productRepo.GetByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}

	var tpl *identify.ProductTemplate
	if product != nil {
		tpl = &identify.ProductTemplate{
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Category:   product.Category,
			Barcode:    product.Barcode,
		}
	} else {
		// Not in the catalog; ask the external identifier. The state mutex
		// is not held here, so manual cart actions stay live while the
		// round-trip is outstanding.
		tpl, err = s.identifier.IdentifyByBarcode(ctx, code)
		if err != nil {
			return &ScanResult{
				Status:  StatusManualEntry,
				Prefill: &ManualPrefill{Barcode: code},
				Cue:     CueError,
				Speech:  "Item not found. Please enter the details manually.",
			}, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The cart may have gained this barcode through manual entry while the
	// lookup was in flight.
	if item, ok := s.cart.FindByBarcode(code); ok {
		return s.incrementLocked(ctx, item.ID)
	}
	return s.addNewLocked(ctx, tpl, false)
}

func (s *BillingService) scanImage(ctx context.Context, imageData string) (*ScanResult, error) {
	tpl, err := s.identifier.IdentifyByImage(ctx, imageData)
	if err != nil {
		return &ScanResult{
			Status:  StatusManualEntry,
			Prefill: &ManualPrefill{},
			Cue:     CueError,
			Speech:  "Could not recognize the item. Please enter the details manually.",
		}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl.Barcode != "" {
		if item, ok := s.cart.FindByBarcode(tpl.Barcode); ok {
			return s.incrementLocked(ctx, item.ID)
		}
	}
	return s.addNewLocked(ctx, tpl, false)
}

// incrementLocked bumps an existing line by one unit. Caller holds s.mu.
func (s *BillingService) incrementLocked(ctx context.Context, id uuid.UUID) (*ScanResult, error) {
	item, ok := s.cart.Find(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	cost := billing.WithTax(item.PriceCents)
	if !s.budget.PreCheck(cost) {
		return nil, s.budgetExceededLocked(cost)
	}
	s.budget.Commit(cost)

	updated, _ := s.cart.UpdateQuantity(id, 1)
	s.budget.Reconcile(s.cart.TotalCents())
	s.persistLocked(ctx)

	return &ScanResult{Status: StatusAdded, Item: &updated, Cue: CueSuccess}, nil
}

// addNewLocked appends a new line with quantity 1. Caller holds s.mu.
func (s *BillingService) addNewLocked(ctx context.Context, tpl *identify.ProductTemplate, offlineAdded bool) (*ScanResult, error) {
	cost := billing.WithTax(tpl.PriceCents)
	if !s.budget.PreCheck(cost) {
		return nil, s.budgetExceededLocked(cost)
	}
	s.budget.Commit(cost)

	item := s.cart.AddNew(tpl.Name, tpl.PriceCents, tpl.Category, tpl.Barcode, offlineAdded)
	s.budget.Reconcile(s.cart.TotalCents())
	s.persistLocked(ctx)

	return &ScanResult{Status: StatusAdded, Item: &item, Cue: CueSuccess}, nil
}

// budgetExceededLocked builds the rejection error from the guard's current
// state. Caller holds s.mu; nothing has been mutated.
func (s *BillingService) budgetExceededLocked(costCents int64) error {
	limit, _ := s.budget.Limit()
	return &BudgetExceededError{
		LimitCents:     limit,
		ProjectedCents: s.budget.ShadowCents() + costCents,
	}
}

// ManualItemInput is a cashier-entered item.
type ManualItemInput struct {
	Name     string
	Price    float64
	Category string
	Barcode  string
}

// AddManual saves a manually entered item. If the barcode already has a
// cart line the entry increments it instead of duplicating. Blank fields
// fall back to defaults, a half-filled form still produces a line item.
func (s *BillingService) AddManual(ctx context.Context, input *ManualItemInput) (*ScanResult, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Item price cannot be negative")
	}
	name := input.Name
	if name == "" {
		name = "Manual Item"
	}
	category := input.Category
	if category == "" {
		category = "General"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.cart.FindByBarcode(input.Barcode); ok {
		return s.incrementLocked(ctx, item.ID)
	}

	tpl := &identify.ProductTemplate{
		Name:       name,
		PriceCents: billing.CentsFromDecimal(input.Price),
		Category:   category,
		Barcode:    input.Barcode,
	}
	return s.addNewLocked(ctx, tpl, true)
}

// UpdateQuantity applies a signed delta to a cart line. Increases go
// through the budget guard; a line reaching zero is removed.
func (s *BillingService) UpdateQuantity(ctx context.Context, id uuid.UUID, delta int) (*CartView, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Quantity delta must be non-zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	if delta > 0 {
		cost := billing.WithTax(item.PriceCents * int64(delta))
		if !s.budget.PreCheck(cost) {
			return nil, s.budgetExceededLocked(cost)
		}
		s.budget.Commit(cost)
	}

	s.cart.UpdateQuantity(id, delta)
	s.budget.Reconcile(s.cart.TotalCents())
	s.persistLocked(ctx)

	return s.cartViewLocked(), nil
}

// RemoveItem deletes a cart line unconditionally.
func (s *BillingService) RemoveItem(ctx context.Context, id uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(id) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	s.budget.Reconcile(s.cart.TotalCents())
	s.persistLocked(ctx)

	return s.cartViewLocked(), nil
}

// EditItem removes a cart line and hands its fields back as a manual-entry
// prefill. Cancelling the re-entry on the client loses the item; that is
// the accepted trade-off of edit-as-remove-and-re-add.
func (s *BillingService) EditItem(ctx context.Context, id uuid.UUID) (*ManualPrefill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	s.cart.Remove(id)
	s.budget.Reconcile(s.cart.TotalCents())
	s.persistLocked(ctx)

	return &ManualPrefill{
		Name:     item.Name,
		Price:    billing.DecimalFromCents(item.PriceCents),
		Category: item.Category,
		Barcode:  item.Barcode,
	}, nil
}

// CartView is a consistent snapshot of the active sale.
type CartView struct {
	Items         []billing.LineItem
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	BudgetCents   *int64
	Customer      *entity.Customer
}

// Cart returns the current cart snapshot with derived totals.
func (s *BillingService) Cart() *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *BillingService) cartViewLocked() *CartView {
	view := &CartView{
		Items:         s.cart.Snapshot(),
		SubtotalCents: s.cart.SubtotalCents(),
		TaxCents:      s.cart.TaxCents(),
		TotalCents:    s.cart.TotalCents(),
		Customer:      s.customer,
	}
	if limit, ok := s.budget.Limit(); ok {
		view.BudgetCents = &limit
	}
	return view
}

// SetBudget establishes the spending ceiling for the sale.
func (s *BillingService) SetBudget(ctx context.Context, amount float64) (*CartView, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Budget amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.budget.Set(billing.CentsFromDecimal(amount), s.cart.TotalCents())
	s.persistLocked(ctx)
	return s.cartViewLocked(), nil
}

// IncreaseBudget raises the ceiling mid-sale, the recovery path after a
// budget rejection.
func (s *BillingService) IncreaseBudget(ctx context.Context, amount float64) (*CartView, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Increase amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.budget.Increase(billing.CentsFromDecimal(amount)) {
		return nil, apperror.ErrBudgetNotSet
	}
	s.persistLocked(ctx)
	return s.cartViewLocked(), nil
}

// ClearBudget removes the ceiling.
func (s *BillingService) ClearBudget(ctx context.Context) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.budget.Clear()
	s.persistLocked(ctx)
	return s.cartViewLocked(), nil
}

// LoginByPhone looks a customer up by phone number. found=false means the
// terminal should run the registration sub-flow; it is not an error.
func (s *BillingService) LoginByPhone(ctx context.Context, phone string) (customer *entity.Customer, found bool, err error) {
	if phone == "" {
		return nil, false, apperror.NewBadRequestError("Phone number is required")
	}

	customer, err = s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, false, err
	}
	if customer == nil {
		return nil, false, nil
	}

	s.mu.Lock()
	s.customer = customer
	s.persistLocked(ctx)
	s.mu.Unlock()

	return customer, true, nil
}

// RegisterCustomer creates a customer and signs them in. A phone collision
// signs in the existing customer instead of failing: the phone number is
// the identity.
func (s *BillingService) RegisterCustomer(ctx context.Context, name, phone, address string) (*entity.Customer, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if phone == "" {
		return nil, apperror.NewBadRequestError("Phone number is required")
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{
			Name:    name,
			Phone:   phone,
			Address: address,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.customer = customer
	s.persistLocked(ctx)
	s.mu.Unlock()

	return customer, nil
}

// Logout ends the session: customer, cart, budget and the last receipt
// are all cleared. Contrast with CompletePayment, which keeps the
// customer signed in for the next sale.
func (s *BillingService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customer = nil
	s.lastReceipt = nil
	s.cart.Clear()
	s.budget.Clear()
	s.persistLocked(ctx)
}

// PaymentResult is the outcome of a finalized sale.
type PaymentResult struct {
	Transaction *entity.Transaction
	ChangeCents int64
}

// CompletePayment finalizes the sale: validates the payment, appends the
// transaction to the ledger, clears cart and budget (identity survives),
// and prints the receipt best-effort.
func (s *BillingService) CompletePayment(ctx context.Context, method enum.PaymentMethod, cashTendered *float64) (*PaymentResult, error) {
	if !method.Valid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Len() == 0 {
		return nil, apperror.ErrEmptyCart
	}

	total := s.cart.TotalCents()

	var changeCents int64
	if method == enum.PaymentCash {
		if cashTendered == nil {
			return nil, apperror.NewBadRequestError("Cash tendered amount is required")
		}
		tendered := billing.CentsFromDecimal(*cashTendered)
		if tendered < total {
			return nil, apperror.ErrInsufficientCash
		}
		changeCents = tendered - total
	}

	now := time.Now()
	txn := &entity.Transaction{
		ID:            uuid.New(),
		ReceiptNo:     utils.GenerateReceiptNo(),
		Date:          now.Format("02/01/2006"),
		Timestamp:     now.UnixMilli(),
		TotalCents:    total,
		PaymentMethod: method,
	}
	if s.customer != nil {
		id := s.customer.ID
		name := s.customer.Name
		txn.CustomerID = &id
		txn.CustomerName = &name
	}
	for _, line := range s.cart.Snapshot() {
		txn.Items = append(txn.Items, entity.TransactionItem{
			TransactionID: txn.ID,
			LineID:        line.ID,
			Name:          line.Name,
			PriceCents:    line.PriceCents,
			Category:      line.Category,
			Quantity:      line.Quantity,
			Barcode:       line.Barcode,
			OfflineAdded:  line.OfflineAdded,
		})
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.budget.Clear()
	s.lastReceipt = txn
	s.persistLocked(ctx)

	if s.receipts != nil {
		if err := s.receipts.PrintReceipt(ctx, txn); err != nil {
			log.Printf("Receipt print failed (receipt %s): %v", txn.ReceiptNo, err)
		}
	}

	return &PaymentResult{Transaction: txn, ChangeCents: changeCents}, nil
}

// LastReceipt returns the most recently finalized transaction, retained
// until the next logout.
func (s *BillingService) LastReceipt() (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastReceipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return s.lastReceipt, nil
}

// History returns the signed-in customer's past transactions in
// chronological order.
func (s *BillingService) History(ctx context.Context) ([]entity.Transaction, error) {
	s.mu.Lock()
	customer := s.customer
	s.mu.Unlock()

	if customer == nil {
		return nil, apperror.NewBadRequestError("No customer is signed in")
	}
	return s.txnRepo.ListByCustomer(ctx, customer.ID)
}

// --- Write-through session persistence ---

// persistedLine is the storage shape of a cart line. Prices are stored in
// paise explicitly; the API-facing JSON of LineItem hides them.
type persistedLine struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Barcode      string    `json:"barcode,omitempty"`
	OfflineAdded bool      `json:"offline_added,omitempty"`
}

type persistedBudget struct {
	LimitCents int64 `json:"limit_cents"`
}

// persistLocked writes the session snapshot through to durable storage.
// Failures are logged and otherwise ignored; the in-memory state stays
// authoritative. Caller holds s.mu.
func (s *BillingService) persistLocked(ctx context.Context) {
	lines := make([]persistedLine, 0, s.cart.Len())
	for _, item := range s.cart.Snapshot() {
		lines = append(lines, persistedLine{
			ID:           item.ID,
			Name:         item.Name,
			PriceCents:   item.PriceCents,
			Category:     item.Category,
			Quantity:     item.Quantity,
			Barcode:      item.Barcode,
			OfflineAdded: item.OfflineAdded,
		})
	}
	if data, err := json.Marshal(lines); err == nil {
		if err := s.sessionRepo.Set(ctx, entity.SessionKeyCart, string(data)); err != nil {
			log.Printf("Session write-through failed (cart): %v", err)
		}
	}

	if limit, ok := s.budget.Limit(); ok {
		data, _ := json.Marshal(persistedBudget{LimitCents: limit})
		if err := s.sessionRepo.Set(ctx, entity.SessionKeyBudget, string(data)); err != nil {
			log.Printf("Session write-through failed (budget): %v", err)
		}
	} else if err := s.sessionRepo.Delete(ctx, entity.SessionKeyBudget); err != nil {
		log.Printf("Session write-through failed (budget): %v", err)
	}

	if s.customer != nil {
		if err := s.sessionRepo.Set(ctx, entity.SessionKeySelectedCustomer, s.customer.ID.String()); err != nil {
			log.Printf("Session write-through failed (customer): %v", err)
		}
	} else if err := s.sessionRepo.Delete(ctx, entity.SessionKeySelectedCustomer); err != nil {
		log.Printf("Session write-through failed (customer): %v", err)
	}
}

// RestoreSession loads the persisted snapshot at boot. Missing keys mean
// the default empty/guest state; a stale customer id falls back to guest.
func (s *BillingService) RestoreSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.sessionRepo.Get(ctx, entity.SessionKeyCart); err != nil {
		return err
	} else if ok {
		var lines []persistedLine
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			log.Printf("Discarding unreadable persisted cart: %v", err)
		} else {
			items := make([]billing.LineItem, 0, len(lines))
			for _, l := range lines {
				items = append(items, billing.LineItem{
					ID:           l.ID,
					Name:         l.Name,
					PriceCents:   l.PriceCents,
					Category:     l.Category,
					Quantity:     l.Quantity,
					Barcode:      l.Barcode,
					OfflineAdded: l.OfflineAdded,
				})
			}
			s.cart.Restore(items)
		}
	}

	if raw, ok, err := s.sessionRepo.Get(ctx, entity.SessionKeyBudget); err != nil {
		return err
	} else if ok {
		var b persistedBudget
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			log.Printf("Discarding unreadable persisted budget: %v", err)
		} else {
			s.budget.Set(b.LimitCents, s.cart.TotalCents())
		}
	}

	if raw, ok, err := s.sessionRepo.Get(ctx, entity.SessionKeySelectedCustomer); err != nil {
		return err
	} else if ok {
		if id, err := uuid.Parse(raw); err == nil {
			customer, err := s.customerRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			s.customer = customer
		}
	}

	return nil
}

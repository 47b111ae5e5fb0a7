package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"github.com/instabill/instabill-api/internal/domain/enum"
	"github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/pkg/apperror"
	"github.com/instabill/instabill-api/pkg/identify"
	"github.com/instabill/instabill-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- stub repositories ---

type stubProductRepo struct {
	byBarcode map[string]*entity.Product
}

func (r *stubProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.byBarcode[barcode], nil
}
func (r *stubProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *stubProductRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (r *stubProductRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type stubCustomerRepo struct {
	byPhone map[string]*entity.Customer
}

func (r *stubCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byPhone[c.Phone] = c
	return nil
}
func (r *stubCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	for _, c := range r.byPhone {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (r *stubCustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	return r.byPhone[phone], nil
}
func (r *stubCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (r *stubCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type stubTxnRepo struct {
	created []*entity.Transaction
}

func (r *stubTxnRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	r.created = append(r.created, txn)
	return nil
}
func (r *stubTxnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (r *stubTxnRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, txn := range r.created {
		if txn.CustomerID != nil && *txn.CustomerID == customerID {
			out = append(out, *txn)
		}
	}
	return out, nil
}
func (r *stubTxnRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	return nil, 0, nil
}
func (r *stubTxnRepo) ListAll(ctx context.Context) ([]entity.Transaction, error) { return nil, nil }
func (r *stubTxnRepo) DeleteAll(ctx context.Context) error                       { return nil }

type stubSessionRepo struct {
	kv map[string]string
}

func (r *stubSessionRepo) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := r.kv[key]
	return v, ok, nil
}
func (r *stubSessionRepo) Set(ctx context.Context, key, value string) error {
	r.kv[key] = value
	return nil
}
func (r *stubSessionRepo) Delete(ctx context.Context, key string) error {
	delete(r.kv, key)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)
var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)
var _ repository.TransactionRepository = (*stubTxnRepo)(nil)
var _ repository.SessionRepository = (*stubSessionRepo)(nil)

// --- fixture ---

type billingFixture struct {
	svc      *BillingService
	products *stubProductRepo
	custs    *stubCustomerRepo
	txns     *stubTxnRepo
	session  *stubSessionRepo
	now      time.Time
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	f := &billingFixture{
		products: &stubProductRepo{byBarcode: map[string]*entity.Product{}},
		custs:    &stubCustomerRepo{byPhone: map[string]*entity.Customer{}},
		txns:     &stubTxnRepo{},
		session:  &stubSessionRepo{kv: map[string]string{}},
		now:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewBillingService(f.products, f.custs, f.txns, f.session, identify.NewDisabledIdentifier(), nil, 3*time.Second)
	f.svc.Gate().SetClock(func() time.Time { return f.now })
	return f
}

func (f *billingFixture) addProduct(name, barcode string, priceCents int64) {
	f.products.byBarcode[barcode] = &entity.Product{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		Category:   "General",
		Barcode:    barcode,
	}
}

func (f *billingFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// --- tests ---

func TestScanRequiresBudget(t *testing.T) {
	f := newBillingFixture(t)
	f.addProduct("Milk 1L", "8901", 6000)

	_, err := f.svc.Scan(context.Background(), enum.ScanBarcode, "8901")
	assert.ErrorIs(t, err, apperror.ErrBudgetNotSet)
}

func TestScanAddsCatalogItem(t *testing.T) {
	f := newBillingFixture(t)
	f.addProduct("Milk 1L", "8901", 6000)

	_, err := f.svc.SetBudget(context.Background(), 500)
	require.NoError(t, err)

	res, err := f.svc.Scan(context.Background(), enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.Equal(t, CueSuccess, res.Cue)
	require.NotNil(t, res.Item)
	assert.Equal(t, "Milk 1L", res.Item.Name)
	assert.Equal(t, 1, res.Item.Quantity)

	view := f.svc.Cart()
	assert.Equal(t, int64(6000), view.SubtotalCents)
	assert.Equal(t, int64(1080), view.TaxCents)
	assert.Equal(t, int64(7080), view.TotalCents)
}

func TestScanUnknownBarcodeFallsToManualEntry(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.svc.SetBudget(context.Background(), 500)
	require.NoError(t, err)

	res, err := f.svc.Scan(context.Background(), enum.ScanBarcode, "9999")
	require.NoError(t, err)
	assert.Equal(t, StatusManualEntry, res.Status)
	assert.Equal(t, CueError, res.Cue)
	require.NotNil(t, res.Prefill)
	assert.Equal(t, "9999", res.Prefill.Barcode)
	assert.Empty(t, f.svc.Cart().Items)
}

func TestImageScanFeatureUnavailable(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.svc.SetBudget(context.Background(), 500)
	require.NoError(t, err)

	res, err := f.svc.Scan(context.Background(), enum.ScanImage, "base64data")
	require.NoError(t, err)
	assert.Equal(t, StatusManualEntry, res.Status)
}

func TestDuplicateScanSuppressedWithinWindow(t *testing.T) {
	f := newBillingFixture(t)
	f.addProduct("Milk 1L", "8901", 6000)

	_, err := f.svc.SetBudget(context.Background(), 1000)
	require.NoError(t, err)

	res, err := f.svc.Scan(context.Background(), enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)

	f.advance(500 * time.Millisecond)
	res, err = f.svc.Scan(context.Background(), enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusSuppressed, res.Status)
	assert.Equal(t, 1, f.svc.Cart().Items[0].Quantity)

	f.advance(3 * time.Second)
	res, err = f.svc.Scan(context.Background(), enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.Equal(t, 2, f.svc.Cart().Items[0].Quantity)
}

func TestBudgetRejectionLeavesCartUntouched(t *testing.T) {
	f := newBillingFixture(t)
	f.addProduct("Rice 5kg", "1001", 8000) // 94.40 with tax
	f.addProduct("Salt", "1002", 1000)     // 11.80 with tax

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 100)
	require.NoError(t, err)

	res, err := f.svc.Scan(ctx, enum.ScanBarcode, "1001")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)

	_, err = f.svc.Scan(ctx, enum.ScanBarcode, "1002")
	var budgetErr *BudgetExceededError
	require.True(t, errors.As(err, &budgetErr))
	assert.Equal(t, int64(10000), budgetErr.LimitCents)

	view := f.svc.Cart()
	assert.Len(t, view.Items, 1)
	assert.Equal(t, int64(9440), view.TotalCents)

	// Raising the ceiling lets the same item through.
	_, err = f.svc.IncreaseBudget(ctx, 20)
	require.NoError(t, err)

	f.advance(4 * time.Second)
	res, err = f.svc.Scan(ctx, enum.ScanBarcode, "1002")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.Equal(t, int64(10620), f.svc.Cart().TotalCents)
}

func TestIncreaseBudgetWithoutLimit(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.svc.IncreaseBudget(context.Background(), 50)
	assert.ErrorIs(t, err, apperror.ErrBudgetNotSet)
}

func TestAddManualIncrementsExistingBarcode(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	res, err := f.svc.AddManual(ctx, &ManualItemInput{Name: "Loose Sugar", Price: 45, Barcode: "L1"})
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.True(t, res.Item.OfflineAdded)

	res, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Loose Sugar", Price: 45, Barcode: "L1"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Item.Quantity)
	assert.Len(t, f.svc.Cart().Items, 1)
}

func TestAddManualDefaultsBlankFields(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	// a half-filled form still saves, with the placeholder name
	res, err := f.svc.AddManual(ctx, &ManualItemInput{Price: 10})
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.Equal(t, "Manual Item", res.Item.Name)
	assert.Equal(t, "General", res.Item.Category)

	// a zero price is tolerated, the line just costs nothing
	res, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Free sample"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Item.PriceCents)

	_, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Bad", Price: -1})
	assert.Error(t, err)
}

func TestDroppedScanDoesNotStartCooldown(t *testing.T) {
	f := newBillingFixture(t)
	f.addProduct("Milk 1L", "8901", 6000)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	// hold the in-flight slot so the next scan is dropped
	require.True(t, f.svc.Gate().TryAcquire())
	res, err := f.svc.Scan(ctx, enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusDropped, res.Status)
	f.svc.Gate().Release()

	// the drop left no cooldown behind; retrying the same code right away
	// must add the item, not suppress it
	res, err = f.svc.Scan(ctx, enum.ScanBarcode, "8901")
	require.NoError(t, err)
	assert.Equal(t, StatusAdded, res.Status)
	assert.Equal(t, 1, res.Item.Quantity)
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	res, err := f.svc.AddManual(ctx, &ManualItemInput{Name: "Bread", Price: 40})
	require.NoError(t, err)
	id := res.Item.ID

	view, err := f.svc.UpdateQuantity(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Items[0].Quantity)

	view, err = f.svc.UpdateQuantity(ctx, id, -3)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestEditItemReturnsPrefillAndRemoves(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	res, err := f.svc.AddManual(ctx, &ManualItemInput{Name: "Ghee 500g", Price: 320.50, Category: "Dairy", Barcode: "G1"})
	require.NoError(t, err)

	prefill, err := f.svc.EditItem(ctx, res.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ghee 500g", prefill.Name)
	assert.InDelta(t, 320.50, prefill.Price, 0.001)
	assert.Equal(t, "Dairy", prefill.Category)
	assert.Empty(t, f.svc.Cart().Items)
}

func TestCompletePaymentCashChange(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)

	_, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Dal 1kg", Price: 200})
	require.NoError(t, err)
	require.Equal(t, int64(23600), f.svc.Cart().TotalCents)

	short := 200.0
	_, err = f.svc.CompletePayment(ctx, enum.PaymentCash, &short)
	assert.ErrorIs(t, err, apperror.ErrInsufficientCash)

	tendered := 300.0
	result, err := f.svc.CompletePayment(ctx, enum.PaymentCash, &tendered)
	require.NoError(t, err)
	assert.Equal(t, int64(6400), result.ChangeCents)
	assert.Equal(t, int64(23600), result.Transaction.TotalCents)
	require.Len(t, f.txns.created, 1)
}

func TestCompletePaymentEmptyCart(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.svc.CompletePayment(context.Background(), enum.PaymentUPI, nil)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestPaymentClearsSaleButKeepsCustomer(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	customer, err := f.svc.RegisterCustomer(ctx, "Asha", "9876543210", "")
	require.NoError(t, err)

	_, err = f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)
	_, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Tea 250g", Price: 150})
	require.NoError(t, err)

	result, err := f.svc.CompletePayment(ctx, enum.PaymentUPI, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Transaction.CustomerID)
	assert.Equal(t, customer.ID, *result.Transaction.CustomerID)

	view := f.svc.Cart()
	assert.Empty(t, view.Items)
	assert.Nil(t, view.BudgetCents)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "Asha", view.Customer.Name)

	receipt, err := f.svc.LastReceipt()
	require.NoError(t, err)
	assert.Equal(t, result.Transaction.ReceiptNo, receipt.ReceiptNo)
}

func TestLogoutClearsEverything(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.RegisterCustomer(ctx, "Asha", "9876543210", "")
	require.NoError(t, err)
	_, err = f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)
	_, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Tea 250g", Price: 150})
	require.NoError(t, err)
	_, err = f.svc.CompletePayment(ctx, enum.PaymentUPI, nil)
	require.NoError(t, err)

	f.svc.Logout(ctx)

	view := f.svc.Cart()
	assert.Empty(t, view.Items)
	assert.Nil(t, view.BudgetCents)
	assert.Nil(t, view.Customer)

	_, err = f.svc.LastReceipt()
	assert.Error(t, err)
}

func TestLoginByPhoneUnknownNeedsRegistration(t *testing.T) {
	f := newBillingFixture(t)

	customer, found, err := f.svc.LoginByPhone(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, customer)
}

func TestRegisterCustomerPhoneCollisionSignsIn(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	first, err := f.svc.RegisterCustomer(ctx, "Asha", "9876543210", "")
	require.NoError(t, err)

	second, err := f.svc.RegisterCustomer(ctx, "Someone Else", "9876543210", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha", second.Name)
}

func TestHistoryRequiresCustomer(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.svc.History(context.Background())
	assert.Error(t, err)
}

func TestSessionRestoreResumesSale(t *testing.T) {
	f := newBillingFixture(t)

	ctx := context.Background()
	_, err := f.svc.RegisterCustomer(ctx, "Asha", "9876543210", "")
	require.NoError(t, err)
	_, err = f.svc.SetBudget(ctx, 500)
	require.NoError(t, err)
	_, err = f.svc.AddManual(ctx, &ManualItemInput{Name: "Tea 250g", Price: 150})
	require.NoError(t, err)

	// New service instance over the same stores simulates a restart.
	restarted := NewBillingService(f.products, f.custs, f.txns, f.session, identify.NewDisabledIdentifier(), nil, 3*time.Second)
	require.NoError(t, restarted.RestoreSession(ctx))

	view := restarted.Cart()
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Tea 250g", view.Items[0].Name)
	assert.Equal(t, int64(15000), view.Items[0].PriceCents)
	require.NotNil(t, view.BudgetCents)
	assert.Equal(t, int64(50000), *view.BudgetCents)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "9876543210", view.Customer.Phone)
}

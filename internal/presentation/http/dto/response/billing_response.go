package response

import (
	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/domain/billing"
	"github.com/instabill/instabill-api/internal/domain/entity"
)

// CartItem is a cart line with its price in decimal rupees.
type CartItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Barcode      string    `json:"barcode,omitempty"`
	OfflineAdded bool      `json:"offline_added,omitempty"`
}

// CartResponse is the active sale snapshot sent to the terminal.
type CartResponse struct {
	Items    []CartItem       `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Tax      float64          `json:"tax"`
	Total    float64          `json:"total"`
	Budget   *float64         `json:"budget,omitempty"`
	Customer *entity.Customer `json:"customer,omitempty"`
}

// NewCartItem converts a domain line item.
func NewCartItem(item billing.LineItem) CartItem {
	return CartItem{
		ID:           item.ID,
		Name:         item.Name,
		Price:        billing.DecimalFromCents(item.PriceCents),
		Category:     item.Category,
		Quantity:     item.Quantity,
		Barcode:      item.Barcode,
		OfflineAdded: item.OfflineAdded,
	}
}

// NewCartResponse converts a service cart view.
func NewCartResponse(view *service.CartView) *CartResponse {
	resp := &CartResponse{
		Items:    make([]CartItem, 0, len(view.Items)),
		Subtotal: billing.DecimalFromCents(view.SubtotalCents),
		Tax:      billing.DecimalFromCents(view.TaxCents),
		Total:    billing.DecimalFromCents(view.TotalCents),
		Customer: view.Customer,
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, NewCartItem(item))
	}
	if view.BudgetCents != nil {
		b := billing.DecimalFromCents(*view.BudgetCents)
		resp.Budget = &b
	}
	return resp
}

// ScanResponse is the outcome of a scan or manual-entry save.
type ScanResponse struct {
	Status  string                 `json:"status"`
	Item    *CartItem              `json:"item,omitempty"`
	Prefill *service.ManualPrefill `json:"prefill,omitempty"`
	Cue     string                 `json:"cue,omitempty"`
	Speech  string                 `json:"speech,omitempty"`
}

// NewScanResponse converts a service scan result.
func NewScanResponse(res *service.ScanResult) *ScanResponse {
	resp := &ScanResponse{
		Status:  res.Status,
		Prefill: res.Prefill,
		Cue:     res.Cue,
		Speech:  res.Speech,
	}
	if res.Item != nil {
		item := NewCartItem(*res.Item)
		resp.Item = &item
	}
	return resp
}

// BudgetExceededResponse carries the data the terminal needs to offer the
// increase-budget recovery path.
type BudgetExceededResponse struct {
	Limit     float64 `json:"limit"`
	Projected float64 `json:"projected"`
	Cue       string  `json:"cue"`
	Speech    string  `json:"speech"`
}

// PaymentResponse is a finalized sale.
type PaymentResponse struct {
	Transaction *entity.Transaction `json:"transaction"`
	Change      float64             `json:"change"`
}

// NewPaymentResponse converts a service payment result.
func NewPaymentResponse(res *service.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		Transaction: res.Transaction,
		Change:      billing.DecimalFromCents(res.ChangeCents),
	}
}

// SessionResponse describes the terminal session.
type SessionResponse struct {
	Customer   *entity.Customer `json:"customer,omitempty"`
	Registered bool             `json:"registered"`
}

package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/instabill/instabill-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is a finalized sale. It is created exactly once per
// successful payment confirmation and never mutated afterwards; the
// ledger is append-only, so there is no soft delete and no update path.
type Transaction struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo     string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	Date          string             `gorm:"size:20;not null" json:"date"`
	Timestamp     int64              `gorm:"not null;index" json:"timestamp"`
	TotalCents    int64              `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(t),
		TotalAmount: float64(t.TotalCents) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the total as a decimal
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.TotalCents) / 100
}

// TransactionItem is a line item snapshotted out of the cart at checkout.
// LineID carries the original cart-entry id for traceability.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	LineID        uuid.UUID `gorm:"type:uuid;not null" json:"line_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	PriceCents    int64     `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	Category      string    `gorm:"size:100" json:"category"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Barcode       string    `gorm:"size:100" json:"barcode,omitempty"`
	OfflineAdded  bool      `gorm:"default:false" json:"offline_added,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (i TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: float64(i.PriceCents) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (i *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

package request

// ScanRequest represents a barcode or image scan event
type ScanRequest struct {
	Type  string `json:"type" binding:"required,oneof=barcode image"`
	Value string `json:"value"`
}

// ManualItemRequest represents a manually entered item. Every field is
// optional, blanks fall back to service-side defaults.
type ManualItemRequest struct {
	Name     string  `json:"name" binding:"omitempty,max=255"`
	Price    float64 `json:"price" binding:"omitempty,gte=0"`
	Category string  `json:"category" binding:"omitempty,max=100"`
	Barcode  string  `json:"barcode" binding:"omitempty,max=100"`
}

// UpdateQuantityRequest represents a signed quantity change
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// BudgetRequest represents a budget set or increase amount
type BudgetRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// LoginRequest represents a customer phone login
type LoginRequest struct {
	Phone string `json:"phone" binding:"required,min=4,max=50"`
}

// RegisterRequest represents a new customer registration
type RegisterRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Phone   string `json:"phone" binding:"required,min=4,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// PaymentRequest represents a payment confirmation
type PaymentRequest struct {
	Method       string   `json:"method" binding:"required,oneof=UPI CASH CARD"`
	CashTendered *float64 `json:"cash_tendered" binding:"omitempty,gt=0"`
}

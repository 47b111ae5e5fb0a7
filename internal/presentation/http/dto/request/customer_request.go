package request

// CreateCustomerRequest represents an admin customer creation request
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Phone   string `json:"phone" binding:"required,min=4,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// UpdateCustomerRequest represents a customer update request. The phone
// number is immutable.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

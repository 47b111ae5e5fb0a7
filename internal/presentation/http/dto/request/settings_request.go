package request

// UpdateStoreProfileRequest represents a store profile update
type UpdateStoreProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	AddressLine1 *string `json:"address_line1" binding:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=255"`
	GSTIN        *string `json:"gstin" binding:"omitempty,max=50"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Email        *string `json:"email" binding:"omitempty,email,max=255"`
}

package request

// AdminLoginRequest represents an admin dashboard login
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/request"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/response"
)

// AuthHandler handles admin dashboard authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signed in", gin.H{"access_token": token, "token_type": "Bearer"})
}

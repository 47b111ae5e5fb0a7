package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/request"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles the store profile.
type SettingsHandler struct {
	settingsService *service.SettingsService
	receiptService  *service.ReceiptService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, receiptService *service.ReceiptService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, receiptService: receiptService}
}

// GetStoreProfile handles GET /admin/settings/store
func (h *SettingsHandler) GetStoreProfile(c *gin.Context) {
	profile, err := h.settingsService.GetStoreProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store profile retrieved", profile)
}

// UpdateStoreProfile handles PUT /admin/settings/store
func (h *SettingsHandler) UpdateStoreProfile(c *gin.Context) {
	var req request.UpdateStoreProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.settingsService.UpdateStoreProfile(c.Request.Context(), &service.UpdateStoreProfileInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		GSTIN:        req.GSTIN,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store profile updated", profile)
}

// GetPrinterStatus handles GET /admin/settings/printer
func (h *SettingsHandler) GetPrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus())
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/application/service"
	"github.com/instabill/instabill-api/internal/domain/billing"
	"github.com/instabill/instabill-api/internal/domain/enum"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/request"
	"github.com/instabill/instabill-api/internal/presentation/http/dto/response"
)

// BillingHandler exposes the billing core to the terminal.
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// respondBillingError translates billing-core errors, giving budget
// rejections their structured 409 body.
func respondBillingError(c *gin.Context, err error) {
	var budgetErr *service.BudgetExceededError
	if errors.As(err, &budgetErr) {
		limit := billing.DecimalFromCents(budgetErr.LimitCents)
		response.ErrorWithData(c, http.StatusConflict, "Budget limit exceeded", &response.BudgetExceededResponse{
			Limit:     limit,
			Projected: billing.DecimalFromCents(budgetErr.ProjectedCents),
			Cue:       service.CueError,
			Speech:    fmt.Sprintf("Budget limit exceeded. Your limit is %.2f rupees.", limit),
		})
		return
	}
	response.Error(c, err)
}

// Scan handles POST /billing/scan
func (h *BillingHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.billingService.Scan(c.Request.Context(), enum.ScanType(req.Type), req.Value)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	response.OK(c, "Scan processed", response.NewScanResponse(result))
}

// AddManualItem handles POST /billing/cart/items
func (h *BillingHandler) AddManualItem(c *gin.Context) {
	var req request.ManualItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.billingService.AddManual(c.Request.Context(), &service.ManualItemInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Barcode:  req.Barcode,
	})
	if err != nil {
		respondBillingError(c, err)
		return
	}

	response.Created(c, "Item added", response.NewScanResponse(result))
}

// UpdateQuantity handles PATCH /billing/cart/items/:id
func (h *BillingHandler) UpdateQuantity(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.billingService.UpdateQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	response.OK(c, "Quantity updated", response.NewCartResponse(view))
}

// RemoveItem handles DELETE /billing/cart/items/:id
func (h *BillingHandler) RemoveItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	view, err := h.billingService.RemoveItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", response.NewCartResponse(view))
}

// EditItem handles POST /billing/cart/items/:id/edit
func (h *BillingHandler) EditItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	prefill, err := h.billingService.EditItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed for editing", gin.H{"prefill": prefill})
}

// GetCart handles GET /billing/cart
func (h *BillingHandler) GetCart(c *gin.Context) {
	response.OK(c, "Cart retrieved", response.NewCartResponse(h.billingService.Cart()))
}

// SetBudget handles POST /billing/budget
func (h *BillingHandler) SetBudget(c *gin.Context) {
	var req request.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.billingService.SetBudget(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget set", response.NewCartResponse(view))
}

// IncreaseBudget handles POST /billing/budget/increase
func (h *BillingHandler) IncreaseBudget(c *gin.Context) {
	var req request.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.billingService.IncreaseBudget(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget increased", response.NewCartResponse(view))
}

// ClearBudget handles DELETE /billing/budget
func (h *BillingHandler) ClearBudget(c *gin.Context) {
	view, err := h.billingService.ClearBudget(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget cleared", response.NewCartResponse(view))
}

// Login handles POST /billing/session/login
func (h *BillingHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, found, err := h.billingService.LoginByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !found {
		// Unknown phone is not an error: the terminal switches to the
		// registration sub-flow.
		response.OK(c, "Registration required", &response.SessionResponse{Registered: false})
		return
	}

	response.OK(c, "Signed in", &response.SessionResponse{Customer: customer, Registered: true})
}

// Register handles POST /billing/session/register
func (h *BillingHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.billingService.RegisterCustomer(c.Request.Context(), req.Name, req.Phone, req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer registered", &response.SessionResponse{Customer: customer, Registered: true})
}

// Logout handles POST /billing/session/logout
func (h *BillingHandler) Logout(c *gin.Context) {
	h.billingService.Logout(c.Request.Context())
	response.OK(c, "Signed out", nil)
}

// GetSession handles GET /billing/session
func (h *BillingHandler) GetSession(c *gin.Context) {
	view := h.billingService.Cart()
	response.OK(c, "Session retrieved", &response.SessionResponse{
		Customer:   view.Customer,
		Registered: view.Customer != nil,
	})
}

// CompletePayment handles POST /billing/payment
func (h *BillingHandler) CompletePayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.billingService.CompletePayment(c.Request.Context(), enum.PaymentMethod(req.Method), req.CashTendered)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment completed", response.NewPaymentResponse(result))
}

// GetReceipt handles GET /billing/receipt
func (h *BillingHandler) GetReceipt(c *gin.Context) {
	txn, err := h.billingService.LastReceipt()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", txn)
}

// GetHistory handles GET /billing/history
func (h *BillingHandler) GetHistory(c *gin.Context) {
	txns, err := h.billingService.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "History retrieved", txns)
}

package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instabill/instabill-api/internal/config"
	domainRepo "github.com/instabill/instabill-api/internal/domain/repository"
	"github.com/instabill/instabill-api/internal/presentation/http/handler"
	"github.com/instabill/instabill-api/internal/presentation/http/middleware"
	"github.com/instabill/instabill-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Billing     *handler.BillingHandler
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Settings    *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Per-client rate limiter over the whole API surface
	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerBillingRoutes(v1, h, deps)
		registerAdminRoutes(v1, h, deps)
	}

	return router
}

// registerBillingRoutes wires the terminal-facing surface. The billing
// station itself is trusted hardware on the shop LAN, so these routes are
// not behind auth.
func registerBillingRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	billing := v1.Group("/billing")
	{
		// Scan and payment POSTs replay on a re-sent Idempotency-Key.
		billing.POST("/scan", idem, h.Billing.Scan)
		billing.POST("/payment", idem, h.Billing.CompletePayment)

		billing.GET("/cart", h.Billing.GetCart)
		billing.POST("/cart/items", h.Billing.AddManualItem)
		billing.PATCH("/cart/items/:id", h.Billing.UpdateQuantity)
		billing.DELETE("/cart/items/:id", h.Billing.RemoveItem)
		billing.POST("/cart/items/:id/edit", h.Billing.EditItem)

		billing.POST("/budget", h.Billing.SetBudget)
		billing.POST("/budget/increase", h.Billing.IncreaseBudget)
		billing.DELETE("/budget", h.Billing.ClearBudget)

		billing.GET("/session", h.Billing.GetSession)
		billing.POST("/session/login", h.Billing.Login)
		billing.POST("/session/register", h.Billing.Register)
		billing.POST("/session/logout", h.Billing.Logout)

		billing.GET("/receipt", h.Billing.GetReceipt)
		billing.GET("/history", h.Billing.GetHistory)
	}
}

func registerAdminRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := v1.Group("/admin")

	admin.POST("/login", h.Auth.Login)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware(deps.JWTManager))
	{
		products := protected.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.GET("/:id/history", h.Customer.History)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", h.Transaction.List)
			transactions.GET("/export.csv", h.Transaction.ExportCSV)
			transactions.GET("/:id", h.Transaction.Get)
			transactions.DELETE("", h.Transaction.Clear)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/store", h.Settings.GetStoreProfile)
			settings.PUT("/store", h.Settings.UpdateStoreProfile)
			settings.GET("/printer", h.Settings.GetPrinterStatus)
		}
	}
}

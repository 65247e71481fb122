package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/handlers"
	"github.com/souqsyria/backend/internal/middleware"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Kyc          *handlers.KycHandler
	Refund       *handlers.RefundHandler
	Catalog      *handlers.CatalogHandler
	Membership   *handlers.MembershipHandler
	Governorate  *handlers.GovernorateHandler
	Notification *handlers.NotificationHandler
	Order        *handlers.OrderHandler
	StaffAuth    *handlers.StaffAuthHandler
}

// SetupRouter builds the gin engine with all middleware and routes
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetEnvironment(cfg.Environment)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestID())

	rateLimiter := middleware.NewRateLimiter(20, 40)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public storefront and reference data
	public := router.Group("/api")
	{
		public.GET("/governorates", h.Governorate.List)
		public.GET("/catalog/categories", h.Catalog.ListCategories)
		public.GET("/catalog/products", h.Catalog.ListProducts)
		public.GET("/catalog/products/:slug", h.Catalog.GetProduct)
		public.GET("/memberships", h.Membership.ListPlans)
	}

	// staff login is public but rate limited like everything else
	router.POST("/api/admin/auth/login", h.StaffAuth.Login)

	// authenticated marketplace users
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg.JWT))
	{
		authed.POST("/kyc/submit", h.Kyc.Submit)
		authed.GET("/kyc/status", h.Kyc.Status)
		authed.GET("/kyc/documents/:id/logs", h.Kyc.Logs)

		authed.POST("/refunds", h.Refund.Initiate)
		authed.GET("/orders", h.Order.List)
		authed.GET("/orders/:id", h.Order.Get)
		authed.GET("/orders/:id/refund", h.Refund.StatusByOrder)

		authed.POST("/memberships/enroll", h.Membership.Enroll)
		authed.GET("/memberships/current", h.Membership.Current)

		authed.GET("/notifications", h.Notification.List)
		authed.PUT("/notifications/:id/read", h.Notification.MarkRead)

		authed.POST("/vendor/products", h.Catalog.CreateProduct)
		authed.DELETE("/vendor/products/:id", h.Catalog.DeactivateProduct)
	}

	// back-office admin surface
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT), middleware.AdminMiddleware())
	{
		admin.GET("/kyc/pending", h.Kyc.Pending)
		admin.GET("/kyc/:id", h.Kyc.Get)
		admin.PUT("/kyc/approve/:id", h.Kyc.Review)
		admin.PUT("/kyc/reject/:id", h.Kyc.Reject)
		admin.PUT("/kyc/under-review/:id", h.Kyc.StartReview)

		admin.PUT("/refunds/:id/review", h.Refund.Review)

		admin.POST("/catalog/categories", h.Catalog.CreateCategory)
	}

	return router
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/server/handlers"
	"github.com/mahameru/inventory/internal/server/middleware"
	"github.com/mahameru/inventory/internal/service/auth"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Materials    *handlers.MaterialHandler
	Transactions *handlers.TransactionHandler
	StorageCosts *handlers.StorageCostHandler
	Reports      *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, authSvc *auth.Service, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authSvc))

	manage := middleware.RequireRoles(models.RoleOwner, models.RoleWarehouseAdmin)

	authed.GET("/materials", h.Materials.List)
	authed.POST("/materials", manage, h.Materials.Create)
	authed.PUT("/materials/:id", manage, h.Materials.Update)
	authed.DELETE("/materials/:id", manage, h.Materials.Delete)
	authed.GET("/materials/:id/metrics", h.Materials.Metrics)

	authed.GET("/transactions/receipts", h.Transactions.ListReceipts)
	authed.POST("/transactions/receipts", manage, h.Transactions.CreateReceipt)
	authed.GET("/transactions/issuances", h.Transactions.ListIssuances)
	// Production staff record their own issuances, so no extra role gate.
	authed.POST("/transactions/issuances", h.Transactions.CreateIssuance)

	authed.GET("/storage-costs", h.StorageCosts.List)
	authed.POST("/storage-costs", manage, h.StorageCosts.Create)
	authed.PUT("/storage-costs/:id", manage, h.StorageCosts.Update)
	authed.DELETE("/storage-costs/:id", manage, h.StorageCosts.Delete)

	authed.GET("/dashboard", h.Reports.Dashboard)
	authed.GET("/reports/stock.csv", manage, h.Reports.StockCSV)
	authed.GET("/reports/receipts.csv", manage, h.Reports.ReceiptsCSV)
	authed.GET("/reports/issuances.csv", manage, h.Reports.IssuancesCSV)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

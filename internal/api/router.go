package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qshala/reimbursement-api/internal/config"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h *Handler, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	router.GET("/", h.Root)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "reimbursement-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/process-invoice/", h.ProcessInvoice)
		api.POST("/create-reimbursement/", h.CreateReimbursement)
		api.GET("/list-models/", h.ListModels)
	}

	// The local backend serves its public directory straight from this
	// process; CDN backends host their own URLs.
	if cfg.Storage.Backend == "local" {
		router.Static("/invoices", cfg.Storage.Local.Dir)
	}

	return router
}

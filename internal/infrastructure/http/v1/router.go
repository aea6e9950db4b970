// Package v1 provides the web pages and JSON API of the shop.
package v1

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/infrastructure/http/v1/flash"
	"stockmaster/internal/infrastructure/http/v1/handlers"
	"stockmaster/internal/infrastructure/http/v1/middleware"
	"stockmaster/pkg/logger"
)

// RouterConfig holds everything the router wires into handlers.
type RouterConfig struct {
	Logger *logger.Logger

	// DB is pinged by the readiness probe
	DB handlers.Pinger

	Products handlers.ProductService
	Sales    handlers.SaleService
	Reports  handlers.ReportService

	Flash     *flash.Store
	Templates *template.Template

	// Currency label printed after amounts in messages
	Currency string

	// Release switches gin to release mode
	Release bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// order matters: ids first so every later log line carries them
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	router.SetHTMLTemplate(cfg.Templates)

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	base := handlers.NewBaseHandler(cfg.Flash, cfg.Currency)

	router.GET("/", handlers.NewDashboardHandler(base, cfg.Reports).Show)
	handlers.NewInventoryHandler(base, cfg.Products).RegisterRoutes(router)
	handlers.NewSaleHandler(base, cfg.Products, cfg.Sales).RegisterRoutes(router)

	api := router.Group("/api")
	handlers.NewProductAPIHandler(base, cfg.Products).RegisterRoutes(api.Group("/product"))

	return router
}

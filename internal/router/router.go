package router

import (
	"time"

	"github.com/Bojom/Warehouse/internal/config"
	"github.com/Bojom/Warehouse/internal/handler"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/middleware"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/internal/service"
	"github.com/Bojom/Warehouse/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimit, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	brandRepo := repository.NewBrandRepository(db)
	modelRepo := repository.NewDeviceModelRepository(db)
	partTypeRepo := repository.NewPartTypeRepository(db)
	colourRepo := repository.NewColourRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	partRepo := repository.NewPartRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dimensionSvc := service.NewDimensionService(brandRepo, modelRepo, partTypeRepo, colourRepo, cache)
	supplierSvc := service.NewSupplierService(supplierRepo, cache)
	partSvc := service.NewPartService(partRepo, movementRepo, dispatcher, cache)
	dashboardSvc := service.NewDashboardService(partRepo, movementRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	dimensionsH := handler.NewDimensionsHandler(dimensionSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	partsH := handler.NewPartsHandler(partSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	// Unversioned alias of the dimension family, the paths the frontend calls.
	registerDimensions(r.Group("/dimensions"), dimensionsH)

	v1 := r.Group("/v1")
	{
		registerDimensions(v1.Group("/dimensions"), dimensionsH)

		sup := v1.Group("/suppliers")
		{
			sup.GET("", suppliersH.List)
			sup.POST("", suppliersH.Create)
			sup.GET("/:id", suppliersH.GetByID)
			sup.PUT("/:id", suppliersH.Update)
			sup.DELETE("/:id", suppliersH.Delete)
		}

		parts := v1.Group("/parts")
		{
			parts.GET("", partsH.List)
			parts.POST("", partsH.Create)
			// Static segments before /:id
			parts.GET("/alerts", partsH.Alerts)
			parts.GET("/alerts/pdf", partsH.AlertsPDF)
			parts.GET("/export", partsH.Export)
			parts.POST("/import", partsH.Import)
			parts.GET("/:id", partsH.GetByID)
			parts.PUT("/:id", partsH.Update)
			parts.DELETE("/:id", partsH.Delete)
			parts.POST("/:id/stock", partsH.AdjustStock)
			parts.GET("/:id/movements", partsH.ListMovements)
		}

		dash := v1.Group("/dashboard")
		{
			dash.GET("/trend", dashboardH.Trend)
			dash.GET("/composition", dashboardH.Composition)
			dash.GET("/anomalies", dashboardH.Anomalies)
		}
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

func registerDimensions(dims *gin.RouterGroup, h *handler.DimensionsHandler) {
	dims.GET("/brands", h.ListBrands)
	dims.POST("/brands", h.CreateBrand)
	dims.PUT("/brands/:id", h.UpdateBrand)
	dims.DELETE("/brands/:id", h.DeleteBrand)

	dims.GET("/models", h.ListModels)
	dims.POST("/models", h.CreateModel)
	dims.PUT("/models/:id", h.UpdateModel)
	dims.DELETE("/models/:id", h.DeleteModel)

	dims.GET("/part-types", h.ListPartTypes)
	dims.POST("/part-types", h.CreatePartType)
	dims.PUT("/part-types/:id", h.UpdatePartType)
	dims.DELETE("/part-types/:id", h.DeletePartType)

	dims.GET("/colours", h.ListColours)
	dims.POST("/colours", h.CreateColour)
	dims.PUT("/colours/:id", h.UpdateColour)
	dims.DELETE("/colours/:id", h.DeleteColour)
}

// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"agrofleet/internal/domain"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/infrastructure/http/v1/dto"
	"agrofleet/internal/infrastructure/http/v1/handlers"
	"agrofleet/internal/infrastructure/http/v1/middleware"
	"agrofleet/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Mode is the gin mode (debug, release, test); empty means release
	Mode string

	// DB is pinged by the readiness probe; nil when records live in memory
	DB handlers.Pinger

	// Registry holds the filter sections
	Registry *registry.Registry

	// Services, one per record kind
	Machinery *domain.Service[*fleet.Machinery]
	Parts     *domain.Service[*fleet.Part]
	Suppliers *domain.Service[*fleet.Supplier]
	Repairs   *domain.Service[*fleet.Repair]
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	{
		registerFilterRoutes(v1, cfg)
		registerFleetRoutes(v1, cfg)
	}

	return router
}

// registerFilterRoutes registers the filter panel endpoints.
func registerFilterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.NewDefault()
	}

	suggesters := make(map[string]handlers.Suggester, 4)
	if cfg.Machinery != nil {
		suggesters[cfg.Machinery.Section()] = cfg.Machinery
	}
	if cfg.Parts != nil {
		suggesters[cfg.Parts.Section()] = cfg.Parts
	}
	if cfg.Suppliers != nil {
		suggesters[cfg.Suppliers.Section()] = cfg.Suppliers
	}
	if cfg.Repairs != nil {
		suggesters[cfg.Repairs.Section()] = cfg.Repairs
	}

	handler := handlers.NewFiltersHandler(handlers.NewBaseHandler(), reg, suggesters)
	filters := rg.Group("/filters")
	{
		filters.GET("", handler.Sections)
		filters.GET("/:section", handler.Fields)
		filters.GET("/:section/suggest", handler.Suggest)
	}
}

// registerFleetRoutes registers CRUD endpoints, one group per section.
func registerFleetRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	// --- MACHINERY ---
	if cfg.Machinery != nil {
		handler := handlers.NewFleetHandler(baseHandler, handlers.FleetHandlerConfig[*fleet.Machinery, dto.MachineryRequest, dto.UpdateMachineryRequest]{
			Service:      cfg.Machinery,
			MapCreateDTO: dto.MachineryRequest.ToEntity,
			MapUpdateDTO: dto.UpdateMachineryRequest.ApplyTo,
		})
		RegisterFleetRoutes(rg.Group("/"+cfg.Machinery.Section()), handler)
	}

	// --- PARTS ---
	if cfg.Parts != nil {
		handler := handlers.NewFleetHandler(baseHandler, handlers.FleetHandlerConfig[*fleet.Part, dto.PartRequest, dto.UpdatePartRequest]{
			Service:      cfg.Parts,
			MapCreateDTO: dto.PartRequest.ToEntity,
			MapUpdateDTO: dto.UpdatePartRequest.ApplyTo,
		})
		RegisterFleetRoutes(rg.Group("/"+cfg.Parts.Section()), handler)
	}

	// --- SUPPLIERS ---
	if cfg.Suppliers != nil {
		handler := handlers.NewFleetHandler(baseHandler, handlers.FleetHandlerConfig[*fleet.Supplier, dto.SupplierRequest, dto.UpdateSupplierRequest]{
			Service:      cfg.Suppliers,
			MapCreateDTO: dto.SupplierRequest.ToEntity,
			MapUpdateDTO: dto.UpdateSupplierRequest.ApplyTo,
		})
		RegisterFleetRoutes(rg.Group("/"+cfg.Suppliers.Section()), handler)
	}

	// --- REPAIRS ---
	if cfg.Repairs != nil {
		handler := handlers.NewFleetHandler(baseHandler, handlers.FleetHandlerConfig[*fleet.Repair, dto.RepairRequest, dto.UpdateRepairRequest]{
			Service:      cfg.Repairs,
			MapCreateDTO: dto.RepairRequest.ToEntity,
			MapUpdateDTO: dto.UpdateRepairRequest.ApplyTo,
		})
		RegisterFleetRoutes(rg.Group("/"+cfg.Repairs.Section()), handler)
	}
}

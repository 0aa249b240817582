package v1

import (
	"github.com/gin-gonic/gin"
)

// FleetRouteHandler defines the interface for record handlers.
type FleetRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterFleetRoutes registers standard CRUD routes for a section.
//
// Usage:
//
//	handler := handlers.NewFleetHandler(baseHandler, cfg)
//	RegisterFleetRoutes(v1.Group("/maquinarias"), handler)
func RegisterFleetRoutes(group *gin.RouterGroup, handler FleetRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/domain"
	"agrofleet/internal/filters/state"
)

// FleetHandler provides generic HTTP handlers for one record kind.
type FleetHandler[T domain.Entity, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service *domain.Service[T]

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) T
	mapUpdateDTO func(dto UpdateDTO, existing T) T
}

// FleetHandlerConfig configures the fleet handler.
type FleetHandlerConfig[T domain.Entity, CreateDTO any, UpdateDTO any] struct {
	Service      *domain.Service[T]
	MapCreateDTO func(dto CreateDTO) T
	MapUpdateDTO func(dto UpdateDTO, existing T) T
}

// NewFleetHandler creates a new fleet handler.
func NewFleetHandler[T domain.Entity, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg FleetHandlerConfig[T, CreateDTO, UpdateDTO],
) *FleetHandler[T, CreateDTO, UpdateDTO] {
	return &FleetHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
	}
}

// List handles GET /{section} - list with committed panel filters and pagination.
//
// Query parameters:
//   - filters: committed filter snapshot as JSON, e.g. {"estado":"Operativa","anio":{"min":2015,"max":null}}
//   - search: free-text term; overrides the snapshot's search key when present
//   - limit, offset, orderBy ("nombre", "-fecha")
func (h *FleetHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	var committed state.Filters
	if raw := c.Query("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &committed); err != nil {
			h.Error(c, apperror.NewInvalidInput("filters", err))
			return
		}
	}
	if search, ok := c.GetQuery("search"); ok {
		committed.Search = search
	}

	page := domain.DefaultListFilter()
	page.Limit = h.ParseIntQuery(c, "limit", domain.DefaultLimit)
	page.Offset = h.ParseIntQuery(c, "offset", 0)
	page.OrderBy = c.Query("orderBy")

	result, err := h.service.ListCommitted(ctx, committed, page)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = item
	}
	h.Page(c, items, result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /{section}/:id - get single record.
func (h *FleetHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Create handles POST /{section} - create new record.
func (h *FleetHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreateDTO(req)
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity)
}

// Update handles PUT /{section}/:id - update existing record.
// The body carries the version read by the client; a stale version yields 409.
func (h *FleetHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.mapUpdateDTO(req, existing)
	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /{section}/:id.
func (h *FleetHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

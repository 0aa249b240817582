package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/infrastructure/http/v1/dto"
)

// Suggester computes autocomplete candidates for one section.
// domain.Service implements it.
type Suggester interface {
	Suggest(ctx context.Context, fieldKey, input string) ([]string, error)
}

// FiltersHandler exposes the filter registry and the suggestion engine.
type FiltersHandler struct {
	*BaseHandler
	registry   *registry.Registry
	suggesters map[string]Suggester
}

// NewFiltersHandler creates a filters handler; suggesters are keyed by section name.
func NewFiltersHandler(base *BaseHandler, reg *registry.Registry, suggesters map[string]Suggester) *FiltersHandler {
	return &FiltersHandler{
		BaseHandler: base,
		registry:    reg,
		suggesters:  suggesters,
	}
}

// Sections handles GET /filters.
func (h *FiltersHandler) Sections(c *gin.Context) {
	sections := h.registry.Sections()
	items := make([]dto.SectionResponse, len(sections))
	for i, s := range sections {
		items[i] = dto.FromSection(s)
	}
	h.OK(c, gin.H{"items": items})
}

// Fields handles GET /filters/:section.
func (h *FiltersHandler) Fields(c *gin.Context) {
	section := c.Param("section")
	h.OK(c, dto.FieldsResponse{
		Section: section,
		Fields:  h.registry.FieldsFor(section),
	})
}

// Suggest handles GET /filters/:section/suggest?field=&q=.
func (h *FiltersHandler) Suggest(c *gin.Context) {
	section := c.Param("section")
	field := c.Query("field")
	input := c.Query("q")

	s, ok := h.suggesters[section]
	if !ok {
		h.Error(c, apperror.NewNotFound("section", section))
		return
	}
	if field == "" {
		h.Error(c, apperror.NewValidation("field is required").WithDetail("param", "field"))
		return
	}

	suggestions, err := s.Suggest(c.Request.Context(), field, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuggestResponse{
		Field:       field,
		Input:       input,
		Suggestions: suggestions,
	})
}

// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"agrofleet/internal/filters/registry"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Filters ---

// SectionResponse describes one filterable list section.
type SectionResponse struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	SearchKeys []string `json:"searchKeys"`
	FieldCount int      `json:"fieldCount"`
}

// FromSection creates the response of a section.
func FromSection(s registry.SectionSpec) SectionResponse {
	return SectionResponse{
		Name:       s.Name,
		Label:      s.Label,
		SearchKeys: s.SearchKeys,
		FieldCount: len(s.Fields),
	}
}

// FieldsResponse lists the filter fields of a section.
// An unknown section has no fields.
type FieldsResponse struct {
	Section string               `json:"section"`
	Fields  []registry.FieldSpec `json:"fields"`
}

// SuggestResponse carries autocomplete candidates.
type SuggestResponse struct {
	Field       string   `json:"field"`
	Input       string   `json:"input"`
	Suggestions []string `json:"suggestions"`
}

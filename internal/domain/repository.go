// Package domain provides the repository contract and the generic service used
// by every fleet record type.
package domain

import (
	"context"

	"agrofleet/internal/core/id"
	"agrofleet/internal/domain/filter"
	"agrofleet/internal/domain/fleet"
)

// --- Filter & Pagination ---

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

// ListFilter contains filtering options for list operations.
type ListFilter struct {
	// Search is matched (case-insensitive contains) against the section's search keys
	Search string

	// Items are the conditions produced from committed panel filters
	Items []filter.Item

	// OrderBy specifies sorting by record key (e.g., "nombre", "-fecha")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit: DefaultLimit,
	}
}

// Normalize clamps pagination into the allowed window.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// Repository defines CRUD operations for one record kind.
type Repository[T fleet.Entity] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID
	GetByID(ctx context.Context, id id.ID) (T, error)

	// Update modifies existing entity (with optimistic locking on Version)
	Update(ctx context.Context, entity T) error

	// Delete removes the entity
	Delete(ctx context.Context, id id.ID) error

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
}

// Package entity holds the fields and contracts shared by every fleet record.
package entity

import (
	"context"
	"time"

	"agrofleet/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants only (no database access).
type Validatable interface {
	// Validate returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains the system fields of all fleet records.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with a generated ID and fresh timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the primary key.
func (b *Base) GetID() id.ID {
	return b.ID
}

// GetVersion returns the optimistic lock version.
func (b *Base) GetVersion() int {
	return b.Version
}

// Prepare fills the fields a new record needs before insert.
// An ID set by the caller is kept.
func (b *Base) Prepare(now time.Time) {
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	b.Version = 1
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *Base) SetVersion(v int) {
	b.Version = v
}

// Package memory keeps fleet records in process memory.
// It backs the demo browser and the service/handler tests.
package memory

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/id"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/filter"
	"agrofleet/internal/domain/fleet"
)

type versioned interface {
	GetVersion() int
	Touch(now time.Time)
}

// Repo is a goroutine-safe in-memory implementation of domain.Repository.
type Repo[T fleet.Entity] struct {
	mu         sync.RWMutex
	items      map[id.ID]T
	order      []id.ID
	kind       fleet.Kind
	searchKeys []string
}

var _ domain.Repository[*fleet.Machinery] = (*Repo[*fleet.Machinery])(nil)

// NewRepo creates an empty repository; searchKeys are the record keys scanned by List's Search.
func NewRepo[T fleet.Entity](kind fleet.Kind, searchKeys []string) *Repo[T] {
	return &Repo[T]{
		items:      make(map[id.ID]T),
		kind:       kind,
		searchKeys: append([]string(nil), searchKeys...),
	}
}

func (r *Repo[T]) Create(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entity.GetID()
	if _, exists := r.items[key]; exists {
		return apperror.NewDuplicate(string(r.kind), "id", key.String())
	}
	r.items[key] = clone(entity)
	r.order = append(r.order, key)
	return nil
}

func (r *Repo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[entityID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(string(r.kind), entityID.String())
	}
	return clone(e), nil
}

// Update stores entity when its Version matches the stored one, then bumps the version.
func (r *Repo[T]) Update(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entity.GetID()
	current, ok := r.items[key]
	if !ok {
		return apperror.NewNotFound(string(r.kind), key.String())
	}

	if v, ok := any(entity).(versioned); ok {
		if cv, ok := any(current).(versioned); ok && cv.GetVersion() != v.GetVersion() {
			return apperror.NewConcurrentModification(string(r.kind), key.String())
		}
		v.Touch(time.Now().UTC())
	}

	r.items[key] = clone(entity)
	return nil
}

func (r *Repo[T]) Delete(ctx context.Context, entityID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[entityID]; !ok {
		return apperror.NewNotFound(string(r.kind), entityID.String())
	}
	delete(r.items, entityID)
	r.order = slices.DeleteFunc(r.order, func(v id.ID) bool { return v == entityID })
	return nil
}

// List applies search, filter items, ordering and pagination in memory.
func (r *Repo[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	f = f.Normalize()

	r.mu.RLock()
	matched := make([]T, 0, len(r.order))
	for _, key := range r.order {
		e := r.items[key]
		rec := e.Record()
		if !filter.MatchSearch(rec, r.searchKeys, f.Search) || !filter.Match(rec, f.Items) {
			continue
		}
		matched = append(matched, clone(e))
	}
	r.mu.RUnlock()

	if f.OrderBy != "" {
		field, desc := strings.TrimPrefix(f.OrderBy, "-"), strings.HasPrefix(f.OrderBy, "-")
		slices.SortStableFunc(matched, func(a, b T) int {
			c := filter.Compare(a.Record()[field], b.Record()[field])
			if desc {
				return -c
			}
			return c
		})
	}

	total := len(matched)
	start := min(f.Offset, total)
	end := min(start+f.Limit, total)

	return domain.ListResult[T]{
		Items:      matched[start:end],
		TotalCount: int64(total),
		Limit:      f.Limit,
		Offset:     f.Offset,
	}, nil
}

// Len returns the number of stored records.
func (r *Repo[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// clone copies the struct behind a pointer entity so callers never share storage.
func clone[T any](v T) T {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return v
	}
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	return cp.Interface().(T)
}

package domain

import (
	"context"
	"fmt"
	"time"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/id"
	"agrofleet/internal/core/tx"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/query"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
	"agrofleet/internal/filters/suggest"
	"agrofleet/pkg/logger"
)

// Entity is what the service needs from a record on top of fleet.Entity.
type Entity interface {
	fleet.Entity

	// Prepare assigns ID, version and timestamps before insert
	Prepare(now time.Time)
}

// Service provides business logic for one record kind.
type Service[T Entity] struct {
	repo      Repository[T]
	txManager tx.Manager // Optional - if nil, repository calls run directly
	registry  *registry.Registry
	suggest   suggest.Engine
	hooks     *HookRegistry[T]
	kind      fleet.Kind
	now       func() time.Time
}

// ServiceConfig configures the service.
type ServiceConfig[T Entity] struct {
	Repo         Repository[T]
	TxManager    tx.Manager
	Registry     *registry.Registry
	Kind         fleet.Kind
	SuggestLimit int
}

// NewService creates a new service.
func NewService[T Entity](cfg ServiceConfig[T]) *Service[T] {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.NewDefault()
	}
	return &Service[T]{
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		registry:  reg,
		suggest:   suggest.New(cfg.SuggestLimit),
		hooks:     NewHookRegistry[T](),
		kind:      cfg.Kind,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Kind returns the record kind served.
func (s *Service[T]) Kind() fleet.Kind {
	return s.kind
}

// Section returns the filter section of the record kind.
func (s *Service[T]) Section() string {
	return s.kind.Section()
}

// Fields returns the filter fields of the section.
func (s *Service[T]) Fields() []registry.FieldSpec {
	return s.registry.FieldsFor(s.Section())
}

func (s *Service[T]) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.RunInTransaction(ctx, fn)
}

func (s *Service[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *Service[T]) normalizeGetErr(err error, entityID id.ID) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(string(s.kind), entityID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", string(s.kind)).WithDetail("id", entityID.String())
}

// Create validates and inserts a new record.
func (s *Service[T]) Create(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	entity.Prepare(s.now())

	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeCreate, entity); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.kind, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Entity is already stored; a failing after-hook is only reported.
	if err := s.hooks.Run(ctx, AfterCreate, entity); err != nil {
		logger.Warn(ctx, "after-create hook failed", "kind", s.kind, "id", entity.GetID(), "error", err)
	}

	return nil
}

// GetByID retrieves a record by ID.
func (s *Service[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID)
	}
	return entity, nil
}

// Update validates and stores a modified record.
func (s *Service[T]) Update(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeUpdate, entity); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.kind, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, entity); err != nil {
		logger.Warn(ctx, "after-update hook failed", "kind", s.kind, "id", entity.GetID(), "error", err)
	}

	return nil
}

// Delete removes a record.
func (s *Service[T]) Delete(ctx context.Context, entityID id.ID) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		entity, err := s.repo.GetByID(ctx, entityID)
		if err != nil {
			return s.normalizeGetErr(err, entityID)
		}
		if err := s.hooks.Run(ctx, BeforeDelete, entity); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.kind, err)
		}
		return nil
	})
}

// List retrieves records with filtering and pagination.
func (s *Service[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter.Normalize())
}

// ListCommitted lists records matching a committed panel snapshot.
// Search and Items of page are replaced by the snapshot's content.
func (s *Service[T]) ListCommitted(ctx context.Context, committed state.Filters, page ListFilter) (ListResult[T], error) {
	page.Search = committed.Search
	page.Items = query.Translate(s.Fields(), committed)
	return s.List(ctx, page)
}

// Records returns up to MaxLimit records flattened for in-memory filtering.
func (s *Service[T]) Records(ctx context.Context) ([]registry.Record, error) {
	res, err := s.repo.List(ctx, ListFilter{Limit: MaxLimit})
	if err != nil {
		return nil, err
	}
	return fleet.Records(res.Items), nil
}

// Suggest returns autocomplete candidates of a text-suggest field.
func (s *Service[T]) Suggest(ctx context.Context, fieldKey, input string) ([]string, error) {
	field, ok := s.registry.Field(s.Section(), fieldKey)
	if !ok {
		return nil, apperror.NewInvalidInput("field", fmt.Errorf("unknown field %q", fieldKey))
	}
	if field.Kind != registry.KindTextSuggest {
		return nil, apperror.NewInvalidInput("field", fmt.Errorf("field %q does not support suggestions", fieldKey))
	}

	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return s.suggest.Suggest(field, input, records), nil
}

// Package fleet_repo provides PostgreSQL repositories for fleet records.
package fleet_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/id"
	"agrofleet/internal/core/types"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/filter"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/infrastructure/storage/postgres"
)

var tracer = otel.Tracer("agrofleet/fleet_repo")

// QuerierProvider hands out the transaction in ctx or the pool.
type QuerierProvider interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// versioned is implemented by every entity through entity.Base.
type versioned interface {
	GetVersion() int
	Touch(now time.Time)
}

// BaseRepo provides CRUD and filtered listing for one table.
// Embed this in specific repositories.
type BaseRepo[T fleet.Entity] struct {
	db           QuerierProvider
	tableName    string
	selectCols   []string
	columnsByKey map[string]string
	searchCols   []string
	defaultOrder string
	newFn        func() T
}

// NewBaseRepo creates a repository for table. searchKeys and defaultOrder use record keys.
func NewBaseRepo[T fleet.Entity](
	db QuerierProvider,
	tableName string,
	selectCols []string,
	columnsByKey map[string]string,
	searchKeys []string,
	defaultOrder string,
	newFn func() T,
) *BaseRepo[T] {
	r := &BaseRepo[T]{
		db:           db,
		tableName:    tableName,
		selectCols:   selectCols,
		columnsByKey: columnsByKey,
		newFn:        newFn,
	}
	for _, key := range searchKeys {
		if col, ok := columnsByKey[key]; ok {
			r.searchCols = append(r.searchCols, col)
		}
	}
	if order, err := r.parseOrderBy(defaultOrder); err == nil {
		r.defaultOrder = order
	} else {
		r.defaultOrder = "created_at DESC"
	}
	return r
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseRepo[T]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, r.tableName+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.sql.table", r.tableName),
			attribute.String("db.operation", op),
		))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, entity T) (err error) {
	ctx, span := r.startSpan(ctx, "insert")
	defer func() { endSpan(span, err) }()

	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().Insert(r.tableName).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err = r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(fmt.Errorf("insert %s: %w", r.tableName, err), r.tableName)
	}
	return nil
}

// Update modifies an existing entity with optimistic locking.
// On success the entity's version and updated_at follow the stored row.
func (r *BaseRepo[T]) Update(ctx context.Context, entity T) (err error) {
	ctx, span := r.startSpan(ctx, "update")
	defer func() { endSpan(span, err) }()

	data := postgres.StructToMap(entity)
	v, ok := any(entity).(versioned)
	if !ok {
		return fmt.Errorf("entity %T has no version", entity)
	}
	entityID := entity.GetID()

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "version", "created_at", "updated_at":
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": v.GetVersion()}).
		Suffix("RETURNING updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	var updatedAt time.Time
	err = r.db.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewConcurrentModification(r.tableName, entityID.String())
	}
	if err != nil {
		return postgres.TranslateError(fmt.Errorf("update %s: %w", r.tableName, err), r.tableName)
	}

	v.Touch(updatedAt)
	return nil
}

// baseSelect creates a SELECT builder.
func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (entity T, err error) {
	ctx, span := r.startSpan(ctx, "get")
	defer func() { endSpan(span, err) }()

	entity = r.newFn()

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1).
		ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err = pgxscan.Get(ctx, r.db.GetQuerier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}
	return entity, nil
}

// Delete performs physical removal from the database.
func (r *BaseRepo[T]) Delete(ctx context.Context, entityID id.ID) (err error) {
	ctx, span := r.startSpan(ctx, "delete")
	defer func() { endSpan(span, err) }()

	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(fmt.Errorf("delete %s: %w", r.tableName, err), r.tableName)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}
	return nil
}

// List retrieves entities with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, f domain.ListFilter) (result domain.ListResult[T], err error) {
	ctx, span := r.startSpan(ctx, "list")
	defer func() { endSpan(span, err) }()

	f = f.Normalize()
	result = domain.ListResult[T]{Limit: f.Limit, Offset: f.Offset}

	q, err := r.filteredSelect(f)
	if err != nil {
		return result, err
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.db.GetQuerier(ctx)
	if err = querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	sql, args, err := r.pagedSelect(q, f)
	if err != nil {
		return result, err
	}

	if err = pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	span.SetAttributes(attribute.Int64("db.rows", result.TotalCount))
	return result, nil
}

// filteredSelect applies search and filter items.
func (r *BaseRepo[T]) filteredSelect(f domain.ListFilter) (squirrel.SelectBuilder, error) {
	q := r.baseSelect()

	if term := strings.TrimSpace(f.Search); term != "" && len(r.searchCols) > 0 {
		pattern := containsPattern(term)
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	return r.applyFilters(q, f.Items)
}

func (r *BaseRepo[T]) pagedSelect(q squirrel.SelectBuilder, f domain.ListFilter) (string, []any, error) {
	orderBy := r.defaultOrder
	if f.OrderBy != "" {
		var err error
		if orderBy, err = r.parseOrderBy(f.OrderBy); err != nil {
			return "", nil, err
		}
	}

	q = q.OrderBy(orderBy, "id").Limit(uint64(f.Limit))
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return sql, args, nil
}

// applyFilters turns filter items into WHERE clauses.
// Item fields are record keys; only keys mapped to a column are accepted.
func (r *BaseRepo[T]) applyFilters(q squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		col, ok := r.columnsByKey[item.Field]
		if !ok {
			return q, apperror.NewInvalidInput("filters", fmt.Errorf("unknown filter field %q", item.Field))
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{col: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{col: item.Value})
		case filter.Less, filter.Greater, filter.LessOrEqual, filter.GreaterOrEqual:
			q = q.Where(comparison(col, item.Operator, item.Value))
		case filter.InList:
			q = q.Where(squirrel.Eq{col: item.Value})
		case filter.NotInList:
			q = q.Where(squirrel.NotEq{col: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{col: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{col: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{col: containsPattern(fmt.Sprint(item.Value))})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{col: containsPattern(fmt.Sprint(item.Value))})
		default:
			return q, apperror.NewInvalidInput("filters", fmt.Errorf("unsupported operator %q", item.Operator))
		}
	}
	return q, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column; \ is the
// default LIKE escape character.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

var sqlOperators = map[filter.ComparisonType]string{
	filter.Less:           "<",
	filter.Greater:        ">",
	filter.LessOrEqual:    "<=",
	filter.GreaterOrEqual: ">=",
}

// comparison casts the parameter so range bounds (float64) and ISO date strings
// compare against integer, numeric and date columns alike.
func comparison(col string, op filter.ComparisonType, value any) squirrel.Sqlizer {
	cast := ""
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		cast = "::numeric"
	case string:
		if _, err := types.ParseDate(v); err == nil {
			cast = "::date"
		}
	}
	return squirrel.Expr(fmt.Sprintf("%s %s ?%s", col, sqlOperators[op], cast), value)
}

// parseOrderBy accepts "key" or "-key" where key is a record key.
func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	col, ok := r.columnsByKey[field]
	if field == "" || !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	return col + " " + direction, nil
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/id"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/filter"
	"agrofleet/internal/domain/fleet"
)

func machine(nombre, marca string, anio int) *fleet.Machinery {
	m := fleet.NewMachinery()
	m.Nombre, m.Tipo, m.Marca, m.Anio = nombre, "Tractor", marca, anio
	return m
}

func newRepo(t *testing.T, items ...*fleet.Machinery) *Repo[*fleet.Machinery] {
	t.Helper()
	r := NewRepo[*fleet.Machinery](fleet.KindMachinery, []string{"nombre", "marca", "modelo"})
	for _, m := range items {
		require.NoError(t, r.Create(context.Background(), m))
	}
	return r
}

func TestRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	m := machine("T1", "John Deere", 2015)
	r := newRepo(t, m)

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Nombre)

	got.Nombre = "changed"
	again, _ := r.GetByID(ctx, m.ID)
	assert.Equal(t, "T1", again.Nombre, "stored record must not be shared")

	assert.True(t, apperror.IsAppError(r.Create(ctx, m)))

	require.NoError(t, r.Delete(ctx, m.ID))
	_, err = r.GetByID(ctx, m.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(r.Delete(ctx, id.New())))
}

func TestRepo_UpdateOptimisticLock(t *testing.T) {
	ctx := context.Background()
	m := machine("T1", "Valtra", 2019)
	r := newRepo(t, m)

	first, _ := r.GetByID(ctx, m.ID)
	second, _ := r.GetByID(ctx, m.ID)

	first.Horas = 1200
	require.NoError(t, r.Update(ctx, first))
	assert.Equal(t, 2, first.Version)

	second.Horas = 900
	err := r.Update(ctx, second)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConcurrentModification, appErr.Code)

	stored, _ := r.GetByID(ctx, m.ID)
	assert.Equal(t, 1200, stored.Horas)
}

func TestRepo_ListFilters(t *testing.T) {
	r := newRepo(t,
		machine("Tractor A", "John Deere", 2012),
		machine("Tractor B", "Case IH", 2018),
		machine("Tractor C", "John Deere", 2021),
	)

	res, err := r.List(context.Background(), domain.ListFilter{
		Search:  "deere",
		Items:   []filter.Item{{Field: "anio", Operator: filter.GreaterOrEqual, Value: 2015.0}},
		OrderBy: "-anio",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Tractor C", res.Items[0].Nombre)
	assert.EqualValues(t, 1, res.TotalCount)

	res, err = r.List(context.Background(), domain.ListFilter{OrderBy: "-anio", Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.TotalCount)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Tractor B", res.Items[0].Nombre)
	assert.Equal(t, "Tractor A", res.Items[1].Nombre)

	res, _ = r.List(context.Background(), domain.ListFilter{Offset: 10})
	assert.Empty(t, res.Items)
}

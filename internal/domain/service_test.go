package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/id"
	"agrofleet/internal/core/types"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
	"agrofleet/internal/infrastructure/storage/memory"
)

type countingTx struct{ calls int }

func (c *countingTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func newMachineryService(t *testing.T) (*domain.Service[*fleet.Machinery], *countingTx) {
	t.Helper()
	reg := registry.NewDefault()
	section, _ := reg.Section(registry.SectionMaquinarias)
	txm := &countingTx{}
	svc := domain.NewService(domain.ServiceConfig[*fleet.Machinery]{
		Repo:      memory.NewRepo[*fleet.Machinery](fleet.KindMachinery, section.SearchKeys),
		TxManager: txm,
		Registry:  reg,
		Kind:      fleet.KindMachinery,
	})
	return svc, txm
}

func seedMachine(t *testing.T, svc *domain.Service[*fleet.Machinery], nombre, marca, estado string, anio int) *fleet.Machinery {
	t.Helper()
	m := &fleet.Machinery{Nombre: nombre, Tipo: "Tractor", Marca: marca, Estado: estado, Anio: anio}
	require.NoError(t, svc.Create(context.Background(), m))
	return m
}

func TestService_CreateAssignsSystemFields(t *testing.T) {
	svc, txm := newMachineryService(t)

	m := seedMachine(t, svc, "Tractor 1", "John Deere", "Operativa", 2016)

	assert.False(t, id.IsNil(m.ID))
	assert.Equal(t, 1, m.Version)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, 1, txm.calls)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	svc, txm := newMachineryService(t)

	err := svc.Create(context.Background(), &fleet.Machinery{Tipo: "Tractor", Estado: "Operativa"})
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, txm.calls)
}

func TestService_GetNotFound(t *testing.T) {
	svc, _ := newMachineryService(t)

	_, err := svc.GetByID(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 404, apperror.GetHTTPStatus(err))
}

func TestService_ListCommitted(t *testing.T) {
	svc, _ := newMachineryService(t)
	seedMachine(t, svc, "Tractor 1", "John Deere", "Operativa", 2012)
	seedMachine(t, svc, "Tractor 2", "John Deere", "En reparación", 2020)
	seedMachine(t, svc, "Tractor 3", "Valtra", "Operativa", 2021)

	min := 2015.0
	committed := state.Filters{
		Values: map[string]state.Value{
			"estado": state.Text("Operativa"),
			"anio":   state.RangeOf(&min, nil),
			"rubro":  state.Text("ignored"),
		},
	}

	res, err := svc.ListCommitted(context.Background(), committed, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Tractor 3", res.Items[0].Nombre)

	res, err = svc.ListCommitted(context.Background(), state.Filters{Search: "deere"}, domain.ListFilter{OrderBy: "nombre"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Tractor 1", res.Items[0].Nombre)
}

func TestService_Suggest(t *testing.T) {
	svc, _ := newMachineryService(t)
	seedMachine(t, svc, "T1", "John Deere", "Operativa", 0)
	seedMachine(t, svc, "T2", "Case IH", "Operativa", 0)
	seedMachine(t, svc, "T3", "Johnson", "Operativa", 0)

	got, err := svc.Suggest(context.Background(), "marca", "John")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Deere", "Johnson"}, got)

	_, err = svc.Suggest(context.Background(), "estado", "Op")
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))

	_, err = svc.Suggest(context.Background(), "nope", "x")
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}

func TestService_Hooks(t *testing.T) {
	svc, _ := newMachineryService(t)

	var seen []string
	svc.Hooks().On(domain.AfterCreate, func(ctx context.Context, m *fleet.Machinery) error {
		seen = append(seen, m.Nombre)
		return errors.New("ignored after the fact")
	})
	svc.Hooks().On(domain.BeforeDelete, func(ctx context.Context, m *fleet.Machinery) error {
		return apperror.NewBusinessRule("IN_USE", "machine has open repairs")
	})

	m := seedMachine(t, svc, "Cosechadora", "Claas", "Operativa", 2019)
	assert.Equal(t, []string{"Cosechadora"}, seen)

	err := svc.Delete(context.Background(), m.ID)
	assert.Equal(t, 422, apperror.GetHTTPStatus(err))
}

type inTxKey struct{}

// markingTx tags the context it hands to the unit of work.
type markingTx struct{ rollbacks int }

func (m *markingTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(context.WithValue(ctx, inTxKey{}, true))
	if err != nil {
		m.rollbacks++
	}
	return err
}

func TestService_BeforeHooksRunInsideTransaction(t *testing.T) {
	reg := registry.NewDefault()
	section, _ := reg.Section(registry.SectionMaquinarias)
	repo := memory.NewRepo[*fleet.Machinery](fleet.KindMachinery, section.SearchKeys)
	txm := &markingTx{}
	svc := domain.NewService(domain.ServiceConfig[*fleet.Machinery]{
		Repo:      repo,
		TxManager: txm,
		Registry:  reg,
		Kind:      fleet.KindMachinery,
	})

	var seen []domain.HookEvent
	for _, ev := range []domain.HookEvent{domain.BeforeCreate, domain.BeforeUpdate, domain.BeforeDelete} {
		svc.Hooks().On(ev, func(ctx context.Context, m *fleet.Machinery) error {
			assert.Equal(t, true, ctx.Value(inTxKey{}), ev)
			seen = append(seen, ev)
			if m.Nombre == "Rechazada" {
				return apperror.NewBusinessRule("REJECTED", "not allowed")
			}
			return nil
		})
	}

	ctx := context.Background()
	m := seedMachine(t, svc, "Tractor 1", "John Deere", "Operativa", 2016)
	m.Horas = 1200
	require.NoError(t, svc.Update(ctx, m))
	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []domain.HookEvent{domain.BeforeCreate, domain.BeforeUpdate, domain.BeforeDelete}, seen)

	err := svc.Create(ctx, &fleet.Machinery{Nombre: "Rechazada", Tipo: "Tractor", Marca: "Valtra", Estado: "Operativa", Anio: 2020})
	assert.Equal(t, 422, apperror.GetHTTPStatus(err))
	assert.Equal(t, 1, txm.rollbacks)
	assert.Zero(t, repo.Len())
}

func TestService_UpdateBumpsVersion(t *testing.T) {
	svc, _ := newMachineryService(t)
	m := seedMachine(t, svc, "Pulverizadora", "Metalfor", "Operativa", 2017)

	m.Estado = "En reparación"
	require.NoError(t, svc.Update(context.Background(), m))
	assert.Equal(t, 2, m.Version)

	stale := *m
	stale.Version = 1
	err := svc.Update(context.Background(), &stale)
	assert.Equal(t, 409, apperror.GetHTTPStatus(err))
}

func TestService_RecordsForParts(t *testing.T) {
	reg := registry.NewDefault()
	svc := domain.NewService(domain.ServiceConfig[*fleet.Part]{
		Repo:     memory.NewRepo[*fleet.Part](fleet.KindPart, nil),
		Registry: reg,
		Kind:     fleet.KindPart,
	})
	p := &fleet.Part{Nombre: "Filtro", Categoria: "Filtros", Precio: types.MustMoney("12.5")}
	require.NoError(t, svc.Create(context.Background(), p))

	recs, err := svc.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 12.5, recs[0]["precio"])
}

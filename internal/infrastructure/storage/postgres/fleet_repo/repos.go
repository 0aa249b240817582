package fleet_repo

import (
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/infrastructure/storage/postgres"
)

// Compile-time checks.
var (
	_ domain.Repository[*fleet.Machinery] = (*MachineryRepo)(nil)
	_ domain.Repository[*fleet.Part]      = (*PartRepo)(nil)
	_ domain.Repository[*fleet.Supplier]  = (*SupplierRepo)(nil)
	_ domain.Repository[*fleet.Repair]    = (*RepairRepo)(nil)
)

func newRepo[T fleet.Entity, S any](db QuerierProvider, reg *registry.Registry, table string, kind fleet.Kind, defaultOrder string, newFn func() T) *BaseRepo[T] {
	section, _ := reg.Section(kind.Section())
	return NewBaseRepo[T](
		db,
		table,
		postgres.ExtractDBColumns[S](),
		postgres.ColumnsByKey[S](),
		section.SearchKeys,
		defaultOrder,
		newFn,
	)
}

// MachineryRepo stores machinery.
type MachineryRepo struct {
	*BaseRepo[*fleet.Machinery]
}

func NewMachineryRepo(db QuerierProvider, reg *registry.Registry) *MachineryRepo {
	return &MachineryRepo{
		BaseRepo: newRepo[*fleet.Machinery, fleet.Machinery](db, reg, postgres.TableMachinery, fleet.KindMachinery, "nombre",
			func() *fleet.Machinery { return &fleet.Machinery{} }),
	}
}

// PartRepo stores spare parts.
type PartRepo struct {
	*BaseRepo[*fleet.Part]
}

func NewPartRepo(db QuerierProvider, reg *registry.Registry) *PartRepo {
	return &PartRepo{
		BaseRepo: newRepo[*fleet.Part, fleet.Part](db, reg, postgres.TableParts, fleet.KindPart, "nombre",
			func() *fleet.Part { return &fleet.Part{} }),
	}
}

// SupplierRepo stores suppliers.
type SupplierRepo struct {
	*BaseRepo[*fleet.Supplier]
}

func NewSupplierRepo(db QuerierProvider, reg *registry.Registry) *SupplierRepo {
	return &SupplierRepo{
		BaseRepo: newRepo[*fleet.Supplier, fleet.Supplier](db, reg, postgres.TableSuppliers, fleet.KindSupplier, "nombre",
			func() *fleet.Supplier { return &fleet.Supplier{} }),
	}
}

// RepairRepo stores repairs, newest first by default.
type RepairRepo struct {
	*BaseRepo[*fleet.Repair]
}

func NewRepairRepo(db QuerierProvider, reg *registry.Registry) *RepairRepo {
	return &RepairRepo{
		BaseRepo: newRepo[*fleet.Repair, fleet.Repair](db, reg, postgres.TableRepairs, fleet.KindRepair, "-fecha",
			func() *fleet.Repair { return &fleet.Repair{} }),
	}
}

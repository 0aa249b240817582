package fleet

import (
	"context"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/entity"
	"agrofleet/internal/core/id"
	"agrofleet/internal/core/types"
	"agrofleet/internal/filters/registry"
)

// Repair is a maintenance job done on a machine.
type Repair struct {
	entity.Base

	// MaquinariaID links the machine when it is registered in the fleet.
	MaquinariaID *id.ID `db:"maquinaria_id" json:"maquinariaId,omitempty"`

	// Maquinaria is the machine name as shown in lists.
	Maquinaria  string      `db:"maquinaria" json:"maquinaria"`
	Tipo        string      `db:"tipo" json:"tipo"`
	Estado      string      `db:"estado" json:"estado"`
	Descripcion string      `db:"descripcion" json:"descripcion"`
	Taller      string      `db:"taller" json:"taller"`
	Fecha       types.Date  `db:"fecha" json:"fecha"`
	Costo       types.Money `db:"costo" json:"costo"`
}

// NewRepair creates a pending corrective repair with a fresh ID.
func NewRepair() *Repair {
	return &Repair{
		Base:   entity.NewBase(),
		Tipo:   "Correctiva",
		Estado: "Pendiente",
		Costo:  types.Zero(),
	}
}

func (r *Repair) Kind() Kind { return KindRepair }

func (r *Repair) Title() string {
	if r.Maquinaria == "" {
		return r.Descripcion
	}
	return r.Maquinaria + ": " + r.Descripcion
}

// Validate implements entity.Validatable interface.
func (r *Repair) Validate(ctx context.Context) error {
	if err := firstError(
		required("maquinaria", r.Maquinaria),
		required("descripcion", r.Descripcion),
		oneOf("tipo", r.Tipo, registry.RepairTypes),
		oneOf("estado", r.Estado, registry.RepairStates),
		notNegativeMoney("costo", r.Costo),
	); err != nil {
		return err
	}

	if r.Fecha.IsZero() {
		return apperror.NewValidation("fecha is required").
			WithDetail("field", "fecha")
	}

	return nil
}

func (r *Repair) Record() registry.Record {
	rec := registry.Record{
		"id":          r.ID.String(),
		"maquinaria":  r.Maquinaria,
		"tipo":        r.Tipo,
		"estado":      r.Estado,
		"descripcion": r.Descripcion,
		"taller":      r.Taller,
		"fecha":       dateValue(r.Fecha),
		"costo":       r.Costo.InexactFloat64(),
	}
	if r.MaquinariaID != nil {
		rec["maquinariaId"] = r.MaquinariaID.String()
	}
	return rec
}

func (r *Repair) describe() []Attr {
	return []Attr{
		{"Maquinaria", r.Maquinaria},
		{"Tipo", r.Tipo},
		{"Estado", r.Estado},
		{"Descripción", r.Descripcion},
		{"Taller", r.Taller},
		{"Fecha", r.Fecha.String()},
		{"Costo", "$ " + r.Costo.StringFixed(2)},
	}
}

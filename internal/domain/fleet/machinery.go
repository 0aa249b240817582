package fleet

import (
	"context"
	"fmt"
	"strconv"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/entity"
	"agrofleet/internal/core/types"
	"agrofleet/internal/filters/registry"
)

// Machinery is a tractor, harvester, implement or vehicle of the fleet.
type Machinery struct {
	entity.Base

	Nombre string `db:"nombre" json:"nombre"`
	Tipo   string `db:"tipo" json:"tipo"`
	Marca  string `db:"marca" json:"marca"`
	Modelo string `db:"modelo" json:"modelo"`

	// Anio is the model year; 0 when unknown.
	Anio int `db:"anio" json:"anio"`

	// Horas is the hour meter reading.
	Horas int `db:"horas" json:"horas"`

	Estado      string     `db:"estado" json:"estado"`
	Ubicacion   string     `db:"ubicacion" json:"ubicacion"`
	FechaCompra types.Date `db:"fecha_compra" json:"fechaCompra"`
	EnGarantia  bool       `db:"en_garantia" json:"enGarantia"`
}

// NewMachinery creates an operational machine with a fresh ID.
func NewMachinery() *Machinery {
	return &Machinery{
		Base:   entity.NewBase(),
		Estado: "Operativa",
	}
}

func (m *Machinery) Kind() Kind { return KindMachinery }

func (m *Machinery) Title() string {
	if m.Modelo == "" {
		return m.Nombre
	}
	return fmt.Sprintf("%s (%s %s)", m.Nombre, m.Marca, m.Modelo)
}

// Validate implements entity.Validatable interface.
func (m *Machinery) Validate(ctx context.Context) error {
	if err := firstError(
		required("nombre", m.Nombre),
		oneOf("tipo", m.Tipo, registry.MachineryTypes),
		oneOf("estado", m.Estado, registry.MachineryStates),
		notNegative("horas", float64(m.Horas)),
	); err != nil {
		return err
	}

	if m.Anio != 0 && (m.Anio < 1950 || m.Anio > 2100) {
		return apperror.NewValidation("anio out of range").
			WithDetail("field", "anio").
			WithDetail("value", m.Anio)
	}

	return nil
}

func (m *Machinery) Record() registry.Record {
	return registry.Record{
		"id":          m.ID.String(),
		"nombre":      m.Nombre,
		"tipo":        m.Tipo,
		"marca":       m.Marca,
		"modelo":      m.Modelo,
		"anio":        m.Anio,
		"horas":       m.Horas,
		"estado":      m.Estado,
		"ubicacion":   m.Ubicacion,
		"fechaCompra": dateValue(m.FechaCompra),
		"enGarantia":  m.EnGarantia,
	}
}

func (m *Machinery) describe() []Attr {
	anio := ""
	if m.Anio != 0 {
		anio = strconv.Itoa(m.Anio)
	}
	return []Attr{
		{"Nombre", m.Nombre},
		{"Tipo", m.Tipo},
		{"Marca", m.Marca},
		{"Modelo", m.Modelo},
		{"Año", anio},
		{"Horas", strconv.Itoa(m.Horas)},
		{"Estado", m.Estado},
		{"Ubicación", m.Ubicacion},
		{"Fecha de compra", m.FechaCompra.String()},
		{"En garantía", yesNo(m.EnGarantia)},
	}
}

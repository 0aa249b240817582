package fleet

import (
	"context"
	"strconv"

	"agrofleet/internal/core/entity"
	"agrofleet/internal/core/types"
	"agrofleet/internal/filters/registry"
)

// Part is a spare part kept in stock.
type Part struct {
	entity.Base

	Codigo      string      `db:"codigo" json:"codigo"`
	Nombre      string      `db:"nombre" json:"nombre"`
	Descripcion string      `db:"descripcion" json:"descripcion,omitempty"`
	Categoria   string      `db:"categoria" json:"categoria"`
	Marca       string      `db:"marca" json:"marca"`
	Proveedor   string      `db:"proveedor" json:"proveedor"`
	Ubicacion   string      `db:"ubicacion" json:"ubicacion"`
	Stock       int         `db:"stock" json:"stock"`
	StockMinimo int         `db:"stock_minimo" json:"stockMinimo"`
	Precio      types.Money `db:"precio" json:"precio"`
	Original    bool        `db:"original" json:"original"`
}

// NewPart creates an empty part with a fresh ID.
func NewPart() *Part {
	return &Part{
		Base:      entity.NewBase(),
		Categoria: "Otros",
		Precio:    types.Zero(),
	}
}

func (p *Part) Kind() Kind { return KindPart }

func (p *Part) Title() string {
	if p.Codigo == "" {
		return p.Nombre
	}
	return p.Codigo + " · " + p.Nombre
}

// BelowMinimum reports whether the stock needs replenishing.
func (p *Part) BelowMinimum() bool {
	return p.Stock < p.StockMinimo
}

// Validate implements entity.Validatable interface.
func (p *Part) Validate(ctx context.Context) error {
	return firstError(
		required("nombre", p.Nombre),
		oneOf("categoria", p.Categoria, registry.PartCategories),
		notNegative("stock", float64(p.Stock)),
		notNegative("stockMinimo", float64(p.StockMinimo)),
		notNegativeMoney("precio", p.Precio),
	)
}

func (p *Part) Record() registry.Record {
	return registry.Record{
		"id":          p.ID.String(),
		"codigo":      p.Codigo,
		"nombre":      p.Nombre,
		"descripcion": p.Descripcion,
		"categoria":   p.Categoria,
		"marca":       p.Marca,
		"proveedor":   p.Proveedor,
		"ubicacion":   p.Ubicacion,
		"stock":       p.Stock,
		"stockMinimo": p.StockMinimo,
		"precio":      p.Precio.InexactFloat64(),
		"original":    p.Original,
	}
}

func (p *Part) describe() []Attr {
	return []Attr{
		{"Código", p.Codigo},
		{"Nombre", p.Nombre},
		{"Descripción", p.Descripcion},
		{"Categoría", p.Categoria},
		{"Marca", p.Marca},
		{"Proveedor", p.Proveedor},
		{"Ubicación", p.Ubicacion},
		{"Stock", strconv.Itoa(p.Stock)},
		{"Stock mínimo", strconv.Itoa(p.StockMinimo)},
		{"Precio", "$ " + p.Precio.StringFixed(2)},
		{"Original", yesNo(p.Original)},
	}
}

package dto

import (
	"github.com/shopspring/decimal"

	"agrofleet/internal/core/id"
	"agrofleet/internal/core/types"
	"agrofleet/internal/domain/fleet"
)

// --- Machinery ---

// MachineryRequest is the request body for creating a machine.
type MachineryRequest struct {
	Nombre      string     `json:"nombre" binding:"required"`
	Tipo        string     `json:"tipo" binding:"required"`
	Marca       string     `json:"marca"`
	Modelo      string     `json:"modelo"`
	Anio        int        `json:"anio"`
	Horas       int        `json:"horas"`
	Estado      string     `json:"estado"`
	Ubicacion   string     `json:"ubicacion"`
	FechaCompra types.Date `json:"fechaCompra"`
	EnGarantia  bool       `json:"enGarantia"`
}

// ToEntity converts DTO to domain entity.
func (r MachineryRequest) ToEntity() *fleet.Machinery {
	m := fleet.NewMachinery()
	r.applyTo(m)
	return m
}

func (r MachineryRequest) applyTo(m *fleet.Machinery) {
	m.Nombre = r.Nombre
	m.Tipo = r.Tipo
	m.Marca = r.Marca
	m.Modelo = r.Modelo
	m.Anio = r.Anio
	m.Horas = r.Horas
	if r.Estado != "" {
		m.Estado = r.Estado
	}
	m.Ubicacion = r.Ubicacion
	m.FechaCompra = r.FechaCompra
	m.EnGarantia = r.EnGarantia
}

// UpdateMachineryRequest is the request body for updating a machine.
type UpdateMachineryRequest struct {
	MachineryRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateMachineryRequest) ApplyTo(m *fleet.Machinery) *fleet.Machinery {
	r.applyTo(m)
	m.Version = r.Version
	return m
}

// --- Parts ---

// PartRequest is the request body for creating a spare part.
type PartRequest struct {
	Codigo      string           `json:"codigo"`
	Nombre      string           `json:"nombre" binding:"required"`
	Descripcion string           `json:"descripcion"`
	Categoria   string           `json:"categoria"`
	Marca       string           `json:"marca"`
	Proveedor   string           `json:"proveedor"`
	Ubicacion   string           `json:"ubicacion"`
	Stock       int              `json:"stock"`
	StockMinimo int              `json:"stockMinimo"`
	Precio      *decimal.Decimal `json:"precio"`
	Original    bool             `json:"original"`
}

// ToEntity converts DTO to domain entity.
func (r PartRequest) ToEntity() *fleet.Part {
	p := fleet.NewPart()
	r.applyTo(p)
	return p
}

func (r PartRequest) applyTo(p *fleet.Part) {
	p.Codigo = r.Codigo
	p.Nombre = r.Nombre
	p.Descripcion = r.Descripcion
	if r.Categoria != "" {
		p.Categoria = r.Categoria
	}
	p.Marca = r.Marca
	p.Proveedor = r.Proveedor
	p.Ubicacion = r.Ubicacion
	p.Stock = r.Stock
	p.StockMinimo = r.StockMinimo
	if r.Precio != nil {
		p.Precio = *r.Precio
	}
	p.Original = r.Original
}

// UpdatePartRequest is the request body for updating a spare part.
type UpdatePartRequest struct {
	PartRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdatePartRequest) ApplyTo(p *fleet.Part) *fleet.Part {
	r.applyTo(p)
	p.Version = r.Version
	return p
}

// --- Suppliers ---

// SupplierRequest is the request body for creating a supplier.
type SupplierRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Rubro    string `json:"rubro" binding:"required"`
	Ciudad   string `json:"ciudad"`
	Contacto string `json:"contacto"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
	Activo   *bool  `json:"activo"`
}

// ToEntity converts DTO to domain entity.
func (r SupplierRequest) ToEntity() *fleet.Supplier {
	s := fleet.NewSupplier()
	r.applyTo(s)
	return s
}

func (r SupplierRequest) applyTo(s *fleet.Supplier) {
	s.Nombre = r.Nombre
	s.Rubro = r.Rubro
	s.Ciudad = r.Ciudad
	s.Contacto = r.Contacto
	s.Telefono = r.Telefono
	s.Email = r.Email
	if r.Activo != nil {
		s.Activo = *r.Activo
	}
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	SupplierRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateSupplierRequest) ApplyTo(s *fleet.Supplier) *fleet.Supplier {
	r.applyTo(s)
	s.Version = r.Version
	return s
}

// --- Repairs ---

// RepairRequest is the request body for registering a repair.
type RepairRequest struct {
	MaquinariaID *id.ID          `json:"maquinariaId"`
	Maquinaria   string          `json:"maquinaria" binding:"required"`
	Tipo         string          `json:"tipo"`
	Estado       string          `json:"estado"`
	Descripcion  string          `json:"descripcion" binding:"required"`
	Taller       string          `json:"taller"`
	Fecha        types.Date      `json:"fecha"`
	Costo        decimal.Decimal `json:"costo"`
}

// ToEntity converts DTO to domain entity.
func (r RepairRequest) ToEntity() *fleet.Repair {
	rep := fleet.NewRepair()
	r.applyTo(rep)
	return rep
}

func (r RepairRequest) applyTo(rep *fleet.Repair) {
	rep.MaquinariaID = r.MaquinariaID
	rep.Maquinaria = r.Maquinaria
	if r.Tipo != "" {
		rep.Tipo = r.Tipo
	}
	if r.Estado != "" {
		rep.Estado = r.Estado
	}
	rep.Descripcion = r.Descripcion
	rep.Taller = r.Taller
	rep.Fecha = r.Fecha
	rep.Costo = r.Costo
}

// UpdateRepairRequest is the request body for updating a repair.
type UpdateRepairRequest struct {
	RepairRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateRepairRequest) ApplyTo(rep *fleet.Repair) *fleet.Repair {
	r.applyTo(rep)
	rep.Version = r.Version
	return rep
}

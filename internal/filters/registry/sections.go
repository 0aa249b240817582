package registry

import "agrofleet/internal/domain/filter"

// Section names.
const (
	SectionMaquinarias  = "maquinarias"
	SectionRepuestos    = "repuestos"
	SectionProveedores  = "proveedores"
	SectionReparaciones = "reparaciones"
)

// Option values shared with the domain validation.
var (
	MachineryTypes  = []string{"Tractor", "Cosechadora", "Sembradora", "Pulverizadora", "Implemento", "Vehículo"}
	MachineryStates = []string{"Operativa", "En reparación", "Fuera de servicio"}
	PartCategories  = []string{"Motor", "Hidráulico", "Transmisión", "Eléctrico", "Filtros", "Neumáticos", "Otros"}
	SupplierTrades  = []string{"Repuestos", "Lubricantes", "Neumáticos", "Servicio técnico", "Concesionario"}
	RepairTypes     = []string{"Preventiva", "Correctiva"}
	RepairStates    = []string{"Pendiente", "En progreso", "Completada"}
)

func ptr(v float64) *float64 { return &v }

// NewDefault builds the registry with the four fleet sections.
func NewDefault() *Registry {
	r := New()

	r.MustRegister(SectionSpec{
		Name:       SectionMaquinarias,
		Label:      "Maquinarias",
		SearchKeys: []string{"nombre", "marca", "modelo"},
		Fields: []FieldSpec{
			{Key: "tipo", Label: "Tipo", Kind: KindSelect, Options: MachineryTypes},
			{Key: "marca", Label: "Marca", Kind: KindTextSuggest},
			{Key: "modelo", Label: "Modelo", Kind: KindTextSuggest},
			{Key: "estado", Label: "Estado", Kind: KindSelect, Options: MachineryStates},
			{Key: "ubicacion", Label: "Ubicación", Kind: KindTextSuggest},
			{Key: "anio", Label: "Año", Kind: KindRange, Min: ptr(1950), Max: ptr(2100)},
			{Key: "horas", Label: "Horas de uso", Kind: KindRange, Min: ptr(0)},
			{Key: "compradaDesde", Label: "Comprada desde", Kind: KindDate, Target: "fechaCompra", Operator: filter.GreaterOrEqual},
			{Key: "enGarantia", Label: "En garantía", Kind: KindCheckbox},
		},
	})

	r.MustRegister(SectionSpec{
		Name:       SectionRepuestos,
		Label:      "Repuestos",
		SearchKeys: []string{"nombre", "codigo", "marca"},
		Fields: []FieldSpec{
			{Key: "categoria", Label: "Categoría", Kind: KindSelect, Options: PartCategories},
			{Key: "marca", Label: "Marca", Kind: KindTextSuggest},
			{Key: "proveedor", Label: "Proveedor", Kind: KindTextSuggest},
			{Key: "ubicacion", Label: "Ubicación", Kind: KindTextSuggest},
			{Key: "precio", Label: "Precio", Kind: KindRange, Min: ptr(0)},
			{Key: "stock", Label: "Stock", Kind: KindRange, Min: ptr(0)},
			{Key: "original", Label: "Solo originales", Kind: KindCheckbox},
		},
	})

	r.MustRegister(SectionSpec{
		Name:       SectionProveedores,
		Label:      "Proveedores",
		SearchKeys: []string{"nombre", "contacto", "email"},
		Fields: []FieldSpec{
			{Key: "rubro", Label: "Rubro", Kind: KindSelect, Options: SupplierTrades},
			{Key: "ciudad", Label: "Ciudad", Kind: KindTextSuggest},
			{Key: "activo", Label: "Solo activos", Kind: KindCheckbox},
		},
	})

	r.MustRegister(SectionSpec{
		Name:       SectionReparaciones,
		Label:      "Reparaciones",
		SearchKeys: []string{"descripcion", "maquinaria", "taller"},
		Fields: []FieldSpec{
			{Key: "estado", Label: "Estado", Kind: KindSelect, Options: RepairStates},
			{Key: "tipo", Label: "Tipo", Kind: KindSelect, Options: RepairTypes},
			{Key: "maquinaria", Label: "Maquinaria", Kind: KindTextSuggest},
			{Key: "taller", Label: "Taller", Kind: KindTextSuggest},
			{Key: "fechaDesde", Label: "Desde", Kind: KindDate, Target: "fecha", Operator: filter.GreaterOrEqual},
			{Key: "fechaHasta", Label: "Hasta", Kind: KindDate, Target: "fecha", Operator: filter.LessOrEqual},
			{Key: "costo", Label: "Costo", Kind: KindRange, Min: ptr(0)},
		},
	})

	return r
}

// Package fleet defines the records managed by the application: machinery,
// spare parts, suppliers and repairs.
//
// The four record types form a closed set keyed by Kind. Code that needs to
// treat them uniformly goes through the Entity interface; code that needs the
// concrete shape switches on the type.
package fleet

import (
	"fmt"

	"agrofleet/internal/core/entity"
	"agrofleet/internal/core/id"
	"agrofleet/internal/filters/registry"
)

// Kind identifies a record type.
type Kind string

const (
	KindMachinery Kind = "maquinaria"
	KindPart      Kind = "repuesto"
	KindSupplier  Kind = "proveedor"
	KindRepair    Kind = "reparacion"
)

// Kinds lists every kind in menu order.
var Kinds = []Kind{KindMachinery, KindPart, KindSupplier, KindRepair}

// Entity is implemented by pointers to every record type.
type Entity interface {
	entity.Validatable

	Kind() Kind
	GetID() id.ID
	Title() string

	// Record returns a flat map keyed by JSON field names, as read by filters.
	Record() registry.Record
}

// New returns an empty record of the given kind.
func New(kind Kind) (Entity, error) {
	switch kind {
	case KindMachinery:
		return NewMachinery(), nil
	case KindPart:
		return NewPart(), nil
	case KindSupplier:
		return NewSupplier(), nil
	case KindRepair:
		return NewRepair(), nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// Section returns the filter section listing this kind.
func (k Kind) Section() string {
	switch k {
	case KindMachinery:
		return registry.SectionMaquinarias
	case KindPart:
		return registry.SectionRepuestos
	case KindSupplier:
		return registry.SectionProveedores
	case KindRepair:
		return registry.SectionReparaciones
	}
	return ""
}

// Label is the singular display name.
func (k Kind) Label() string {
	switch k {
	case KindMachinery:
		return "Maquinaria"
	case KindPart:
		return "Repuesto"
	case KindSupplier:
		return "Proveedor"
	case KindRepair:
		return "Reparación"
	}
	return string(k)
}

// KindForSection maps a filter section back to its record kind.
func KindForSection(section string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Section() == section {
			return k, true
		}
	}
	return "", false
}

// Attr is one labelled value of a record's detail view.
type Attr struct {
	Label string
	Value string
}

// Describe lists the display attributes of e.
func Describe(e Entity) []Attr {
	switch r := e.(type) {
	case *Machinery:
		return r.describe()
	case *Part:
		return r.describe()
	case *Supplier:
		return r.describe()
	case *Repair:
		return r.describe()
	}
	return nil
}

// Records flattens a slice of entities for filtering and suggestions.
func Records[T Entity](items []T) []registry.Record {
	out := make([]registry.Record, 0, len(items))
	for _, it := range items {
		out = append(out, it.Record())
	}
	return out
}

package fleet

import (
	"context"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/entity"
	"agrofleet/internal/filters/registry"
)

// Supplier sells parts or services to the farm.
type Supplier struct {
	entity.Base

	Nombre   string `db:"nombre" json:"nombre"`
	Rubro    string `db:"rubro" json:"rubro"`
	Ciudad   string `db:"ciudad" json:"ciudad"`
	Contacto string `db:"contacto" json:"contacto"`
	Telefono string `db:"telefono" json:"telefono"`
	Email    string `db:"email" json:"email"`
	Activo   bool   `db:"activo" json:"activo"`
}

// NewSupplier creates an active supplier with a fresh ID.
func NewSupplier() *Supplier {
	return &Supplier{
		Base:   entity.NewBase(),
		Activo: true,
	}
}

func (s *Supplier) Kind() Kind { return KindSupplier }

func (s *Supplier) Title() string { return s.Nombre }

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := firstError(
		required("nombre", s.Nombre),
		oneOf("rubro", s.Rubro, registry.SupplierTrades),
	); err != nil {
		return err
	}

	if s.Email != "" && !emailPattern.MatchString(s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

func (s *Supplier) Record() registry.Record {
	return registry.Record{
		"id":       s.ID.String(),
		"nombre":   s.Nombre,
		"rubro":    s.Rubro,
		"ciudad":   s.Ciudad,
		"contacto": s.Contacto,
		"telefono": s.Telefono,
		"email":    s.Email,
		"activo":   s.Activo,
	}
}

func (s *Supplier) describe() []Attr {
	return []Attr{
		{"Nombre", s.Nombre},
		{"Rubro", s.Rubro},
		{"Ciudad", s.Ciudad},
		{"Contacto", s.Contacto},
		{"Teléfono", s.Telefono},
		{"Email", s.Email},
		{"Activo", yesNo(s.Activo)},
	}
}

package postgres

import (
	"context"
	"fmt"
)

// Table names.
const (
	TableMachinery = "maquinarias"
	TableParts     = "repuestos"
	TableSuppliers = "proveedores"
	TableRepairs   = "reparaciones"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS maquinarias (
		id           UUID PRIMARY KEY,
		version      INTEGER NOT NULL DEFAULT 1,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		nombre       TEXT NOT NULL,
		tipo         TEXT NOT NULL,
		marca        TEXT NOT NULL DEFAULT '',
		modelo       TEXT NOT NULL DEFAULT '',
		anio         INTEGER NOT NULL DEFAULT 0,
		horas        INTEGER NOT NULL DEFAULT 0 CHECK (horas >= 0),
		estado       TEXT NOT NULL,
		ubicacion    TEXT NOT NULL DEFAULT '',
		fecha_compra DATE,
		en_garantia  BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS repuestos (
		id           UUID PRIMARY KEY,
		version      INTEGER NOT NULL DEFAULT 1,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		codigo       TEXT NOT NULL DEFAULT '',
		nombre       TEXT NOT NULL,
		descripcion  TEXT NOT NULL DEFAULT '',
		categoria    TEXT NOT NULL,
		marca        TEXT NOT NULL DEFAULT '',
		proveedor    TEXT NOT NULL DEFAULT '',
		ubicacion    TEXT NOT NULL DEFAULT '',
		stock        INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		stock_minimo INTEGER NOT NULL DEFAULT 0,
		precio       NUMERIC(14,2) NOT NULL DEFAULT 0,
		original     BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS repuestos_codigo_uq ON repuestos (codigo) WHERE codigo <> ''`,
	`CREATE TABLE IF NOT EXISTS proveedores (
		id         UUID PRIMARY KEY,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		nombre     TEXT NOT NULL,
		rubro      TEXT NOT NULL,
		ciudad     TEXT NOT NULL DEFAULT '',
		contacto   TEXT NOT NULL DEFAULT '',
		telefono   TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		activo     BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS reparaciones (
		id            UUID PRIMARY KEY,
		version       INTEGER NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		maquinaria_id UUID REFERENCES maquinarias (id) ON DELETE RESTRICT,
		maquinaria    TEXT NOT NULL,
		tipo          TEXT NOT NULL,
		estado        TEXT NOT NULL,
		descripcion   TEXT NOT NULL,
		taller        TEXT NOT NULL DEFAULT '',
		fecha         DATE NOT NULL,
		costo         NUMERIC(14,2) NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS reparaciones_fecha_idx ON reparaciones (fecha)`,
}

// EnsureSchema creates the fleet tables when missing.
func EnsureSchema(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

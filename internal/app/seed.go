package app

import (
	"context"
	"fmt"
	"time"

	"agrofleet/internal/core/types"
	"agrofleet/internal/domain/fleet"
	"agrofleet/pkg/logger"
)

// SeedReport counts the records inserted by Seed.
type SeedReport struct {
	Machinery int
	Parts     int
	Suppliers int
	Repairs   int
}

func (r SeedReport) String() string {
	return fmt.Sprintf("%d maquinarias, %d repuestos, %d proveedores, %d reparaciones",
		r.Machinery, r.Parts, r.Suppliers, r.Repairs)
}

// Seed inserts a small demo fleet through the services, hooks included.
func (a *App) Seed(ctx context.Context) (SeedReport, error) {
	var rep SeedReport

	machines := []*fleet.Machinery{
		demoMachine("Tractor 1", "Tractor", "John Deere", "6110J", 2016, 5200, "Galpón norte", types.NewDate(2016, time.March, 10), false),
		demoMachine("Tractor 2", "Tractor", "Case IH", "Puma 185", 2019, 2100, "Galpón norte", types.NewDate(2019, time.August, 2), true),
		demoMachine("Tractor 3", "Tractor", "Valtra", "BH194", 2021, 900, "Campo sur", types.NewDate(2021, time.May, 20), true),
		demoMachine("Cosechadora", "Cosechadora", "John Deere", "S680", 2014, 7800, "Galpón central", types.NewDate(2014, time.November, 4), false),
		demoMachine("Sembradora", "Sembradora", "Pla", "MT 3000", 2018, 1500, "Galpón central", types.NewDate(2018, time.July, 15), false),
		demoMachine("Pulverizadora", "Pulverizadora", "Metalfor", "Multiple 3200", 2020, 1300, "Campo sur", types.NewDate(2020, time.February, 1), true),
		demoMachine("Camioneta", "Vehículo", "Toyota", "Hilux", 2022, 0, "Oficina", types.NewDate(2022, time.January, 12), true),
	}
	for _, m := range machines {
		if err := a.Machinery.Create(ctx, m); err != nil {
			return rep, fmt.Errorf("seed machinery %q: %w", m.Nombre, err)
		}
		rep.Machinery++
	}

	parts := []*fleet.Part{
		demoPart("RE504836", "Filtro de aceite", "Filtros", "John Deere", "Agro Repuestos SRL", "Estante A1", 12, 4, "45.90", true),
		demoPart("AR103033", "Filtro de aire", "Filtros", "John Deere", "Agro Repuestos SRL", "Estante A1", 3, 4, "120.00", true),
		demoPart("LF3000", "Filtro de combustible", "Filtros", "Fleetguard", "Lubricentro El Trébol", "Estante A2", 20, 6, "18.50", false),
		demoPart("84475551", "Bomba hidráulica", "Hidráulico", "Case IH", "Concesionaria Pampa", "Depósito", 1, 1, "1850.00", true),
		demoPart("AZ58377", "Correa de ventilador", "Motor", "Gates", "Agro Repuestos SRL", "Estante B3", 5, 2, "32.75", false),
		demoPart("V836862", "Batería 12V 180Ah", "Eléctrico", "Moura", "Baterías del Sur", "Depósito", 2, 2, "410.00", false),
	}
	for _, p := range parts {
		if err := a.Parts.Create(ctx, p); err != nil {
			return rep, fmt.Errorf("seed part %q: %w", p.Codigo, err)
		}
		rep.Parts++
	}

	suppliers := []*fleet.Supplier{
		demoSupplier("Agro Repuestos SRL", "Repuestos", "Pergamino", "Laura Gómez", "ventas@agrorepuestos.com.ar", true),
		demoSupplier("Lubricentro El Trébol", "Lubricantes", "Junín", "Martín Díaz", "eltrebol@gmail.com", true),
		demoSupplier("Concesionaria Pampa", "Concesionario", "Rosario", "Julieta Ríos", "postventa@pampa.com.ar", true),
		demoSupplier("Gomería Ruta 8", "Neumáticos", "Pergamino", "Carlos Paz", "", false),
	}
	for _, s := range suppliers {
		if err := a.Suppliers.Create(ctx, s); err != nil {
			return rep, fmt.Errorf("seed supplier %q: %w", s.Nombre, err)
		}
		rep.Suppliers++
	}

	repairs := []*fleet.Repair{
		demoRepair(machines[0], "Preventiva", "Completada", "Service de 5000 horas", "Taller propio", types.NewDate(2024, time.April, 8), "350.00"),
		demoRepair(machines[3], "Correctiva", "Completada", "Cambio de rodamientos del cabezal", "Concesionaria Pampa", types.NewDate(2024, time.December, 2), "2780.50"),
		demoRepair(machines[1], "Correctiva", "En progreso", "Pérdida en bomba hidráulica", "Concesionaria Pampa", types.NewDate(2025, time.March, 17), "1850.00"),
		demoRepair(machines[4], "Preventiva", "Pendiente", "Calibración de dosificadores", "Taller propio", types.NewDate(2025, time.April, 1), "0"),
	}
	for _, r := range repairs {
		if err := a.Repairs.Create(ctx, r); err != nil {
			return rep, fmt.Errorf("seed repair %q: %w", r.Descripcion, err)
		}
		rep.Repairs++
	}

	logger.Info(ctx, "demo data seeded",
		"machinery", rep.Machinery, "parts", rep.Parts, "suppliers", rep.Suppliers, "repairs", rep.Repairs)
	return rep, nil
}

func demoMachine(nombre, tipo, marca, modelo string, anio, horas int, ubicacion string, compra types.Date, garantia bool) *fleet.Machinery {
	m := fleet.NewMachinery()
	m.Nombre = nombre
	m.Tipo = tipo
	m.Marca = marca
	m.Modelo = modelo
	m.Anio = anio
	m.Horas = horas
	m.Ubicacion = ubicacion
	m.FechaCompra = compra
	m.EnGarantia = garantia
	return m
}

func demoPart(codigo, nombre, categoria, marca, proveedor, ubicacion string, stock, minimo int, precio string, original bool) *fleet.Part {
	p := fleet.NewPart()
	p.Codigo = codigo
	p.Nombre = nombre
	p.Categoria = categoria
	p.Marca = marca
	p.Proveedor = proveedor
	p.Ubicacion = ubicacion
	p.Stock = stock
	p.StockMinimo = minimo
	p.Precio = types.MustMoney(precio)
	p.Original = original
	return p
}

func demoSupplier(nombre, rubro, ciudad, contacto, email string, activo bool) *fleet.Supplier {
	s := fleet.NewSupplier()
	s.Nombre = nombre
	s.Rubro = rubro
	s.Ciudad = ciudad
	s.Contacto = contacto
	s.Email = email
	s.Activo = activo
	return s
}

func demoRepair(m *fleet.Machinery, tipo, estado, descripcion, taller string, fecha types.Date, costo string) *fleet.Repair {
	r := fleet.NewRepair()
	machineID := m.ID
	r.MaquinariaID = &machineID
	r.Maquinaria = m.Nombre
	r.Tipo = tipo
	r.Estado = estado
	r.Descripcion = descripcion
	r.Taller = taller
	r.Fecha = fecha
	r.Costo = types.MustMoney(costo)
	return r
}

package app

import (
	"context"
	"fmt"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/fleet"
	"agrofleet/pkg/logger"
)

// MachineUnderRepair is the machinery estado set while a repair is open.
const MachineUnderRepair = "En reparación"

const repairDone = "Completada"

// registerHooks links repairs to the machinery they are done on.
func (a *App) registerHooks() {
	a.Repairs.Hooks().On(domain.BeforeCreate, a.resolveRepairMachine)
	a.Repairs.Hooks().On(domain.AfterCreate, a.markMachineUnderRepair)
}

// resolveRepairMachine checks the linked machine exists and copies its name.
func (a *App) resolveRepairMachine(ctx context.Context, r *fleet.Repair) error {
	if r.MaquinariaID == nil {
		// Machines outside the fleet keep the typed name.
		return nil
	}
	m, err := a.Machinery.GetByID(ctx, *r.MaquinariaID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("linked machinery does not exist").
				WithDetail("field", "maquinariaId").
				WithDetail("value", r.MaquinariaID.String())
		}
		return fmt.Errorf("load linked machinery: %w", err)
	}
	r.Maquinaria = m.Nombre
	return nil
}

// markMachineUnderRepair flags the linked machine while the repair is open.
func (a *App) markMachineUnderRepair(ctx context.Context, r *fleet.Repair) error {
	if r.MaquinariaID == nil || r.Estado == repairDone {
		return nil
	}
	m, err := a.Machinery.GetByID(ctx, *r.MaquinariaID)
	if err != nil {
		return err
	}
	if m.Estado == MachineUnderRepair {
		return nil
	}

	m.Estado = MachineUnderRepair
	if err := a.Machinery.Update(ctx, m); err != nil {
		return err
	}
	logger.Info(ctx, "machinery marked under repair", "machinery", m.ID, "repair", r.ID)
	return nil
}

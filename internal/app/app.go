// Package app wires configuration, logging, storage and services into one
// application object. Commands build it once and pass it down.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"agrofleet/internal/config"
	"agrofleet/internal/core/tx"
	"agrofleet/internal/domain"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/registry"
	v1 "agrofleet/internal/infrastructure/http/v1"
	"agrofleet/internal/infrastructure/storage/memory"
	"agrofleet/internal/infrastructure/storage/postgres"
	"agrofleet/internal/infrastructure/storage/postgres/fleet_repo"
	"agrofleet/pkg/logger"
)

// App is the application context.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *registry.Registry

	// Pool is nil when records are kept in memory.
	Pool *postgres.Pool

	Machinery *domain.Service[*fleet.Machinery]
	Parts     *domain.Service[*fleet.Part]
	Suppliers *domain.Service[*fleet.Supplier]
	Repairs   *domain.Service[*fleet.Repair]
}

// New builds the application. An empty database URL selects the in-memory store.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if cfg.Database.URL == "" {
		log.Info("no database configured, records are kept in memory")
		return NewMemory(cfg, log), nil
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = cfg.Database.MaxConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("database connection established")

	return NewPostgres(cfg, log, pool), nil
}

// NewPostgres builds an application backed by pool.
func NewPostgres(cfg *config.Config, log *logger.Logger, pool *postgres.Pool) *App {
	reg := registry.NewDefault()
	txm := postgres.NewTxManager(pool)

	a := &App{Config: cfg, Logger: log, Registry: reg, Pool: pool}
	a.Machinery = newService[*fleet.Machinery](cfg, reg, txm, fleet.KindMachinery, fleet_repo.NewMachineryRepo(txm, reg))
	a.Parts = newService[*fleet.Part](cfg, reg, txm, fleet.KindPart, fleet_repo.NewPartRepo(txm, reg))
	a.Suppliers = newService[*fleet.Supplier](cfg, reg, txm, fleet.KindSupplier, fleet_repo.NewSupplierRepo(txm, reg))
	a.Repairs = newService[*fleet.Repair](cfg, reg, txm, fleet.KindRepair, fleet_repo.NewRepairRepo(txm, reg))
	a.registerHooks()
	return a
}

// NewMemory builds an application whose records live in process memory.
func NewMemory(cfg *config.Config, log *logger.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	reg := registry.NewDefault()

	a := &App{Config: cfg, Logger: log, Registry: reg}
	a.Machinery = newService[*fleet.Machinery](cfg, reg, nil, fleet.KindMachinery, memoryRepo[*fleet.Machinery](reg, fleet.KindMachinery))
	a.Parts = newService[*fleet.Part](cfg, reg, nil, fleet.KindPart, memoryRepo[*fleet.Part](reg, fleet.KindPart))
	a.Suppliers = newService[*fleet.Supplier](cfg, reg, nil, fleet.KindSupplier, memoryRepo[*fleet.Supplier](reg, fleet.KindSupplier))
	a.Repairs = newService[*fleet.Repair](cfg, reg, nil, fleet.KindRepair, memoryRepo[*fleet.Repair](reg, fleet.KindRepair))
	a.registerHooks()
	return a
}

func memoryRepo[T fleet.Entity](reg *registry.Registry, kind fleet.Kind) *memory.Repo[T] {
	section, _ := reg.Section(kind.Section())
	return memory.NewRepo[T](kind, section.SearchKeys)
}

func newService[T domain.Entity](cfg *config.Config, reg *registry.Registry, txm tx.Manager, kind fleet.Kind, repo domain.Repository[T]) *domain.Service[T] {
	return domain.NewService(domain.ServiceConfig[T]{
		Repo:         repo,
		TxManager:    txm,
		Registry:     reg,
		Kind:         kind,
		SuggestLimit: cfg.Suggest.Limit,
	})
}

// Close releases the database pool, if any, and flushes the logger.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
	_ = a.Logger.Sync()
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return logger.WithLogger(ctx, a.Logger)
}

// EnsureSchema creates the fleet tables; a no-op in memory mode.
func (a *App) EnsureSchema(ctx context.Context) error {
	if a.Pool == nil {
		return nil
	}
	return postgres.EnsureSchema(ctx, a.Pool)
}

// Router builds the HTTP API.
func (a *App) Router() *gin.Engine {
	mode := gin.DebugMode
	switch a.Config.App.Env {
	case "production":
		mode = gin.ReleaseMode
	case "test":
		mode = gin.TestMode
	}

	cfg := v1.RouterConfig{
		Logger:    a.Logger,
		Mode:      mode,
		Registry:  a.Registry,
		Machinery: a.Machinery,
		Parts:     a.Parts,
		Suppliers: a.Suppliers,
		Repairs:   a.Repairs,
	}
	if a.Pool != nil {
		cfg.DB = a.Pool
	}
	return v1.NewRouter(cfg)
}

// Load returns every record of kind. It is the terminal browser's loader.
func (a *App) Load(ctx context.Context, kind fleet.Kind) ([]fleet.Entity, error) {
	switch kind {
	case fleet.KindMachinery:
		return listAll(ctx, a.Machinery)
	case fleet.KindPart:
		return listAll(ctx, a.Parts)
	case fleet.KindSupplier:
		return listAll(ctx, a.Suppliers)
	case fleet.KindRepair:
		return listAll(ctx, a.Repairs)
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func listAll[T domain.Entity](ctx context.Context, svc *domain.Service[T]) ([]fleet.Entity, error) {
	res, err := svc.List(ctx, domain.ListFilter{Limit: domain.MaxLimit})
	if err != nil {
		return nil, err
	}
	out := make([]fleet.Entity, 0, len(res.Items))
	for _, it := range res.Items {
		out = append(out, it)
	}
	return out, nil
}

package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/config"
	"github.com/tsundoku-app/tsundoku-server/internal/logger"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/settings"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// ProvideEventEmitter provides the fan-out emitter the store publishes through.
// It starts with the SSE manager; the query engine attaches itself once the
// store exists, since the engine reads from the store it listens to.
func ProvideEventEmitter(i do.Injector) (*store.MultiEmitter, error) {
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	return store.NewMultiEmitter(sseHandle.Manager), nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the badger book store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	emitter := do.MustInvoke[*store.MultiEmitter](i)

	dbPath := cfg.StorePath()
	db, err := store.New(dbPath, log.Logger, emitter)
	if err != nil {
		return nil, err
	}

	log.Info("Book store initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// ProvideQueryEngine provides the reactive library view engine and attaches
// it to the store's event stream.
func ProvideQueryEngine(i do.Injector) (*query.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	emitter := do.MustInvoke[*store.MultiEmitter](i)

	engine := query.NewEngine(storeHandle.Store, query.NewSorter(cfg.Library.Locale), log.Logger)
	emitter.Add(engine)

	return engine, nil
}

// SettingsHandle wraps the settings store with shutdown capability.
type SettingsHandle struct {
	*settings.Store
}

// Shutdown implements do.Shutdownable.
func (h *SettingsHandle) Shutdown() error {
	return h.Close()
}

// ProvideSettings provides the sqlite settings store.
func ProvideSettings(i do.Injector) (*SettingsHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}

	log.Info("Settings store opened", "path", cfg.SettingsPath())

	return &SettingsHandle{Store: st}, nil
}

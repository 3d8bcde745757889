// Package di provides dependency injection configuration for the Tsundoku server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	"github.com/tsundoku-app/tsundoku-server/internal/config"
	"github.com/tsundoku-app/tsundoku-server/internal/di/providers"
	"github.com/tsundoku-app/tsundoku-server/internal/logger"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/service"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideEventEmitter)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideQueryEngine)
	do.Provide(injector, providers.ProvideSettings)
	do.Provide(injector, providers.ProvideSearchIndex)

	// External catalog
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideShelfService)
	do.Provide(injector, providers.ProvideMemoService)
	do.Provide(injector, providers.ProvideKnowledgeService)
	do.Provide(injector, providers.ProvideBackupService)
	do.Provide(injector, providers.ProvideSessionService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*store.MultiEmitter](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*query.Engine](injector)
	_ = do.MustInvoke[*providers.SettingsHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*catalog.Client](injector)

	// Business services
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.ShelfService](injector)
	_ = do.MustInvoke[*service.MemoService](injector)
	_ = do.MustInvoke[*service.KnowledgeService](injector)
	_ = do.MustInvoke[*service.BackupService](injector)
	_ = do.MustInvoke[*service.SessionService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Rebuild the search index when it is empty but books exist
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}

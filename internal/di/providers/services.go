package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	"github.com/tsundoku-app/tsundoku-server/internal/config"
	"github.com/tsundoku-app/tsundoku-server/internal/logger"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/service"
)

// ProvideCatalogClient provides the external book catalog client.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.ApplicationID == "" {
		log.Warn("Catalog application ID not set, catalog search is disabled")
	}

	return catalog.NewClient(cfg.Catalog, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogClient := do.MustInvoke[*catalog.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, catalogClient, log.Logger), nil
}

// ProvideShelfService provides the shelf service.
func ProvideShelfService(i do.Injector) (*service.ShelfService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShelfService(storeHandle.Store, log.Logger), nil
}

// ProvideMemoService provides the memo service.
func ProvideMemoService(i do.Injector) (*service.MemoService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMemoService(storeHandle.Store, log.Logger), nil
}

// ProvideKnowledgeService provides the tag knowledge service.
func ProvideKnowledgeService(i do.Injector) (*service.KnowledgeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewKnowledgeService(storeHandle.Store), nil
}

// ProvideBackupService provides the backup service.
func ProvideBackupService(i do.Injector) (*service.BackupService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBackupService(storeHandle.Store, log.Logger), nil
}

// ProvideSessionService provides the UI session service with its persisted
// state loaded and the view engine primed with the selected shelf.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	settingsHandle := do.MustInvoke[*SettingsHandle](i)
	engine := do.MustInvoke[*query.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSessionService(settingsHandle.Store, engine, log.Logger)
	if err := svc.Load(context.Background()); err != nil {
		return nil, err
	}

	return svc, nil
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/docintake/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docintake/internal/adapters/driven/intakeapi"
	"github.com/custodia-labs/docintake/internal/adapters/driven/notify"
	"github.com/custodia-labs/docintake/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docintake/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docintake/internal/adapters/driving/cli"
	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/services"
	"github.com/custodia-labs/docintake/internal/logger"
)

// bootstrap wires adapters and services for one invocation.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if opts.ServerURL != "" {
		settings.ServerURL = opts.ServerURL
	}
	logger.Debug("Using service at %s", settings.ServerURL)

	recentStore, closeStore := openRecentStore(dataDir(opts.ConfigDir, settings.StorageDir))

	var notifier driven.Notifier
	var queue *notify.Queue
	if opts.Interactive {
		queue = notify.NewQueue()
		notifier = queue
	} else {
		notifier = notify.NewConsole(nil)
	}

	api := intakeapi.New(intakeapi.ConfigFromSettings(*settings))

	recentService := services.NewRecentService(recentStore)
	recentService.Load(ctx)

	categoryService := services.NewCategoryService(api)
	uploadService := services.NewUploadService(services.UploadDeps{
		API:        api,
		Describer:  file.NewFileDescriber(),
		Notifier:   notifier,
		Recent:     recentService,
		Categories: categoryService,
	}, settings.ResetDelay)

	s := &cli.Services{
		Upload:     uploadService,
		Recent:     recentService,
		Categories: categoryService,
		Search:     services.NewSearchService(api, notifier, settings.SearchResults),
		Document:   services.NewDocumentService(api),
		Health:     services.NewHealthService(api),
		Settings:   settingsService,
		NewChat: func(scope domain.ChatScope) driving.ChatService {
			return services.NewChatService(api, notifier, scope)
		},
		Close: closeAll(queue, closeStore),
	}
	if queue != nil {
		s.Notifications = queue.C()
	}
	return s, nil
}

// closeAll stops notification delivery and closes storage.
func closeAll(queue *notify.Queue, closeStore func() error) func() error {
	return func() error {
		if queue != nil {
			queue.Close()
		}
		if closeStore != nil {
			return closeStore()
		}
		return nil
	}
}

// openRecentStore opens the database in dir. When that fails the
// history is kept in memory for this run only.
func openRecentStore(dir string) (driven.RecentStore, func() error) {
	store, err := sqlite.NewStore(dir)
	if err != nil {
		logger.Warn("Recent documents will not be saved: %v", err)
		return memory.NewRecentStore(), nil
	}
	logger.Debug("Database at %s", store.Path())
	return store.RecentStore(), store.Close
}

// dataDir picks the database directory: storage.dir when set, otherwise
// a data directory beside a custom config directory, otherwise the
// store's default.
func dataDir(configDir, storageDir string) string {
	switch {
	case storageDir != "":
		return storageDir
	case configDir != "":
		return filepath.Join(configDir, "data")
	default:
		return ""
	}
}

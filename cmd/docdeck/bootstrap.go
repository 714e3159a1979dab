package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/i18n"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/identity"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/api"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/azure"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/s3"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdeck-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/core/services"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// bootstrap wires the driven adapters selected by settings and flags into
// the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	logger.Section("Bootstrap")

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if opts.Backend != "" {
		settings.Backend = domain.Backend(opts.Backend)
		if !settings.Backend.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, opts.Backend)
		}
	}
	demo := opts.Demo || settings.UI.Demo

	verifier, err := newVerifier(settings.Auth)
	if err != nil {
		return nil, err
	}
	ownerOverride := opts.Owner
	if demo && ownerOverride == "" {
		ownerOverride = memory.DemoOwnerID
	}

	localizer, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	svc := &cli.Services{
		Settings:  settingsService,
		Identity:  services.NewIdentityService(configStore, verifier, ownerOverride),
		Localizer: localizer,
		Watch:     watchConfig(configStore),
	}
	if opts.ConfigOnly {
		return svc, nil
	}

	var store driven.DocumentStore
	if demo {
		logger.Debug("demo mode: serving sample documents read-only")
		store = memory.NewDemoStore(ownerOverride)
	} else {
		store, err = openStore(ctx, settings)
		if err != nil {
			return nil, err
		}
	}

	svc.Explorer = services.NewExplorerService(store, demo)
	svc.Language = services.NewLanguageService(store, configStore)
	svc.Files = services.NewFileService(store)
	svc.Close = closerFor(store)
	return svc, nil
}

// newVerifier returns nil when no issuer is configured.
func newVerifier(auth domain.AuthSettings) (driven.IdentityVerifier, error) {
	if auth.Issuer == "" {
		return nil, nil
	}
	v, err := identity.NewVerifier(identity.Config{
		Issuer:   auth.Issuer,
		ClientID: auth.ClientID,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// openStore builds the document store for the selected backend.
func openStore(ctx context.Context, settings *domain.AppSettings) (driven.DocumentStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s backend: %w", settings.Backend, err)
	}
	logger.Debug("backend: %s", settings.Backend)

	switch settings.Backend {
	case domain.BackendAPI:
		return api.NewClient(api.Config{
			BaseURL:       settings.API.BaseURL,
			Token:         settings.API.Token,
			RatePerSecond: settings.API.RatePerSecond,
			UserAgent:     "docdeck/" + version,
		})
	case domain.BackendSQLite:
		return sqlite.NewStore(settings.SQLite.DataDir)
	case domain.BackendPostgres:
		return postgres.Open(ctx, settings.Postgres.DSN)
	case domain.BackendS3:
		return s3.New(ctx, settings.S3)
	case domain.BackendAzure:
		return azure.New(settings.Azure)
	case domain.BackendMemory:
		return memory.NewDocumentStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
	}
}

// watchConfig starts an fsnotify watcher for the duration of one call.
func watchConfig(store *file.ConfigStore) func(ctx context.Context, onChange func()) error {
	return func(ctx context.Context, onChange func()) error {
		w, err := file.NewWatcher(store)
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		err = w.Run(ctx, onChange)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func closerFor(store driven.DocumentStore) func() error {
	c, ok := store.(io.Closer)
	if !ok {
		return nil
	}
	return c.Close
}

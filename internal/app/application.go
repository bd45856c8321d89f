// Package app assembles the storefront services and manages their lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/udvasito/storefront/internal/app/auth"
	catalogsvc "github.com/udvasito/storefront/internal/app/services/catalog"
	checkoutsvc "github.com/udvasito/storefront/internal/app/services/checkout"
	uploadsvc "github.com/udvasito/storefront/internal/app/services/uploads"
	"github.com/udvasito/storefront/internal/app/storage"
	"github.com/udvasito/storefront/internal/app/storage/memory"
	"github.com/udvasito/storefront/internal/app/system"
	"github.com/udvasito/storefront/internal/imagehost"
	"github.com/udvasito/storefront/internal/logging"
	"github.com/udvasito/storefront/internal/mailer"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Books     storage.BookStore
	Portfolio storage.PortfolioStore
}

// Options carries the outbound integrations. Nil fields get safe local
// defaults: log-only notifications and no upload capability.
type Options struct {
	Notifier mailer.Notifier
	Uploader imagehost.Uploader
	Auth     *auth.Manager
}

// Application ties the storefront services together.
type Application struct {
	manager *system.Manager
	log     *logging.Logger

	Catalog  *catalogsvc.Service
	Checkout *checkoutsvc.Service
	Uploads  *uploadsvc.Service
	Auth     *auth.Manager
}

// New builds a fully initialised application.
func New(stores Stores, opts Options, log *logging.Logger) (*Application, error) {
	if log == nil {
		log = logging.NewDefault("app")
	}

	if stores.Books == nil || stores.Portfolio == nil {
		mem := memory.New()
		if stores.Books == nil {
			stores.Books = mem
		}
		if stores.Portfolio == nil {
			stores.Portfolio = mem
		}
	}

	if opts.Notifier == nil {
		log.Warn("no email provider configured; order notifications will only be logged")
		opts.Notifier = mailer.NewLogNotifier(log)
	}
	if opts.Auth == nil {
		opts.Auth = auth.NewManager("", "")
	}

	manager := system.NewManager()
	for _, name := range []string{"catalog", "checkout", "uploads"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	var uploads *uploadsvc.Service
	if opts.Uploader != nil {
		uploads = uploadsvc.New(opts.Uploader, log)
	}

	return &Application{
		manager:  manager,
		log:      log,
		Catalog:  catalogsvc.New(stores.Books, stores.Portfolio, log),
		Checkout: checkoutsvc.New(opts.Notifier, log),
		Uploads:  uploads,
		Auth:     opts.Auth,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}

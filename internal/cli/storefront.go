package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/database"
	"github.com/skillbox-qa/intershop/internal/handlers"
	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/repository"
	"github.com/skillbox-qa/intershop/internal/services"
	"github.com/skillbox-qa/intershop/web"
)

// Storefront is an assembled practice shop
type Storefront struct {
	Handler http.Handler
	db      *sql.DB
}

// Close releases the order store
func (s *Storefront) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BuildStorefront wires the practice shop: order store, services, templates
// and routes. SQL stores are migrated before use.
func BuildStorefront(ctx context.Context, server config.ServerConfig, store *config.StoreConfig, logger *logrus.Logger) (*Storefront, error) {
	sf := &Storefront{}

	var orderRepo services.OrderRepository
	switch store.Driver {
	case config.StoreMemory:
		orderRepo = repository.NewMemoryOrderRepository()
	default:
		db, err := database.Open(store)
		if err != nil {
			return nil, fmt.Errorf("failed to open order store: %w", err)
		}
		if err := database.Migrate(ctx, db, store.Driver, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate order store: %w", err)
		}
		sf.db = db
		orderRepo = repository.NewOrderRepository(db, store.Driver)
	}

	renderer, err := handlers.NewRenderer(web.FS, logger)
	if err != nil {
		sf.Close()
		return nil, err
	}
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		sf.Close()
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	customers, err := models.DefaultCustomers()
	if err != nil {
		sf.Close()
		return nil, fmt.Errorf("failed to seed customers: %w", err)
	}

	catalog := models.DefaultCatalog()
	orderService := services.NewOrderService(orderRepo)

	sf.Handler = handlers.NewRouter(handlers.RouterDeps{
		Shop: &handlers.Shop{
			Site:     server.SiteName,
			Catalog:  catalog,
			Renderer: renderer,
			Logger:   logger,
		},
		Sessions: handlers.NewSessionStore(),
		Checkout: services.NewCheckoutService(catalog, models.DefaultCoupons(), orderService, logger),
		Orders:   orderService,
		Accounts: services.NewAccountService(repository.NewMemoryCustomerRepository(customers...)),
		Static:   static,
	})

	logger.WithFields(logrus.Fields{
		"url":      server.PublicURL,
		"store":    store.Driver,
		"products": len(catalog.Products()),
	}).Info("storefront ready")

	return sf, nil
}

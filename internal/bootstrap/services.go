package bootstrap

import (
	"log/slog"

	"github.com/beanfield/storefront-gateway/config"
	"github.com/beanfield/storefront-gateway/internal/adapters/backend"
	"github.com/beanfield/storefront-gateway/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions *service.SessionService
	SSO      *service.SSOService
	Catalog  *service.CatalogService
	Carts    *service.CartService
	Orders   *service.OrderService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config   *config.AppConfig
	Adapters *AdapterContainer
	Logger   *slog.Logger
}

// NewServices wires the domain services onto the infrastructure adapters.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil || deps.Adapters == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	client := deps.Adapters.Backend

	sessions := service.NewSessionService(service.SessionServiceOptions{
		API:    backend.NewAuthAPI(client),
		Store:  deps.Adapters.Store,
		Logger: logger,
	})

	catalog := service.NewCatalogService(service.CatalogServiceOptions{
		API:      backend.NewCatalogAPI(client),
		Cache:    deps.Adapters.Cache,
		CacheTTL: appCfg.Cache.TTL,
		Logger:   logger,
	})

	return ServiceContainer{
		Sessions: sessions,
		SSO: BuildSSOService(SSOConfig{
			Auth:   appCfg.Auth,
			Store:  deps.Adapters.Store,
			Logger: logger,
		}),
		Catalog: catalog,
		Carts:   service.NewCartService(service.CartServiceOptions{API: backend.NewCartAPI(client)}),
		Orders:  service.NewOrderService(service.OrderServiceOptions{API: backend.NewOrderAPI(client)}),
	}
}

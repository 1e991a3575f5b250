package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/beanfield/storefront-gateway/config"
	httpx "github.com/beanfield/storefront-gateway/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Ready    ReadinessPinger
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions:       cfg.Services.Sessions,
		SSO:            cfg.Services.SSO,
		Catalog:        cfg.Services.Catalog,
		Carts:          cfg.Services.Carts,
		Orders:         cfg.Services.Orders,
		Readiness:      cfg.Ready,
		CookieDomain:   appCfg.HTTP.CookieDomain,
		SessionTTL:     appCfg.Session.TTL,
		SSOCallbackURL: ssoCallbackURL(appCfg),
		Logger:         logger,
	})

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// ssoCallbackURL prefers the explicitly configured redirect URL and falls
// back to deriving one from the gateway base URL.
func ssoCallbackURL(cfg *config.AppConfig) string {
	if cfg.Auth.OIDC.RedirectURL != "" {
		return cfg.Auth.OIDC.RedirectURL
	}
	return strings.TrimSuffix(cfg.HTTP.BaseURL, "/") + "/auth/sso/callback"
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context  context.Context
	Server   *http.Server
	Services ServiceContainer
	Logger   *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server, then waits for
// any in-flight session revalidations so their writes are not cut off.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Services.Sessions != nil {
		cfg.Services.Sessions.WaitRevalidation()
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}

// RunConfig groups everything Run needs.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Ready    ReadinessPinger
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully.
func Run(cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Ready:    cfg.Ready,
		Logger:   logger,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit

	return ShutdownHTTPServer(ShutdownConfig{
		Context:  context.Background(),
		Server:   server,
		Services: cfg.Services,
		Logger:   logger,
	})
}

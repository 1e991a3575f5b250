package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/guard"
	"github.com/beanfield/storefront-gateway/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions *service.SessionService
	SSO      *service.SSOService
	Catalog  *service.CatalogService
	Carts    *service.CartService
	Orders   *service.OrderService

	// Readiness is pinged by /readyz. Optional.
	Readiness ReadinessPinger

	CookieDomain   string
	SessionTTL     time.Duration
	SSOCallbackURL string
	Logger         *slog.Logger
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the HTTP router. Authorization rules are
// declared here, at registration time, and enforced by Protect on every
// request.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	logger := services.logger()

	errWriter := &ServiceErrorWriter{
		Sessions:     services.Sessions,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	authHandlers := &AuthHandlers{
		Svc:          services.Sessions,
		Errors:       errWriter,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	storeHandlers := &StorefrontHandlers{
		Catalog: services.Catalog,
		Carts:   services.Carts,
		Orders:  services.Orders,
		Errors:  errWriter,
	}
	adminHandlers := &AdminHandlers{}

	registerAuthRoutes(mux, authHandlers)
	registerStorefrontRoutes(mux, storeHandlers)
	registerAdminRoutes(mux, adminHandlers)

	if services.SSO != nil {
		ssoHandlers := &SSOHandlers{
			Svc:          services.SSO,
			CallbackURL:  services.SSOCallbackURL,
			Errors:       errWriter,
			CookieDomain: services.CookieDomain,
			Logger:       logger,
		}
		mux.HandleFunc("GET /auth/sso/login", ssoHandlers.Begin)
		mux.HandleFunc("GET /auth/sso/callback", ssoHandlers.Callback)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Readiness))

	// Middleware chain, outermost first.
	session := Session(SessionConfig{
		Sessions:     services.Sessions,
		NewSessionID: service.NewSessionID,
		CookieDomain: services.CookieDomain,
		CookieTTL:    services.SessionTTL,
		Logger:       logger,
	})
	var handler http.Handler = session(mux)
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)

	authed := Protect(guard.Rule{})
	mux.Handle("GET /api/auth/profile", authed(http.HandlerFunc(h.Profile)))
	mux.Handle("PUT /api/auth/profile", authed(http.HandlerFunc(h.UpdateProfile)))
}

func registerStorefrontRoutes(mux *http.ServeMux, h *StorefrontHandlers) {
	// Catalog is public: guests browse freely.
	mux.HandleFunc("GET /api/home", h.Home)
	mux.HandleFunc("GET /api/products", h.Products)
	mux.HandleFunc("GET /api/products/{id}", h.Product)
	mux.HandleFunc("GET /api/categories", h.Categories)

	// Cart and orders require a logged-in customer (or any authenticated
	// identity; the backend scopes data by token).
	authed := Protect(guard.Rule{})
	mux.Handle("GET /api/cart", authed(http.HandlerFunc(h.Cart)))
	mux.Handle("POST /api/cart/items", authed(http.HandlerFunc(h.CartAdd)))
	mux.Handle("PUT /api/cart/items/{id}", authed(http.HandlerFunc(h.CartUpdate)))
	mux.Handle("DELETE /api/cart/items/{id}", authed(http.HandlerFunc(h.CartRemove)))
	mux.Handle("POST /api/checkout", authed(http.HandlerFunc(h.Checkout)))
	mux.Handle("GET /api/orders", authed(http.HandlerFunc(h.OrderList)))
	mux.Handle("GET /api/orders/{id}", authed(http.HandlerFunc(h.OrderByID)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers) {
	// An explicitly empty allow-set admits nobody by membership; only the
	// admin bypass lets anyone through. Staff sections name their role and
	// rely on the bypass for admins.
	adminOnly := Protect(guard.Rule{AllowedRoles: []domainauth.Role{}})
	warehouse := Protect(guard.Rule{AllowedRoles: []domainauth.Role{domainauth.RoleWarehouse}})
	sales := Protect(guard.Rule{AllowedRoles: []domainauth.Role{domainauth.RoleSales}})
	hr := Protect(guard.Rule{AllowedRoles: []domainauth.Role{domainauth.RoleHR}})

	mux.Handle("GET /api/admin/dashboard", adminOnly(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /api/admin/warehouse", warehouse(http.HandlerFunc(h.Warehouse)))
	mux.Handle("GET /api/admin/sales", sales(http.HandlerFunc(h.Sales)))
	mux.Handle("GET /api/admin/hr", hr(http.HandlerFunc(h.HR)))
	mux.Handle("GET /api/admin/analytics", adminOnly(http.HandlerFunc(h.Analytics)))

	mux.HandleFunc("GET /api/nav", h.Nav)
}

package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beanfield/storefront-gateway/internal/adapters/authroles"
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	mockauth "github.com/beanfield/storefront-gateway/internal/mocks/auth"
	mockcommerce "github.com/beanfield/storefront-gateway/internal/mocks/commerce"
	"github.com/beanfield/storefront-gateway/internal/service"
)

// testEnv wires the full router against in-memory fakes so routes can be
// exercised end to end, guard rules included.
type testEnv struct {
	API      *mockauth.MockAuthAPI
	Store    *mockauth.MemoryCredentialStore
	Provider *mockauth.MockAuthProvider
	Catalog  *mockcommerce.FakeCatalogAPI
	Carts    *mockcommerce.FakeCartAPI
	Orders   *mockcommerce.FakeOrderAPI
	Sessions *service.SessionService
	Handler  http.Handler

	mu       sync.Mutex
	profiles map[string]domainauth.Identity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		API:      mockauth.NewMockAuthAPI(),
		Store:    mockauth.NewMemoryCredentialStore(),
		Provider: mockauth.NewMockAuthProvider(),
		Catalog:  &mockcommerce.FakeCatalogAPI{},
		Carts:    mockcommerce.NewFakeCartAPI(),
		Orders:   &mockcommerce.FakeOrderAPI{},
		profiles: make(map[string]domainauth.Identity),
	}

	// Background revalidation echoes the identity that was issued with the
	// token, so a restored session keeps its role instead of being rewritten
	// by the mock default.
	env.API.ProfileFunc = func(_ context.Context, token string) (domainauth.Identity, error) {
		env.mu.Lock()
		defer env.mu.Unlock()
		if identity, ok := env.profiles[token]; ok {
			return identity, nil
		}
		return domainauth.Identity{}, &domainauth.AuthenticationError{Message: "unknown token"}
	}

	env.Sessions = service.NewSessionService(service.SessionServiceOptions{
		API:    env.API,
		Store:  env.Store,
		Logger: logger,
	})
	sso := service.NewSSOService(service.SSOServiceOptions{
		Provider: env.Provider,
		Store:    env.Store,
		Roles: authroles.StaticGroupMapper{
			AdminGroup:     "storefront-admins",
			WarehouseGroup: "storefront-warehouse",
			SalesGroup:     "storefront-sales",
			HRGroup:        "storefront-hr",
		},
		Logger: logger,
	})

	env.Handler = NewRouter(RouterServices{
		Sessions: env.Sessions,
		SSO:      sso,
		Catalog: service.NewCatalogService(service.CatalogServiceOptions{
			API:    env.Catalog,
			Cache:  mockcommerce.NewMemoryCatalogCache(),
			Logger: logger,
		}),
		Carts:          service.NewCartService(service.CartServiceOptions{API: env.Carts}),
		Orders:         service.NewOrderService(service.OrderServiceOptions{API: env.Orders}),
		SSOCallbackURL: "http://gateway.test/auth/sso/callback",
		Logger:         logger,
	})

	t.Cleanup(env.Sessions.WaitRevalidation)
	return env
}

// loginAs seeds the credential store with an authenticated session for the
// given identity and returns the matching session cookie.
func (e *testEnv) loginAs(t *testing.T, identity domainauth.Identity) *http.Cookie {
	t.Helper()

	sessionID := "sess-" + identity.ID
	token := "tok-" + identity.ID

	e.mu.Lock()
	e.profiles[token] = identity
	e.mu.Unlock()

	gen, err := e.Store.Generation(context.Background(), sessionID)
	require.NoError(t, err)
	err = e.Store.Save(context.Background(), sessionID, domainauth.Credentials{
		Token:      token,
		Identity:   identity,
		Generation: gen,
	})
	require.NoError(t, err)

	return &http.Cookie{Name: SessionCookieName, Value: sessionID}
}

// setProfile changes what the backend reports for a token, keeping background
// revalidation in step with a test's expected identity.
func (e *testEnv) setProfile(token string, identity domainauth.Identity) {
	e.mu.Lock()
	e.profiles[token] = identity
	e.mu.Unlock()
}

// do runs a request through the router and returns the recorded response.
func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec
}

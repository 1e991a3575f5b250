package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beanfield/storefront-gateway/internal/adapters/memory"
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI      = (*MockAuthAPI)(nil)
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
)

// MockAuthAPI simulates the commerce API's auth surface. Each method can be
// overridden per test; unset methods return a sensible default.
type MockAuthAPI struct {
	LoginFunc         func(ctx context.Context, in ports.LoginInput) (domainauth.Identity, string, error)
	RegisterFunc      func(ctx context.Context, in ports.RegisterInput) error
	ProfileFunc       func(ctx context.Context, token string) (domainauth.Identity, error)
	UpdateProfileFunc func(ctx context.Context, token string, in ports.ProfileUpdate) (domainauth.Identity, error)

	// DefaultIdentity is returned by unset funcs.
	DefaultIdentity domainauth.Identity
	DefaultToken    string

	mu           sync.Mutex
	ProfileCalls int
}

// NewMockAuthAPI creates a MockAuthAPI with a customer identity default.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{
		DefaultIdentity: domainauth.Identity{
			ID:    "user-7",
			Name:  "Mock Customer",
			Email: "mock@example.com",
			Role:  domainauth.RoleCustomer,
		},
		DefaultToken: "mock-token",
	}
}

func (m *MockAuthAPI) Login(ctx context.Context, in ports.LoginInput) (domainauth.Identity, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, in)
	}
	return m.DefaultIdentity, m.DefaultToken, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, in ports.RegisterInput) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil
}

func (m *MockAuthAPI) Profile(ctx context.Context, token string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.ProfileCalls++
	m.mu.Unlock()

	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, token)
	}
	return m.DefaultIdentity, nil
}

func (m *MockAuthAPI) UpdateProfile(ctx context.Context, token string, in ports.ProfileUpdate) (domainauth.Identity, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, token, in)
	}
	return m.DefaultIdentity, nil
}

// MemoryCredentialStore is the in-process credential store, re-exported so
// tests can keep wiring it from this package.
type MemoryCredentialStore = memory.CredentialStore

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return memory.NewCredentialStore()
}

// MockAuthProvider simulates a staff SSO IdP with deterministic state and
// nonce values.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error)

	AuthURL         string
	DefaultIdentity ports.SSOIdentity

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		DefaultIdentity: ports.SSOIdentity{
			UserID:    "staff-1",
			Name:      "Mock Staff",
			Email:     "staff@example.com",
			Groups:    []string{"storefront-admins"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	return m.AuthURL, fmt.Sprintf("state-%d", m.callCount), fmt.Sprintf("nonce-%d", m.callCount), nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.SSOIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	identity := m.DefaultIdentity
	identity.ExpiresAt = time.Now().Add(time.Hour)
	return identity, nil
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

func TestMockAuthProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/auth/sso/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	// Second call should increment counters
	authURL2, state2, nonce2, err2 := provider.Begin(ctx, input)
	require.NoError(t, err2)
	assert.Equal(t, "https://mock-idp/auth", authURL2)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockAuthProvider_Begin_CustomFunc(t *testing.T) {
	provider := &MockAuthProvider{
		BeginFunc: func(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
			return "custom-url", "custom-state", "custom-nonce", nil
		},
	}

	authURL, state, nonce, err := provider.Begin(context.Background(), ports.BeginInput{})

	require.NoError(t, err)
	assert.Equal(t, "custom-url", authURL)
	assert.Equal(t, "custom-state", state)
	assert.Equal(t, "custom-nonce", nonce)
}

func TestMockAuthProvider_Exchange_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "staff-1", identity.UserID)
	assert.Equal(t, "Mock Staff", identity.Name)
	assert.Equal(t, "staff@example.com", identity.Email)
	assert.Equal(t, []string{"storefront-admins"}, identity.Groups)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestMockAuthProvider_Exchange_CustomIdentity(t *testing.T) {
	provider := NewMockAuthProvider()
	provider.DefaultIdentity = ports.SSOIdentity{
		UserID: "staff-9",
		Name:   "Custom Staff",
		Email:  "custom@example.com",
		Groups: []string{"storefront-warehouse", "unrelated"},
	}

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c", State: "s", Nonce: "n"})

	require.NoError(t, err)
	assert.Equal(t, "staff-9", identity.UserID)
	assert.Equal(t, []string{"storefront-warehouse", "unrelated"}, identity.Groups)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestMockAuthAPI_Defaults(t *testing.T) {
	api := NewMockAuthAPI()
	ctx := context.Background()

	identity, token, err := api.Login(ctx, ports.LoginInput{Email: "mock@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "user-7", identity.ID)
	assert.Equal(t, domainauth.RoleCustomer, identity.Role)
	assert.Equal(t, "mock-token", token)

	require.NoError(t, api.Register(ctx, ports.RegisterInput{Email: "new@example.com", Password: "pw", Name: "New"}))

	profile, err := api.Profile(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity, profile)
	assert.Equal(t, 1, api.ProfileCalls)
}

func TestMemoryCredentialStore_AliasesMemoryAdapter(t *testing.T) {
	store := NewMemoryCredentialStore()
	ctx := context.Background()

	// The store behind this alias lives in internal/adapters/memory; the
	// full behavior is covered there. This only verifies the re-export.
	var _ ports.CredentialStore = store

	creds := domainauth.Credentials{
		Token:    "tok-1",
		Identity: domainauth.Identity{ID: "user-123", Role: domainauth.RoleCustomer},
	}
	require.NoError(t, store.Save(ctx, "sess-1", creds))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, creds, got)
}

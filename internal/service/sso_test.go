package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanfield/storefront-gateway/internal/adapters/authroles"
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	mockauth "github.com/beanfield/storefront-gateway/internal/mocks/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

func newSSOService(provider *mockauth.MockAuthProvider, store ports.CredentialStore) *SSOService {
	return NewSSOService(SSOServiceOptions{
		Provider: provider,
		Store:    store,
		Roles: authroles.StaticGroupMapper{
			AdminGroup:     "storefront-admins",
			WarehouseGroup: "storefront-warehouse",
			SalesGroup:     "storefront-sales",
			HRGroup:        "storefront-hr",
		},
	})
}

func TestSSOService_BeginLogin(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	svc := newSSOService(provider, mockauth.NewMemoryCredentialStore())

	result, err := svc.BeginLogin(context.Background(), "http://localhost:8080/auth/sso/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)
}

func TestSSOService_BeginLogin_RequiresRedirectURL(t *testing.T) {
	svc := newSSOService(mockauth.NewMockAuthProvider(), mockauth.NewMemoryCredentialStore())

	_, err := svc.BeginLogin(context.Background(), "")
	assert.Error(t, err)
}

func TestSSOService_CompleteLogin_StoresStaffCredentials(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	store := mockauth.NewMemoryCredentialStore()
	svc := newSSOService(provider, store)
	ctx := context.Background()

	creds, err := svc.CompleteLogin(ctx, "sess-1", CompleteLoginInput{
		Code: "code", State: "state", Nonce: "nonce",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, creds.Identity.Role)
	assert.Equal(t, "staff-1", creds.Identity.ID)
	assert.NotEmpty(t, creds.Token)

	stored, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, creds, stored)
}

func TestSSOService_CompleteLogin_UnmappedGroupsRejected(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.DefaultIdentity.Groups = []string{"unrelated-group"}
	store := mockauth.NewMemoryCredentialStore()
	svc := newSSOService(provider, store)

	_, err := svc.CompleteLogin(context.Background(), "sess-1", CompleteLoginInput{
		Code: "code", State: "state", Nonce: "nonce",
	})
	assert.ErrorIs(t, err, ErrNoStaffRole)

	_, err = store.Get(context.Background(), "sess-1")
	assert.Equal(t, ports.ErrNotFound, err)
}

func TestSSOService_CompleteLogin_ValidatesInputs(t *testing.T) {
	svc := newSSOService(mockauth.NewMockAuthProvider(), mockauth.NewMemoryCredentialStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CompleteLoginInput
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(ctx, "sess-1", tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSSOService_CompleteLogin_LogoutDuringExchangeWins(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	store := mockauth.NewMemoryCredentialStore()
	svc := newSSOService(provider, store)
	ctx := context.Background()

	provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (ports.SSOIdentity, error) {
		require.NoError(t, store.Clear(ctx, "sess-1"))
		return mockauth.NewMockAuthProvider().DefaultIdentity, nil
	}

	_, err := svc.CompleteLogin(ctx, "sess-1", CompleteLoginInput{
		Code: "code", State: "state", Nonce: "nonce",
	})
	assert.ErrorIs(t, err, ports.ErrStaleGeneration)
}

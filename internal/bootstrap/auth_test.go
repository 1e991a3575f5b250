package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/beanfield/storefront-gateway/config"
	mockauth "github.com/beanfield/storefront-gateway/internal/mocks/auth"
)

func TestBuildSSOServiceDisabledMode(t *testing.T) {
	svc := BuildSSOService(SSOConfig{
		Auth:   config.AuthConfig{Mode: config.AuthModeDisabled},
		Store:  mockauth.NewMemoryCredentialStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if svc != nil {
		t.Fatal("expected nil SSO service when auth mode is disabled")
	}
}

func TestBuildSSOServiceMockMode(t *testing.T) {
	svc := BuildSSOService(SSOConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			StaffGroups: config.StaffGroupsConfig{
				Admin: "storefront-admins",
			},
		},
		Store:  mockauth.NewMemoryCredentialStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if svc == nil {
		t.Fatal("expected SSO service in mock auth mode")
	}
}

func TestBuildSSOServiceOIDCRequiresFullConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		oidc config.OIDCConfig
	}{
		{
			name: "missing discovery URL",
			oidc: config.OIDCConfig{ClientID: "gw", ClientSecret: "secret"},
		},
		{
			name: "missing client secret",
			oidc: config.OIDCConfig{
				ClientID:     "gw",
				DiscoveryURL: "https://login.example.com/.well-known/openid-configuration",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := BuildSSOService(SSOConfig{
				Auth: config.AuthConfig{
					Mode: config.AuthModeOIDC,
					OIDC: tt.oidc,
				},
				Store:  mockauth.NewMemoryCredentialStore(),
				Logger: logger,
			})
			if svc != nil {
				t.Fatal("expected nil SSO service when OIDC config is incomplete")
			}
		})
	}
}

func TestIssuerFromDiscoveryURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://login.example.com/.well-known/openid-configuration", "https://login.example.com"},
		{"https://login.example.com/realms/shop/.well-known/openid-configuration", "https://login.example.com/realms/shop"},
		{"https://login.example.com", "https://login.example.com"},
		{"https://login.example.com/", "https://login.example.com"},
	}
	for _, tt := range tests {
		if got := issuerFromDiscoveryURL(tt.in); got != tt.want {
			t.Errorf("issuerFromDiscoveryURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package bootstrap

import (
	"log/slog"
	"strings"

	"github.com/beanfield/storefront-gateway/config"
	"github.com/beanfield/storefront-gateway/internal/adapters/authroles"
	"github.com/beanfield/storefront-gateway/internal/adapters/devauth"
	"github.com/beanfield/storefront-gateway/internal/adapters/oidc"
	"github.com/beanfield/storefront-gateway/internal/ports"
	"github.com/beanfield/storefront-gateway/internal/service"
)

// SSOConfig contains configuration for the staff SSO service.
type SSOConfig struct {
	Auth   config.AuthConfig
	Store  ports.CredentialStore
	Logger *slog.Logger
}

// BuildSSOService creates the staff SSO service based on the configured auth
// mode. Returns nil when SSO is disabled or the configuration is incomplete;
// the router simply does not register the SSO routes in that case.
func BuildSSOService(cfg SSOConfig) *service.SSOService {
	roleMapper := authroles.StaticGroupMapper{
		AdminGroup:     cfg.Auth.StaffGroups.Admin,
		WarehouseGroup: cfg.Auth.StaffGroups.Warehouse,
		SalesGroup:     cfg.Auth.StaffGroups.Sales,
		HRGroup:        cfg.Auth.StaffGroups.HR,
	}

	var provider ports.AuthProvider
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		provider = buildDevProvider(cfg)
	case config.AuthModeOIDC:
		provider = buildOIDCProvider(cfg)
	case config.AuthModeDisabled:
		return nil
	default:
		return nil
	}
	if provider == nil {
		return nil
	}

	return service.NewSSOService(service.SSOServiceOptions{
		Provider: provider,
		Store:    cfg.Store,
		Roles:    roleMapper,
		Logger:   cfg.Logger,
	})
}

func buildDevProvider(cfg SSOConfig) ports.AuthProvider {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID: "dev-staff",
		Name:   "Dev Staff",
		Email:  "dev-staff@example.com",
		Groups: []string{cfg.Auth.StaffGroups.Admin},
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, staff SSO disabled", "error", err)
		}
		return nil
	}
	return prov
}

func buildOIDCProvider(cfg SSOConfig) ports.AuthProvider {
	oc := cfg.Auth.OIDC
	if oc.DiscoveryURL == "" || oc.ClientID == "" || oc.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOIDC selected but required config missing; staff SSO disabled",
				"discovery_url_empty", oc.DiscoveryURL == "",
				"client_id_empty", oc.ClientID == "",
				"client_secret_empty", oc.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		RedirectURL:  oc.RedirectURL,
		Scope:        oc.Scope,
		IssuerURL:    issuerFromDiscoveryURL(oc.DiscoveryURL),
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, staff SSO disabled", "error", err)
		}
		return nil
	}
	return prov
}

// issuerFromDiscoveryURL accepts either a bare issuer or a full discovery
// document URL and returns the issuer.
func issuerFromDiscoveryURL(u string) string {
	return strings.TrimSuffix(strings.TrimSuffix(u, "/.well-known/openid-configuration"), "/")
}

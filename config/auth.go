package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the staff authentication mode for the gateway. The
// customer credentials flow is always on; this only selects how staff sign in.
type AuthMode string

const (
	// AuthModeOIDC uses the corporate OIDC identity provider.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
	// AuthModeDisabled turns the staff SSO routes off entirely.
	AuthModeDisabled AuthMode = "disabled"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock", "disabled":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock, disabled)", v)
	}
}

// OIDCConfig contains staff SSO configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"storefront-gateway"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// StaffGroupsConfig maps IdP group names to gateway roles. An empty group
// name never matches, so unset groups simply grant nobody that role.
type StaffGroupsConfig struct {
	Admin     string `env:"ADMIN"     envDefault:"storefront-admins"`
	Warehouse string `env:"WAREHOUSE" envDefault:"storefront-warehouse"`
	Sales     string `env:"SALES"     envDefault:"storefront-sales"`
	HR        string `env:"HR"        envDefault:"storefront-hr"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which staff authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"disabled"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// StaffGroups maps IdP groups to back-office roles.
	StaffGroups StaffGroupsConfig `envPrefix:"STAFF_GROUP_"`
}

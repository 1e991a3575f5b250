package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// ErrNoStaffRole is returned when an IdP identity maps to no application
// role. The back-office stays closed to such users.
var ErrNoStaffRole = errors.New("identity has no staff role")

// SSOServiceOptions groups dependencies for SSOService.
type SSOServiceOptions struct {
	Provider ports.AuthProvider
	Store    ports.CredentialStore
	Roles    ports.RoleMapper
	Logger   *slog.Logger
}

// SSOService orchestrates the staff SSO flow: begin against the IdP,
// exchange the callback code, map IdP groups to a role, and persist
// credentials into the same store the customer flow uses.
type SSOService struct {
	provider ports.AuthProvider
	store    ports.CredentialStore
	roles    ports.RoleMapper
	logger   *slog.Logger
}

// NewSSOService constructs a new SSOService.
func NewSSOService(opts SSOServiceOptions) *SSOService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SSOService{
		provider: opts.Provider,
		store:    opts.Store,
		roles:    opts.Roles,
		logger:   logger,
	}
}

// BeginLoginResult contains the result of beginning an SSO flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates the flow and returns the IdP auth URL with state and
// nonce for the handler to pin in cookies.
func (s *SSOService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin sso flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an SSO flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the code, maps groups to a role, and stores
// credentials for the session. Staff never hold a commerce API token, so a
// gateway-local token is minted; commerce calls are not available to them.
func (s *SSOService) CompleteLogin(ctx context.Context, sessionID string, in CompleteLoginInput) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, errors.New("session ID is required")
	}
	if in.Code == "" {
		return domainauth.Credentials{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainauth.Credentials{}, errors.New("state parameter is required")
	}
	if in.Nonce == "" {
		return domainauth.Credentials{}, errors.New("nonce parameter is required")
	}

	gen, err := s.store.Generation(ctx, sessionID)
	if err != nil {
		return domainauth.Credentials{}, fmt.Errorf("read session generation: %w", err)
	}

	ssoIdentity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  in.Code,
		State: in.State,
		Nonce: in.Nonce,
	})
	if err != nil {
		return domainauth.Credentials{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	role := s.roles.Map(ssoIdentity.Groups)
	if !role.Valid() {
		s.logger.Warn("sso identity mapped to no role",
			"user_id", ssoIdentity.UserID, "groups", ssoIdentity.Groups)
		return domainauth.Credentials{}, ErrNoStaffRole
	}

	creds := domainauth.Credentials{
		Token: "sso:" + uuid.NewString(),
		Identity: domainauth.Identity{
			ID:    ssoIdentity.UserID,
			Name:  ssoIdentity.Name,
			Email: ssoIdentity.Email,
			Role:  role,
		},
		Generation: gen,
	}
	if saveErr := s.store.Save(ctx, sessionID, creds); saveErr != nil {
		if errors.Is(saveErr, ports.ErrStaleGeneration) {
			return domainauth.Credentials{}, ports.ErrStaleGeneration
		}
		return domainauth.Credentials{}, fmt.Errorf("save credentials: %w", saveErr)
	}

	s.logger.Info("staff sso login",
		"user_id", ssoIdentity.UserID, "role", role.String())
	return creds, nil
}

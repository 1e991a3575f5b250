package ports

// Package ports defines interfaces (hexagonal ports) for the gateway.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// LoginInput carries the credentials posted to the commerce API.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries new-account fields. Registration never returns a
// token; a successful register is followed by an explicit login.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// ProfileUpdate carries partial identity fields for a profile update.
// Empty fields are omitted from the request.
type ProfileUpdate struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// AuthAPI is the auth surface of the upstream commerce API.
type AuthAPI interface {
	// Login exchanges credentials for an identity and bearer token. The
	// adapter normalizes both the flat and the nested response shape
	// before anything reaches the session service.
	Login(ctx context.Context, in LoginInput) (domainauth.Identity, string, error)

	// Register creates an account. No token is issued.
	Register(ctx context.Context, in RegisterInput) error

	// Profile revalidates a stored token. Any non-2xx answer means the
	// session is invalid.
	Profile(ctx context.Context, token string) (domainauth.Identity, error)

	// UpdateProfile sends partial fields and returns the updated identity
	// to merge into the session.
	UpdateProfile(ctx context.Context, token string, in ProfileUpdate) (domainauth.Identity, error)
}

// CredentialStore persists the token/identity pair for each gateway
// session. Implementations keep the pairing atomic: after any operation the
// store holds both records or neither.
type CredentialStore interface {
	// Save writes the pair. It fails with ErrStaleGeneration when the
	// stored generation no longer matches creds.Generation, which happens
	// when a logout landed while the originating request was in flight.
	Save(ctx context.Context, sessionID string, creds domainauth.Credentials) error

	// Get returns the stored pair, or ErrNotFound.
	Get(ctx context.Context, sessionID string) (domainauth.Credentials, error)

	// Generation returns the session's current generation counter.
	// Sessions that have never been written are at generation zero.
	Generation(ctx context.Context, sessionID string) (uint64, error)

	// Clear removes the pair and bumps the generation so stale in-flight
	// responses can be recognized. Clearing an absent session still bumps.
	Clear(ctx context.Context, sessionID string) error
}

// ErrNotFound is returned when a session has no stored credentials.
type notFoundError struct{}

func (notFoundError) Error() string { return "credentials not found" }

var ErrNotFound error = notFoundError{}

// ErrStaleGeneration is returned when a write loses to an intervening
// logout. Callers discard the result rather than repopulating the session.
type staleGenerationError struct{}

func (staleGenerationError) Error() string { return "stale session generation" }

var ErrStaleGeneration error = staleGenerationError{}

// BeginInput carries inputs for initiating a staff SSO flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the SSO code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SSOIdentity is what a staff SSO provider yields before role mapping.
type SSOIdentity struct {
	UserID    string
	Name      string
	Email     string
	Groups    []string
	ExpiresAt time.Time
}

// AuthProvider initiates and completes a staff SSO flow against an IdP.
// Used for the back-office when AUTH_MODE=oidc; customers always use the
// credentials flow.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the flow, verifying state and nonce.
	Exchange(ctx context.Context, in ExchangeInput) (SSOIdentity, error)
}

// RoleMapper maps IdP groups to an application role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API    ports.AuthAPI
	Store  ports.CredentialStore
	Logger *slog.Logger

	// RevalidateTimeout bounds the background profile check. Defaults to
	// 10 seconds.
	RevalidateTimeout time.Duration
}

// SessionService orchestrates the customer auth lifecycle: login, session
// restore with background revalidation, profile updates, and logout.
type SessionService struct {
	api    ports.AuthAPI
	store  ports.CredentialStore
	logger *slog.Logger

	revalidateTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
	wg       sync.WaitGroup
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RevalidateTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SessionService{
		api:               opts.API,
		store:             opts.Store,
		logger:            logger,
		revalidateTimeout: timeout,
		inFlight:          make(map[string]struct{}),
	}
}

// NewSessionID creates a cryptographically secure random session ID.
func NewSessionID() string {
	return uuid.New().String()
}

// Initialize restores a session's credentials. Stored credentials are
// trusted immediately so the caller can render without waiting on the
// backend; a background revalidation then confirms the token is still
// accepted and clears the session if it is not. Sessions with nothing
// stored come back as guest credentials with no error.
func (s *SessionService) Initialize(ctx context.Context, sessionID string) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, errors.New("session ID is required")
	}

	creds, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domainauth.Credentials{}, nil
		}
		return domainauth.Credentials{}, fmt.Errorf("get credentials: %w", err)
	}

	s.spawnRevalidation(sessionID, creds)
	return creds, nil
}

// spawnRevalidation starts at most one background revalidation per session.
func (s *SessionService) spawnRevalidation(sessionID string, creds domainauth.Credentials) {
	s.mu.Lock()
	if _, running := s.inFlight[sessionID]; running {
		s.mu.Unlock()
		return
	}
	s.inFlight[sessionID] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, sessionID)
			s.mu.Unlock()
		}()

		// The originating request's context ends when the response is
		// written, so the check runs on its own deadline.
		ctx, cancel := context.WithTimeout(context.Background(), s.revalidateTimeout)
		defer cancel()
		s.revalidate(ctx, sessionID, creds)
	}()
}

func (s *SessionService) revalidate(ctx context.Context, sessionID string, creds domainauth.Credentials) {
	identity, err := s.api.Profile(ctx, creds.Token)
	if err != nil {
		var netErr *domainauth.NetworkError
		if errors.As(err, &netErr) {
			// Backend unreachable is not a verdict on the token.
			s.logger.Warn("session revalidation skipped, backend unreachable",
				"session_id", sessionID, "error", err)
			return
		}
		s.logger.Info("session revalidated as expired, clearing",
			"session_id", sessionID)
		if clearErr := s.store.Clear(ctx, sessionID); clearErr != nil {
			s.logger.Error("clear expired session", "session_id", sessionID, "error", clearErr)
		}
		return
	}

	creds.Identity = creds.Identity.Merge(identity)
	if saveErr := s.store.Save(ctx, sessionID, creds); saveErr != nil {
		if errors.Is(saveErr, ports.ErrStaleGeneration) {
			// A logout landed while we were checking; its outcome wins.
			return
		}
		s.logger.Error("save revalidated credentials", "session_id", sessionID, "error", saveErr)
	}
}

// WaitRevalidation blocks until in-flight background revalidations finish.
// Used by shutdown and tests.
func (s *SessionService) WaitRevalidation() {
	s.wg.Wait()
}

// Login authenticates against the commerce API and stores the resulting
// credentials. A logout racing the login wins: the store rejects the write
// and the login result is discarded.
func (s *SessionService) Login(ctx context.Context, sessionID string, in ports.LoginInput) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, errors.New("session ID is required")
	}

	// Capture the generation before the network call so an intervening
	// logout is detectable when the response comes back.
	gen, err := s.store.Generation(ctx, sessionID)
	if err != nil {
		return domainauth.Credentials{}, fmt.Errorf("read session generation: %w", err)
	}

	identity, token, err := s.api.Login(ctx, in)
	if err != nil {
		return domainauth.Credentials{}, err
	}

	creds := domainauth.Credentials{
		Token:      token,
		Identity:   identity,
		Generation: gen,
	}
	if saveErr := s.store.Save(ctx, sessionID, creds); saveErr != nil {
		if errors.Is(saveErr, ports.ErrStaleGeneration) {
			s.logger.Info("login result discarded, session was cleared mid-flight",
				"session_id", sessionID)
			return domainauth.Credentials{}, ports.ErrStaleGeneration
		}
		return domainauth.Credentials{}, fmt.Errorf("save credentials: %w", saveErr)
	}
	return creds, nil
}

// Register creates an account. The caller logs in explicitly afterwards;
// registration never seeds a session.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.api.Register(ctx, in)
}

// Logout clears the session's credentials. It is idempotent and succeeds
// even when nothing is stored; the generation bump still happens so
// in-flight logins are discarded.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Current returns the stored credentials, or guest credentials when nothing
// is stored. Unlike Initialize it never triggers revalidation.
func (s *SessionService) Current(ctx context.Context, sessionID string) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, nil
	}
	creds, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domainauth.Credentials{}, nil
		}
		return domainauth.Credentials{}, fmt.Errorf("get credentials: %w", err)
	}
	return creds, nil
}

// UpdateProfile sends the changed fields to the backend and merges the
// answer into the stored identity.
func (s *SessionService) UpdateProfile(ctx context.Context, sessionID string, in ports.ProfileUpdate) (domainauth.Identity, error) {
	creds, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return domainauth.Identity{}, domainauth.ErrSessionExpired
		}
		return domainauth.Identity{}, fmt.Errorf("get credentials: %w", err)
	}

	updated, err := s.api.UpdateProfile(ctx, creds.Token, in)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionExpired) {
			if clearErr := s.store.Clear(ctx, sessionID); clearErr != nil {
				s.logger.Error("clear expired session", "session_id", sessionID, "error", clearErr)
			}
		}
		return domainauth.Identity{}, err
	}

	creds.Identity = creds.Identity.Merge(updated)
	if saveErr := s.store.Save(ctx, sessionID, creds); saveErr != nil {
		if errors.Is(saveErr, ports.ErrStaleGeneration) {
			return domainauth.Identity{}, ports.ErrStaleGeneration
		}
		return domainauth.Identity{}, fmt.Errorf("save credentials: %w", saveErr)
	}
	return creds.Identity, nil
}

// Invalidate clears a session whose token the backend rejected mid-request.
// Called by the HTTP layer when any handler surfaces ErrSessionExpired.
func (s *SessionService) Invalidate(ctx context.Context, sessionID string) error {
	return s.Logout(ctx, sessionID)
}

package postgres

// Package postgres provides a Postgres-backed credential store, selected
// with SESSION_STORE_DRIVER=postgres. One row per session holds the
// token/identity pair and the generation counter, so the pairing is atomic
// by construction.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// CredentialStore persists session credentials in the gateway_sessions table.
type CredentialStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewCredentialStore creates a Postgres-backed credential store.
func NewCredentialStore(pool *pgxpool.Pool, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CredentialStore{pool: pool, ttl: ttl}
}

// EnsureSchema creates the backing table when it does not exist.
func (s *CredentialStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS gateway_sessions (
			id         text PRIMARY KEY,
			token      text,
			identity   jsonb,
			generation bigint NOT NULL DEFAULT 0,
			expires_at timestamptz NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create gateway_sessions: %w", err)
	}
	return nil
}

func (s *CredentialStore) Save(ctx context.Context, sessionID string, creds domainauth.Credentials) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !creds.Authenticated() {
		return errors.New("token and identity must both be present")
	}

	identityJSON, err := json.Marshal(creds.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	expiresAt := time.Now().Add(s.ttl)

	tag, err := s.pool.Exec(ctx, `
		UPDATE gateway_sessions
		SET token = $2, identity = $3, expires_at = $4
		WHERE id = $1 AND generation = $5`,
		sessionID, creds.Token, identityJSON, expiresAt, creds.Generation)
	if err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// No row matched: either the session exists at another generation
	// (a logout won the race) or it has never been written.
	var current uint64
	err = s.pool.QueryRow(ctx,
		`SELECT generation FROM gateway_sessions WHERE id = $1`, sessionID).Scan(&current)
	switch {
	case err == nil:
		return ports.ErrStaleGeneration
	case errors.Is(err, pgx.ErrNoRows):
		// fall through to insert
	default:
		return fmt.Errorf("read generation: %w", err)
	}

	if creds.Generation != 0 {
		return ports.ErrStaleGeneration
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO gateway_sessions (id, token, identity, generation, expires_at)
		VALUES ($1, $2, $3, 0, $4)`,
		sessionID, creds.Token, identityJSON, expiresAt)
	if err != nil {
		// A concurrent writer inserted the row between our probe and the
		// insert; treat it like any other lost race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ports.ErrStaleGeneration
		}
		return fmt.Errorf("insert credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, sessionID string) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	var (
		token        *string
		identityJSON []byte
		generation   uint64
		expiresAt    time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT token, identity, generation, expires_at
		FROM gateway_sessions WHERE id = $1`, sessionID).
		Scan(&token, &identityJSON, &generation, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.Credentials{}, ports.ErrNotFound
		}
		return domainauth.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	// A cleared session keeps its row (and generation) with a null pair.
	if token == nil || len(identityJSON) == 0 {
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	if time.Now().After(expiresAt) {
		if clearErr := s.Clear(ctx, sessionID); clearErr != nil {
			return domainauth.Credentials{}, fmt.Errorf("cleanup expired credentials: %w", clearErr)
		}
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	var identity domainauth.Identity
	if unmarshalErr := json.Unmarshal(identityJSON, &identity); unmarshalErr != nil {
		return domainauth.Credentials{}, fmt.Errorf("unmarshal identity: %w", unmarshalErr)
	}

	return domainauth.Credentials{Token: *token, Identity: identity, Generation: generation}, nil
}

func (s *CredentialStore) Generation(ctx context.Context, sessionID string) (uint64, error) {
	var generation uint64
	err := s.pool.QueryRow(ctx,
		`SELECT generation FROM gateway_sessions WHERE id = $1`, sessionID).Scan(&generation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read generation: %w", err)
	}
	return generation, nil
}

func (s *CredentialStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO gateway_sessions (id, token, identity, generation, expires_at)
		VALUES ($1, NULL, NULL, 1, $2)
		ON CONFLICT (id) DO UPDATE
		SET token = NULL, identity = NULL,
		    generation = gateway_sessions.generation + 1,
		    expires_at = EXCLUDED.expires_at`,
		sessionID, time.Now().Add(s.ttl))
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

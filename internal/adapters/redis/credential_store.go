package redis

// Package redis provides Redis-backed adapters for the storefront gateway.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// CredentialStore keeps each session's token/identity pair in Redis under
// two keys plus a generation counter. The pair is written and removed
// together so the store never holds one half.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCredentialStore creates a Redis-backed credential store. ttl bounds
// how long an idle session survives.
func NewCredentialStore(client redis.UniversalClient, ttl time.Duration) *CredentialStore {
	return NewCredentialStoreWithPrefix(client, "creds:", ttl)
}

// NewCredentialStoreWithPrefix creates a credential store with a custom key prefix.
func NewCredentialStoreWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CredentialStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *CredentialStore) tokenKey(id string) string { return s.prefix + id + ":token" }
func (s *CredentialStore) userKey(id string) string  { return s.prefix + id + ":user" }
func (s *CredentialStore) genKey(id string) string   { return s.prefix + id + ":gen" }

// saveScript compares the stored generation and writes the triple in one
// server-side step. A Clear bumping the counter between a client-side read
// and write can therefore never be overwritten by a stale save.
var saveScript = redis.NewScript(`
local current = redis.call('GET', KEYS[3])
if not current then
  current = '0'
end
if current ~= ARGV[3] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[4])
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[4])
redis.call('SET', KEYS[3], ARGV[3], 'PX', ARGV[4])
return 1
`)

func (s *CredentialStore) Save(ctx context.Context, sessionID string, creds domainauth.Credentials) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !creds.Authenticated() {
		return errors.New("token and identity must both be present")
	}

	userJSON, err := json.Marshal(creds.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	saved, err := saveScript.Run(ctx, s.client,
		[]string{s.tokenKey(sessionID), s.userKey(sessionID), s.genKey(sessionID)},
		creds.Token,
		userJSON,
		strconv.FormatUint(creds.Generation, 10),
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("redis save credentials: %w", err)
	}
	if saved == 0 {
		return ports.ErrStaleGeneration
	}
	return nil
}

func (s *CredentialStore) Get(ctx context.Context, sessionID string) (domainauth.Credentials, error) {
	if sessionID == "" {
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	vals, err := s.client.MGet(ctx, s.tokenKey(sessionID), s.userKey(sessionID)).Result()
	if err != nil {
		return domainauth.Credentials{}, fmt.Errorf("redis get credentials: %w", err)
	}

	token, hasToken := vals[0].(string)
	userJSON, hasUser := vals[1].(string)

	if !hasToken && !hasUser {
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	// A half-written pair is invalid. Drop both and report not found
	// rather than letting a token-only or identity-only record leak out.
	if hasToken != hasUser {
		if clearErr := s.Clear(ctx, sessionID); clearErr != nil {
			return domainauth.Credentials{}, fmt.Errorf("cleanup partial credentials: %w", clearErr)
		}
		return domainauth.Credentials{}, ports.ErrNotFound
	}

	var identity domainauth.Identity
	if unmarshalErr := json.Unmarshal([]byte(userJSON), &identity); unmarshalErr != nil {
		return domainauth.Credentials{}, fmt.Errorf("unmarshal identity: %w", unmarshalErr)
	}

	gen, err := s.Generation(ctx, sessionID)
	if err != nil {
		return domainauth.Credentials{}, err
	}

	return domainauth.Credentials{Token: token, Identity: identity, Generation: gen}, nil
}

func (s *CredentialStore) Generation(ctx context.Context, sessionID string) (uint64, error) {
	val, err := s.client.Get(ctx, s.genKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	gen, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse generation: %w", err)
	}
	return gen, nil
}

func (s *CredentialStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.tokenKey(sessionID), s.userKey(sessionID))
		pipe.Incr(ctx, s.genKey(sessionID))
		pipe.Expire(ctx, s.genKey(sessionID), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis clear credentials: %w", err)
	}
	return nil
}

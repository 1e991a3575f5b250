// Package memory provides an in-process credential store. It backs the
// `memory` session driver for single-instance deployments and doubles as the
// store for tests; sessions do not survive a restart.
package memory

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

var _ ports.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps credentials in process memory with the same
// generation semantics as the Redis and Postgres adapters.
type CredentialStore struct {
	mu          sync.Mutex
	credentials map[string]domainauth.Credentials
	generations map[string]uint64
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		credentials: make(map[string]domainauth.Credentials),
		generations: make(map[string]uint64),
	}
}

func (s *CredentialStore) Save(_ context.Context, sessionID string, creds domainauth.Credentials) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !creds.Authenticated() {
		return errors.New("token and identity must both be present")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[sessionID] != creds.Generation {
		return ports.ErrStaleGeneration
	}
	s.credentials[sessionID] = creds
	return nil
}

func (s *CredentialStore) Get(_ context.Context, sessionID string) (domainauth.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds, ok := s.credentials[sessionID]
	if !ok {
		return domainauth.Credentials{}, ports.ErrNotFound
	}
	return creds, nil
}

func (s *CredentialStore) Generation(_ context.Context, sessionID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[sessionID], nil
}

func (s *CredentialStore) Clear(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, sessionID)
	s.generations[sessionID]++
	return nil
}

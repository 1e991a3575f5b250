package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/testutil"
)

func TestGetSessionFromContext(t *testing.T) {
	// No session
	if s, ok := GetSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}

	// With session
	sess := &domainauth.Session{ID: "abc", Credentials: testutil.NewCredentials().Build()}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)

	// Nil session leaves the context untouched
	assert.Equal(t, context.Background(), SetSessionInContext(context.Background(), nil))
}

func TestIdentityFromContext(t *testing.T) {
	// No session => nil
	assert.Nil(t, IdentityFromContext(context.Background()))

	// Session without credentials => nil
	guest := &domainauth.Session{ID: "g"}
	assert.Nil(t, IdentityFromContext(SetSessionInContext(context.Background(), guest)))

	// Authenticated session => identity copy
	identity := testutil.AdminIdentity()
	sess := &domainauth.Session{
		ID:          "a",
		Credentials: testutil.NewCredentials().WithIdentity(identity).Build(),
	}
	got := IdentityFromContext(SetSessionInContext(context.Background(), sess))
	if assert.NotNil(t, got) {
		assert.Equal(t, identity, *got)
	}
}

func TestTokenFromContext(t *testing.T) {
	assert.Empty(t, TokenFromContext(context.Background()))

	sess := &domainauth.Session{
		ID:          "s",
		Credentials: testutil.NewCredentials().WithToken("bearer-123").Build(),
	}
	assert.Equal(t, "bearer-123", TokenFromContext(SetSessionInContext(context.Background(), sess)))
}

package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
	"github.com/beanfield/storefront-gateway/internal/testutil"
)

// recordingInvalidator captures Invalidate calls.
type recordingInvalidator struct {
	sessionIDs []string
	err        error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, sessionID string) error {
	r.sessionIDs = append(r.sessionIDs, sessionID)
	return r.err
}

func expiredSessionRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	session := &domainauth.Session{
		ID:          "sess-expired",
		Credentials: testutil.NewCredentials().Build(),
	}
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func TestServiceErrorWriter_SessionExpiredClearsAndPointsAtLogin(t *testing.T) {
	invalidator := &recordingInvalidator{}
	writer := &ServiceErrorWriter{Sessions: invalidator}

	rec := httptest.NewRecorder()
	writer.Write(rec, expiredSessionRequest("/api/orders"), domainauth.ErrSessionExpired)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"sess-expired"}, invalidator.sessionIDs)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "session_expired", body["error"])
	assert.Equal(t, "/login?return_to=%2Fapi%2Forders", body["redirect_to"])

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestServiceErrorWriter_SessionExpiredRedirectsBrowsers(t *testing.T) {
	writer := &ServiceErrorWriter{Sessions: &recordingInvalidator{}}

	req := expiredSessionRequest("/account/orders")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	rec := httptest.NewRecorder()
	writer.Write(rec, req, domainauth.ErrSessionExpired)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?return_to=%2Faccount%2Forders", rec.Header().Get("Location"))
}

func TestServiceErrorWriter_StaleGenerationIsConflict(t *testing.T) {
	writer := &ServiceErrorWriter{}

	rec := httptest.NewRecorder()
	writer.Write(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), ports.ErrStaleGeneration)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "login_superseded", body["error"])
}

func TestServiceErrorWriter_WrappedErrorsStillMatch(t *testing.T) {
	writer := &ServiceErrorWriter{}

	wrapped := errors.Join(errors.New("login: backend call"), &domainauth.AuthenticationError{Message: "nope"})
	rec := httptest.NewRecorder()
	writer.Write(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), wrapped)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServiceErrorWriter_UnknownErrorIsOpaque500(t *testing.T) {
	writer := &ServiceErrorWriter{}

	rec := httptest.NewRecorder()
	writer.Write(rec, httptest.NewRequest(http.MethodGet, "/api/home", nil), errors.New("pgx: connection pool exhausted"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error"])
	// Internal detail never leaks to the client.
	assert.NotContains(t, rec.Body.String(), "pgx")
}

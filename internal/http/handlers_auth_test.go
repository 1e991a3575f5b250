package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/guard"
	"github.com/beanfield/storefront-gateway/internal/ports"
	"github.com/beanfield/storefront-gateway/internal/testutil"
)

func TestAuthHandlers_LoginReturnsUserAndLanding(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"mock@example.com","password":"secret"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User       map[string]any `json:"user"`
		RedirectTo string         `json:"redirect_to"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-7", body.User["id"])
	assert.Equal(t, "customer", body.User["role"])
	assert.Equal(t, "/", body.RedirectTo)
}

func TestAuthHandlers_LoginHonorsReturnTo(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login?return_to=/api/orders",
		strings.NewReader(`{"email":"mock@example.com","password":"secret"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/api/orders", body["redirect_to"])
}

func TestAuthHandlers_StaffLoginLandsOnTheirSection(t *testing.T) {
	env := newTestEnv(t)
	env.API.DefaultIdentity = testutil.WarehouseIdentity()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"warehouse@example.com","password":"secret"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/admin/warehouse", body["redirect_to"])
}

func TestAuthHandlers_LoginRejectsMissingCredentials(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"mock@example.com"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_credentials", body["error"])
}

func TestAuthHandlers_LoginMapsAuthenticationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.API.LoginFunc = func(context.Context, ports.LoginInput) (domainauth.Identity, string, error) {
		return domainauth.Identity{}, "", &domainauth.AuthenticationError{Message: "bad password"}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"mock@example.com","password":"wrong"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication_failed", body["error"])
}

func TestAuthHandlers_LoginMapsValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.API.LoginFunc = func(context.Context, ports.LoginInput) (domainauth.Identity, string, error) {
		return domainauth.Identity{}, "", &domainauth.ValidationError{
			Message: "invalid input",
			Fields:  map[string]string{"email": "must be a valid address"},
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nope","password":"secret"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, "must be a valid address", body.Fields["email"])
}

func TestAuthHandlers_RegisterValidatesRequiredFields(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"New Customer"}`))
	rec := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"New Customer","email":"new@example.com","password":"secret"}`))
	rec = env.do(t, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandlers_LogoutClearsSessionAndCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginAs(t, testutil.NewIdentity().Build())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed_out", body["status"])
	assert.Equal(t, guard.LoginPath, body["redirect_to"])

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	env.Sessions.WaitRevalidation()
	_, err := env.Store.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAuthHandlers_LogoutIsIdempotentForGuests(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandlers_StatusReflectsAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["authenticated"])

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(env.loginAs(t, testutil.NewIdentity().Build()))
	rec = env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
}

func TestAuthHandlers_ProfileRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
}

func TestAuthHandlers_UpdateProfileMergesAndPersists(t *testing.T) {
	env := newTestEnv(t)
	identity := testutil.NewIdentity().Build()
	cookie := env.loginAs(t, identity)

	env.API.UpdateProfileFunc = func(_ context.Context, _ string, in ports.ProfileUpdate) (domainauth.Identity, error) {
		return domainauth.Identity{Phone: in.Phone}, nil
	}
	updated := identity
	updated.Phone = "555-0100"
	env.setProfile("tok-"+identity.ID, updated)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile",
		strings.NewReader(`{"phone":"555-0100"}`))
	req.AddCookie(cookie)
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "555-0100", body["phone"])
	assert.Equal(t, identity.Name, body["name"])

	env.Sessions.WaitRevalidation()
	creds, err := env.Store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", creds.Identity.Phone)
}

func TestAuthHandlers_UpdateProfileRejectsEmptyPayload(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(`{}`))
	req.AddCookie(env.loginAs(t, testutil.NewIdentity().Build()))
	rec := env.do(t, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "empty_update", body["error"])
}

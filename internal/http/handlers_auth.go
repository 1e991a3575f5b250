package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/domain/nav"
	"github.com/beanfield/storefront-gateway/internal/guard"
	"github.com/beanfield/storefront-gateway/internal/ports"
	"github.com/beanfield/storefront-gateway/internal/service"
)

// SessionServiceInterface defines the session operations the auth handlers need.
type SessionServiceInterface interface {
	Login(ctx context.Context, sessionID string, in ports.LoginInput) (domainauth.Credentials, error)
	Register(ctx context.Context, in ports.RegisterInput) error
	Logout(ctx context.Context, sessionID string) error
	UpdateProfile(ctx context.Context, sessionID string, in ports.ProfileUpdate) (domainauth.Identity, error)
	Invalidate(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the customer credentials flow.
type AuthHandlers struct {
	Svc          SessionServiceInterface
	Errors       *ServiceErrorWriter
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is the login form payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identityPayload shapes an identity for API responses.
func identityPayload(identity domainauth.Identity) map[string]any {
	return map[string]any{
		"id":      identity.ID,
		"name":    identity.Name,
		"email":   identity.Email,
		"phone":   identity.Phone,
		"address": identity.Address,
		"role":    identity.Role.String(),
	}
}

// Login handles credential login.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	session, _ := GetSessionFromContext(r.Context())
	creds, err := h.Svc.Login(r.Context(), session.ID, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}

	returnTo := safeRedirectPath(r.URL.Query().Get("return_to"))
	if returnTo == "/" {
		returnTo = nav.LandingPath(creds.Identity.Role)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":        identityPayload(creds.Identity),
		"redirect_to": returnTo,
	})
}

// registerRequest is the registration form payload.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates an account. The client follows up with a login; no
// session state changes here.
// POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_fields",
			Err:     errors.New("name, email, and password are required"),
		})
		return
	}

	err := h.Svc.Register(r.Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// Logout clears the session. Always succeeds, even for guests, and the
// response is marked uncacheable so no intermediary replays a logged-in
// page.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := GetSessionFromContext(r.Context())
	if err := h.Svc.Logout(r.Context(), session.ID); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	clearCookie(w, r, SessionCookieName, h.CookieDomain)
	w.Header().Set("Cache-Control", "no-store")

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "signed_out",
		"redirect_to": guard.LoginPath,
	})
}

// Status returns the current authentication state.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session, ok := GetSessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          identityPayload(session.Credentials.Identity),
	})
}

// Profile returns the stored identity.
// GET /api/auth/profile.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	session, ok := GetSessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		h.Errors.Write(w, r, domainauth.ErrSessionExpired)
		return
	}
	WriteJSON(w, http.StatusOK, identityPayload(session.Credentials.Identity))
}

// profileUpdateRequest carries the editable profile fields.
type profileUpdateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile forwards changed fields to the backend and returns the
// merged identity.
// PUT /api/auth/profile.
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" && req.Email == "" && req.Phone == "" && req.Address == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "empty_update",
			Err:     errors.New("at least one field must be updated"),
		})
		return
	}

	session, _ := GetSessionFromContext(r.Context())
	identity, err := h.Svc.UpdateProfile(r.Context(), session.ID, ports.ProfileUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, identityPayload(identity))
}

// SSOServiceInterface defines the staff SSO operations the handlers need.
type SSOServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, sessionID string, in service.CompleteLoginInput) (domainauth.Credentials, error)
}

// SSOHandlers provides HTTP handlers for the staff SSO flow.
type SSOHandlers struct {
	Svc          SSOServiceInterface
	CallbackURL  string
	Errors       *ServiceErrorWriter
	CookieDomain string
	Logger       *slog.Logger
}

// Begin starts the SSO flow.
// GET /auth/sso/login?redirect_uri=<optional>.
func (h *SSOHandlers) Begin(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), h.CallbackURL)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "sso_begin_failed",
			Err:     err,
		})
		return
	}

	h.setSSOCookies(w, r, ssoCookieParams{State: result.State, Nonce: result.Nonce, RedirectURI: redirectURI})
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes the SSO flow.
// GET /auth/sso/callback?code=<code>&state=<state>.
func (h *SSOHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}
	if state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_state",
			Err:     errors.New("state parameter is required"),
		})
		return
	}

	stateCookie, err := r.Cookie("sso_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("sso_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	session, _ := GetSessionFromContext(r.Context())
	creds, err := h.Svc.CompleteLogin(r.Context(), session.ID, service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoStaffRole) {
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: "no_staff_role",
				Err:     err,
			})
			return
		}
		h.Errors.Write(w, r, err)
		return
	}

	clearCookie(w, r, "sso_state", h.CookieDomain)
	clearCookie(w, r, "sso_nonce", h.CookieDomain)

	redirectURI := h.postLoginRedirect(w, r)
	if redirectURI == "/" {
		redirectURI = nav.LandingPath(creds.Identity.Role)
	}
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// ssoCookieParams groups values needed to set SSO flow cookies.
type ssoCookieParams struct {
	State       string
	Nonce       string
	RedirectURI string
}

// setSSOCookies pins state, nonce, and the post-login redirect in secure cookies.
func (h *SSOHandlers) setSSOCookies(w http.ResponseWriter, r *http.Request, p ssoCookieParams) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	for name, value := range map[string]string{
		"sso_state":      p.State,
		"sso_nonce":      p.Nonce,
		"sso_post_login": p.RedirectURI,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   600, // 10 minutes
		})
	}
}

// postLoginRedirect returns the pinned post-login destination and clears it.
func (h *SSOHandlers) postLoginRedirect(w http.ResponseWriter, r *http.Request) string {
	redirectURI := "/"
	if cookie, err := r.Cookie("sso_post_login"); err == nil {
		redirectURI = safeRedirectPath(cookie.Value)
		clearCookie(w, r, "sso_post_login", h.CookieDomain)
	}
	return redirectURI
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func clearCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

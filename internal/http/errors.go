package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/guard"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// SessionInvalidator clears a session whose backend token was rejected.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, sessionID string) error
}

// ServiceErrorWriter maps service-layer errors to HTTP responses. It is the
// single place where an expired backend token is intercepted: the session is
// cleared, the cookie dropped, and the caller pointed at login with the
// requested location preserved.
type ServiceErrorWriter struct {
	Sessions     SessionInvalidator
	CookieDomain string
	Logger       *slog.Logger
}

func (e *ServiceErrorWriter) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Write renders err. Returns nothing; the response is always written.
func (e *ServiceErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domainauth.ErrSessionExpired) {
		e.writeSessionExpired(w, r)
		return
	}
	if errors.Is(err, ports.ErrStaleGeneration) {
		// A logout won the race; the caller stays logged out.
		WriteError(w, ErrorParams{
			Code:    http.StatusConflict,
			ErrCode: "login_superseded",
			Err:     errors.New("session was signed out while the request was in flight"),
		})
		return
	}

	var validationErr *domainauth.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnprocessableEntity,
			ErrCode: "validation_failed",
			Err:     validationErr,
			Fields:  validationErr.Fields,
		})
		return
	}

	var authErr *domainauth.AuthenticationError
	if errors.As(err, &authErr) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_failed",
			Err:     authErr,
		})
		return
	}

	var netErr *domainauth.NetworkError
	if errors.As(err, &netErr) {
		e.logger().ErrorContext(r.Context(), "backend unreachable", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "backend_unavailable",
			Err:     errors.New("the store backend is temporarily unavailable"),
		})
		return
	}

	e.logger().ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("internal error"),
	})
}

// writeSessionExpired clears server and client session state, then sends the
// caller to login with the current location as a one-shot return-to.
func (e *ServiceErrorWriter) writeSessionExpired(w http.ResponseWriter, r *http.Request) {
	if session, ok := GetSessionFromContext(r.Context()); ok && e.Sessions != nil {
		if err := e.Sessions.Invalidate(r.Context(), session.ID); err != nil {
			e.logger().ErrorContext(r.Context(), "invalidate expired session", "error", err)
		}
	}
	clearCookie(w, r, SessionCookieName, e.CookieDomain)

	target := guard.LoginPath
	if loc := safeRedirectPath(r.URL.RequestURI()); loc != "/" {
		target += "?return_to=" + url.QueryEscape(loc)
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:       http.StatusUnauthorized,
		ErrCode:    "session_expired",
		Err:        errors.New("session expired"),
		RedirectTo: target,
	})
}

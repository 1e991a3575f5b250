package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/guard"
)

// SessionCookieName is the cookie that carries the opaque gateway session ID.
const SessionCookieName = "session_id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDKey is an unexported context key type for the request ID.
type requestIDKey struct{}

// RequestID returns a middleware that assigns each request an ID, honoring
// an inbound X-Request-Id from the load balancer when present.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID, or empty when the middleware
// did not run.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// SessionInitializer restores a session's credentials by ID.
type SessionInitializer interface {
	Initialize(ctx context.Context, sessionID string) (domainauth.Credentials, error)
}

// SessionConfig holds configuration for the Session middleware.
type SessionConfig struct {
	Sessions     SessionInitializer
	NewSessionID func() string
	CookieDomain string
	CookieTTL    time.Duration
	Logger       *slog.Logger
}

// Session ensures every request carries a gateway session: the cookie is
// minted on first contact, and stored credentials are restored into the
// request context. Restoration is optimistic; the service revalidates in
// the background.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = cfg.NewSessionID()
				setSessionCookie(w, r, sessionCookieParams{
					ID:     sessionID,
					Domain: cfg.CookieDomain,
					TTL:    cfg.CookieTTL,
				})
			}

			session := &domainauth.Session{ID: sessionID}
			creds, err := cfg.Sessions.Initialize(r.Context(), sessionID)
			if err != nil {
				// A failing store degrades to a guest session rather than
				// taking the storefront down.
				logger.Error("session restore failed", "session_id", sessionID, "error", err)
			} else {
				session.Credentials = creds
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionCookieParams groups values needed to set the session cookie.
type sessionCookieParams struct {
	ID     string
	Domain string
	TTL    time.Duration
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, p sessionCookieParams) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    p.ID,
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(p.TTL.Seconds()),
	})
}

// Protect returns a middleware enforcing the route's authorization rule.
// Unauthenticated browsers are redirected to login with a one-shot
// return-to; authorized-but-denied browsers go home with no error shown.
// API clients get JSON with a redirect_to hint instead.
func Protect(rule guard.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			decision := guard.Evaluate(identity, rule, r.URL.RequestURI())
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}
			writeDenied(w, r, decision)
		})
	}
}

func writeDenied(w http.ResponseWriter, r *http.Request, decision guard.Decision) {
	target := decision.RedirectTo
	if decision.ReturnTo != "" && decision.ReturnTo != "/" {
		target += "?return_to=" + url.QueryEscape(safeRedirectPath(decision.ReturnTo))
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	code := http.StatusForbidden
	errCode := "insufficient_permissions"
	msg := errors.New("insufficient permissions")
	if decision.RedirectTo == guard.LoginPath {
		code = http.StatusUnauthorized
		errCode = "authentication_required"
		msg = errors.New("authentication required")
	}
	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: msg, RedirectTo: target})
}

// IsBrowserRequest reports whether the request expects an HTML navigation
// response rather than JSON. API paths are never browser requests.
func IsBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	if strings.EqualFold(r.Header.Get("Sec-Fetch-Mode"), "navigate") {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html")
}

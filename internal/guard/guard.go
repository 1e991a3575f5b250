package guard

// Package guard decides, for a single navigation attempt, whether the
// requested view may be served. Evaluate is a pure function of the current
// identity, the route's declared rule, and the requested location; it is
// re-run on every request and never cached, because the session can change
// between navigations.

import (
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// LoginPath is where unauthenticated requests are sent, carrying the
// originally requested location as a one-shot return-to.
const LoginPath = "/login"

// HomePath is where authenticated-but-unauthorized requests are sent.
// Denial is silent; no error is surfaced.
const HomePath = "/"

// Rule is a route's declared authorization requirement, fixed at route
// registration time.
type Rule struct {
	// AllowedRoles is the set of roles that may pass. nil means any
	// authenticated identity; an explicitly empty set denies every
	// non-admin role.
	AllowedRoles []domainauth.Role

	// RequiredRole is the legacy single-role form. Zero means unset.
	// Ignored when AllowedRoles is non-nil.
	RequiredRole domainauth.Role

	// AdminBypass lets RoleAdmin pass regardless of AllowedRoles.
	// nil means true.
	AdminBypass *bool
}

// adminBypass resolves the tri-state default.
func (r Rule) adminBypass() bool {
	return r.AdminBypass == nil || *r.AdminBypass
}

// unrestricted reports whether the rule names no role requirement at all.
func (r Rule) unrestricted() bool {
	return r.AllowedRoles == nil && r.RequiredRole == domainauth.RoleGuest
}

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Allow bool

	// RedirectTo is set when Allow is false.
	RedirectTo string

	// ReturnTo carries the originally requested location when redirecting
	// to login, so the user can be sent back after authenticating. It is
	// meaningful for one pending navigation only.
	ReturnTo string
}

// Evaluate applies the precedence order: authentication check, then
// no-requirement passthrough, then admin bypass, then role membership.
// identity is nil for an unauthenticated session. A guest identity cannot
// reach the membership step because guests are never persisted.
func Evaluate(identity *domainauth.Identity, rule Rule, location string) Decision {
	if identity == nil {
		return Decision{RedirectTo: LoginPath, ReturnTo: location}
	}

	if rule.unrestricted() {
		return Decision{Allow: true}
	}

	role := identity.Role

	if rule.adminBypass() && role == domainauth.RoleAdmin {
		return Decision{Allow: true}
	}

	if rule.AllowedRoles != nil {
		for _, allowed := range rule.AllowedRoles {
			if allowed == role {
				return Decision{Allow: true}
			}
		}
		return Decision{RedirectTo: HomePath}
	}

	if role == rule.RequiredRole {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: HomePath}
}

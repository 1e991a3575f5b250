package auth

// Package auth contains domain-level types for identity, roles, and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of application roles. The numeric wire values come
// from the commerce API and are confined to the JSON codec below; domain code
// compares the named constants only.
type Role uint8

const (
	// RoleGuest is the absence of an authenticated identity. It is never
	// persisted and never appears on the wire.
	RoleGuest Role = 0

	RoleAdmin     Role = 1
	RoleCustomer  Role = 2
	RoleWarehouse Role = 3
	RoleSales     Role = 4
	RoleHR        Role = 5
)

// Valid reports whether the role is a member of the persistable set.
// RoleGuest is deliberately not valid: it models "no identity".
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleWarehouse, RoleSales, RoleHR:
		return true
	case RoleGuest:
		return false
	}
	return false
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleCustomer:
		return "customer"
	case RoleWarehouse:
		return "warehouse"
	case RoleSales:
		return "sales"
	case RoleHR:
		return "hr"
	case RoleGuest:
		return "guest"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// MarshalJSON writes the numeric wire value used by the commerce API.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("marshal role: %d is not a persistable role", uint8(r))
	}
	return json.Marshal(uint8(r))
}

// UnmarshalJSON reads the numeric wire value and rejects anything outside
// the closed set.
func (r *Role) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unmarshal role: %w", err)
	}
	candidate := Role(n)
	if !candidate.Valid() {
		return fmt.Errorf("unmarshal role: %d is not a valid role", n)
	}
	*r = candidate
	return nil
}

// Identity represents the authenticated principal as returned by the
// commerce API. Profile fields are display-only at this layer.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    Role   `json:"roleId"`
}

// Credentials pairs a bearer token with the identity it authenticates.
// Both are present or both are absent; the stores enforce the pairing on
// write and the gateway relies on it everywhere else.
// Generation is bumped by every logout so responses from requests that were
// in flight when the session was cleared can be recognized and discarded.
type Credentials struct {
	Token      string
	Identity   Identity
	Generation uint64
}

// Authenticated reports whether the credentials carry a usable identity.
func (c Credentials) Authenticated() bool {
	return c.Token != "" && c.Identity.Role.Valid()
}

// Session is the per-browser-principal record the gateway tracks. ID is the
// opaque value in the session cookie; Credentials may be empty for a visitor
// who has not logged in yet.
type Session struct {
	ID          string
	Credentials Credentials
}

// Authenticated reports whether the session holds valid credentials.
func (s Session) Authenticated() bool { return s.Credentials.Authenticated() }

// Merge overlays non-zero profile fields from updated onto the identity,
// last write wins. ID and Role are taken from updated only when set, so a
// partial profile response cannot wipe them.
func (i Identity) Merge(updated Identity) Identity {
	out := i
	if updated.ID != "" {
		out.ID = updated.ID
	}
	if updated.Name != "" {
		out.Name = updated.Name
	}
	if updated.Email != "" {
		out.Email = updated.Email
	}
	if updated.Phone != "" {
		out.Phone = updated.Phone
	}
	if updated.Address != "" {
		out.Address = updated.Address
	}
	if updated.Role.Valid() {
		out.Role = updated.Role
	}
	return out
}

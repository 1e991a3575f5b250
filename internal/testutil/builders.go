// Package testutil provides testing utilities and helpers for the storefront gateway.
package testutil

import (
	"github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// IdentityBuilder provides a fluent interface for building Identity values for testing.
type IdentityBuilder struct {
	identity auth.Identity
}

// NewIdentity creates a new IdentityBuilder with sensible customer defaults.
func NewIdentity() *IdentityBuilder {
	return &IdentityBuilder{
		identity: auth.Identity{
			ID:    "user-1",
			Name:  "Test Customer",
			Email: "customer@example.com",
			Role:  auth.RoleCustomer,
		},
	}
}

// WithID sets the identity ID.
func (b *IdentityBuilder) WithID(id string) *IdentityBuilder {
	b.identity.ID = id
	return b
}

// WithName sets the display name.
func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.identity.Name = name
	return b
}

// WithEmail sets the email.
func (b *IdentityBuilder) WithEmail(email string) *IdentityBuilder {
	b.identity.Email = email
	return b
}

// WithPhone sets the phone number.
func (b *IdentityBuilder) WithPhone(phone string) *IdentityBuilder {
	b.identity.Phone = phone
	return b
}

// WithAddress sets the address.
func (b *IdentityBuilder) WithAddress(address string) *IdentityBuilder {
	b.identity.Address = address
	return b
}

// WithRole sets the role.
func (b *IdentityBuilder) WithRole(role auth.Role) *IdentityBuilder {
	b.identity.Role = role
	return b
}

// Build returns the constructed Identity.
func (b *IdentityBuilder) Build() auth.Identity {
	return b.identity
}

// Common identity presets

// AdminIdentity creates an admin identity.
func AdminIdentity() auth.Identity {
	return NewIdentity().
		WithID("admin-1").
		WithName("Test Admin").
		WithEmail("admin@example.com").
		WithRole(auth.RoleAdmin).
		Build()
}

// WarehouseIdentity creates a warehouse staff identity.
func WarehouseIdentity() auth.Identity {
	return NewIdentity().
		WithID("warehouse-1").
		WithName("Test Warehouse").
		WithEmail("warehouse@example.com").
		WithRole(auth.RoleWarehouse).
		Build()
}

// SalesIdentity creates a sales staff identity.
func SalesIdentity() auth.Identity {
	return NewIdentity().
		WithID("sales-1").
		WithName("Test Sales").
		WithEmail("sales@example.com").
		WithRole(auth.RoleSales).
		Build()
}

// HRIdentity creates an HR staff identity.
func HRIdentity() auth.Identity {
	return NewIdentity().
		WithID("hr-1").
		WithName("Test HR").
		WithEmail("hr@example.com").
		WithRole(auth.RoleHR).
		Build()
}

// CredentialsBuilder provides a fluent interface for building Credentials values.
type CredentialsBuilder struct {
	creds auth.Credentials
}

// NewCredentials creates a CredentialsBuilder with a customer identity and
// token at generation zero.
func NewCredentials() *CredentialsBuilder {
	return &CredentialsBuilder{
		creds: auth.Credentials{
			Token:    "test-token",
			Identity: NewIdentity().Build(),
		},
	}
}

// WithToken sets the bearer token.
func (b *CredentialsBuilder) WithToken(token string) *CredentialsBuilder {
	b.creds.Token = token
	return b
}

// WithIdentity sets the identity.
func (b *CredentialsBuilder) WithIdentity(identity auth.Identity) *CredentialsBuilder {
	b.creds.Identity = identity
	return b
}

// WithGeneration sets the session generation.
func (b *CredentialsBuilder) WithGeneration(gen uint64) *CredentialsBuilder {
	b.creds.Generation = gen
	return b
}

// Build returns the constructed Credentials.
func (b *CredentialsBuilder) Build() auth.Credentials {
	return b.creds
}

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/testutil"
)

func identityWithRole(role domainauth.Role) *domainauth.Identity {
	return &domainauth.Identity{ID: "u1", Role: role}
}

func TestEvaluate_UnauthenticatedRedirectsToLoginWithReturnTo(t *testing.T) {
	rule := Rule{AllowedRoles: []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleCustomer}}

	d := Evaluate(nil, rule, "/cart")

	assert.False(t, d.Allow)
	assert.Equal(t, LoginPath, d.RedirectTo)
	assert.Equal(t, "/cart", d.ReturnTo)
}

func TestEvaluate_MemberRoleRenders(t *testing.T) {
	rule := Rule{AllowedRoles: []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleWarehouse}}

	d := Evaluate(identityWithRole(domainauth.RoleWarehouse), rule, "/admin/warehouse")

	assert.True(t, d.Allow)
	assert.Empty(t, d.RedirectTo)
}

func TestEvaluate_NonMemberRedirectsHomeSilently(t *testing.T) {
	rule := Rule{
		AllowedRoles: []domainauth.Role{domainauth.RoleAdmin, domainauth.RoleWarehouse},
		AdminBypass:  testutil.BoolPtr(true),
	}

	d := Evaluate(identityWithRole(domainauth.RoleCustomer), rule, "/admin/warehouse")

	assert.False(t, d.Allow)
	assert.Equal(t, HomePath, d.RedirectTo)
	assert.Empty(t, d.ReturnTo)
}

func TestEvaluate_AdminBypassesAllowedRoles(t *testing.T) {
	rule := Rule{AllowedRoles: []domainauth.Role{domainauth.RoleSales}}

	d := Evaluate(identityWithRole(domainauth.RoleAdmin), rule, "/admin/sales")

	assert.True(t, d.Allow)
}

func TestEvaluate_AdminBypassDefaultsOn(t *testing.T) {
	withNil := Rule{AllowedRoles: []domainauth.Role{domainauth.RoleHR}}
	withTrue := Rule{AllowedRoles: []domainauth.Role{domainauth.RoleHR}, AdminBypass: testutil.BoolPtr(true)}

	assert.True(t, Evaluate(identityWithRole(domainauth.RoleAdmin), withNil, "/admin/hr").Allow)
	assert.True(t, Evaluate(identityWithRole(domainauth.RoleAdmin), withTrue, "/admin/hr").Allow)
}

func TestEvaluate_AdminBypassDisabled(t *testing.T) {
	rule := Rule{
		AllowedRoles: []domainauth.Role{domainauth.RoleHR},
		AdminBypass:  testutil.BoolPtr(false),
	}

	d := Evaluate(identityWithRole(domainauth.RoleAdmin), rule, "/admin/hr")

	assert.False(t, d.Allow)
	assert.Equal(t, HomePath, d.RedirectTo)
}

func TestEvaluate_EmptyAllowedSetDeniesEveryNonAdmin(t *testing.T) {
	rule := Rule{AllowedRoles: []domainauth.Role{}}

	for _, role := range []domainauth.Role{
		domainauth.RoleCustomer,
		domainauth.RoleWarehouse,
		domainauth.RoleSales,
		domainauth.RoleHR,
	} {
		d := Evaluate(identityWithRole(role), rule, "/admin")
		assert.False(t, d.Allow, "role %s", role)
		assert.Equal(t, HomePath, d.RedirectTo, "role %s", role)
	}

	// Admin still passes an explicitly empty set via the bypass.
	assert.True(t, Evaluate(identityWithRole(domainauth.RoleAdmin), rule, "/admin").Allow)
}

func TestEvaluate_NoRequirementAdmitsAnyAuthenticatedRole(t *testing.T) {
	rule := Rule{}

	for _, role := range []domainauth.Role{
		domainauth.RoleAdmin,
		domainauth.RoleCustomer,
		domainauth.RoleWarehouse,
		domainauth.RoleSales,
		domainauth.RoleHR,
	} {
		assert.True(t, Evaluate(identityWithRole(role), rule, "/account").Allow, "role %s", role)
	}
}

func TestEvaluate_AuthenticationPrecedesEverything(t *testing.T) {
	// Even an unrestricted rule redirects when there is no identity.
	d := Evaluate(nil, Rule{}, "/account")
	assert.False(t, d.Allow)
	assert.Equal(t, LoginPath, d.RedirectTo)
	assert.Equal(t, "/account", d.ReturnTo)
}

func TestEvaluate_LegacySingleRoleExactMatch(t *testing.T) {
	rule := Rule{RequiredRole: domainauth.RoleSales}

	assert.True(t, Evaluate(identityWithRole(domainauth.RoleSales), rule, "/admin/sales").Allow)

	d := Evaluate(identityWithRole(domainauth.RoleWarehouse), rule, "/admin/sales")
	assert.False(t, d.Allow)
	assert.Equal(t, HomePath, d.RedirectTo)

	// Admin bypass applies to the legacy form too.
	assert.True(t, Evaluate(identityWithRole(domainauth.RoleAdmin), rule, "/admin/sales").Allow)
}

func TestEvaluate_AllowedRolesTakesPrecedenceOverLegacy(t *testing.T) {
	rule := Rule{
		AllowedRoles: []domainauth.Role{domainauth.RoleHR},
		RequiredRole: domainauth.RoleSales,
	}

	assert.True(t, Evaluate(identityWithRole(domainauth.RoleHR), rule, "/admin/hr").Allow)
	assert.False(t, Evaluate(identityWithRole(domainauth.RoleSales), rule, "/admin/hr").Allow)
}

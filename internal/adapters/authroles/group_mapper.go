package authroles

import (
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// StaticGroupMapper maps IdP groups to staff roles by simple string
// membership. Precedence follows field order: an identity in both the admin
// and a staff group is an admin. Unmapped identities stay guests and are
// rejected by the SSO callback.
type StaticGroupMapper struct {
	AdminGroup     string
	WarehouseGroup string
	SalesGroup     string
	HRGroup        string
}

func (m StaticGroupMapper) Map(groups []string) domainauth.Role {
	if m.contains(groups, m.AdminGroup) {
		return domainauth.RoleAdmin
	}
	if m.contains(groups, m.WarehouseGroup) {
		return domainauth.RoleWarehouse
	}
	if m.contains(groups, m.SalesGroup) {
		return domainauth.RoleSales
	}
	if m.contains(groups, m.HRGroup) {
		return domainauth.RoleHR
	}
	return domainauth.RoleGuest
}

func (m StaticGroupMapper) contains(groups []string, want string) bool {
	if want == "" {
		return false
	}
	for _, g := range groups {
		if g == want {
			return true
		}
	}
	return false
}

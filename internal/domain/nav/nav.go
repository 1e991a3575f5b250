package nav

// Package nav holds the build-time table of back-office navigation entries
// and the per-role landing routes. The table has no mutation operations;
// declaration order is significant because the admin shell renders entries
// in the order they appear here.

import (
	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
)

// Entry is one back-office navigation item. AllowedRoles is the full set of
// roles that may see the entry; filtering is plain set membership with no
// admin special-casing, so admin-visible entries list RoleAdmin explicitly.
type Entry struct {
	Icon         string            `json:"icon"`
	Label        string            `json:"label"`
	Path         string            `json:"path"`
	AllowedRoles []domainauth.Role `json:"allowedRoles"`
}

var table = []Entry{
	{Icon: "gauge", Label: "Dashboard", Path: "/admin", AllowedRoles: roles(domainauth.RoleAdmin)},
	{Icon: "warehouse", Label: "Warehouse", Path: "/admin/warehouse", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleWarehouse)},
	{Icon: "package", Label: "Products", Path: "/admin/products", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleWarehouse)},
	{Icon: "tags", Label: "Categories", Path: "/admin/categories", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleWarehouse)},
	{Icon: "truck", Label: "Suppliers", Path: "/admin/suppliers", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleWarehouse)},
	{Icon: "receipt", Label: "Sales", Path: "/admin/sales", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleSales)},
	{Icon: "clipboard-list", Label: "Orders", Path: "/admin/orders", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleSales)},
	{Icon: "users", Label: "Customers", Path: "/admin/customers", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleSales)},
	{Icon: "id-card", Label: "Personnel", Path: "/admin/hr", AllowedRoles: roles(domainauth.RoleAdmin, domainauth.RoleHR)},
	{Icon: "chart-line", Label: "Analytics", Path: "/admin/analytics", AllowedRoles: roles(domainauth.RoleAdmin)},
}

// RoutesForRole returns the entries the given role may see, preserving the
// table's declaration order. Unknown or guest roles see nothing.
func RoutesForRole(role domainauth.Role) []Entry {
	var out []Entry
	for _, e := range table {
		for _, allowed := range e.AllowedRoles {
			if allowed == role {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// LandingPath returns the post-login destination for a role. Staff roles
// land on their dedicated dashboard; customers land on the storefront home.
func LandingPath(role domainauth.Role) string {
	switch role {
	case domainauth.RoleAdmin:
		return "/admin"
	case domainauth.RoleWarehouse:
		return "/admin/warehouse"
	case domainauth.RoleSales:
		return "/admin/sales"
	case domainauth.RoleHR:
		return "/admin/hr"
	case domainauth.RoleCustomer, domainauth.RoleGuest:
		return "/"
	}
	return "/"
}

func roles(rs ...domainauth.Role) []domainauth.Role { return rs }

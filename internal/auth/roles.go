package auth

// Roles a user can hold within a system.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Capabilities gate groups of endpoints. The auth middleware checks the
// capability a route requires against the session's role, so handlers
// never inspect roles themselves.
const (
	CapManageUsers       = "manage_users"
	CapManageCredentials = "manage_credentials"
	CapManageCatalog     = "manage_catalog"
	CapRecordSales       = "record_sales"
	CapViewAnalytics     = "view_analytics"
)

var roleCapabilities = map[string]map[string]bool{
	RoleAdmin: {
		CapManageUsers:       true,
		CapManageCredentials: true,
		CapManageCatalog:     true,
		CapRecordSales:       true,
		CapViewAnalytics:     true,
	},
	RoleMember: {
		CapManageCatalog: true,
		CapRecordSales:   true,
		CapViewAnalytics: true,
	},
}

// Can reports whether the role carries the capability.
func Can(role, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[capability]
}

// ValidRole reports whether the role name is one the system knows.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

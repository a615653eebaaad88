package auth

import "github.com/YoussefTakali/esprithub/internal/domain"

// Permission names a protected operation.
type Permission string

const (
	PermissionDashboardStats Permission = "dashboard:stats"
	PermissionUserList       Permission = "users:list"
	PermissionUserManage     Permission = "users:manage"
	PermissionProfileRead    Permission = "profile:read"
	PermissionGithubLink     Permission = "github:link"
)

// rolePermissions is the single source of truth for role based access.
// Every protected operation consults this table; no call site branches on
// roles directly.
var rolePermissions = map[domain.UserRole]map[Permission]struct{}{
	domain.RoleAdmin: {
		PermissionDashboardStats: {},
		PermissionUserList:       {},
		PermissionUserManage:     {},
		PermissionProfileRead:    {},
		PermissionGithubLink:     {},
	},
	domain.RoleChief: {
		PermissionDashboardStats: {},
		PermissionUserList:       {},
		PermissionProfileRead:    {},
		PermissionGithubLink:     {},
	},
	domain.RoleTeacher: {
		PermissionProfileRead: {},
		PermissionGithubLink:  {},
	},
	domain.RoleStudent: {
		PermissionProfileRead: {},
		PermissionGithubLink:  {},
	},
}

// IsAllowed reports whether the role may invoke the operation.
func IsAllowed(role domain.UserRole, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, allowed := perms[permission]
	return allowed
}

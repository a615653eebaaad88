package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YoussefTakali/esprithub/internal/domain"
)

func TestIsAllowed(t *testing.T) {
	cases := []struct {
		role       domain.UserRole
		permission Permission
		allowed    bool
	}{
		{domain.RoleAdmin, PermissionDashboardStats, true},
		{domain.RoleAdmin, PermissionUserManage, true},
		{domain.RoleAdmin, PermissionUserList, true},
		{domain.RoleChief, PermissionDashboardStats, true},
		{domain.RoleChief, PermissionUserList, true},
		{domain.RoleChief, PermissionUserManage, false},
		{domain.RoleTeacher, PermissionDashboardStats, false},
		{domain.RoleTeacher, PermissionUserList, false},
		{domain.RoleTeacher, PermissionProfileRead, true},
		{domain.RoleTeacher, PermissionGithubLink, true},
		{domain.RoleStudent, PermissionDashboardStats, false},
		{domain.RoleStudent, PermissionUserManage, false},
		{domain.RoleStudent, PermissionProfileRead, true},
		{domain.RoleStudent, PermissionGithubLink, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, IsAllowed(tc.role, tc.permission),
			"role %s permission %s", tc.role, tc.permission)
	}
}

func TestIsAllowedUnknownRole(t *testing.T) {
	assert.False(t, IsAllowed(domain.UserRole("INTRUDER"), PermissionProfileRead))
	assert.False(t, IsAllowed("", PermissionDashboardStats))
}

func TestEveryRoleHasPermissions(t *testing.T) {
	for _, role := range []domain.UserRole{domain.RoleAdmin, domain.RoleChief, domain.RoleTeacher, domain.RoleStudent} {
		assert.NotEmpty(t, rolePermissions[role], "role %s missing from permission table", role)
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"DEVELOPER", RoleDeveloper},
		{"SYSTEM_ANALYST", RoleSystemAnalyst},
		{"STUDENT", RoleStudent},
		{"student", RoleStudent},
		{"  developer  ", RoleDeveloper},
		{"", RoleDeveloper},
		{"SUPERUSER", RoleDeveloper}, // unknown roles fall back to Developer
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "input %q", tt.in)
	}
}

func TestRolePermissions(t *testing.T) {
	assert.Equal(t,
		[]Permission{PermGenerate, PermEdit, PermValidate, PermOptimize},
		RoleDeveloper.Permissions())
	assert.Equal(t,
		[]Permission{PermAnalyze, PermPrototype, PermValidate},
		RoleSystemAnalyst.Permissions())
	assert.Equal(t,
		[]Permission{PermGenerateWithComments, PermLearn},
		RoleStudent.Permissions())
}

func TestRoleHas(t *testing.T) {
	assert.True(t, RoleDeveloper.Has(PermOptimize))
	assert.False(t, RoleSystemAnalyst.Has(PermOptimize))
	assert.False(t, RoleStudent.Has(PermOptimize))
	assert.True(t, RoleStudent.Has(PermGenerateWithComments))
}

func TestRoleStorageKeyRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleDeveloper, RoleSystemAnalyst, RoleStudent} {
		assert.Equal(t, r, ParseRole(r.StorageKey()))
	}
}

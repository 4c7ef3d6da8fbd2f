package domain

import "strings"

// Role is the closed set of account roles. The permission set is a pure
// function of role; there are no per-user overrides.
type Role string

const (
	RoleDeveloper     Role = "Developer"
	RoleSystemAnalyst Role = "System Analyst"
	RoleStudent       Role = "Student"
)

// Permission names a single capability granted by a role.
type Permission string

const (
	PermGenerate             Permission = "generate"
	PermEdit                 Permission = "edit"
	PermValidate             Permission = "validate"
	PermOptimize             Permission = "optimize"
	PermAnalyze              Permission = "analyze"
	PermPrototype            Permission = "prototype"
	PermGenerateWithComments Permission = "generate_with_comments"
	PermLearn                Permission = "learn"
)

// ParseRole maps a stored role key to a Role. Unknown or empty values
// default to Developer.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SYSTEM_ANALYST":
		return RoleSystemAnalyst
	case "STUDENT":
		return RoleStudent
	default:
		return RoleDeveloper
	}
}

// StorageKey returns the uppercase key used in the users table.
func (r Role) StorageKey() string {
	switch r {
	case RoleSystemAnalyst:
		return "SYSTEM_ANALYST"
	case RoleStudent:
		return "STUDENT"
	default:
		return "DEVELOPER"
	}
}

// Permissions returns the fixed capability set for the role.
// Adding a role requires extending this switch.
func (r Role) Permissions() []Permission {
	switch r {
	case RoleDeveloper:
		return []Permission{PermGenerate, PermEdit, PermValidate, PermOptimize}
	case RoleSystemAnalyst:
		return []Permission{PermAnalyze, PermPrototype, PermValidate}
	case RoleStudent:
		return []Permission{PermGenerateWithComments, PermLearn}
	default:
		return nil
	}
}

// Has reports whether the role grants the given permission.
func (r Role) Has(p Permission) bool {
	for _, perm := range r.Permissions() {
		if perm == p {
			return true
		}
	}
	return false
}

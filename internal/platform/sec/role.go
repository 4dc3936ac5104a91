// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is the value of profiles.role.
type UserRole string

const (
	// Full access to the admin panel
	RoleAdmin UserRole = "admin"

	// Performs audio content; granted through an approved narrator request
	RoleNarrator UserRole = "narrator"

	// Default role for every signed-up account
	RoleListener UserRole = "listener"
)

// Roles lists every assignable role.
var Roles = []string{string(RoleListener), string(RoleNarrator), string(RoleAdmin)}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of [Roles].
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleNarrator:
		return 20
	case RoleListener:
		return 10
	default:
		return 0
	}
}

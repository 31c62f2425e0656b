// internal/pkg/roles/roles.go
package roles

import "lenddesk-service/internal/domain/auth"

// Gate conditionally exposes a payload fragment based on the operator's
// roles, independent of routing. RequireAll defaults to false: by default the
// operator needs ANY of the listed roles. This is a separate knob from the
// route guard, which always matches ANY; the two defaults are intentionally
// independent.
type Gate struct {
	Roles      []string
	RequireAll bool
}

// Allows reports whether the gate opens for the user. An empty role list
// means no restriction; a nil user never passes a non-empty gate.
func (g Gate) Allows(u *auth.User) bool {
	if len(g.Roles) == 0 {
		return true
	}
	if u == nil {
		return false
	}
	if g.RequireAll {
		return u.HasAllRoles(g.Roles...)
	}
	return u.HasAnyRole(g.Roles...)
}

// Resolve returns children when the gate opens and fallback otherwise.
func (g Gate) Resolve(u *auth.User, children, fallback interface{}) interface{} {
	if g.Allows(u) {
		return children
	}
	return fallback
}

// HasRole reports whether the user holds the role; a missing user yields
// false, never an error.
func HasRole(u *auth.User, role string) bool {
	return u.HasRole(role)
}

// HasAnyRole reports whether the user holds at least one of the roles.
func HasAnyRole(u *auth.User, rs ...string) bool {
	return u.HasAnyRole(rs...)
}

// HasAllRoles reports whether the user holds every one of the roles.
func HasAllRoles(u *auth.User, rs ...string) bool {
	return u.HasAllRoles(rs...)
}

// internal/domain/auth/entity.go
package auth

// User is the server-issued identity projection. It is always replaced
// wholesale on verify/login/refresh and never mutated field by field.
type User struct {
	ID        string   `json:"id"`         // identity handle, e.g. login name
	FullName  string   `json:"full_name"`  // display name
	Email     string   `json:"email"`
	UserImage string   `json:"user_image,omitempty"`
	Roles     []string `json:"roles"` // treated as a set; order is irrelevant
}

// HasRole reports whether the user holds the role. Exact, case-sensitive
// string match; a nil user never holds a role.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the user holds every one of the roles.
func (u *User) HasAllRoles(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if !u.HasRole(role) {
			return false
		}
	}
	return true
}

// Credentials is what the operator submits to the remote login endpoint.
type Credentials struct {
	ID     string // login name (usr)
	Secret string // password (pwd)
}

// State is the controller's published tuple. While Loading is true,
// IsAuthenticated may optimistically be true with User populated from the
// cached snapshot, pending server confirmation; once Loading is false,
// IsAuthenticated implies User != nil.
type State struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	User            *User `json:"user,omitempty"`
	Loading         bool  `json:"loading"`
}

// Snapshot is the durable mirror of {IsAuthenticated, User}. It seeds the
// optimistic startup paint only and is never trusted for authorization
// decisions without re-verification against the server.
type Snapshot struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	User            *User `json:"user,omitempty"`
}

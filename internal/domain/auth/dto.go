// internal/domain/auth/dto.go
package auth

// LoginRequest for operator login
type LoginRequest struct {
	Usr string `json:"usr" binding:"required"`
	Pwd string `json:"pwd" binding:"required"`
}

// LoginResponse successful login response
type LoginResponse struct {
	FullName string `json:"full_name"`
	Message  string `json:"message"`
	User     *User  `json:"user"`
}

// SessionResponse exposes the controller tuple to the UI.
type SessionResponse struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	User            *User `json:"user,omitempty"`
	Loading         bool  `json:"loading"`
}

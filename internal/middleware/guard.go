// internal/middleware/guard.go
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"lenddesk-service/internal/domain/auth"
	"lenddesk-service/internal/pkg/response"
	authsvc "lenddesk-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// Guard decides, per request to a protected route, one of three outcomes:
// serve the request, answer with a verification-in-progress placeholder, or
// deny. It only reads the controller's published tuple and never touches the
// network itself.
type Guard struct {
	controller *authsvc.Controller
	loginPath  string
}

func NewGuard(controller *authsvc.Controller, loginPath string) *Guard {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Guard{
		controller: controller,
		loginPath:  loginPath,
	}
}

// Protect returns the guard middleware for an optional required-role list.
// Role matching is ANY-of, exact case-sensitive strings; an empty list means
// any authenticated operator passes.
//
// Precedence: while the controller is loading the answer is always the
// placeholder, never a redirect and never a denial. An unauthenticated
// request is redirected to the login path carrying the originally requested
// location. An authenticated operator lacking every required role gets an
// in-place denial naming the required roles, not a login redirect.
func (g *Guard) Protect(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := g.controller.State()

		if state.Loading {
			c.Header("Retry-After", "1")
			response.Error(c, http.StatusServiceUnavailable, "verifying authentication", nil, gin.H{
				"loading": true,
			})
			return
		}

		if !state.IsAuthenticated {
			target := g.loginPath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusTemporaryRedirect, target)
			c.Abort()
			return
		}

		if len(requiredRoles) > 0 && !state.User.HasAnyRole(requiredRoles...) {
			response.Error(c, http.StatusForbidden,
				"You don't have the required permissions to access this page", nil, gin.H{
					"required_roles": strings.Join(requiredRoles, ", "),
					"user_roles":     state.User.Roles,
					"action":         "go_back",
				})
			return
		}

		c.Set("user", state.User)
		c.Next()
	}
}

// GetUser returns the authenticated operator set by the guard.
func GetUser(c *gin.Context) (*auth.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	u, ok := v.(*auth.User)
	return u, ok
}

// MustGetUser gets the authenticated operator from context or panics.
func MustGetUser(c *gin.Context) *auth.User {
	u, exists := GetUser(c)
	if !exists {
		panic("user not found in context")
	}
	return u
}

// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"lenddesk-service/internal/domain/auth"
	xerrors "lenddesk-service/internal/pkg/errors"
	"lenddesk-service/internal/pkg/response"
	authsvc "lenddesk-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	controller *authsvc.Controller
}

func NewAuthHandler(controller *authsvc.Controller) *AuthHandler {
	return &AuthHandler{
		controller: controller,
	}
}

// ========== Session Endpoints ==========

// Login signs the operator in against the ERP backend.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	user, err := h.controller.Login(c.Request.Context(), auth.Credentials{ID: req.Usr, Secret: req.Pwd})
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid username or password", err)
			return
		}

		var netErr *xerrors.NetworkError
		if errors.As(err, &netErr) && netErr.ServerMessage != "" {
			response.Error(c, http.StatusBadGateway, netErr.ServerMessage, err)
			return
		}

		response.Error(c, http.StatusBadGateway, "login failed", err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", auth.LoginResponse{
		FullName: user.FullName,
		Message:  "Logged In",
		User:     user,
	})
}

// Logout ends the session. Local state is cleared even when the backend
// call fails, so this endpoint never reports an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.controller.Logout(c.Request.Context())
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated operator's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	state := h.controller.State()
	if !state.IsAuthenticated || state.User == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.Success(c, http.StatusOK, "user retrieved", state.User)
}

// Session reports the full session state, including the loading flag. It is
// public so a client can poll it before the first check completes.
func (h *AuthHandler) Session(c *gin.Context) {
	state := h.controller.State()
	response.Success(c, http.StatusOK, "session state", auth.SessionResponse{
		IsAuthenticated: state.IsAuthenticated,
		Loading:         state.Loading,
		User:            state.User,
	})
}

// Refresh revalidates the session against the backend and refetches the
// profile without toggling the loading flag.
func (h *AuthHandler) Refresh(c *gin.Context) {
	h.controller.Refresh(c.Request.Context())

	state := h.controller.State()
	response.Success(c, http.StatusOK, "session refreshed", auth.SessionResponse{
		IsAuthenticated: state.IsAuthenticated,
		Loading:         state.Loading,
		User:            state.User,
	})
}

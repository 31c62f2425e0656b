// internal/service/auth/gateway.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"lenddesk-service/internal/domain/auth"
	"lenddesk-service/internal/erp"
	xerrors "lenddesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	methodLogin         = "login"
	methodLogout        = "logout"
	methodLoggedUser    = "frappe.auth.get_logged_user"
	guestIdentityHandle = "Guest"
	userDoctype         = "User"
)

// Gateway is the only component that talks to the remote identity endpoints
// and the only writer of the cached snapshot.
type Gateway struct {
	erp       *erp.Client
	snapshots auth.SnapshotStore
	logger    *zap.Logger
}

func NewGateway(erpClient *erp.Client, snapshots auth.SnapshotStore, logger *zap.Logger) *Gateway {
	return &Gateway{
		erp:       erpClient,
		snapshots: snapshots,
		logger:    logger,
	}
}

// userDocument is the ERP's user profile record.
type userDocument struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	UserImage string `json:"user_image"`
	Roles     []struct {
		Role string `json:"role"`
	} `json:"roles"`
}

// ========== Login ==========

// Login authenticates against the remote login endpoint. A 401 maps to
// ErrInvalidCredentials; any other failure surfaces as a NetworkError with the
// server's message when one was present. On success the snapshot is marked
// authenticated and the full profile is fetched, cached and returned.
func (g *Gateway) Login(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	var body struct {
		Message  string `json:"message"`
		FullName string `json:"full_name"`
		HomePage string `json:"home_page"`
	}

	err := g.erp.CallMethodFull(ctx, methodLogin, map[string]string{
		"usr": creds.ID,
		"pwd": creds.Secret,
	}, &body)
	if err != nil {
		var ne *xerrors.NetworkError
		if errors.As(err, &ne) && ne.StatusCode == http.StatusUnauthorized {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := g.snapshots.SetAuthenticated(ctx, true); err != nil {
		g.logger.Error("failed to persist authenticated flag", zap.Error(err))
	}

	return g.GetCurrentUser(ctx)
}

// ========== Logout ==========

// Logout attempts the remote logout and always clears the snapshot. It never
// fails observably; the remote call is best effort.
func (g *Gateway) Logout(ctx context.Context) {
	if err := g.erp.CallMethodGet(ctx, methodLogout, nil); err != nil {
		g.logger.Warn("remote logout failed, clearing local session anyway", zap.Error(err))
	}
	g.Clear(ctx)
}

// ========== Verification ==========

// CheckAuth asks the server for the currently recognized identity. It returns
// true only for a concrete, non-Guest identity; every other outcome, errors
// included, clears the snapshot and yields false. The bare bool signature is
// deliberate: an unreachable auth check fails closed, it does not raise.
func (g *Gateway) CheckAuth(ctx context.Context) bool {
	var handle string
	if err := g.erp.CallMethodGet(ctx, methodLoggedUser, &handle); err != nil {
		g.logger.Warn("identity check failed, treating as unauthenticated", zap.Error(err))
		g.Clear(ctx)
		return false
	}

	if handle == "" || handle == guestIdentityHandle {
		g.Clear(ctx)
		return false
	}

	// Identity confirmed; the profile is not fetched here, only the flag moves.
	if err := g.snapshots.SetAuthenticated(ctx, true); err != nil {
		g.logger.Error("failed to persist authenticated flag", zap.Error(err))
	}
	return true
}

// GetCurrentUser fetches the identity handle, then the full profile, flattens
// the role descriptors into a role set, caches the record and returns it. A
// Guest identity or any failed call yields ErrNotAuthenticated with the
// snapshot cleared.
func (g *Gateway) GetCurrentUser(ctx context.Context) (*auth.User, error) {
	var handle string
	if err := g.erp.CallMethodGet(ctx, methodLoggedUser, &handle); err != nil {
		g.Clear(ctx)
		return nil, xerrors.ErrNotAuthenticated
	}
	if handle == "" || handle == guestIdentityHandle {
		g.Clear(ctx)
		return nil, xerrors.ErrNotAuthenticated
	}

	var doc userDocument
	if err := g.erp.GetResource(ctx, userDoctype, handle, &doc); err != nil {
		g.Clear(ctx)
		return nil, xerrors.ErrNotAuthenticated
	}

	roles := make([]string, 0, len(doc.Roles))
	for _, r := range doc.Roles {
		roles = append(roles, r.Role)
	}

	fullName := doc.FullName
	if fullName == "" {
		fullName = doc.Name
	}

	user := &auth.User{
		ID:        doc.Name,
		FullName:  fullName,
		Email:     doc.Email,
		UserImage: doc.UserImage,
		Roles:     roles,
	}

	if err := g.snapshots.SetUser(ctx, user); err != nil {
		g.logger.Error("failed to persist snapshot user", zap.Error(err))
	}
	if err := g.snapshots.SetAuthenticated(ctx, true); err != nil {
		g.logger.Error("failed to persist authenticated flag", zap.Error(err))
	}

	return user, nil
}

// ========== Snapshot ==========

// CachedSnapshot is a pure store read. It never touches the network and never
// fails; missing or corrupt storage yields a zero snapshot.
func (g *Gateway) CachedSnapshot(ctx context.Context) auth.Snapshot {
	return g.snapshots.Read(ctx)
}

// Clear wipes the cached snapshot unconditionally.
func (g *Gateway) Clear(ctx context.Context) {
	if err := g.snapshots.Clear(ctx); err != nil {
		g.logger.Error("failed to clear snapshot", zap.Error(err))
	}
}

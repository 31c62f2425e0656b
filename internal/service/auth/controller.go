// internal/service/auth/controller.go
package auth

import (
	"context"
	"sync"

	"lenddesk-service/internal/domain/auth"
	xerrors "lenddesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// IdentityGateway is the controller's view of the auth gateway. Tests swap in
// a fake; production wires *Gateway.
type IdentityGateway interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.User, error)
	Logout(ctx context.Context)
	CheckAuth(ctx context.Context) bool
	GetCurrentUser(ctx context.Context) (*auth.User, error)
	CachedSnapshot(ctx context.Context) auth.Snapshot
	Clear(ctx context.Context)
}

// Notifier surfaces transient operator-visible notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
}

// Controller owns the published {IsAuthenticated, User, Loading} tuple and
// sequences the four lifecycle operations. It is constructed explicitly and
// injected where needed; there is no package-level singleton.
//
// Lifecycle operations are serialized by a mutex: two concurrent Login calls
// cannot race to publish state. The published tuple is read-locked separately
// so the route guard never blocks behind an in-flight network round-trip.
type Controller struct {
	gateway  IdentityGateway
	notifier Notifier
	logger   *zap.Logger

	opMu sync.Mutex // serializes Initialize/Login/Logout/Refresh

	stateMu sync.RWMutex
	state   auth.State
}

func NewController(gateway IdentityGateway, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		state:    auth.State{Loading: true},
	}
}

// State returns the current published tuple. The user record is replaced
// wholesale on every transition and never mutated in place, so sharing the
// pointer with readers is safe.
func (c *Controller) State() auth.State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Controller) publish(s auth.State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// setLoading flips only the Loading flag, preserving the rest of the tuple.
func (c *Controller) setLoading(loading bool) {
	c.stateMu.Lock()
	c.state.Loading = loading
	c.stateMu.Unlock()
}

// ========== Initialize ==========

// Initialize runs once at startup: the cached snapshot paints an optimistic
// authenticated state immediately, then the server round-trip confirms or
// clears it. Every failure path, panics included, lands on a published
// unauthenticated state with the snapshot cleared; the controller never fails
// open and never stays loading forever.
func (c *Controller) Initialize(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("auth initialization panicked, failing closed", zap.Any("panic", r))
			c.gateway.Clear(ctx)
			c.publish(auth.State{})
		}
	}()

	c.setLoading(true)

	if cached := c.gateway.CachedSnapshot(ctx); cached.IsAuthenticated && cached.User != nil {
		// Optimistic paint, still loading until the server confirms.
		c.publish(auth.State{IsAuthenticated: true, User: cached.User, Loading: true})
	}

	if !c.gateway.CheckAuth(ctx) {
		c.gateway.Clear(ctx)
		c.publish(auth.State{})
		return
	}

	user, err := c.gateway.GetCurrentUser(ctx)
	if err != nil {
		c.gateway.Clear(ctx)
		c.publish(auth.State{})
		return
	}

	c.publish(auth.State{IsAuthenticated: true, User: user})
}

// ========== Login ==========

// Login delegates to the gateway and publishes the authenticated state on
// success. On failure the prior IsAuthenticated/User survive untouched (a
// failed login never signs out an already-authenticated operator), a
// notification is surfaced, and the error is returned so the caller can show
// inline feedback.
func (c *Controller) Login(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)

	user, err := c.gateway.Login(ctx, creds)
	if err != nil {
		c.setLoading(false)
		c.notifier.Error(xerrors.MessageOrDefault(err, "Login failed"))
		return nil, err
	}

	c.publish(auth.State{IsAuthenticated: true, User: user})
	c.notifier.Success("Welcome back, " + user.FullName + "!")

	c.logger.Info("operator logged in",
		zap.String("user", user.ID),
		zap.Strings("roles", user.Roles),
	)

	return user, nil
}

// ========== Logout ==========

// Logout always lands on an unauthenticated published state. The gateway
// contract says its logout cannot fail observably; should it panic anyway the
// local state is still forced to unauthenticated and a degraded-mode
// notification replaces the usual confirmation.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)

	degraded := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("logout panicked, forcing local sign-out", zap.Any("panic", r))
				degraded = true
			}
		}()
		c.gateway.Logout(ctx)
	}()

	c.publish(auth.State{})

	if degraded {
		c.notifier.Warning("Logout failed, but you have been signed out locally")
		return
	}
	c.notifier.Success("Logged out successfully")
}

// ========== Refresh ==========

// Refresh re-verifies the session and swaps in a fresh user record without
// forcing a loading transition; on no identity or any failure it publishes
// unauthenticated.
func (c *Controller) Refresh(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.gateway.CheckAuth(ctx) {
		c.publish(auth.State{})
		return
	}

	user, err := c.gateway.GetCurrentUser(ctx)
	if err != nil {
		c.publish(auth.State{})
		return
	}

	c.stateMu.Lock()
	c.state.IsAuthenticated = true
	c.state.User = user
	c.stateMu.Unlock()
}

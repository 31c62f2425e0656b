package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"lenddesk-service/internal/domain/auth"
	xerrors "lenddesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

func newTestController(gateway *fakeGateway) (*Controller, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return NewController(gateway, notifier, zap.NewNop()), notifier
}

// Requirement: before any lifecycle operation runs, the published state is
// unauthenticated and loading.
func TestController_InitialState(t *testing.T) {
	c, _ := newTestController(&fakeGateway{})

	state := c.State()
	if state.IsAuthenticated {
		t.Error("State() should start unauthenticated")
	}
	if state.User != nil {
		t.Error("State() should start with no user")
	}
	if !state.Loading {
		t.Error("State() should start loading")
	}
}

// Requirement: Initialize confirms a live session, publishes the fresh user
// record and ends the loading phase.
func TestController_Initialize(t *testing.T) {
	operator := &auth.User{ID: "mary@lend.dk", FullName: "Mary A", Roles: []string{"Loan Officer"}}

	tests := []struct {
		name     string
		gateway  *fakeGateway
		wantAuth bool
		wantUser bool
	}{
		{
			name:     "publishes authenticated state for a live session",
			gateway:  &fakeGateway{checkAuth: true, userResult: operator},
			wantAuth: true,
			wantUser: true,
		},
		{
			name:    "publishes unauthenticated state when the session check fails",
			gateway: &fakeGateway{checkAuth: false},
		},
		{
			name:    "publishes unauthenticated state when the profile fetch fails",
			gateway: &fakeGateway{checkAuth: true, userErr: xerrors.ErrNotAuthenticated},
		},
		{
			name: "ignores a stale snapshot when the session check fails",
			gateway: &fakeGateway{
				checkAuth: false,
				snapshot:  auth.Snapshot{IsAuthenticated: true, User: operator},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestController(test.gateway)

			c.Initialize(context.Background())

			state := c.State()
			if state.Loading {
				t.Error("Initialize() should end the loading phase")
			}
			if state.IsAuthenticated != test.wantAuth {
				t.Errorf("Initialize() IsAuthenticated = %v, want %v", state.IsAuthenticated, test.wantAuth)
			}
			if test.wantUser && state.User == nil {
				t.Error("Initialize() should publish the user record")
			}
			if !test.wantUser && state.User != nil {
				t.Error("Initialize() should not publish a user record")
			}
		})
	}
}

// Requirement: a panic during initialization lands on a published
// unauthenticated state with the snapshot cleared, never a crash.
func TestController_InitializePanicFailsClosed(t *testing.T) {
	gateway := &fakeGateway{
		panicOnCheck: true,
		snapshot:     auth.Snapshot{IsAuthenticated: true, User: &auth.User{ID: "x"}},
	}
	c, _ := newTestController(gateway)

	c.Initialize(context.Background())

	state := c.State()
	if state.IsAuthenticated || state.User != nil || state.Loading {
		t.Errorf("Initialize() after panic = %+v, want zero state", state)
	}
	if gateway.clearCalls == 0 {
		t.Error("Initialize() after panic should clear the snapshot")
	}
}

// Requirement: successful login publishes the authenticated state and greets
// the operator by name.
func TestController_LoginSuccess(t *testing.T) {
	operator := &auth.User{ID: "mary@lend.dk", FullName: "Mary A", Roles: []string{"Loan Manager"}}
	c, notifier := newTestController(&fakeGateway{loginUser: operator})

	user, err := c.Login(context.Background(), auth.Credentials{ID: "mary@lend.dk", Secret: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user == nil || user.ID != operator.ID {
		t.Fatalf("Login() user = %+v, want %+v", user, operator)
	}

	state := c.State()
	if !state.IsAuthenticated || state.User == nil || state.Loading {
		t.Errorf("Login() state = %+v, want authenticated and settled", state)
	}
	if len(notifier.successes) != 1 || !strings.Contains(notifier.successes[0], "Mary A") {
		t.Errorf("Login() notifications = %v, want a greeting naming the operator", notifier.successes)
	}
}

// Requirement: a failed login surfaces a notification, returns the error and
// leaves the previously published identity untouched.
func TestController_LoginFailureKeepsPriorState(t *testing.T) {
	operator := &auth.User{ID: "mary@lend.dk", FullName: "Mary A"}
	gateway := &fakeGateway{checkAuth: true, userResult: operator}
	c, notifier := newTestController(gateway)
	c.Initialize(context.Background())

	gateway.mu.Lock()
	gateway.loginErr = xerrors.ErrInvalidCredentials
	gateway.mu.Unlock()

	_, err := c.Login(context.Background(), auth.Credentials{ID: "mary@lend.dk", Secret: "wrong"})
	if !errors.Is(err, xerrors.ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}

	state := c.State()
	if !state.IsAuthenticated || state.User == nil {
		t.Error("Login() failure must not sign out an already-authenticated operator")
	}
	if state.Loading {
		t.Error("Login() failure should end the loading phase")
	}
	if len(notifier.errors) != 1 {
		t.Errorf("Login() failure notifications = %v, want exactly one error", notifier.errors)
	}
}

// Requirement: logout publishes the unauthenticated state even when the
// backend call blows up, downgrading the confirmation to a warning.
func TestController_Logout(t *testing.T) {
	tests := []struct {
		name         string
		gateway      *fakeGateway
		wantWarnings int
	}{
		{
			name:    "clean logout confirms success",
			gateway: &fakeGateway{checkAuth: true, userResult: &auth.User{ID: "mary@lend.dk"}},
		},
		{
			name: "backend failure still signs out locally",
			gateway: &fakeGateway{
				checkAuth:     true,
				userResult:    &auth.User{ID: "mary@lend.dk"},
				panicOnLogout: true,
			},
			wantWarnings: 1,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			c, notifier := newTestController(test.gateway)
			c.Initialize(context.Background())

			c.Logout(context.Background())

			state := c.State()
			if state.IsAuthenticated || state.User != nil || state.Loading {
				t.Errorf("Logout() state = %+v, want zero state", state)
			}
			if len(notifier.warnings) != test.wantWarnings {
				t.Errorf("Logout() warnings = %v, want %d", notifier.warnings, test.wantWarnings)
			}
			if test.wantWarnings == 0 && len(notifier.successes) == 0 {
				t.Error("Logout() should confirm success")
			}
		})
	}
}

// Requirement: refresh swaps in a fresh user record without flipping the
// loading flag, and publishes unauthenticated when the session is gone.
func TestController_Refresh(t *testing.T) {
	before := &auth.User{ID: "mary@lend.dk", FullName: "Mary A", Roles: []string{"Loan Officer"}}
	after := &auth.User{ID: "mary@lend.dk", FullName: "Mary A", Roles: []string{"Loan Officer", "Loan Manager"}}

	gateway := &fakeGateway{checkAuth: true, userResult: before}
	c, _ := newTestController(gateway)
	c.Initialize(context.Background())

	gateway.mu.Lock()
	gateway.userResult = after
	gateway.mu.Unlock()

	c.Refresh(context.Background())

	state := c.State()
	if state.Loading {
		t.Error("Refresh() must not enter a loading phase")
	}
	if state.User == nil || len(state.User.Roles) != 2 {
		t.Errorf("Refresh() user = %+v, want the fresh record", state.User)
	}

	gateway.mu.Lock()
	gateway.checkAuth = false
	gateway.mu.Unlock()

	c.Refresh(context.Background())

	state = c.State()
	if state.IsAuthenticated || state.User != nil {
		t.Errorf("Refresh() with a dead session = %+v, want zero state", state)
	}
}

// Requirement: concurrent lifecycle operations are serialized; the published
// tuple is always one operation's complete result.
func TestController_ConcurrentOperations(t *testing.T) {
	operator := &auth.User{ID: "mary@lend.dk", FullName: "Mary A"}
	gateway := &fakeGateway{checkAuth: true, userResult: operator, loginUser: operator}
	c, _ := newTestController(gateway)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				c.Initialize(context.Background())
			case 1:
				_, _ = c.Login(context.Background(), auth.Credentials{ID: "mary@lend.dk", Secret: "pw"})
			case 2:
				c.Refresh(context.Background())
			default:
				_ = c.State()
			}
		}(i)
	}
	wg.Wait()

	state := c.State()
	if state.Loading {
		t.Error("State() should be settled once all operations complete")
	}
	if state.IsAuthenticated && state.User == nil {
		t.Error("State() published an authenticated tuple without a user")
	}
}

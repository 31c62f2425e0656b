package auth

import (
	"context"
	"sync"

	"lenddesk-service/internal/domain/auth"
)

// fakeGateway is an in-memory IdentityGateway with injectable results.
type fakeGateway struct {
	mu sync.Mutex

	loginUser  *auth.User
	loginErr   error
	checkAuth  bool
	userResult *auth.User
	userErr    error
	snapshot   auth.Snapshot

	panicOnLogout bool
	panicOnCheck  bool

	loginCalls  int
	logoutCalls int
	checkCalls  int
	clearCalls  int
}

func (f *fakeGateway) Login(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}

func (f *fakeGateway) Logout(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	if f.panicOnLogout {
		panic("logout backend unreachable")
	}
	f.snapshot = auth.Snapshot{}
}

func (f *fakeGateway) CheckAuth(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls++
	if f.panicOnCheck {
		panic("check backend unreachable")
	}
	return f.checkAuth
}

func (f *fakeGateway) GetCurrentUser(ctx context.Context) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.userResult, nil
}

func (f *fakeGateway) CachedSnapshot(ctx context.Context) auth.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

func (f *fakeGateway) Clear(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	f.snapshot = auth.Snapshot{}
}

// fakeNotifier records the notifications it was handed.
type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	warnings  []string
}

func (f *fakeNotifier) Success(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, message)
}

func (f *fakeNotifier) Error(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, message)
}

func (f *fakeNotifier) Warning(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warnings = append(f.warnings, message)
}

// memorySnapshotStore is an in-memory auth.SnapshotStore with injectable
// failures, for gateway tests.
type memorySnapshotStore struct {
	mu       sync.Mutex
	snapshot auth.Snapshot

	setErr   error
	clearErr error

	clearCalls int
}

func (m *memorySnapshotStore) SetAuthenticated(ctx context.Context, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.snapshot.IsAuthenticated = v
	return nil
}

func (m *memorySnapshotStore) SetUser(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.snapshot.User = u
	return nil
}

func (m *memorySnapshotStore) Read(ctx context.Context) auth.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *memorySnapshotStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.snapshot = auth.Snapshot{}
	return nil
}

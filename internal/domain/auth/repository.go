// internal/domain/auth/repository.go
package auth

import "context"

// SnapshotStore is the durable-storage contract for the cached session
// snapshot: two string keys, one holding the authenticated flag and one the
// serialized User. Only the auth gateway writes through this interface.
type SnapshotStore interface {
	// SetAuthenticated writes the authenticated flag without touching the
	// stored user.
	SetAuthenticated(ctx context.Context, authenticated bool) error
	// SetUser writes the serialized user record.
	SetUser(ctx context.Context, u *User) error
	// Read returns the stored snapshot. Missing or corrupt entries yield a
	// zero snapshot, never an error.
	Read(ctx context.Context) Snapshot
	// Clear removes both keys.
	Clear(ctx context.Context) error
}

// internal/repository/redisrepo/snapshot_repo.go
package redisrepo

import (
	"context"
	"encoding/json"

	"lenddesk-service/internal/domain/auth"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SnapshotRepository persists the cached session snapshot under exactly two
// string keys: <prefix>:authenticated holding "true" (or absent) and
// <prefix>:user holding the serialized user record.
type SnapshotRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewSnapshotRepository(client *redis.Client, prefix string, logger *zap.Logger) *SnapshotRepository {
	if prefix == "" {
		prefix = "lenddesk:auth"
	}
	return &SnapshotRepository{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *SnapshotRepository) flagKey() string { return r.prefix + ":authenticated" }
func (r *SnapshotRepository) userKey() string { return r.prefix + ":user" }

// SetAuthenticated writes the flag key; clearing the flag removes it entirely
// so a fresh startup sees "absent", not "false".
func (r *SnapshotRepository) SetAuthenticated(ctx context.Context, authenticated bool) error {
	if !authenticated {
		return r.client.Del(ctx, r.flagKey()).Err()
	}
	return r.client.Set(ctx, r.flagKey(), "true", 0).Err()
}

// SetUser writes the serialized user record.
func (r *SnapshotRepository) SetUser(ctx context.Context, u *auth.User) error {
	if u == nil {
		return r.client.Del(ctx, r.userKey()).Err()
	}
	encoded, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.userKey(), string(encoded), 0).Err()
}

// Read returns the stored snapshot. Missing or corrupt entries yield a zero
// snapshot; Read never fails.
func (r *SnapshotRepository) Read(ctx context.Context) auth.Snapshot {
	var snap auth.Snapshot

	flag, err := r.client.Get(ctx, r.flagKey()).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("failed to read snapshot flag", zap.Error(err))
		}
		return snap
	}
	snap.IsAuthenticated = flag == "true"

	raw, err := r.client.Get(ctx, r.userKey()).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("failed to read snapshot user", zap.Error(err))
		}
		return snap
	}

	var u auth.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		r.logger.Warn("corrupt snapshot user record, ignoring", zap.Error(err))
		return snap
	}
	snap.User = &u

	return snap
}

// Clear removes both keys.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.flagKey(), r.userKey()).Err()
}

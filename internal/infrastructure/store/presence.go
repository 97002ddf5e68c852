package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mapmark/pinpoint/internal/domain/contract"
)

const presenceKey = "presence:users"

// unregisterScript deletes the field only while it still holds the caller's
// connection ID.
var unregisterScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	return redis.call("HDEL", KEYS[1], ARGV[1])
end
return 0
`)

// purgeScript removes every field whose connection ID carries the given
// instance prefix and returns the affected user IDs.
var purgeScript = redis.NewScript(`
local removed = {}
local entries = redis.call("HGETALL", KEYS[1])
for i = 1, #entries, 2 do
	if string.sub(entries[i + 1], 1, string.len(ARGV[1])) == ARGV[1] then
		redis.call("HDEL", KEYS[1], entries[i])
		table.insert(removed, entries[i])
	end
end
return removed
`)

// RedisPresenceRegistry shares the user to connection mapping between
// instances through a single Redis hash.
type RedisPresenceRegistry struct {
	rdb *redis.Client
}

var _ contract.IPresenceRegistry = (*RedisPresenceRegistry)(nil)

// NewRedisPresenceRegistry creates a registry backed by rdb.
func NewRedisPresenceRegistry(rdb *redis.Client) *RedisPresenceRegistry {
	return &RedisPresenceRegistry{rdb: rdb}
}

func (r *RedisPresenceRegistry) Register(ctx context.Context, userID, connID string) error {
	return r.rdb.HSet(ctx, presenceKey, userID, connID).Err()
}

// Unregister removes userID only while it still maps to connID.
func (r *RedisPresenceRegistry) Unregister(ctx context.Context, userID, connID string) (bool, error) {
	n, err := unregisterScript.Run(ctx, r.rdb, []string{presenceKey}, userID, connID).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *RedisPresenceRegistry) Lookup(ctx context.Context, userID string) (string, bool, error) {
	connID, err := r.rdb.HGet(ctx, presenceKey, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return connID, true, nil
}

func (r *RedisPresenceRegistry) Online(ctx context.Context) ([]string, error) {
	return r.rdb.HKeys(ctx, presenceKey).Result()
}

// PurgeInstance drops the entries left behind by a previous run of
// instanceID, e.g. after a crash, and returns the users it removed.
func (r *RedisPresenceRegistry) PurgeInstance(ctx context.Context, instanceID string) ([]string, error) {
	return purgeScript.Run(ctx, r.rdb, []string{presenceKey}, instanceID+":").StringSlice()
}

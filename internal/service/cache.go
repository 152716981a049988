package service

// cache.go — owner-scoped read cache over Redis.
// Keys follow "<entidad>:<id_empresa>". Every mutating call on an entity
// family MUST invalidate its key, otherwise subsequent lists go stale.
// Reads and writes are best-effort: a Redis failure falls back to the DB.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const listaCacheTTL = 10 * time.Minute

func cacheGet[T any](ctx context.Context, rdb *redis.Client, key string) (T, bool) {
	var out T
	if rdb == nil {
		return out, false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, v any) {
	if rdb == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_ = rdb.Set(ctx, key, b, listaCacheTTL).Err()
	}
}

func cacheInvalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	_ = rdb.Del(ctx, keys...).Err()
}

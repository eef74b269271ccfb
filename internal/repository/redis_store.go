package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisDocs keeps each collection as one JSON string value.
type redisDocs struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) Store {
	return codecStore{docs: &redisDocs{rdb: rdb}}
}

func (r *redisDocs) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// put uses a plain SET (no TTL): the whole collection is replaced atomically.
func (r *redisDocs) put(ctx context.Context, key string, data []byte) error {
	return r.rdb.Set(ctx, key, data, 0).Err()
}

func (r *redisDocs) ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

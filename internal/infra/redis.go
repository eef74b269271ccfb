package infra

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis builds a go-redis client from a redis:// URL. Connectivity is not
// checked here; main awaits the store's readiness signal before serving.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

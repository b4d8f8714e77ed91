// Package cache wraps the Redis client used as the fast-path rate-limit
// counter store. The wrapper exposes only the three operations the rate
// limiter needs (get, increment, expire) so services can depend on a narrow,
// fakeable surface instead of the full Redis API.
package cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string // host:port
	Password string
	DB       int
}

// Client is a thin wrapper over go-redis implementing the counter operations.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(opt Options) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	if err := rdb.Ping().Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

// GetInt64 reads an integer counter. The second return value is false when
// the key is absent (which is not an error: the authoritative store covers it).
func (c *Client) GetInt64(key string) (int64, bool, error) {
	n, err := c.rdb.Get(key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// IncrBy increments a counter and refreshes its expiry in one go. The TTL is
// reset on every call so the key always dies at the same wall-clock boundary
// the caller computes.
func (c *Client) IncrBy(key string, n int64, ttl time.Duration) error {
	if err := c.rdb.IncrBy(key, n).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(key, ttl).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

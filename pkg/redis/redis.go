package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medtransit/fare-engine/pkg/config"
)

// Client wraps go-redis with the handful of operations this service uses.
// The embedded client stays reachable for health probes.
type Client struct {
	*redis.Client
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// SetWithExpiration sets a key-value pair with expiration.
func (c *Client) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Set(ctx, key, value, expiration).Err()
}

// SetIfNotExists sets a key only when it is absent. Returns true when this
// call claimed the key.
func (c *Client) SetIfNotExists(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.SetNX(ctx, key, value, expiration).Result()
}

// GetString gets a string value by key.
func (c *Client) GetString(ctx context.Context, key string) (string, error) {
	return c.Get(ctx, key).Result()
}

// Delete removes keys.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Del(ctx, keys...).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.Client.Close()
}

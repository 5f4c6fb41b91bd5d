package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/mahmoudhijazi1/diet-platform/internal/config"
)

const avatarQueueKey = "avatar:resize:queue"

type Client struct {
	Client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Get retrieves a value from Redis
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value in Redis with expiration
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Delete removes a key from Redis
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// GetTenantStatus retrieves a cached tenant status.
// Returns redis.Nil error when the tenant is not cached.
func (c *Client) GetTenantStatus(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return c.Get(ctx, tenantStatusKey(tenantID))
}

// SetTenantStatus caches a tenant status.
func (c *Client) SetTenantStatus(ctx context.Context, tenantID uuid.UUID, status string, expiration time.Duration) error {
	return c.Set(ctx, tenantStatusKey(tenantID), status, expiration)
}

// InvalidateTenant removes cached data for a tenant. Called after any
// tenant update or delete so stale status never outlives a change.
func (c *Client) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	return c.Delete(ctx, tenantStatusKey(tenantID))
}

// EnqueueAvatarJob pushes a serialized resize job onto the worker queue.
func (c *Client) EnqueueAvatarJob(ctx context.Context, payload []byte) error {
	return c.Client.LPush(ctx, avatarQueueKey, payload).Err()
}

// DequeueAvatarJob blocks up to timeout waiting for the next resize job.
// Returns redis.Nil error on timeout.
func (c *Client) DequeueAvatarJob(ctx context.Context, timeout time.Duration) ([]byte, error) {
	res, err := c.Client.BRPop(ctx, timeout, avatarQueueKey).Result()
	if err != nil {
		return nil, err
	}
	// BRPop returns [key, value]
	if len(res) < 2 {
		return nil, redis.Nil
	}
	return []byte(res[1]), nil
}

// Close closes the Redis client
func (c *Client) Close() error {
	return c.Client.Close()
}

func tenantStatusKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:status:%s", tenantID)
}

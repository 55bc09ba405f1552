package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds our value
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// refreshScript extends the lock TTL only when it still holds our value
const refreshScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
else
	return 0
end`

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time
	TTL time.Duration
	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// RefreshInterval is the interval for refreshing the lock
	RefreshInterval time.Duration
	// LockNamespace is the namespace for organizing locks
	LockNamespace string
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
		LockNamespace:   "",
	}
}

// WithTTL sets the lock expiration time
func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	if ttl < 0 {
		panic(fmt.Sprintf("invalid TTL: %v, must be non-negative", ttl))
	}
	lo.TTL = ttl
	return lo
}

// WithMaxRetries sets the maximum number of retry attempts
func (lo *LockOptions) WithMaxRetries(maxRetries int) *LockOptions {
	if maxRetries < 0 {
		panic(fmt.Sprintf("invalid max retries: %d, must be non-negative", maxRetries))
	}
	lo.MaxRetries = maxRetries
	return lo
}

// WithRefreshInterval sets the interval for refreshing the lock
func (lo *LockOptions) WithRefreshInterval(interval time.Duration) *LockOptions {
	if interval < 0 {
		panic(fmt.Sprintf("invalid refresh interval: %v, must be non-negative", interval))
	}
	lo.RefreshInterval = interval
	return lo
}

// WithLockNamespace sets the namespace for organizing locks
func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// DefaultLockOptions returns default lock options
func DefaultLockOptions() *LockOptions {
	return NewLockOptions()
}

// Lock represents a distributed lock
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = DefaultLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  generateLockValue(),
		opts:   opts,
	}
}

// buildLockKey constructs the full lock key using LockNamespace::lockKey format
func (l *Lock) buildLockKey() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// Lock attempts to acquire the lock
func (l *Lock) Lock(ctx context.Context) error {
	fullKey := l.buildLockKey()
	for attempt := 0; attempt <= l.opts.MaxRetries; attempt++ {
		// Try to acquire the lock using SET with NX and EX options
		acquired, err := l.client.GetClient().SetNX(ctx, fullKey, l.value, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if acquired {
			return nil
		}

		if attempt < l.opts.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.opts.RetryDelay):
			}
		}
	}
	return fmt.Errorf("failed to acquire lock %s after %d attempts", fullKey, l.opts.MaxRetries+1)
}

// Unlock releases the lock if this instance still holds it
func (l *Lock) Unlock(ctx context.Context) error {
	result, err := redis.NewScript(releaseScript).Run(ctx, l.client.GetClient(), []string{l.buildLockKey()}, l.value).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return fmt.Errorf("lock %s not held by this instance", l.buildLockKey())
	}
	return nil
}

// Refresh extends the lock TTL if this instance still holds it
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := redis.NewScript(refreshScript).Run(ctx, l.client.GetClient(),
		[]string{l.buildLockKey()}, l.value, l.opts.TTL.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if result == 0 {
		return fmt.Errorf("lock %s not held by this instance", l.buildLockKey())
	}
	return nil
}

// AutoRefresh keeps refreshing the lock until the context is canceled or a
// refresh fails. The returned channel delivers the terminal error (nil on
// context cancellation) and is then closed.
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- nil
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

// NewScheduledTaskLock builds a lock suited for long-lived scheduler
// ownership: generous TTL, a single acquisition attempt, and periodic
// refresh via AutoRefresh.
func NewScheduledTaskLock(client *Client, taskName string, ttl, refreshInterval time.Duration, namespace string) *Lock {
	opts := NewLockOptions().
		WithTTL(ttl).
		WithMaxRetries(0).
		WithRefreshInterval(refreshInterval).
		WithLockNamespace(namespace)
	return NewLock(client, taskName, opts)
}

// generateLockValue produces the fencing value identifying this lock holder
func generateLockValue() string {
	return uuid.New().String()
}

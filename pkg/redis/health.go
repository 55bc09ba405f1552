package redis

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck verifies connectivity and basic operations against Redis
func HealthCheck(ctx context.Context, client *Client) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	// Round-trip a probe key to verify read/write
	probeKey := "health::probe"
	if err := client.Set(checkCtx, probeKey, "ok", 10*time.Second); err != nil {
		return fmt.Errorf("redis write failed: %w", err)
	}
	data, err := client.GetBytes(checkCtx, probeKey)
	if err != nil {
		return fmt.Errorf("redis read failed: %w", err)
	}
	if string(data) != "ok" {
		return fmt.Errorf("redis probe mismatch: got %q", string(data))
	}
	_ = client.Delete(checkCtx, probeKey)

	return nil
}

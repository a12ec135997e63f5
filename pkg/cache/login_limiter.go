package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles repeated failed logins per email using a
// fixed-window counter in Redis.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter constructs a limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

// Allow reports whether another login attempt may proceed for the email.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, err
	}
	return count < l.maxAttempts, nil
}

// RecordFailure bumps the failed attempt counter for the email.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	if l.client == nil {
		return nil
	}
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if l.client == nil {
		return nil
	}
	return l.client.Del(ctx, l.key(email)).Err()
}

package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultLockTime    = 15 * time.Minute
)

// LoginLimiter locks an account after too many failed logins.
// Key format: login_failures:<email>
//
// The counter expires lockTime after the first failure of a streak, so an
// account unlocks on its own once the window passes.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	lockTime    time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Non-positive values select 10
// attempts and a 15 minute lock.
func NewLoginLimiter(client *redis.Client, maxAttempts int, lockTime time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if lockTime <= 0 {
		lockTime = defaultLockTime
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, lockTime: lockTime}
}

// Locked reports whether email has reached the failure limit.
func (l *LoginLimiter) Locked(ctx context.Context, email string) (bool, error) {
	v, err := l.client.Get(ctx, l.key(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure counts one failed login.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.lockTime)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// Reset clears the failure streak after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_failures:" + email
}

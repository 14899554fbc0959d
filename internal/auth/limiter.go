package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptsPrefix = "login_attempts:"

// LoginLimiter counts failed logins per email in a fixed Redis window.
// A nil limiter or one without a client allows everything.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter returns a limiter. maxAttempts <= 0 disables throttling.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

func (l *LoginLimiter) enabled() bool {
	return l != nil && l.client != nil && l.maxAttempts > 0 && l.window > 0
}

func loginKey(email string) string {
	return loginAttemptsPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Allowed reports whether another attempt is permitted. Redis failures fail open.
func (l *LoginLimiter) Allowed(ctx context.Context, email string) bool {
	if !l.enabled() {
		return true
	}
	count, err := l.client.Get(ctx, loginKey(email)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("login limiter read failed", zap.Error(err))
		}
		return true
	}
	return count < l.maxAttempts
}

// RecordFailure bumps the failure counter, starting the window on the first miss.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	key := loginKey(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter incr failed", zap.Error(err))
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if !l.enabled() {
		return
	}
	if err := l.client.Del(ctx, loginKey(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}

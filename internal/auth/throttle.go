package auth

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Throttle counts failed logins per username and locks a username out once
// maxAttempts failures happened within the lockout window.
type Throttle struct {
	failures    *cache.Cache
	maxAttempts int
}

// NewThrottle creates a throttle. maxAttempts <= 0 disables it.
func NewThrottle(maxAttempts int, lockout time.Duration) *Throttle {
	return &Throttle{
		failures:    cache.New(lockout, 2*lockout),
		maxAttempts: maxAttempts,
	}
}

// Allowed reports whether username may attempt a login.
func (t *Throttle) Allowed(username string) bool {
	if t == nil || t.maxAttempts <= 0 {
		return true
	}
	n, ok := t.failures.Get(key(username))
	return !ok || n.(int) < t.maxAttempts
}

// Fail records a failed login. The window starts at the first failure.
func (t *Throttle) Fail(username string) {
	if t == nil || t.maxAttempts <= 0 {
		return
	}
	k := key(username)
	if err := t.failures.Add(k, 1, cache.DefaultExpiration); err != nil {
		t.failures.IncrementInt(k, 1)
	}
}

// Reset forgets the failures of username.
func (t *Throttle) Reset(username string) {
	if t == nil {
		return
	}
	t.failures.Delete(key(username))
}

func key(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

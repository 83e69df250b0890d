// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter is a fixed-window counter keyed by an arbitrary string (an IP, an
// email). It is safe for concurrent use. Expired windows are dropped by
// Prune, which the background pruner calls periodically.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit hits per key within each window.
func New(limit int, d time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		window:  d,
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.window)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many hits are left for key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	if rem := l.limit - w.count; rem > 0 {
		return rem
	}
	return 0
}

// Reset clears the window for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// Prune removes expired windows and returns how many were dropped.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	n := 0
	for k, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, k)
			n++
		}
	}
	return n
}

// ClientIP extracts the client IP, preferring the first X-Forwarded-For hop,
// then X-Real-IP, then RemoteAddr without its port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles sign-in attempts both per client IP and per email,
// covering spraying from one address and guessing against one account.
type LoginLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewLoginLimiter allows ipPerMinute attempts per IP each minute and
// emailPer5Min attempts per email every five minutes. Non-positive values
// fall back to 10 and 5.
func NewLoginLimiter(ipPerMinute, emailPer5Min int) *LoginLimiter {
	if ipPerMinute <= 0 {
		ipPerMinute = 10
	}
	if emailPer5Min <= 0 {
		emailPer5Min = 5
	}
	return &LoginLimiter{
		ip:    New(ipPerMinute, time.Minute),
		email: New(emailPer5Min, 5*time.Minute),
	}
}

// Check records an attempt and returns (allowed, reason).
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if key := emailKey(email); key != "" && !ll.email.Allow(key) {
		return false, "Too many login attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the per-email window after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if key := emailKey(email); key != "" {
		ll.email.Reset(key)
	}
}

// Prune drops expired windows from both limiters.
func (ll *LoginLimiter) Prune() int {
	return ll.ip.Prune() + ll.email.Prune()
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

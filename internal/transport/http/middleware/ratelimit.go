package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/shared"
)

type RateLimitKeyFunc func(r *http.Request) string

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token bucket per key. Buckets idle for longer
// than a full refill are dropped, since a fresh bucket behaves the same.
type KeyedLimiter struct {
	mu        sync.Mutex
	entries   map[string]*keyedEntry
	every     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedLimiter(every rate.Limit, burst int) *KeyedLimiter {
	idle := time.Minute
	if every > 0 {
		if refill := time.Duration(float64(burst) / float64(every) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &KeyedLimiter{
		entries: map[string]*keyedEntry{},
		every:   every,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

func (k *KeyedLimiter) Limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) >= k.idle {
		k.sweep(now)
	}

	entry, ok := k.entries[key]
	if !ok {
		entry = &keyedEntry{limiter: rate.NewLimiter(k.every, k.burst)}
		k.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Len reports how many keys currently hold a bucket.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

func (k *KeyedLimiter) sweep(now time.Time) {
	for key, entry := range k.entries {
		if now.Sub(entry.lastSeen) >= k.idle {
			delete(k.entries, key)
		}
	}
	k.lastSweep = now
}

// FormFieldOrIPKey keys on a submitted form field, such as the login name,
// so rotating client addresses cannot reset the budget for one account.
func FormFieldOrIPKey(field string, ipKey RateLimitKeyFunc) RateLimitKeyFunc {
	if ipKey == nil {
		ipKey = shared.ClientIP
	}
	return func(r *http.Request) string {
		value := strings.ToLower(strings.TrimSpace(r.PostFormValue(field)))
		if value == "" {
			return "ip:" + ipKey(r)
		}
		return field + ":" + value
	}
}

// AuthRateLimit applies the per-client budget and then a per-username budget
// to credential submissions.
func AuthRateLimit(perMinute int, ipKey RateLimitKeyFunc) func(http.Handler) http.Handler {
	byClient := RateLimit(perMinute, ipKey)
	byUsername := RateLimit(perMinute, FormFieldOrIPKey("username", ipKey))
	return func(next http.Handler) http.Handler {
		return byClient(byUsername(next))
	}
}

// RateLimit allows perMinute requests per client, refilled evenly across the
// minute. A non-positive limit disables the check.
func RateLimit(perMinute int, keyFn RateLimitKeyFunc) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = shared.ClientIP
	}
	var limiters *KeyedLimiter
	if perMinute > 0 {
		limiters = NewKeyedLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiters == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := keyFn(r)
			if key == "" {
				key = shared.ClientIP(r)
			}
			reservation := limiters.Limiter(key).Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				retryAfter := max(int(delay.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				slog.WarnContext(r.Context(), "rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
					"method", r.Method,
					"limitPerMinute", perMinute,
				)
				if shared.WantsJSON(r) {
					api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
					return
				}
				http.Error(w, "Too many attempts. Please wait and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

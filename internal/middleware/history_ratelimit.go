package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// History fetches are unpaginated, so a rapid-fire client makes Mongo stream
// the full log on every request. The token bucket here bounds that one route;
// the Redis window limiter still covers the API as a whole.
const (
	historyRPS        = 0.5 // 30 per minute
	historyBurst      = 20
	historySweepEvery = 5 * time.Minute
	historyEntryTTL   = 30 * time.Minute
)

type historyEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

type historyLimiter struct {
	mu      sync.Mutex
	entries map[string]*historyEntry
}

func newHistoryLimiter() *historyLimiter {
	hl := &historyLimiter{entries: make(map[string]*historyEntry)}
	go hl.sweep()
	return hl
}

func (hl *historyLimiter) get(ip string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	e, ok := hl.entries[ip]
	if !ok {
		e = &historyEntry{limiter: rate.NewLimiter(rate.Limit(historyRPS), historyBurst)}
		hl.entries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

// sweep drops limiters for IPs that have gone quiet so the map stays bounded.
func (hl *historyLimiter) sweep() {
	ticker := time.NewTicker(historySweepEvery)
	defer ticker.Stop()
	for range ticker.C {
		hl.mu.Lock()
		now := time.Now()
		for ip, e := range hl.entries {
			if now.Sub(e.lastUse) > historyEntryTTL {
				delete(hl.entries, ip)
			}
		}
		hl.mu.Unlock()
	}
}

// HistoryRateLimit limits GET /chatBot to 30 requests per minute per IP with a
// burst of 20. Every other route passes through untouched.
func HistoryRateLimit() func(http.Handler) http.Handler {
	hl := newHistoryLimiter()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/chatBot" {
				next.ServeHTTP(w, r)
				return
			}

			if !hl.get(clientIP(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(historyBurst))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"status":429,"error":"too many history requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

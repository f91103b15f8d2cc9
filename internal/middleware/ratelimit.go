// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Budget names a per-client request allowance over a sliding window.
// The API runs two: a wide one for editor CRUD calls and a tight one
// for render and export, where a single request can hold a CPU core
// for seconds.
type Budget struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter enforces one Budget per client IP.
type RateLimiter struct {
	budget  Budget
	mu      sync.Mutex
	clients map[string][]time.Time
	stopCh  chan struct{}
}

// NewRateLimiter creates a limiter for the given budget and starts a
// background goroutine that sweeps idle clients.
func NewRateLimiter(b Budget) *RateLimiter {
	rl := &RateLimiter{
		budget:  b,
		clients: make(map[string][]time.Time),
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// allow records a request for key and reports whether it fits the
// budget. Expired timestamps are pruned in place on every call.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.budget.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	stamps := rl.clients[key]
	valid := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	if len(valid) >= rl.budget.Limit {
		rl.clients[key] = valid
		return false
	}
	rl.clients[key] = append(valid, now)
	return true
}

// sweep drops clients whose every timestamp has aged out of the window.
func (rl *RateLimiter) sweep() {
	cutoff := time.Now().Add(-rl.budget.Window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, stamps := range rl.clients {
		recent := false
		for _, ts := range stamps {
			if ts.After(cutoff) {
				recent = true
				break
			}
		}
		if !recent {
			delete(rl.clients, key)
		}
	}
}

// Middleware rate-limits by client IP. Rejections answer 429 with a
// JSON body matching the API's error shape and a Retry-After hint of
// one full window.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			slog.Warn("request over budget",
				"budget", rl.budget.Name,
				"ip", ip,
				"limit", rl.budget.Limit,
				"window", rl.budget.Window,
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.budget.Window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too Many Requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, preferring proxy headers
// over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

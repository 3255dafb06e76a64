package service

import (
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter cuenta intentos fallidos de login por clave.
// Allow no consume cupo; solo RecordFailure lo hace y Reset lo libera.
type LoginRateLimiter interface {
	Allow(key string) bool
	RecordFailure(key string)
	Reset(key string)
}

type memoryLoginRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	failures  map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginRateLimiter crea un limiter en memoria de ventana deslizante.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryLoginRateLimiter{
		window:   window,
		max:      max,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	key = normalizeLimiterKey(key)
	if key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now().UTC()
	l.sweep(now)
	return len(l.prune(key, now)) < l.max
}

func (l *memoryLoginRateLimiter) RecordFailure(key string) {
	key = normalizeLimiterKey(key)
	if key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now().UTC()
	l.sweep(now)
	l.failures[key] = append(l.prune(key, now), now)
}

func (l *memoryLoginRateLimiter) Reset(key string) {
	key = normalizeLimiterKey(key)
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
}

// prune descarta los fallos fuera de la ventana y borra la clave si queda vacia.
func (l *memoryLoginRateLimiter) prune(key string, now time.Time) []time.Time {
	entries, ok := l.failures[key]
	if !ok {
		return nil
	}
	cutoff := now.Add(-l.window)
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = kept
	return kept
}

// sweep recorre todas las claves como mucho una vez por ventana.
func (l *memoryLoginRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key := range l.failures {
		l.prune(key, now)
	}
}

func normalizeLimiterKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

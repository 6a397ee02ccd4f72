package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/espegro/ledboard-bridge/internal/logger"
	"github.com/espegro/ledboard-bridge/internal/metrics"
)

// ScreenLimiter throttles screen pushes to the board. The board restarts
// its playlist on every write, so a flood of MQTT messages would keep it
// from ever finishing a screen.
type ScreenLimiter struct {
	maxPerSec            int
	dropStatsIntervalSec int

	// Metrics
	received     uint64
	allowed      uint64
	dropped      uint64
	lastDropTime time.Time
	dropMu       sync.Mutex

	// Rate limiting
	tokens         int
	maxTokens      int
	lastRefillTime time.Time
	tokenMu        sync.Mutex
	now            func() time.Time
}

// NewScreenLimiter creates a new screen limiter. maxPerSec 0 disables limiting.
func NewScreenLimiter(maxPerSec int, dropStatsIntervalSec int) *ScreenLimiter {
	l := &ScreenLimiter{
		maxPerSec:            maxPerSec,
		dropStatsIntervalSec: dropStatsIntervalSec,
		maxTokens:            maxPerSec,
		tokens:               maxPerSec,
		now:                  time.Now,
	}
	l.lastRefillTime = l.now()
	metrics.RateLimitTokensAvailable.Set(float64(l.tokens))
	return l
}

// Allow checks if a screen push should go out or be dropped
// Returns true if the screen should be sent
func (l *ScreenLimiter) Allow() bool {
	atomic.AddUint64(&l.received, 1)

	// If no rate limit, always allow
	if l.maxPerSec == 0 {
		atomic.AddUint64(&l.allowed, 1)
		return true
	}

	l.tokenMu.Lock()
	defer l.tokenMu.Unlock()

	// Refill tokens based on time elapsed
	now := l.now()
	elapsed := now.Sub(l.lastRefillTime)
	if elapsed >= time.Second {
		tokensToAdd := int(elapsed.Seconds()) * l.maxPerSec
		l.tokens = min(l.tokens+tokensToAdd, l.maxTokens)
		l.lastRefillTime = now
	}

	if l.tokens > 0 {
		l.tokens--
		metrics.RateLimitTokensAvailable.Set(float64(l.tokens))
		atomic.AddUint64(&l.allowed, 1)
		return true
	}

	l.recordDrop(now)
	return false
}

// recordDrop records a dropped screen
func (l *ScreenLimiter) recordDrop(now time.Time) {
	dropped := atomic.AddUint64(&l.dropped, 1)

	l.dropMu.Lock()
	defer l.dropMu.Unlock()

	// Log first drop or if more than 5 seconds since last drop log
	if l.lastDropTime.IsZero() || now.Sub(l.lastDropTime) > 5*time.Second {
		logger.Warn("Screen dropped (rate limit exceeded). Total drops: %d", dropped)
		l.lastDropTime = now
	}
}

// GetStats returns current statistics
func (l *ScreenLimiter) GetStats() (received, allowed, dropped uint64) {
	return atomic.LoadUint64(&l.received),
		atomic.LoadUint64(&l.allowed),
		atomic.LoadUint64(&l.dropped)
}

// ReportStats periodically logs drop statistics until ctx is done
func (l *ScreenLimiter) ReportStats(ctx context.Context) {
	if l.dropStatsIntervalSec <= 0 {
		return
	}

	ticker := time.NewTicker(time.Duration(l.dropStatsIntervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			received, allowed, dropped := l.GetStats()
			if dropped > 0 {
				dropRate := float64(dropped) / float64(received) * 100
				logger.Info("Screen stats: received=%d sent=%d dropped=%d (%.2f%%)",
					received, allowed, dropped, dropRate)
			}
		}
	}
}

// ResetStats resets all statistics counters
func (l *ScreenLimiter) ResetStats() {
	atomic.StoreUint64(&l.received, 0)
	atomic.StoreUint64(&l.allowed, 0)
	atomic.StoreUint64(&l.dropped, 0)
}

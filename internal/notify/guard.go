package notify

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Guard lets exactly one event through per cooldown window.
// The first call to Allow opens a window; calls inside it are rejected
// and the window is not extended by them.
type Guard struct {
	mu       sync.Mutex
	clock    clock.Clock
	cooldown time.Duration
	until    time.Time
}

// NewGuard creates a guard. A nil clock uses the wall clock.
func NewGuard(c clock.Clock, cooldown time.Duration) *Guard {
	if c == nil {
		c = clock.New()
	}

	return &Guard{clock: c, cooldown: cooldown}
}

// Allow reports whether the caller may proceed.
func (g *Guard) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if now.Before(g.until) {
		return false
	}

	g.until = now.Add(g.cooldown)

	return true
}

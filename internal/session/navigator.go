package session

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Navigator requests a full navigation to path. Implementations decide how the
// navigation reaches the browser; the session only records the intent.
type Navigator interface {
	Navigate(path string)
}

// PendingNavigator keeps the last requested navigation until it is taken or,
// with a lifetime set, until it expires unanswered.
// The zero value keeps navigations until they are taken.
type PendingNavigator struct {
	mu       sync.Mutex
	clock    clock.Clock
	lifetime time.Duration
	target   string
	at       time.Time
}

// NewPendingNavigator creates a navigator whose navigations expire after lifetime.
// A lifetime of zero never expires them.
func NewPendingNavigator(clk clock.Clock, lifetime time.Duration) *PendingNavigator {
	if clk == nil {
		clk = clock.New()
	}

	return &PendingNavigator{clock: clk, lifetime: lifetime}
}

// Navigate records path as the pending navigation, replacing an older one.
func (p *PendingNavigator) Navigate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.target = path

	if p.clock != nil {
		p.at = p.clock.Now()
	}
}

// Take returns and clears the pending navigation.
func (p *PendingNavigator) Take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	target, ok := p.pendingLocked()
	p.target = ""

	return target, ok
}

// Pending reports the pending navigation without clearing it.
func (p *PendingNavigator) Pending() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pendingLocked()
}

func (p *PendingNavigator) pendingLocked() (string, bool) {
	if p.target == "" {
		return "", false
	}

	if p.lifetime > 0 && p.clock != nil && p.clock.Since(p.at) > p.lifetime {
		p.target = ""

		return "", false
	}

	return p.target, true
}

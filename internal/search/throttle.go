package search

import (
	"sync"
	"time"
)

// DefaultThrottleWindow suppresses a repeated identical search for one second.
const DefaultThrottleWindow = time.Second

// Throttle drops a search when it repeats the previous term inside the window.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	term   string
	at     time.Time
}

// NewThrottle builds a Throttle; a non-positive window uses DefaultThrottleWindow.
func NewThrottle(window time.Duration) *Throttle {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &Throttle{window: window, now: time.Now}
}

// Allow reports whether term may be searched now and records the attempt
// when it is allowed.
func (t *Throttle) Allow(term string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.at.IsZero() && term == t.term && now.Sub(t.at) < t.window {
		return false
	}
	t.term = term
	t.at = now
	return true
}

// Reset forgets the last term so the next search always runs.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term = ""
	t.at = time.Time{}
}

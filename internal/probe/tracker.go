package probe

import (
	"sync"

	"github.com/espegro/ledboard-bridge/internal/metrics"
)

// Transition is the state change caused by a ping result
type Transition int

const (
	// NoChange means the board stays in its current state
	NoChange Transition = iota
	// WentOnline means the last N pings were all answered
	WentOnline
	// WentOffline means a ping was lost while the board was online
	WentOffline
)

// String returns the transition name
func (t Transition) String() string {
	switch t {
	case WentOnline:
		return "online"
	case WentOffline:
		return "offline"
	default:
		return "none"
	}
}

// Tracker decides board liveness from consecutive ping results
type Tracker struct {
	required int
	streak   int
	online   bool
	mu       sync.Mutex
}

// NewTracker creates a tracker that needs required answers in a row
// before the board counts as online
func NewTracker(required int) *Tracker {
	if required <= 0 {
		required = 1
	}
	return &Tracker{required: required}
}

// Observe feeds one ping result and returns the resulting transition
func (t *Tracker) Observe(answered bool) Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !answered {
		t.streak = 0
		if t.online {
			t.online = false
			metrics.SetBoardOnline(false)
			return WentOffline
		}
		return NoChange
	}

	if t.streak < t.required {
		t.streak++
	}
	if !t.online && t.streak >= t.required {
		t.online = true
		metrics.SetBoardOnline(true)
		return WentOnline
	}
	return NoChange
}

// Online reports the current state
func (t *Tracker) Online() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.online
}

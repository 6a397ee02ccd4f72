// Package dedup suppresses MQTT payloads repeated on a topic within a window.
package dedup

import (
    "sync"
    "time"

    lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the number of topics remembered
const DefaultSize = 256

// Filter remembers the last payload per topic with LRU eviction
type Filter struct {
    last   *lru.Cache[string, *entry]
    window time.Duration
    now    func() time.Time
    mu     sync.Mutex
}

type entry struct {
    payload   string
    timestamp time.Time
}

// New creates a filter. A window of zero or less disables suppression.
func New(window time.Duration, size int) *Filter {
    if size <= 0 {
        size = DefaultSize
    }
    last, _ := lru.New[string, *entry](size)

    return &Filter{
        last:   last,
        window: window,
        now:    time.Now,
    }
}

// Seen reports whether payload already arrived on topic within the window.
// Every call refreshes the stored payload and time for the topic.
func (f *Filter) Seen(topic, payload string) bool {
    if f == nil || f.window <= 0 {
        return false
    }

    f.mu.Lock()
    defer f.mu.Unlock()

    now := f.now()
    prev, ok := f.last.Get(topic)
    f.last.Add(topic, &entry{payload: payload, timestamp: now})

    return ok && prev.payload == payload && now.Sub(prev.timestamp) < f.window
}

// Len returns the number of topics remembered
func (f *Filter) Len() int {
    if f == nil {
        return 0
    }
    return f.last.Len()
}

// Package gamelog keeps the short, human-readable trail of recent actions shown
// next to the game screen. It is purely observational: nothing reads it back to
// decide what to do next.
package gamelog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category tags an entry for colouring.
type Category string

const (
	Info   Category = "info"
	Combat Category = "combat"
	Gain   Category = "gain"
	Danger Category = "danger"
	Tx     Category = "tx"
)

// DefaultMax is the number of entries kept when no other bound is configured.
const DefaultMax = 10

// Entry is one immutable log line.
type Entry struct {
	ID        string
	Timestamp time.Time
	Message   string
	Category  Category
}

// Recorder is a bounded newest-first list of entries.
type Recorder struct {
	mu      sync.RWMutex
	max     int
	entries []Entry
	now     func() time.Time
}

type recorderOption func(*Recorder)

// WithClock replaces the time source used to stamp new entries.
func WithClock(now func() time.Time) recorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder that keeps at most max entries. A non-positive
// max falls back to DefaultMax.
func NewRecorder(max int, opts ...recorderOption) *Recorder {
	if max <= 0 {
		max = DefaultMax
	}
	r := &Recorder{
		max:     max,
		entries: make([]Entry, 0, max),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append records msg at the front of the list and drops whatever falls past
// the bound.
func (r *Recorder) Append(msg string, category Category) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: r.now(),
		Message:   msg,
		Category:  category,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == r.max {
		r.entries = r.entries[:r.max-1]
	}
	r.entries = append(r.entries, Entry{})
	copy(r.entries[1:], r.entries)
	r.entries[0] = e
	return e
}

// Entries returns a copy of the retained entries, newest first.
func (r *Recorder) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Recorder) Max() int {
	return r.max
}

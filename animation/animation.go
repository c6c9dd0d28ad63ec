// Package animation sequences the display phases of a battle on a single
// timer. It is purely cosmetic and never consulted by the game logic.
package animation

import (
	"sync"
	"time"

	"atomicgo.dev/schedule"
)

type Phase int

const (
	Idle Phase = iota
	Encounter
	Charging
	Clash
	Result
)

func (p Phase) String() string {
	switch p {
	case Encounter:
		return "encounter"
	case Charging:
		return "charging"
	case Clash:
		return "clash"
	case Result:
		return "result"
	}
	return "idle"
}

// Sequencer walks Idle → Encounter → Charging while a fight is in flight and
// Clash → Result once the outcome is known. Only the timer of the latest phase
// change is live: every phase change bumps gen and an older timer that fires
// afterwards does nothing.
//
// Timers are never stopped: schedule.After stops its own task after the
// callback runs, so stopping a task that already fired panics.
type Sequencer struct {
	mu       sync.Mutex
	phase    Phase
	step     time.Duration
	gen      uint64
	onChange func(Phase)
}

// New creates a sequencer advancing one phase every step. onChange, if not
// nil, is called after every phase change without the lock held.
func New(step time.Duration, onChange func(Phase)) *Sequencer {
	return &Sequencer{step: step, onChange: onChange}
}

func (s *Sequencer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// set moves to p and schedules next after one step. Callers hold s.mu.
func (s *Sequencer) set(p Phase, next *Phase) {
	s.gen++
	s.phase = p
	if next == nil {
		return
	}
	gen, to := s.gen, *next
	schedule.After(s.step, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.gen++
		s.phase = to
		s.mu.Unlock()
		s.notify(to)
	})
}

func (s *Sequencer) notify(p Phase) {
	if s.onChange != nil {
		s.onChange(p)
	}
}

func (s *Sequencer) move(p Phase, next *Phase) {
	s.mu.Lock()
	s.set(p, next)
	s.mu.Unlock()
	s.notify(p)
}

// Start shows the encounter and charges until Resolve or Stop. A battle that
// is already running is not restarted.
func (s *Sequencer) Start() {
	s.mu.Lock()
	if s.phase != Idle && s.phase != Result {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	next := Charging
	s.move(Encounter, &next)
}

// Resolve plays the clash and then the result.
func (s *Sequencer) Resolve() {
	next := Result
	s.move(Clash, &next)
}

// Stop discards any pending phase and returns to Idle.
func (s *Sequencer) Stop() {
	s.move(Idle, nil)
}

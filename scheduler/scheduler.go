// Package scheduler implements the bounded priority queue of
// timestamped events that drives whose turn it is to advance
//. It is grounded in go-jeebie's jeebie/events package
// (EventScheduler): same idea of a fixed table of slots keyed by a
// small integer tag, generalized from a channel-backed queue of
// arbitrary events into the fixed-capacity, index-addressed table the
// spec calls for (set_event/schedule/cancel/pop_pending).
package scheduler

import "github.com/adriweb/gosnes/timing"

// Slot identifies one of the scheduler's fixed event slots. Concrete
// slot indices are assigned by the caller (the root gosnes package); the scheduler
// itself is agnostic to what a slot "means".
type Slot int

// Event is the opaque, caller-defined payload attached to a slot via
// SetEvent. The scheduler never inspects it.
type Event interface{}

type entry struct {
	event  Event
	active bool
	time   timing.Timestamp
}

// Scheduler is a fixed-capacity table of event slots plus the two
// clock registers (cur_time, target_time) that gate CPU execution.
type Scheduler struct {
	slots      []entry
	curTime    timing.Timestamp
	targetTime timing.Timestamp
}

// New creates a scheduler with capacity slots, all inactive.
func New(capacity int) *Scheduler {
	return &Scheduler{slots: make([]entry, capacity)}
}

// SetEvent attaches the given tagged event value to a slot, without
// scheduling it (schedule it separately with Schedule, or it remains
// dormant until the next Schedule call for that slot).
func (s *Scheduler) SetEvent(slot Slot, event Event) {
	s.slots[slot].event = event
}

// Schedule arms a slot to fire at the given absolute master timestamp.
// target_time is shortened monotonically: it can only move earlier,
// never later.
func (s *Scheduler) Schedule(slot Slot, at timing.Timestamp) {
	s.slots[slot].active = true
	s.slots[slot].time = at
	if at < s.targetTime {
		s.targetTime = at
	}
}

// Cancel clears a slot's active bit. O(1), no timeout semantics.
func (s *Scheduler) Cancel(slot Slot) {
	s.slots[slot].active = false
}

// IsActive reports whether a slot currently holds a pending event.
func (s *Scheduler) IsActive(slot Slot) bool {
	return s.slots[slot].active
}

// PopPending returns the earliest-scheduled active slot whose time is
// <= now, or ok=false if none qualifies. Ties are broken by slot index
// (lowest first).
func (s *Scheduler) PopPending(now timing.Timestamp) (event Event, slot Slot, ok bool) {
	best := -1
	var bestTime timing.Timestamp
	for i := range s.slots {
		e := &s.slots[i]
		if !e.active || e.time > now {
			continue
		}
		if best == -1 || e.time < bestTime {
			best = i
			bestTime = e.time
		}
	}
	if best == -1 {
		return nil, 0, false
	}
	s.slots[best].active = false
	return s.slots[best].event, Slot(best), true
}

// ForceYield sets target_time = cur_time, making the current time the
// next yield deadline.
func (s *Scheduler) ForceYield() {
	s.targetTime = s.curTime
}

// CurTime returns the current master timestamp.
func (s *Scheduler) CurTime() timing.Timestamp { return s.curTime }

// TargetTime returns the next deadline execution must yield at.
func (s *Scheduler) TargetTime() timing.Timestamp { return s.targetTime }

// Advance moves cur_time forward by delta cycles. delta must be
// non-negative; callers (cpu/apu run loops) are the only place time
// moves forward.
func (s *Scheduler) Advance(delta timing.Timestamp) {
	s.curTime += delta
}

// SetTargetTime directly extends or shortens the next yield deadline.
func (s *Scheduler) SetTargetTime(t timing.Timestamp) {
	s.targetTime = t
}

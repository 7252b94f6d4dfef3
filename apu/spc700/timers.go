package spc700

import "github.com/adriweb/gosnes/timing"

// Timer implements one of the SPC700's three programmable timers
//: a free-running divider clocked by the
// APU timestamp shifted by cycleShift, feeding an internal counter that
// rolls over into a 4-bit up-counter the CPU can poll and clear.
//
// Grounded on original_source/core/src/apu/spc700/timers.rs's Timer,
// translated field-for-field; the modulus-of-zero-means-256 encoding
// this core carries unchanged since it's how the hardware documents
// itself (see DESIGN.md).
type Timer struct {
	enabled            bool
	cycleShift         uint8
	internalCounter    uint8
	upCounter          uint8
	internalCounterMax uint16
	lastUpdate         timing.Timestamp
}

// NewTimer builds a timer with the given cycle shift (7 for the two
// 8kHz timers, 4 for the 64kHz one, matching the IPL ROM's setup).
func NewTimer(cycleShift uint8) *Timer {
	return &Timer{cycleShift: cycleShift, internalCounterMax: 0xFF}
}

// SetEnabled toggles the timer from the control register's bit. A
// rising edge resets both counters, matching bsnes's documented
// behavior (the comment in the reference timers.rs cites bsnes directly).
func (t *Timer) SetEnabled(value bool, time timing.Timestamp) {
	wasEnabled := t.enabled
	t.enabled = value
	if value && !wasEnabled {
		t.internalCounter = 0
		t.upCounter = 0
		t.lastUpdate = time
	}
}

func (t *Timer) update(time timing.Timestamp) {
	if !t.enabled {
		return
	}
	elapsed := (time >> t.cycleShift) - (t.lastUpdate >> t.cycleShift)
	t.lastUpdate = time
	newInternal := uint64(t.internalCounter) + uint64(elapsed)
	max := uint64(t.internalCounterMax)
	t.internalCounter = uint8(newInternal % max)
	t.upCounter = (t.upCounter + uint8(newInternal/max)) & 0xF
}

// SetInternalCounterMax programs the timer's reload divisor (0 means
// 256, per the hardware's documented encoding).
func (t *Timer) SetInternalCounterMax(value uint8, time timing.Timestamp) {
	t.update(time)
	if value == 0 {
		t.internalCounterMax = 256
	} else {
		t.internalCounterMax = uint16(value)
	}
}

// ReadUpCounter returns the current up-counter value, clearing it only
// when sideEffects is true (a CPU-facing access; debug reads don't
// clear it (debug accesses do not).
func (t *Timer) ReadUpCounter(time timing.Timestamp, sideEffects bool) uint8 {
	t.update(time)
	result := t.upCounter
	if sideEffects {
		t.upCounter = 0
	}
	return result
}

// Package timing holds the master/APU timestamp types and the shared
// FreqCounter divider used by both the DSP envelope clocks and the
// noise generator.
package timing

// Timestamp is the monotonic master-CPU-cycle counter that drives the
// whole emulator. It never wraps in practice (a uint64 at ~21MHz takes
// tens of thousands of years to overflow).
type Timestamp uint64

// DefaultStepCycles is charged by the CPU's STP/WAI idle path for each
// Step call while stopped/waiting, so a stalled CPU still advances the
// master clock in fixed ticks rather than spinning the scheduler.
const DefaultStepCycles = 8

// APU units run at a fixed rational rescale of the master clock:
// 102400 / 2147727, matching the real SNES's 24.576MHz APU crystal vs
// the CPU's ~21.48MHz.
const (
	apuRescaleNum = 102400
	apuRescaleDen = 2147727
)

// ToAPU rescales a master timestamp into APU-clock units.
func ToAPU(master Timestamp) Timestamp {
	return Timestamp((uint64(master) * apuRescaleNum) / apuRescaleDen)
}

// ToMaster rescales an APU timestamp back into master-clock units.
func ToMaster(apu Timestamp) Timestamp {
	return Timestamp((uint64(apu) * apuRescaleDen) / apuRescaleNum)
}

// stepRate maps a 5-bit rate index to (reset-divider, shift), the
// hardware "step rate" table used by every envelope/noise FreqCounter.
// Values taken from the documented SPC700 DSP rate table.
var stepRate = [32][2]uint16{
	{0, 0}, {2048, 4}, {1536, 4}, {1280, 4}, {1024, 4}, {768, 4}, {640, 4}, {512, 4},
	{384, 4}, {320, 4}, {256, 4}, {192, 4}, {160, 4}, {128, 4}, {96, 4}, {80, 4},
	{64, 4}, {48, 4}, {40, 4}, {32, 4}, {24, 4}, {20, 4}, {16, 4}, {12, 4},
	{10, 4}, {8, 4}, {6, 4}, {5, 4}, {4, 4}, {3, 4}, {2, 4}, {1, 0},
}

// FreqCounter implements the shared "step rate" divider (reset,
// counter, shift triplet): it decrements by one every DSP half-sample
// and signals an update on reaching zero, at which point it reloads to
// `reset`. rate 0's reset
// is 0, which this implementation treats as "never fires" rather than
// testing a specific bit of the global APU timestamp (an accepted
// simplification of the source's bit-test form, see DESIGN.md — the
// observable behavior, a deterministic tick count from SetRate, is the
// same either way).
type FreqCounter struct {
	rate    uint8
	reset   uint16
	counter uint16
}

// SetRate configures the counter's rate (0-31). When resetCounter is
// true the running counter is forced back to the new reset value
// immediately;
// when false only the reset/shift pair changes and the in-flight
// counter keeps counting down on its old schedule, which is what lets
// an ADSR envelope's attack-to-decay-to-sustain rate changes land
// without a visible glitch in the counter phase.
func (f *FreqCounter) SetRate(rate uint8, resetCounter bool) {
	f.rate = rate & 0x1F
	f.reset = stepRate[f.rate][0]
	if resetCounter {
		f.counter = f.reset
	}
}

// Reset returns the counter to its power-on state (rate index 31, the
// fastest divider), used when a channel enters its release state.
func (f *FreqCounter) Reset() {
	f.rate = 31
	f.reset = stepRate[31][0]
	f.counter = f.reset
}

// Rate returns the currently configured rate index.
func (f *FreqCounter) Rate() uint8 { return f.rate }

// Tick advances the counter by one DSP half-sample tick and reports
// whether it reached zero and reloaded this tick.
func (f *FreqCounter) Tick() bool {
	if f.reset == 0 {
		return false
	}
	if f.counter <= 1 {
		f.counter = f.reset
		return true
	}
	f.counter--
	return false
}

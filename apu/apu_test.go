package apu

import "testing"

type discardOutput struct{}

func (discardOutput) PushSample(left, right int16) {}

// TestRunAdvancesAPUTime checks the SPC700 invariant carried through
// the wrapper: running up to a master timestamp in the future
// advances the APU's own clock.
func TestRunAdvancesAPUTime(t *testing.T) {
	a := New(discardOutput{})
	a.SPC700.Regs().PC = 0x0000 // plain RAM below the IPL overlay (zeroed, all NOP)

	before := a.SPC700.CurTime()
	a.Run(10000)
	if a.SPC700.CurTime() <= before {
		t.Fatal("APU cur_time did not advance")
	}
}

// TestMailboxPortsAreOneDirectional checks the mailbox design:
// the four CPU-to-APU bytes WritePort writes are independent of the
// four APU-to-CPU bytes ReadPort reads, even at the same index.
func TestMailboxPortsAreOneDirectional(t *testing.T) {
	a := New(discardOutput{})
	a.WritePort(0, 0x42)
	if got := a.ReadPort(0); got != 0 {
		t.Fatalf("ReadPort(0) = %#02x, want 0 (independent of the CPU->APU channel WritePort wrote)", got)
	}
}

// Package apu wires the SPC700 sound CPU to its DSP
// and exposes the single entry point the root package's scheduler loop
// drives: Run advances the APU side up to a master timestamp, rescaled
// through timing.ToAPU/ToMaster exactly as §5's "alternating bounded
// advances on a shared master timeline" describes.
package apu

import (
	"github.com/adriweb/gosnes/apu/dsp"
	"github.com/adriweb/gosnes/apu/spc700"
	"github.com/adriweb/gosnes/timing"
)

// APU is the root package's handle onto the sound subsystem: the
// SPC700 interpreter and the DSP it drives through I/O ports 0xF2/0xF3.
type APU struct {
	SPC700 *spc700.SPC700
	DSP    *dsp.DSP

	pendingAPUTicks timing.Timestamp
}

// New builds an APU with output as the DSP's sample sink (may be nil
// to discard samples). The SPC700 and DSP are constructed back to back
// since each needs the other (spc700.DSPPort / dsp.Memory).
func New(output dsp.Output) *APU {
	spc := spc700.New(nil)
	d := dsp.New(spc, output)
	spc.SetDSP(d)
	return &APU{SPC700: spc, DSP: d}
}

// Run steps the SPC700 until its rescaled timestamp reaches
// targetMaster, calling DSP.OutputSample() once per two APU timestamp
// units consumed.
func (a *APU) Run(targetMaster timing.Timestamp) {
	targetAPU := timing.ToAPU(targetMaster)
	for a.SPC700.CurTime() < targetAPU {
		ticks := a.SPC700.Step()
		a.pendingAPUTicks += timing.Timestamp(ticks)
		for a.pendingAPUTicks >= 2 {
			a.DSP.OutputSample()
			a.pendingAPUTicks -= 2
		}
	}
}

// CurTimeAsMaster returns the APU's own clock rescaled into master-clock units,
// the value the scheduler compares against the CPU's cur_time to pick
// the lagging side.
func (a *APU) CurTimeAsMaster() timing.Timestamp {
	return timing.ToMaster(a.SPC700.CurTime())
}

// ReadPort/WritePort expose the APU-to-CPU mailbox bytes the SPC bus
// reads/writes directly, for the root package to mirror into the CPU
// bus's own shadow copy each time it yields control.
func (a *APU) ReadPort(index uint8) uint8          { return a.SPC700.ReadPort(index) }
func (a *APU) WritePort(index uint8, value uint8) { a.SPC700.WritePort(index, value) }

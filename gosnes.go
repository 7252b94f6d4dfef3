// Package gosnes is the root of the emulator: it owns the one mutable
// Emu value that composes the CPU, its bus, the APU and the cart/
// controller collaborators plugged into that bus, and drives them
// through RunFrame, the single time quantum the host ever requests.
//
// Grounded on go-jeebie/jeebie/core.go's Emulator: a struct holding the
// CPU plus its memory/video collaborators, an init that wires them
// together, and a RunUntilFrame loop that steps the CPU in a tight
// cycle-budget loop while servicing per-cycle side effects (there,
// timers and the GPU; here, the APU and HDMA). Generalized from the
// Game Boy's single fixed-rate CPU into two independently-clocked
// processors that must interleave, per the "alternating bounded
// advances on a shared master timeline" model.
package gosnes

import (
	"log/slog"

	"github.com/adriweb/gosnes/apu"
	"github.com/adriweb/gosnes/backend"
	"github.com/adriweb/gosnes/cart"
	"github.com/adriweb/gosnes/controller"
	"github.com/adriweb/gosnes/cpu"
	"github.com/adriweb/gosnes/scheduler"
	"github.com/adriweb/gosnes/timing"
)

// NTSC timing approximation: 1364 master cycles per scanline times 262
// scanlines per frame. Raster-exact PPU timing is out of scope (the
// core has no PPU), so this is used only to size one RunFrame call;
// nothing downstream depends on scanline 0 lining up with any real
// dot position.
const (
	cyclesPerScanline    = 1364
	scanlinesPerFrame    = 262
	masterCyclesPerFrame = timing.Timestamp(cyclesPerScanline * scanlinesPerFrame)

	// vblankScanline is the first line after the visible 224: lines
	// 225-261 of the 262 above are blanking lines, as on real hardware.
	vblankScanline = 225
)

const (
	slotHDMA scheduler.Slot = iota
	slotVBlank
	slotCount
)

type hdmaEvent struct{}
type vblankEvent struct{}

// Emu is the single mutable root: one CPU, one bus, one APU, and
// whatever cart/pads are plugged into them.
type Emu struct {
	CPU  *cpu.CPU
	Bus  *cpu.Bus
	APU  *apu.APU
	Cart *cart.Cart

	Pad1 *controller.Joypad

	scheduler *scheduler.Scheduler
	sink      *backend.SampleSink

	frameCount uint64
}

// New wires a fresh Emu around a cart image: bus, CPU and APU are
// constructed and connected, the cart is attached, and audio samples
// are batched into chunkSize-sample chunks and handed to out (a nil
// out falls back to backend.DummyBackend.
func New(c *cart.Cart, out backend.Backend, chunkSize int) *Emu {
	bus := cpu.NewBus()
	bus.AttachCart(c.Map)

	sink := backend.NewSampleSink(out, chunkSize)

	e := &Emu{
		Cart:      c,
		Bus:       bus,
		CPU:       cpu.NewCPU(bus),
		APU:       apu.New(sink),
		Pad1:      controller.NewJoypad(),
		scheduler: scheduler.New(int(slotCount)),
		sink:      sink,
	}
	e.scheduler.SetEvent(slotHDMA, hdmaEvent{})
	e.scheduler.SetEvent(slotVBlank, vblankEvent{})
	return e
}

// RunFrame drives one video frame's worth of master cycles, and only
// that: it's the one time quantum the host ever exposes. Each iteration picks whichever of {a scheduled event, the
// CPU, the APU} is due and advances exactly that one unit of work,
// mirroring the CPU/APU mailbox bytes into each other's shadow copies
// whenever control might cross between them.
func (e *Emu) RunFrame() {
	frameEnd := e.scheduler.CurTime() + masterCyclesPerFrame

	e.CPU.DMA.StartFrame()
	e.Bus.IO().ExitVBlank()
	e.CPU.DMA.StartHDMAs(e.Bus) // scanline 0's reload, before the first scheduled boundary
	e.scheduler.Schedule(slotHDMA, e.scheduler.CurTime()+cyclesPerScanline)
	e.scheduler.Schedule(slotVBlank, e.scheduler.CurTime()+vblankScanline*cyclesPerScanline)

	for e.scheduler.CurTime() < frameEnd {
		if event, slot, ok := e.scheduler.PopPending(e.scheduler.CurTime()); ok {
			e.fireEvent(slot, event)
			continue
		}

		if e.APU.CurTimeAsMaster() < e.scheduler.CurTime() {
			e.syncMailbox()
			e.APU.Run(e.scheduler.CurTime())
			continue
		}

		e.syncMailbox()
		cycles := e.CPU.Step()
		e.scheduler.Advance(timing.Timestamp(cycles))
	}

	e.syncMailbox()
	e.sink.Flush()
	e.frameCount++
	if e.frameCount%60 == 0 {
		slog.Debug("frame completed", "frame", e.frameCount)
	}
}

func (e *Emu) fireEvent(slot scheduler.Slot, event scheduler.Event) {
	switch event.(type) {
	case hdmaEvent:
		e.CPU.DMA.ReloadHDMAs(e.Bus)
		e.scheduler.Schedule(slot, e.scheduler.CurTime()+cyclesPerScanline)
	case vblankEvent:
		if e.Bus.IO().EnterVBlank(e.Pad1.AutoRead()) {
			e.CPU.RequestNMI()
		}
	}
}

// syncMailbox mirrors the CPU bus's APU-port shadow bytes against the
// APU's own mailbox registers in both directions: four independent
// CPU-to-APU bytes and four
// independent APU-to-CPU bytes, kept consistent only at the points the
// cooperative scheduler actually yields between the two processors.
func (e *Emu) syncMailbox() {
	io := e.Bus.IO()
	for i := 0; i < 4; i++ {
		io.SetAPUIn(i, e.APU.ReadPort(uint8(i)))
		e.APU.WritePort(uint8(i), io.APUOut(i))
	}
}

// FrameCount returns the number of RunFrame calls completed so far.
func (e *Emu) FrameCount() uint64 { return e.frameCount }

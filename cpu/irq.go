package cpu

import "github.com/adriweb/gosnes/addr"

// irq.go implements exception entry: NMI, IRQ, and the reset vector
// fetch, per the run-loop priority (DMA, then stop/wait, then NMI,
// then IRQ, then dispatch).
//
// Grounded on jeebie/cpu's interrupt-handling idiom (push PC/flags,
// clear IME-equivalent, jump to vector), generalized to the 816's
// three-byte push (PBR/PC/P in native mode, PC/P only in emulation
// mode) and its emulation-mode vector table.

func (c *CPU) push8(v uint8) {
	c.bus.Write(uint32(c.reg.SP), v, AccessCPU, c)
	if c.reg.E {
		c.reg.SP = 0x0100 | ((c.reg.SP - 1) & 0xFF)
	} else {
		c.reg.SP--
	}
}

func (c *CPU) pull8() uint8 {
	if c.reg.E {
		c.reg.SP = 0x0100 | ((c.reg.SP + 1) & 0xFF)
	} else {
		c.reg.SP++
	}
	return c.bus.Read(uint32(c.reg.SP), AccessCPU, c)
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(lo) | uint16(hi)<<8
}

// enterException pushes the return context and jumps to vector:
// PBR/PC/P (native) or PC/P (emulation), then sets I=1, clears D,
// zeroes PBR, and fetches the vector.
func (c *CPU) enterException(nativeVector, emuVector uint16) {
	if !c.reg.E {
		c.push8(c.reg.PBR)
	}
	c.push16(c.reg.PC)
	c.push8(c.reg.P)

	c.reg.SetFlag(FlagI, true)
	c.reg.SetFlag(FlagD, false)
	c.reg.SetPBR(0)

	vector := nativeVector
	if c.reg.E {
		vector = emuVector
	}
	lo := c.bus.Read(uint32(vector), AccessCPU, c)
	hi := c.bus.Read(uint32(vector+1), AccessCPU, c)
	c.reg.PC = uint16(lo) | uint16(hi)<<8
}

// HandleNMI services a pending NMI request.
func (c *CPU) handleNMI() {
	c.nmiPending = false
	c.bus.io.SignalNMI()
	c.enterException(addr.VectorNMI, addr.VectorEmuNMI)
}

// HandleIRQ services a pending IRQ request (ignored when I=1).
func (c *CPU) handleIRQ() {
	if c.reg.Flag(FlagI) {
		return
	}
	c.irqPending = false
	c.enterException(addr.VectorIRQ, addr.VectorEmuIRQ)
}

// Reset puts the CPU in its post-reset state: emulation mode, stack
// at 0x01FC, I=1, D=0, and PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.reg = NewRegisters()
	lo := c.bus.Read(uint32(addr.VectorEmuReset), AccessCPU, c)
	hi := c.bus.Read(uint32(addr.VectorEmuReset+1), AccessCPU, c)
	c.reg.PC = uint16(lo) | uint16(hi)<<8
	c.stopped = false
	c.waiting = false
}

// RequestNMI latches a pending, edge-triggered NMI.
func (c *CPU) RequestNMI() { c.nmiPending = true; c.waiting = false }

// RequestIRQ latches a pending IRQ level.
func (c *CPU) RequestIRQ() { c.irqPending = true; c.waiting = false }

// ClearIRQ drops the pending IRQ request.
func (c *CPU) ClearIRQ() { c.irqPending = false }

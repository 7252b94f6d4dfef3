package cpu

// dispatch.go implements the 65C816 instruction set as a 256-entry
// opcode table plus runtime M/X/D-flag checks inside each handler,
// in place of a monomorphized 2048-entry (opcode, M, X) table.
//
// Grounded on jeebie/cpu's opcode-table-by-index dispatch idiom
// (a fixed array of per-opcode closures looked up by fetched byte),
// generalized from the Game Boy's fixed 8-bit instruction set to the
// 816's width-polymorphic one, and on
// _examples/other_examples/063a337a_jmchacon-6502's Processor opcode
// table (the clearest pack reference for a 6502-family opcode, mode
// pair table, since jeebie's own table has no variable-width
// precedent).

type opcode struct {
	mode    Mode
	isWrite bool
	exec    func(c *CPU, op operand)
}

var opcodeTable [256]opcode

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcode{mode: ModeImplied, exec: nop}
	}

	alu := func(op8 func(*CPU, uint8, uint8) uint8, op16 func(*CPU, uint16, uint16) uint16) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			if c.reg.M() {
				c.reg.A = uint16(op8(c, uint8(c.reg.A), c.read8(op)))
			} else {
				c.reg.A = op16(c, c.reg.A, c.read16(op))
			}
		}
	}
	setA := func(c *CPU, op operand) {
		if c.reg.M() {
			v := c.read8(op)
			c.reg.A = (c.reg.A & 0xFF00) | uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.read16(op)
			c.reg.A = v
			c.reg.SetNZ16(v)
		}
	}
	setX := func(c *CPU, op operand) {
		if c.reg.X8() {
			v := c.read8(op)
			c.reg.X = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.read16(op)
			c.reg.X = v
			c.reg.SetNZ16(v)
		}
	}
	setY := func(c *CPU, op operand) {
		if c.reg.X8() {
			v := c.read8(op)
			c.reg.Y = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.read16(op)
			c.reg.Y = v
			c.reg.SetNZ16(v)
		}
	}
	storeA := func(c *CPU, op operand) {
		if c.reg.M() {
			c.write8(op, uint8(c.reg.A))
		} else {
			c.write16(op, c.reg.A)
		}
	}
	storeX := func(c *CPU, op operand) {
		if c.reg.X8() {
			c.write8(op, uint8(c.reg.X))
		} else {
			c.write16(op, c.reg.X)
		}
	}
	storeY := func(c *CPU, op operand) {
		if c.reg.X8() {
			c.write8(op, uint8(c.reg.Y))
		} else {
			c.write16(op, c.reg.Y)
		}
	}
	storeZ := func(c *CPU, op operand) {
		if c.reg.M() {
			c.write8(op, 0)
		} else {
			c.write16(op, 0)
		}
	}
	cmpA := func(c *CPU, op operand) {
		if c.reg.M() {
			c.cmp8(uint8(c.reg.A), c.read8(op))
		} else {
			c.cmp16(c.reg.A, c.read16(op))
		}
	}
	cmpX := func(c *CPU, op operand) {
		if c.reg.X8() {
			c.cmp8(uint8(c.reg.X), c.read8(op))
		} else {
			c.cmp16(c.reg.X, c.read16(op))
		}
	}
	cmpY := func(c *CPU, op operand) {
		if c.reg.X8() {
			c.cmp8(uint8(c.reg.Y), c.read8(op))
		} else {
			c.cmp16(c.reg.Y, c.read16(op))
		}
	}
	bit := func(c *CPU, op operand, immediate bool) {
		if c.reg.M() {
			c.bit8(uint8(c.reg.A), c.read8(op), immediate)
		} else {
			c.bit16(c.reg.A, c.read16(op), immediate)
		}
	}

	rmwMem := func(f8 func(*CPU, uint8) uint8, f16 func(*CPU, uint16) uint16) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			if c.reg.M() {
				c.write8(op, f8(c, c.read8(op)))
			} else {
				c.write16(op, f16(c, c.read16(op)))
			}
		}
	}
	rmwAcc := func(f8 func(*CPU, uint8) uint8, f16 func(*CPU, uint16) uint16) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			if c.reg.M() {
				c.reg.A = (c.reg.A & 0xFF00) | uint16(f8(c, uint8(c.reg.A)))
			} else {
				c.reg.A = f16(c, c.reg.A)
			}
		}
	}
	tsbTrbMem := func(f8 func(*CPU, uint8, uint8) uint8, f16 func(*CPU, uint16, uint16) uint16) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			if c.reg.M() {
				c.write8(op, f8(c, uint8(c.reg.A), c.read8(op)))
			} else {
				c.write16(op, f16(c, c.reg.A, c.read16(op)))
			}
		}
	}

	set := func(code uint8, mode Mode, isWrite bool, exec func(*CPU, operand)) {
		opcodeTable[code] = opcode{mode: mode, isWrite: isWrite, exec: exec}
	}

	// ORA
	set(0x01, ModeDirectIndirectX, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x03, ModeStackRelative, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x05, ModeDirect, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x07, ModeDirectIndirectLong, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x09, ModeImmediateM, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x0D, ModeAbsolute, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x0F, ModeAbsoluteLong, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x11, ModeDirectIndirectY, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x12, ModeDirectIndirect, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x13, ModeStackRelativeIndirectY, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x15, ModeDirectX, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x17, ModeDirectIndirectLongY, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x19, ModeAbsoluteY, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x1D, ModeAbsoluteX, false, alu((*CPU).ora8, (*CPU).ora16))
	set(0x1F, ModeAbsoluteLongX, false, alu((*CPU).ora8, (*CPU).ora16))

	// AND
	set(0x21, ModeDirectIndirectX, false, alu((*CPU).and8, (*CPU).and16))
	set(0x23, ModeStackRelative, false, alu((*CPU).and8, (*CPU).and16))
	set(0x25, ModeDirect, false, alu((*CPU).and8, (*CPU).and16))
	set(0x27, ModeDirectIndirectLong, false, alu((*CPU).and8, (*CPU).and16))
	set(0x29, ModeImmediateM, false, alu((*CPU).and8, (*CPU).and16))
	set(0x2D, ModeAbsolute, false, alu((*CPU).and8, (*CPU).and16))
	set(0x2F, ModeAbsoluteLong, false, alu((*CPU).and8, (*CPU).and16))
	set(0x31, ModeDirectIndirectY, false, alu((*CPU).and8, (*CPU).and16))
	set(0x32, ModeDirectIndirect, false, alu((*CPU).and8, (*CPU).and16))
	set(0x33, ModeStackRelativeIndirectY, false, alu((*CPU).and8, (*CPU).and16))
	set(0x35, ModeDirectX, false, alu((*CPU).and8, (*CPU).and16))
	set(0x37, ModeDirectIndirectLongY, false, alu((*CPU).and8, (*CPU).and16))
	set(0x39, ModeAbsoluteY, false, alu((*CPU).and8, (*CPU).and16))
	set(0x3D, ModeAbsoluteX, false, alu((*CPU).and8, (*CPU).and16))
	set(0x3F, ModeAbsoluteLongX, false, alu((*CPU).and8, (*CPU).and16))

	// EOR
	set(0x41, ModeDirectIndirectX, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x43, ModeStackRelative, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x45, ModeDirect, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x47, ModeDirectIndirectLong, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x49, ModeImmediateM, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x4D, ModeAbsolute, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x4F, ModeAbsoluteLong, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x51, ModeDirectIndirectY, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x52, ModeDirectIndirect, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x53, ModeStackRelativeIndirectY, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x55, ModeDirectX, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x57, ModeDirectIndirectLongY, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x59, ModeAbsoluteY, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x5D, ModeAbsoluteX, false, alu((*CPU).eor8, (*CPU).eor16))
	set(0x5F, ModeAbsoluteLongX, false, alu((*CPU).eor8, (*CPU).eor16))

	// ADC
	set(0x61, ModeDirectIndirectX, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x63, ModeStackRelative, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x65, ModeDirect, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x67, ModeDirectIndirectLong, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x69, ModeImmediateM, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x6D, ModeAbsolute, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x6F, ModeAbsoluteLong, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x71, ModeDirectIndirectY, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x72, ModeDirectIndirect, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x73, ModeStackRelativeIndirectY, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x75, ModeDirectX, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x77, ModeDirectIndirectLongY, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x79, ModeAbsoluteY, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x7D, ModeAbsoluteX, false, alu((*CPU).adc8, (*CPU).adc16))
	set(0x7F, ModeAbsoluteLongX, false, alu((*CPU).adc8, (*CPU).adc16))

	// SBC
	set(0xE1, ModeDirectIndirectX, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xE3, ModeStackRelative, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xE5, ModeDirect, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xE7, ModeDirectIndirectLong, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xE9, ModeImmediateM, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xED, ModeAbsolute, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xEF, ModeAbsoluteLong, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF1, ModeDirectIndirectY, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF2, ModeDirectIndirect, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF3, ModeStackRelativeIndirectY, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF5, ModeDirectX, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF7, ModeDirectIndirectLongY, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xF9, ModeAbsoluteY, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xFD, ModeAbsoluteX, false, alu((*CPU).sbc8, (*CPU).sbc16))
	set(0xFF, ModeAbsoluteLongX, false, alu((*CPU).sbc8, (*CPU).sbc16))

	// CMP
	set(0xC1, ModeDirectIndirectX, false, cmpA)
	set(0xC3, ModeStackRelative, false, cmpA)
	set(0xC5, ModeDirect, false, cmpA)
	set(0xC7, ModeDirectIndirectLong, false, cmpA)
	set(0xC9, ModeImmediateM, false, cmpA)
	set(0xCD, ModeAbsolute, false, cmpA)
	set(0xCF, ModeAbsoluteLong, false, cmpA)
	set(0xD1, ModeDirectIndirectY, false, cmpA)
	set(0xD2, ModeDirectIndirect, false, cmpA)
	set(0xD3, ModeStackRelativeIndirectY, false, cmpA)
	set(0xD5, ModeDirectX, false, cmpA)
	set(0xD7, ModeDirectIndirectLongY, false, cmpA)
	set(0xD9, ModeAbsoluteY, false, cmpA)
	set(0xDD, ModeAbsoluteX, false, cmpA)
	set(0xDF, ModeAbsoluteLongX, false, cmpA)
	set(0xE0, ModeImmediateX, false, cmpX)
	set(0xE4, ModeDirect, false, cmpX)
	set(0xEC, ModeAbsolute, false, cmpX)
	set(0xC0, ModeImmediateX, false, cmpY)
	set(0xC4, ModeDirect, false, cmpY)
	set(0xCC, ModeAbsolute, false, cmpY)

	// LDA/LDX/LDY
	set(0xA1, ModeDirectIndirectX, false, setA)
	set(0xA3, ModeStackRelative, false, setA)
	set(0xA5, ModeDirect, false, setA)
	set(0xA7, ModeDirectIndirectLong, false, setA)
	set(0xA9, ModeImmediateM, false, setA)
	set(0xAD, ModeAbsolute, false, setA)
	set(0xAF, ModeAbsoluteLong, false, setA)
	set(0xB1, ModeDirectIndirectY, false, setA)
	set(0xB2, ModeDirectIndirect, false, setA)
	set(0xB3, ModeStackRelativeIndirectY, false, setA)
	set(0xB5, ModeDirectX, false, setA)
	set(0xB7, ModeDirectIndirectLongY, false, setA)
	set(0xB9, ModeAbsoluteY, false, setA)
	set(0xBD, ModeAbsoluteX, false, setA)
	set(0xBF, ModeAbsoluteLongX, false, setA)
	set(0xA2, ModeImmediateX, false, setX)
	set(0xA6, ModeDirect, false, setX)
	set(0xAE, ModeAbsolute, false, setX)
	set(0xB6, ModeDirectY, false, setX)
	set(0xBE, ModeAbsoluteY, false, setX)
	set(0xA0, ModeImmediateX, false, setY)
	set(0xA4, ModeDirect, false, setY)
	set(0xAC, ModeAbsolute, false, setY)
	set(0xB4, ModeDirectX, false, setY)
	set(0xBC, ModeAbsoluteX, false, setY)

	// STA/STX/STY/STZ
	set(0x81, ModeDirectIndirectX, true, storeA)
	set(0x83, ModeStackRelative, true, storeA)
	set(0x85, ModeDirect, true, storeA)
	set(0x87, ModeDirectIndirectLong, true, storeA)
	set(0x8D, ModeAbsolute, true, storeA)
	set(0x8F, ModeAbsoluteLong, true, storeA)
	set(0x91, ModeDirectIndirectY, true, storeA)
	set(0x92, ModeDirectIndirect, true, storeA)
	set(0x93, ModeStackRelativeIndirectY, true, storeA)
	set(0x95, ModeDirectX, true, storeA)
	set(0x97, ModeDirectIndirectLongY, true, storeA)
	set(0x99, ModeAbsoluteY, true, storeA)
	set(0x9D, ModeAbsoluteX, true, storeA)
	set(0x9F, ModeAbsoluteLongX, true, storeA)
	set(0x86, ModeDirect, true, storeX)
	set(0x8E, ModeAbsolute, true, storeX)
	set(0x96, ModeDirectY, true, storeX)
	set(0x84, ModeDirect, true, storeY)
	set(0x8C, ModeAbsolute, true, storeY)
	set(0x94, ModeDirectX, true, storeY)
	set(0x64, ModeDirect, true, storeZ)
	set(0x74, ModeDirectX, true, storeZ)
	set(0x9C, ModeAbsolute, true, storeZ)
	set(0x9E, ModeAbsoluteX, true, storeZ)

	// BIT
	set(0x24, ModeDirect, false, func(c *CPU, op operand) { bit(c, op, false) })
	set(0x2C, ModeAbsolute, false, func(c *CPU, op operand) { bit(c, op, false) })
	set(0x34, ModeDirectX, false, func(c *CPU, op operand) { bit(c, op, false) })
	set(0x3C, ModeAbsoluteX, false, func(c *CPU, op operand) { bit(c, op, false) })
	set(0x89, ModeImmediateM, false, func(c *CPU, op operand) { bit(c, op, true) })

	// INC/DEC
	set(0xE6, ModeDirect, true, rmwMem((*CPU).inc8, (*CPU).inc16))
	set(0xEE, ModeAbsolute, true, rmwMem((*CPU).inc8, (*CPU).inc16))
	set(0xF6, ModeDirectX, true, rmwMem((*CPU).inc8, (*CPU).inc16))
	set(0xFE, ModeAbsoluteX, true, rmwMem((*CPU).inc8, (*CPU).inc16))
	set(0x1A, ModeAccumulator, false, rmwAcc((*CPU).inc8, (*CPU).inc16))
	set(0xC6, ModeDirect, true, rmwMem((*CPU).dec8, (*CPU).dec16))
	set(0xCE, ModeAbsolute, true, rmwMem((*CPU).dec8, (*CPU).dec16))
	set(0xD6, ModeDirectX, true, rmwMem((*CPU).dec8, (*CPU).dec16))
	set(0xDE, ModeAbsoluteX, true, rmwMem((*CPU).dec8, (*CPU).dec16))
	set(0x3A, ModeAccumulator, false, rmwAcc((*CPU).dec8, (*CPU).dec16))

	// ASL/LSR/ROL/ROR
	set(0x06, ModeDirect, true, rmwMem((*CPU).asl8, (*CPU).asl16))
	set(0x0E, ModeAbsolute, true, rmwMem((*CPU).asl8, (*CPU).asl16))
	set(0x16, ModeDirectX, true, rmwMem((*CPU).asl8, (*CPU).asl16))
	set(0x1E, ModeAbsoluteX, true, rmwMem((*CPU).asl8, (*CPU).asl16))
	set(0x0A, ModeAccumulator, false, rmwAcc((*CPU).asl8, (*CPU).asl16))
	set(0x46, ModeDirect, true, rmwMem((*CPU).lsr8, (*CPU).lsr16))
	set(0x4E, ModeAbsolute, true, rmwMem((*CPU).lsr8, (*CPU).lsr16))
	set(0x56, ModeDirectX, true, rmwMem((*CPU).lsr8, (*CPU).lsr16))
	set(0x5E, ModeAbsoluteX, true, rmwMem((*CPU).lsr8, (*CPU).lsr16))
	set(0x4A, ModeAccumulator, false, rmwAcc((*CPU).lsr8, (*CPU).lsr16))
	set(0x26, ModeDirect, true, rmwMem((*CPU).rol8, (*CPU).rol16))
	set(0x2E, ModeAbsolute, true, rmwMem((*CPU).rol8, (*CPU).rol16))
	set(0x36, ModeDirectX, true, rmwMem((*CPU).rol8, (*CPU).rol16))
	set(0x3E, ModeAbsoluteX, true, rmwMem((*CPU).rol8, (*CPU).rol16))
	set(0x2A, ModeAccumulator, false, rmwAcc((*CPU).rol8, (*CPU).rol16))
	set(0x66, ModeDirect, true, rmwMem((*CPU).ror8, (*CPU).ror16))
	set(0x6E, ModeAbsolute, true, rmwMem((*CPU).ror8, (*CPU).ror16))
	set(0x76, ModeDirectX, true, rmwMem((*CPU).ror8, (*CPU).ror16))
	set(0x7E, ModeAbsoluteX, true, rmwMem((*CPU).ror8, (*CPU).ror16))
	set(0x6A, ModeAccumulator, false, rmwAcc((*CPU).ror8, (*CPU).ror16))

	// TSB/TRB
	set(0x04, ModeDirect, true, tsbTrbMem((*CPU).tsb8, (*CPU).tsb16))
	set(0x0C, ModeAbsolute, true, tsbTrbMem((*CPU).tsb8, (*CPU).tsb16))
	set(0x14, ModeDirect, true, tsbTrbMem((*CPU).trb8, (*CPU).trb16))
	set(0x1C, ModeAbsolute, true, tsbTrbMem((*CPU).trb8, (*CPU).trb16))

	// Branches (relative, always 8-bit displacement except BRL).
	branch := func(flag uint8, want bool) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			if c.reg.Flag(flag) == want {
				c.branchTaken(int8(op.imm))
			}
		}
	}
	set(0x10, ModeRelative8, false, branch(FlagN, false))
	set(0x30, ModeRelative8, false, branch(FlagN, true))
	set(0x50, ModeRelative8, false, branch(FlagV, false))
	set(0x70, ModeRelative8, false, branch(FlagV, true))
	set(0x90, ModeRelative8, false, branch(FlagC, false))
	set(0xB0, ModeRelative8, false, branch(FlagC, true))
	set(0xD0, ModeRelative8, false, branch(FlagZ, false))
	set(0xF0, ModeRelative8, false, branch(FlagZ, true))
	set(0x80, ModeRelative8, false, func(c *CPU, op operand) { c.branchTaken(int8(op.imm)) })
	set(0x82, ModeRelative16, false, func(c *CPU, op operand) {
		c.reg.PC = uint16(int32(c.reg.PC) + int32(int16(op.imm)))
	})

	// Jumps and subroutine calls (bespoke fetch; mode left Implied).
	set(0x4C, ModeImplied, false, func(c *CPU, op operand) { c.reg.PC = c.fetch16() })
	set(0x6C, ModeImplied, false, func(c *CPU, op operand) {
		ptr := c.fetch16()
		lo := c.readByte(uint32(ptr))
		hi := c.readByte(uint32(ptr + 1))
		c.reg.PC = uint16(lo) | uint16(hi)<<8
	})
	set(0x7C, ModeImplied, false, func(c *CPU, op operand) {
		base := c.fetch16()
		ptr := c.reg.codeBankBase | uint32(base+c.reg.X)
		lo := c.readByte(ptr)
		hi := c.readByte(ptr + 1)
		c.reg.PC = uint16(lo) | uint16(hi)<<8
	})
	set(0x5C, ModeImplied, false, func(c *CPU, op operand) {
		addr := c.fetch24()
		c.reg.PC = uint16(addr)
		c.reg.SetPBR(uint8(addr >> 16))
	})
	set(0xDC, ModeImplied, false, func(c *CPU, op operand) {
		ptr := c.fetch16()
		lo := c.readByte(uint32(ptr))
		mid := c.readByte(uint32(ptr + 1))
		bank := c.readByte(uint32(ptr + 2))
		c.reg.PC = uint16(lo) | uint16(mid)<<8
		c.reg.SetPBR(bank)
	})
	set(0x20, ModeImplied, false, func(c *CPU, op operand) {
		target := c.fetch16()
		c.push16(c.reg.PC - 1)
		c.reg.PC = target
	})
	set(0x22, ModeImplied, false, func(c *CPU, op operand) {
		target := c.fetch24()
		c.push8(c.reg.PBR)
		c.push16(c.reg.PC - 1)
		c.reg.PC = uint16(target)
		c.reg.SetPBR(uint8(target >> 16))
	})
	set(0xFC, ModeImplied, false, func(c *CPU, op operand) {
		base := c.fetch16()
		c.push16(c.reg.PC - 1)
		ptr := c.reg.codeBankBase | uint32(base+c.reg.X)
		lo := c.readByte(ptr)
		hi := c.readByte(ptr + 1)
		c.reg.PC = uint16(lo) | uint16(hi)<<8
	})
	set(0x60, ModeImplied, false, func(c *CPU, op operand) { c.reg.PC = c.pull16() + 1 })
	set(0x6B, ModeImplied, false, func(c *CPU, op operand) {
		c.reg.PC = c.pull16() + 1
		c.reg.SetPBR(c.pull8())
	})
	set(0x40, ModeImplied, false, func(c *CPU, op operand) {
		c.reg.SetP(c.pull8())
		c.reg.PC = c.pull16()
		if !c.reg.E {
			c.reg.SetPBR(c.pull8())
		}
	})

	// Stack/push-pull.
	set(0x08, ModeImplied, false, func(c *CPU, op operand) { c.push8(c.reg.P) })
	set(0x28, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetP(c.pull8()) })
	set(0x48, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.M() {
			c.push8(uint8(c.reg.A))
		} else {
			c.push16(c.reg.A)
		}
	})
	set(0x68, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.M() {
			v := c.pull8()
			c.reg.A = (c.reg.A & 0xFF00) | uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.pull16()
			c.reg.A = v
			c.reg.SetNZ16(v)
		}
	})
	set(0xDA, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			c.push8(uint8(c.reg.X))
		} else {
			c.push16(c.reg.X)
		}
	})
	set(0xFA, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := c.pull8()
			c.reg.X = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.pull16()
			c.reg.X = v
			c.reg.SetNZ16(v)
		}
	})
	set(0x5A, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			c.push8(uint8(c.reg.Y))
		} else {
			c.push16(c.reg.Y)
		}
	})
	set(0x7A, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := c.pull8()
			c.reg.Y = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			v := c.pull16()
			c.reg.Y = v
			c.reg.SetNZ16(v)
		}
	})
	set(0x8B, ModeImplied, false, func(c *CPU, op operand) { c.push8(c.reg.DBR) })
	set(0xAB, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetDBR(c.pull8()) })
	set(0x4B, ModeImplied, false, func(c *CPU, op operand) { c.push8(c.reg.PBR) })
	set(0x0B, ModeImplied, false, func(c *CPU, op operand) { c.push16(c.reg.D) })
	set(0x2B, ModeImplied, false, func(c *CPU, op operand) { c.reg.D = c.pull16() })
	set(0xF4, ModeImplied, false, func(c *CPU, op operand) { c.push16(c.fetch16()) })
	set(0xD4, ModeImplied, false, func(c *CPU, op operand) {
		dp := c.fetch8()
		ptr, _ := c.directPageAddr(dp)
		lo := c.readByte(ptr)
		hi := c.readByte((ptr + 1) & 0xFFFF)
		c.push16(uint16(lo) | uint16(hi)<<8)
	})
	set(0x62, ModeImplied, false, func(c *CPU, op operand) {
		rel := int16(c.fetch16())
		c.push16(uint16(int32(c.reg.PC) + int32(rel)))
	})

	// Transfers.
	tr := func(get func(*Registers) uint16, set func(*Registers, uint16), eightBit func(*Registers) bool) func(*CPU, operand) {
		return func(c *CPU, op operand) {
			v := get(c.reg)
			set(c.reg, v)
			if eightBit(c.reg) {
				c.reg.SetNZ8(uint8(v))
			} else {
				c.reg.SetNZ16(v)
			}
		}
	}
	set(0xAA, ModeImplied, false, tr(func(r *Registers) uint16 { return r.A }, func(r *Registers, v uint16) {
		if r.X8() {
			r.X = v & 0xFF
		} else {
			r.X = v
		}
	}, (*Registers).X8))
	set(0xA8, ModeImplied, false, tr(func(r *Registers) uint16 { return r.A }, func(r *Registers, v uint16) {
		if r.X8() {
			r.Y = v & 0xFF
		} else {
			r.Y = v
		}
	}, (*Registers).X8))
	set(0x8A, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.M() {
			v := uint8(c.reg.X)
			c.reg.A = (c.reg.A & 0xFF00) | uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.A = c.reg.X
			c.reg.SetNZ16(c.reg.A)
		}
	})
	set(0x98, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.M() {
			v := uint8(c.reg.Y)
			c.reg.A = (c.reg.A & 0xFF00) | uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.A = c.reg.Y
			c.reg.SetNZ16(c.reg.A)
		}
	})
	set(0xBA, ModeImplied, false, func(c *CPU, op operand) {
		v := c.reg.SP
		if c.reg.X8() {
			v &= 0xFF
		}
		c.reg.X = v
		if c.reg.X8() {
			c.reg.SetNZ8(uint8(v))
		} else {
			c.reg.SetNZ16(v)
		}
	})
	set(0x9A, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.E {
			c.reg.SP = 0x0100 | (c.reg.X & 0xFF)
		} else {
			c.reg.SP = c.reg.X
		}
	})
	set(0x9B, ModeImplied, false, func(c *CPU, op operand) {
		v := c.reg.X
		if c.reg.X8() {
			v &= 0xFF
			c.reg.SetNZ8(uint8(v))
		} else {
			c.reg.SetNZ16(v)
		}
		c.reg.Y = v
	})
	set(0xBB, ModeImplied, false, func(c *CPU, op operand) {
		v := c.reg.Y
		if c.reg.X8() {
			v &= 0xFF
			c.reg.SetNZ8(uint8(v))
		} else {
			c.reg.SetNZ16(v)
		}
		c.reg.X = v
	})
	set(0x5B, ModeImplied, false, func(c *CPU, op operand) { c.reg.D = c.reg.A; c.reg.SetNZ16(c.reg.D) })
	set(0x7B, ModeImplied, false, func(c *CPU, op operand) { c.reg.A = c.reg.D; c.reg.SetNZ16(c.reg.A) })
	set(0x1B, ModeImplied, false, func(c *CPU, op operand) { c.reg.SP = c.reg.A })
	set(0x3B, ModeImplied, false, func(c *CPU, op operand) { c.reg.A = c.reg.SP; c.reg.SetNZ16(c.reg.A) })

	// Flags.
	set(0x18, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagC, false) })
	set(0x38, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagC, true) })
	set(0x58, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagI, false) })
	set(0x78, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagI, true) })
	set(0xD8, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagD, false) })
	set(0xF8, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagD, true) })
	set(0xB8, ModeImplied, false, func(c *CPU, op operand) { c.reg.SetFlag(FlagV, false) })
	set(0xC2, ModeImmediate8, false, func(c *CPU, op operand) { c.reg.SetP(c.reg.P &^ uint8(op.imm)) })
	set(0xE2, ModeImmediate8, false, func(c *CPU, op operand) { c.reg.SetP(c.reg.P | uint8(op.imm)) })
	set(0xFB, ModeImplied, false, func(c *CPU, op operand) {
		e := c.reg.Flag(FlagC)
		c.reg.SetFlag(FlagC, c.reg.E)
		c.reg.SetE(e)
	})

	// INX/INY/DEX/DEY.
	set(0xE8, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := uint8(c.reg.X) + 1
			c.reg.X = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.X++
			c.reg.SetNZ16(c.reg.X)
		}
	})
	set(0xC8, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := uint8(c.reg.Y) + 1
			c.reg.Y = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.Y++
			c.reg.SetNZ16(c.reg.Y)
		}
	})
	set(0xCA, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := uint8(c.reg.X) - 1
			c.reg.X = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.X--
			c.reg.SetNZ16(c.reg.X)
		}
	})
	set(0x88, ModeImplied, false, func(c *CPU, op operand) {
		if c.reg.X8() {
			v := uint8(c.reg.Y) - 1
			c.reg.Y = uint16(v)
			c.reg.SetNZ8(v)
		} else {
			c.reg.Y--
			c.reg.SetNZ16(c.reg.Y)
		}
	})

	// Block move.
	set(0x54, ModeImplied, false, func(c *CPU, op operand) { c.blockMove(+1) })
	set(0x44, ModeImplied, false, func(c *CPU, op operand) { c.blockMove(-1) })

	// Misc.
	set(0xEA, ModeImplied, false, nop)
	set(0x42, ModeImplied, false, func(c *CPU, op operand) { c.fetch8() }) // WDM: reserved, consumes one operand byte
	set(0xEB, ModeImplied, false, func(c *CPU, op operand) {
		lo := uint8(c.reg.A)
		hi := uint8(c.reg.A >> 8)
		c.reg.A = uint16(lo)<<8 | uint16(hi)
		c.reg.SetNZ8(hi)
	})
	set(0xDB, ModeImplied, false, func(c *CPU, op operand) { c.stopped = true })
	set(0xCB, ModeImplied, false, func(c *CPU, op operand) { c.waiting = true })
	set(0x00, ModeImplied, false, func(c *CPU, op operand) {
		c.fetch8() // BRK's signature byte, discarded
		c.enterException(0xFFE6, 0xFFFE)
	})
	set(0x02, ModeImplied, false, func(c *CPU, op operand) {
		c.fetch8()
		c.enterException(0xFFE4, 0xFFF4)
	})
}

// nop costs its fetch plus one internal-only cycle, charged at the
// fixed 6-master-tick internal rate real hardware uses regardless of
// FastROM.
func nop(c *CPU, op operand) { c.cycles += 6 }

// branchTaken applies a relative branch's displacement to PC.
func (c *CPU) branchTaken(disp int8) {
	c.reg.PC = uint16(int32(c.reg.PC) + int32(disp))
	c.cycles++
}

// blockMove implements MVN (dir=+1) and MVP (dir=-1): copies one byte
// from (srcBank:X) to (dstBank:Y), sets DBR to dstBank, and repeats
// until A (treated as a 16-bit counter) underflows past zero.
func (c *CPU) blockMove(dir int16) {
	dst := c.fetch8()
	src := c.fetch8()
	c.reg.SetDBR(dst)

	v := c.readByte(uint32(src)<<16 | uint32(c.reg.X))
	c.writeByte(uint32(dst)<<16|uint32(c.reg.Y), v)

	c.reg.X = uint16(int32(c.reg.X) + int32(dir))
	c.reg.Y = uint16(int32(c.reg.Y) + int32(dir))
	c.reg.A--

	if c.reg.A != 0xFFFF {
		c.reg.PC -= 3 // re-fetch the same MVN/MVP instruction next step
	}
}

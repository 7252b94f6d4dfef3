package spc700

// opcodeTable is a 256-entry table directly indexed by opcode, built
// once at init() time from small combinators in the same spirit as
// cpu/dispatch.go's
// generic-closure table for the 816. The SPC700 ISA has no undefined
// opcodes, so every slot is assigned.
var opcodeTable [256]func(*SPC700)

func (s *SPC700) set(code uint8, fn func(*SPC700)) { opcodeTable[code] = fn }

// --- generic ALU combinators -------------------------------------------------

func readImm(s *SPC700) uint8 { return s.consumeImm8() }

func readAt(addrFn func(*SPC700) uint16) func(*SPC700) uint8 {
	return func(s *SPC700) uint8 { return s.read8(addrFn(s)) }
}

// aluToReg builds "OP reg, src" forms: read src, combine with *dst, store.
func aluToReg(dst func(*SPC700) *uint8, readB func(*SPC700) uint8, op func(*SPC700, uint8, uint8) uint8) func(*SPC700) {
	return func(s *SPC700) {
		b := readB(s)
		d := dst(s)
		*d = op(s, *d, b)
	}
}

// aluToMem builds "OP dst_mem, src" forms where src is read first (it
// appears first in the byte stream even though the mnemonic lists the
// memory destination first), matching the reference's SECOND_OP-before-
// FIRST_OP evaluation order.
func aluToMem(readB func(*SPC700) uint8, addrDst func(*SPC700) uint16, op func(*SPC700, uint8, uint8) uint8) func(*SPC700) {
	return func(s *SPC700) {
		b := readB(s)
		addr := addrDst(s)
		a := s.read8(addr)
		s.write8(addr, op(s, a, b))
	}
}

func cmpToReg(src func(*SPC700) *uint8, readB func(*SPC700) uint8) func(*SPC700) {
	return func(s *SPC700) {
		b := readB(s)
		s.doCmp(*src(s), b)
	}
}

func cmpToMem(readB func(*SPC700) uint8, addrA func(*SPC700) uint16) func(*SPC700) {
	return func(s *SPC700) {
		b := readB(s)
		a := s.read8(addrA(s))
		s.doCmp(a, b)
		s.addIOCycles(1)
	}
}

func regA(s *SPC700) *uint8 { return &s.reg.A }
func regX(s *SPC700) *uint8 { return &s.reg.X }
func regY(s *SPC700) *uint8 { return &s.reg.Y }

// rmwMem builds "OP dst_mem" single-operand read-modify-write forms
// (ASL/LSR/ROL/ROR/INC/DEC on memory).
func rmwMem(addrFn func(*SPC700) uint16, op func(*SPC700, uint8) uint8) func(*SPC700) {
	return func(s *SPC700) {
		addr := addrFn(s)
		v := s.read8(addr)
		s.write8(addr, op(s, v))
	}
}

func rmwReg(dst func(*SPC700) *uint8, op func(*SPC700, uint8) uint8, extraIOCycles int) func(*SPC700) {
	return func(s *SPC700) {
		s.read8Dummy(s.reg.PC)
		d := dst(s)
		*d = op(s, *d)
		if extraIOCycles > 0 {
			s.addIOCycles(extraIOCycles)
		}
	}
}

// movToReg builds "MOV reg, src" forms that set NZ on the loaded value.
func movToReg(dst func(*SPC700) *uint8, readB func(*SPC700) uint8, dummyFirst bool) func(*SPC700) {
	return func(s *SPC700) {
		if dummyFirst {
			s.read8Dummy(s.reg.PC)
		}
		v := readB(s)
		*dst(s) = v
		s.reg.setNZ8(v)
	}
}

// movToMem builds "MOV dst_mem, reg" store forms (no flags affected).
func movToMem(addrFn func(*SPC700) uint16, src func(*SPC700) *uint8) func(*SPC700) {
	return func(s *SPC700) {
		addr := addrFn(s)
		s.read8Dummy(addr)
		s.write8(addr, *src(s))
	}
}

func init() {
	// --- 0x0_ ---
	opcodeTable[0x00] = (*SPC700).nop
	for i := uint8(0); i < 16; i++ {
		idx := i
		opcodeTable[0x01+idx*0x10] = func(s *SPC700) { s.tcall(idx) }
	}
	for bit := uint8(0); bit < 8; bit++ {
		b := bit
		opcodeTable[0x02+b*0x20] = func(s *SPC700) { s.modifyBit(true, b) }
		opcodeTable[0x12+b*0x20] = func(s *SPC700) { s.modifyBit(false, b) }
		opcodeTable[0x03+b*0x20] = func(s *SPC700) { s.bbs(b) }
		opcodeTable[0x13+b*0x20] = func(s *SPC700) { s.bbc(b) }
	}
	opcodeTable[0x04] = aluToReg(regA, readAt((*SPC700).addrDirect), (*SPC700).doOr)
	opcodeTable[0x05] = aluToReg(regA, readAt((*SPC700).addrAbs), (*SPC700).doOr)
	opcodeTable[0x06] = aluToReg(regA, readAt((*SPC700).addrXReg), (*SPC700).doOr)
	opcodeTable[0x07] = aluToReg(regA, readAt((*SPC700).addrDirectXIndirect), (*SPC700).doOr)
	opcodeTable[0x08] = aluToReg(regA, readImm, (*SPC700).doOr)
	opcodeTable[0x09] = aluToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect, (*SPC700).doOr)
	opcodeTable[0x0A] = func(s *SPC700) { s.or1(false) }
	opcodeTable[0x0B] = rmwMem((*SPC700).addrDirect, (*SPC700).doAsl)
	opcodeTable[0x0C] = rmwMem((*SPC700).addrAbs, (*SPC700).doAsl)
	opcodeTable[0x0D] = (*SPC700).pushPSW
	opcodeTable[0x0E] = func(s *SPC700) { s.testModifyBit(true) }
	opcodeTable[0x0F] = (*SPC700).brk

	// --- 0x1_ ---
	opcodeTable[0x10] = func(s *SPC700) { s.condBranch(!s.reg.Flag(FlagN)) }
	opcodeTable[0x14] = aluToReg(regA, readAt((*SPC700).addrDirectX), (*SPC700).doOr)
	opcodeTable[0x15] = aluToReg(regA, readAt((*SPC700).addrAbsX), (*SPC700).doOr)
	opcodeTable[0x16] = aluToReg(regA, readAt((*SPC700).addrAbsY), (*SPC700).doOr)
	opcodeTable[0x17] = aluToReg(regA, readAt((*SPC700).addrDirectIndirectY), (*SPC700).doOr)
	opcodeTable[0x18] = aluToMem(readImm, (*SPC700).addrDirect, (*SPC700).doOr)
	opcodeTable[0x19] = aluToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg, (*SPC700).doOr)
	opcodeTable[0x1A] = func(s *SPC700) { s.decw(s.consumeImm8()) }
	opcodeTable[0x1B] = rmwMem((*SPC700).addrDirectX, (*SPC700).doAsl)
	opcodeTable[0x1C] = rmwReg(regA, (*SPC700).doAsl, 0)
	opcodeTable[0x1D] = rmwReg(regX, (*SPC700).doDec, 0)
	opcodeTable[0x1E] = cmpToReg(regX, readAt((*SPC700).addrAbs))
	opcodeTable[0x1F] = (*SPC700).jmpAbsXIndirect

	// --- 0x2_ ---
	opcodeTable[0x20] = func(s *SPC700) { s.setDirectPage(false) }
	opcodeTable[0x24] = aluToReg(regA, readAt((*SPC700).addrDirect), (*SPC700).doAnd)
	opcodeTable[0x25] = aluToReg(regA, readAt((*SPC700).addrAbs), (*SPC700).doAnd)
	opcodeTable[0x26] = aluToReg(regA, readAt((*SPC700).addrXReg), (*SPC700).doAnd)
	opcodeTable[0x27] = aluToReg(regA, readAt((*SPC700).addrDirectXIndirect), (*SPC700).doAnd)
	opcodeTable[0x28] = aluToReg(regA, readImm, (*SPC700).doAnd)
	opcodeTable[0x29] = aluToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect, (*SPC700).doAnd)
	opcodeTable[0x2A] = func(s *SPC700) { s.and1(true) }
	opcodeTable[0x2B] = rmwMem((*SPC700).addrDirect, (*SPC700).doRol)
	opcodeTable[0x2C] = rmwMem((*SPC700).addrAbs, (*SPC700).doRol)
	opcodeTable[0x2D] = func(s *SPC700) { s.pushReg(s.reg.A) }
	opcodeTable[0x2E] = (*SPC700).cbneDirect
	opcodeTable[0x2F] = (*SPC700).bra

	// --- 0x3_ ---
	opcodeTable[0x30] = func(s *SPC700) { s.condBranch(s.reg.Flag(FlagN)) }
	opcodeTable[0x34] = aluToReg(regA, readAt((*SPC700).addrDirectX), (*SPC700).doAnd)
	opcodeTable[0x35] = aluToReg(regA, readAt((*SPC700).addrAbsX), (*SPC700).doAnd)
	opcodeTable[0x36] = aluToReg(regA, readAt((*SPC700).addrAbsY), (*SPC700).doAnd)
	opcodeTable[0x37] = aluToReg(regA, readAt((*SPC700).addrDirectIndirectY), (*SPC700).doAnd)
	opcodeTable[0x38] = aluToMem(readImm, (*SPC700).addrDirect, (*SPC700).doAnd)
	opcodeTable[0x39] = aluToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg, (*SPC700).doAnd)
	opcodeTable[0x3A] = func(s *SPC700) { s.incw(s.consumeImm8()) }
	opcodeTable[0x3B] = rmwMem((*SPC700).addrDirectX, (*SPC700).doRol)
	opcodeTable[0x3C] = rmwReg(regA, (*SPC700).doRol, 0)
	opcodeTable[0x3D] = rmwReg(regX, (*SPC700).doInc, 0)
	opcodeTable[0x3E] = cmpToReg(regX, readAt((*SPC700).addrDirect))
	opcodeTable[0x3F] = (*SPC700).call

	// --- 0x4_ ---
	opcodeTable[0x40] = func(s *SPC700) { s.setDirectPage(true) }
	opcodeTable[0x44] = aluToReg(regA, readAt((*SPC700).addrDirect), (*SPC700).doEor)
	opcodeTable[0x45] = aluToReg(regA, readAt((*SPC700).addrAbs), (*SPC700).doEor)
	opcodeTable[0x46] = aluToReg(regA, readAt((*SPC700).addrXReg), (*SPC700).doEor)
	opcodeTable[0x47] = aluToReg(regA, readAt((*SPC700).addrDirectXIndirect), (*SPC700).doEor)
	opcodeTable[0x48] = aluToReg(regA, readImm, (*SPC700).doEor)
	opcodeTable[0x49] = aluToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect, (*SPC700).doEor)
	opcodeTable[0x4A] = func(s *SPC700) { s.and1(false) }
	opcodeTable[0x4B] = rmwMem((*SPC700).addrDirect, (*SPC700).doLsr)
	opcodeTable[0x4C] = rmwMem((*SPC700).addrAbs, (*SPC700).doLsr)
	opcodeTable[0x4D] = func(s *SPC700) { s.pushReg(s.reg.X) }
	opcodeTable[0x4E] = func(s *SPC700) { s.testModifyBit(false) }
	opcodeTable[0x4F] = (*SPC700).pcall

	// --- 0x5_ ---
	opcodeTable[0x50] = func(s *SPC700) { s.condBranch(!s.reg.Flag(FlagV)) }
	opcodeTable[0x54] = aluToReg(regA, readAt((*SPC700).addrDirectX), (*SPC700).doEor)
	opcodeTable[0x55] = aluToReg(regA, readAt((*SPC700).addrAbsX), (*SPC700).doEor)
	opcodeTable[0x56] = aluToReg(regA, readAt((*SPC700).addrAbsY), (*SPC700).doEor)
	opcodeTable[0x57] = aluToReg(regA, readAt((*SPC700).addrDirectIndirectY), (*SPC700).doEor)
	opcodeTable[0x58] = aluToMem(readImm, (*SPC700).addrDirect, (*SPC700).doEor)
	opcodeTable[0x59] = aluToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg, (*SPC700).doEor)
	opcodeTable[0x5A] = func(s *SPC700) { s.cmpw(s.consumeImm8()) }
	opcodeTable[0x5B] = rmwMem((*SPC700).addrDirectX, (*SPC700).doLsr)
	opcodeTable[0x5C] = rmwReg(regA, (*SPC700).doLsr, 0)
	opcodeTable[0x5D] = movToReg(regX, (*SPC700).readA, true)
	opcodeTable[0x5E] = cmpToReg(regY, readAt((*SPC700).addrAbs))
	opcodeTable[0x5F] = (*SPC700).jmpAbsolute

	// --- 0x6_ ---
	opcodeTable[0x60] = func(s *SPC700) { s.setCarry(false) }
	opcodeTable[0x64] = cmpToReg(regA, readAt((*SPC700).addrDirect))
	opcodeTable[0x65] = cmpToReg(regA, readAt((*SPC700).addrAbs))
	opcodeTable[0x66] = cmpToReg(regA, readAt((*SPC700).addrXReg))
	opcodeTable[0x67] = cmpToReg(regA, readAt((*SPC700).addrDirectXIndirect))
	opcodeTable[0x68] = cmpToReg(regA, readImm)
	opcodeTable[0x69] = cmpToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect)
	opcodeTable[0x6A] = func(s *SPC700) { s.or1(true) }
	opcodeTable[0x6B] = rmwMem((*SPC700).addrDirect, (*SPC700).doRor)
	opcodeTable[0x6C] = rmwMem((*SPC700).addrAbs, (*SPC700).doRor)
	opcodeTable[0x6D] = func(s *SPC700) { s.pushReg(s.reg.Y) }
	opcodeTable[0x6E] = (*SPC700).dbnzDirect
	opcodeTable[0x6F] = (*SPC700).ret

	// --- 0x7_ ---
	opcodeTable[0x70] = func(s *SPC700) { s.condBranch(s.reg.Flag(FlagV)) }
	opcodeTable[0x74] = cmpToReg(regA, readAt((*SPC700).addrDirectX))
	opcodeTable[0x75] = cmpToReg(regA, readAt((*SPC700).addrAbsX))
	opcodeTable[0x76] = cmpToReg(regA, readAt((*SPC700).addrAbsY))
	opcodeTable[0x77] = cmpToReg(regA, readAt((*SPC700).addrDirectIndirectY))
	opcodeTable[0x78] = cmpToMem(readImm, (*SPC700).addrDirect)
	opcodeTable[0x79] = cmpToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg)
	opcodeTable[0x7A] = func(s *SPC700) { s.addw(s.consumeImm8()) }
	opcodeTable[0x7B] = rmwMem((*SPC700).addrDirectX, (*SPC700).doRor)
	opcodeTable[0x7C] = rmwReg(regA, (*SPC700).doRor, 0)
	opcodeTable[0x7D] = movToReg(regA, (*SPC700).readX, true)
	opcodeTable[0x7E] = cmpToReg(regY, readAt((*SPC700).addrDirect))
	opcodeTable[0x7F] = (*SPC700).reti

	// --- 0x8_ ---
	opcodeTable[0x80] = func(s *SPC700) { s.setCarry(true) }
	opcodeTable[0x84] = aluToReg(regA, readAt((*SPC700).addrDirect), (*SPC700).doAdc)
	opcodeTable[0x85] = aluToReg(regA, readAt((*SPC700).addrAbs), (*SPC700).doAdc)
	opcodeTable[0x86] = aluToReg(regA, readAt((*SPC700).addrXReg), (*SPC700).doAdc)
	opcodeTable[0x87] = aluToReg(regA, readAt((*SPC700).addrDirectXIndirect), (*SPC700).doAdc)
	opcodeTable[0x88] = aluToReg(regA, readImm, (*SPC700).doAdc)
	opcodeTable[0x89] = aluToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect, (*SPC700).doAdc)
	opcodeTable[0x8A] = (*SPC700).eor1
	opcodeTable[0x8B] = rmwMem((*SPC700).addrDirect, (*SPC700).doDec)
	opcodeTable[0x8C] = rmwMem((*SPC700).addrAbs, (*SPC700).doDec)
	opcodeTable[0x8D] = movToReg(regY, readImm, false)
	opcodeTable[0x8E] = (*SPC700).popPSW
	opcodeTable[0x8F] = (*SPC700).movDirectImm

	// --- 0x9_ ---
	opcodeTable[0x90] = func(s *SPC700) { s.condBranch(!s.reg.Flag(FlagC)) }
	opcodeTable[0x94] = aluToReg(regA, readAt((*SPC700).addrDirectX), (*SPC700).doAdc)
	opcodeTable[0x95] = aluToReg(regA, readAt((*SPC700).addrAbsX), (*SPC700).doAdc)
	opcodeTable[0x96] = aluToReg(regA, readAt((*SPC700).addrAbsY), (*SPC700).doAdc)
	opcodeTable[0x97] = aluToReg(regA, readAt((*SPC700).addrDirectIndirectY), (*SPC700).doAdc)
	opcodeTable[0x98] = aluToMem(readImm, (*SPC700).addrDirect, (*SPC700).doAdc)
	opcodeTable[0x99] = aluToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg, (*SPC700).doAdc)
	opcodeTable[0x9A] = func(s *SPC700) { s.subw(s.consumeImm8()) }
	opcodeTable[0x9B] = rmwMem((*SPC700).addrDirectX, (*SPC700).doDec)
	opcodeTable[0x9C] = rmwReg(regA, (*SPC700).doDec, 0)
	opcodeTable[0x9D] = (*SPC700).movXSP
	opcodeTable[0x9E] = (*SPC700).div
	opcodeTable[0x9F] = (*SPC700).xcn

	// --- 0xA_ ---
	opcodeTable[0xA0] = func(s *SPC700) { s.setIRQsEnabled(true) }
	opcodeTable[0xA4] = aluToReg(regA, readAt((*SPC700).addrDirect), (*SPC700).doSbc)
	opcodeTable[0xA5] = aluToReg(regA, readAt((*SPC700).addrAbs), (*SPC700).doSbc)
	opcodeTable[0xA6] = aluToReg(regA, readAt((*SPC700).addrXReg), (*SPC700).doSbc)
	opcodeTable[0xA7] = aluToReg(regA, readAt((*SPC700).addrDirectXIndirect), (*SPC700).doSbc)
	opcodeTable[0xA8] = aluToReg(regA, readImm, (*SPC700).doSbc)
	opcodeTable[0xA9] = aluToMem(readAt((*SPC700).addrDirect), (*SPC700).addrDirect, (*SPC700).doSbc)
	opcodeTable[0xAA] = (*SPC700).mov1CMem
	opcodeTable[0xAB] = rmwMem((*SPC700).addrDirect, (*SPC700).doInc)
	opcodeTable[0xAC] = rmwMem((*SPC700).addrAbs, (*SPC700).doInc)
	opcodeTable[0xAD] = cmpToReg(regY, readImm)
	opcodeTable[0xAE] = (*SPC700).popReg2A
	opcodeTable[0xAF] = (*SPC700).movXIncA

	// --- 0xB_ ---
	opcodeTable[0xB0] = func(s *SPC700) { s.condBranch(s.reg.Flag(FlagC)) }
	opcodeTable[0xB4] = aluToReg(regA, readAt((*SPC700).addrDirectX), (*SPC700).doSbc)
	opcodeTable[0xB5] = aluToReg(regA, readAt((*SPC700).addrAbsX), (*SPC700).doSbc)
	opcodeTable[0xB6] = aluToReg(regA, readAt((*SPC700).addrAbsY), (*SPC700).doSbc)
	opcodeTable[0xB7] = aluToReg(regA, readAt((*SPC700).addrDirectIndirectY), (*SPC700).doSbc)
	opcodeTable[0xB8] = aluToMem(readImm, (*SPC700).addrDirect, (*SPC700).doSbc)
	opcodeTable[0xB9] = aluToMem(readAt((*SPC700).addrYReg), (*SPC700).addrXReg, (*SPC700).doSbc)
	opcodeTable[0xBA] = func(s *SPC700) { s.movwYADirect() }
	opcodeTable[0xBB] = rmwMem((*SPC700).addrDirectX, (*SPC700).doInc)
	opcodeTable[0xBC] = rmwReg(regA, (*SPC700).doInc, 0)
	opcodeTable[0xBD] = (*SPC700).movSPX
	opcodeTable[0xBE] = (*SPC700).das
	opcodeTable[0xBF] = (*SPC700).movAXInc

	// --- 0xC_ ---
	opcodeTable[0xC0] = func(s *SPC700) { s.setIRQsEnabled(false) }
	opcodeTable[0xC4] = movToMem((*SPC700).addrDirect, regA)
	opcodeTable[0xC5] = movToMem((*SPC700).addrAbs, regA)
	opcodeTable[0xC6] = movToMem((*SPC700).addrXReg, regA)
	opcodeTable[0xC7] = movToMem((*SPC700).addrDirectXIndirect, regA)
	opcodeTable[0xC8] = cmpToReg(regX, readImm)
	opcodeTable[0xC9] = movToMem((*SPC700).addrAbs, regX)
	opcodeTable[0xCA] = (*SPC700).mov1MemC
	opcodeTable[0xCB] = movToMem((*SPC700).addrDirect, regY)
	opcodeTable[0xCC] = movToMem((*SPC700).addrAbs, regY)
	opcodeTable[0xCD] = movToReg(regX, readImm, false)
	opcodeTable[0xCE] = (*SPC700).popReg2X
	opcodeTable[0xCF] = (*SPC700).mul

	// --- 0xD_ ---
	opcodeTable[0xD0] = func(s *SPC700) { s.condBranch(!s.reg.Flag(FlagZ)) }
	opcodeTable[0xD4] = movToMem((*SPC700).addrDirectX, regA)
	opcodeTable[0xD5] = movToMem((*SPC700).addrAbsX, regA)
	opcodeTable[0xD6] = movToMem((*SPC700).addrAbsY, regA)
	opcodeTable[0xD7] = movToMem((*SPC700).addrDirectIndirectY, regA)
	opcodeTable[0xD8] = movToMem((*SPC700).addrDirect, regX)
	opcodeTable[0xD9] = movToMem((*SPC700).addrDirectY, regX)
	opcodeTable[0xDA] = (*SPC700).movwDirectYA
	opcodeTable[0xDB] = movToMem((*SPC700).addrDirectX, regY)
	opcodeTable[0xDC] = rmwReg(regY, (*SPC700).doDec, 0)
	opcodeTable[0xDD] = movToReg(regA, (*SPC700).readY, true)
	opcodeTable[0xDE] = (*SPC700).cbneDirectX
	opcodeTable[0xDF] = (*SPC700).daa

	// --- 0xE_ ---
	opcodeTable[0xE0] = (*SPC700).clrv
	opcodeTable[0xE4] = movToReg(regA, readAt((*SPC700).addrDirect), false)
	opcodeTable[0xE5] = movToReg(regA, readAt((*SPC700).addrAbs), false)
	opcodeTable[0xE6] = movToReg(regA, readAt((*SPC700).addrXReg), false)
	opcodeTable[0xE7] = movToReg(regA, readAt((*SPC700).addrDirectXIndirect), false)
	opcodeTable[0xE8] = movToReg(regA, readImm, false)
	opcodeTable[0xE9] = movToReg(regX, readAt((*SPC700).addrAbs), false)
	opcodeTable[0xEA] = (*SPC700).not1
	opcodeTable[0xEB] = movToReg(regY, readAt((*SPC700).addrDirect), false)
	opcodeTable[0xEC] = movToReg(regY, readAt((*SPC700).addrAbs), false)
	opcodeTable[0xED] = (*SPC700).notc
	opcodeTable[0xEE] = (*SPC700).popReg2Y
	opcodeTable[0xEF] = (*SPC700).sleep

	// --- 0xF_ ---
	opcodeTable[0xF0] = func(s *SPC700) { s.condBranch(s.reg.Flag(FlagZ)) }
	opcodeTable[0xF4] = movToReg(regA, readAt((*SPC700).addrDirectX), false)
	opcodeTable[0xF5] = movToReg(regA, readAt((*SPC700).addrAbsX), false)
	opcodeTable[0xF6] = movToReg(regA, readAt((*SPC700).addrAbsY), false)
	opcodeTable[0xF7] = movToReg(regA, readAt((*SPC700).addrDirectIndirectY), false)
	opcodeTable[0xF8] = movToReg(regX, readAt((*SPC700).addrDirect), false)
	opcodeTable[0xF9] = movToReg(regX, readAt((*SPC700).addrDirectY), false)
	opcodeTable[0xFA] = (*SPC700).movDirectDirect
	opcodeTable[0xFB] = movToReg(regY, readAt((*SPC700).addrDirectX), false)
	opcodeTable[0xFC] = rmwReg(regY, (*SPC700).doInc, 0)
	opcodeTable[0xFD] = movToReg(regY, (*SPC700).readA, true)
	opcodeTable[0xFE] = (*SPC700).dbnzY
	opcodeTable[0xFF] = (*SPC700).stop
}

func (s *SPC700) popReg2A() { s.popReg(&s.reg.A) }
func (s *SPC700) popReg2X() { s.popReg(&s.reg.X) }
func (s *SPC700) popReg2Y() { s.popReg(&s.reg.Y) }

package spc700

// ALU operations on the SPC700's 8-bit accumulator and Y:A pair.
// Grounded on original_source/core/src/apu/spc700/interpreter/alu.rs,
// translated from its const-generic FIRST_OP/SECOND_OP combinators into
// plain value-in value-out functions: the dispatch table supplies the
// operand, these compute the result and flags, and the dispatch table
// writes the result back to whichever destination the opcode names.

func (s *SPC700) doAdc(a, b uint8) uint8 {
	carryIn := uint16(0)
	if s.reg.Flag(FlagC) {
		carryIn = 1
	}
	aw, bw := uint16(a), uint16(b)
	result := aw + bw + carryIn
	s.reg.SetFlag(FlagH, (aw&0xF)+(bw&0xF)+carryIn > 0xF)
	s.reg.SetFlag(FlagC, result > 0xFF)
	s.reg.SetFlag(FlagV, (^(aw^bw))&(aw^result)&0x80 != 0)
	out := uint8(result)
	s.reg.setNZ8(out)
	return out
}

func (s *SPC700) doOr(a, b uint8) uint8  { v := a | b; s.reg.setNZ8(v); return v }
func (s *SPC700) doAnd(a, b uint8) uint8 { v := a & b; s.reg.setNZ8(v); return v }
func (s *SPC700) doEor(a, b uint8) uint8 { v := a ^ b; s.reg.setNZ8(v); return v }
func (s *SPC700) doSbc(a, b uint8) uint8 { return s.doAdc(a, ^b) }

func (s *SPC700) doCmp(a, b uint8) {
	s.reg.SetFlag(FlagC, a >= b)
	s.reg.setNZ8(a - b)
}

func (s *SPC700) doAsl(v uint8) uint8 {
	s.reg.SetFlag(FlagC, v&0x80 != 0)
	out := v << 1
	s.reg.setNZ8(out)
	return out
}

func (s *SPC700) doLsr(v uint8) uint8 {
	s.reg.SetFlag(FlagC, v&1 != 0)
	out := v >> 1
	s.reg.setNZ8(out)
	return out
}

func (s *SPC700) doRol(v uint8) uint8 {
	carryIn := uint8(0)
	if s.reg.Flag(FlagC) {
		carryIn = 1
	}
	s.reg.SetFlag(FlagC, v&0x80 != 0)
	out := v<<1 | carryIn
	s.reg.setNZ8(out)
	return out
}

func (s *SPC700) doRor(v uint8) uint8 {
	carryIn := uint8(0)
	if s.reg.Flag(FlagC) {
		carryIn = 0x80
	}
	s.reg.SetFlag(FlagC, v&1 != 0)
	out := v>>1 | carryIn
	s.reg.setNZ8(out)
	return out
}

func (s *SPC700) doInc(v uint8) uint8 { out := v + 1; s.reg.setNZ8(out); return out }
func (s *SPC700) doDec(v uint8) uint8 { out := v - 1; s.reg.setNZ8(out); return out }

func (s *SPC700) addw(dpOffset uint8) {
	a := uint32(s.reg.YA())
	b := uint32(s.read16DirectIdle(dpOffset))
	result := a + b
	s.reg.SetFlag(FlagH, (a&0xFFF)+(b&0xFFF) > 0xFFF)
	s.reg.SetFlag(FlagC, result > 0xFFFF)
	s.reg.SetFlag(FlagV, (^(a^b))&(a^result)&0x8000 != 0)
	out := uint16(result)
	s.reg.setNZ16(out)
	s.reg.SetYA(out)
}

func (s *SPC700) subw(dpOffset uint8) {
	a := uint32(s.reg.YA())
	b := uint32(s.read16DirectIdle(dpOffset))
	result := a - b
	s.reg.SetFlag(FlagH, a&0xFFF >= b&0xFFF)
	s.reg.SetFlag(FlagC, a >= b)
	s.reg.SetFlag(FlagV, (a^b)&(a^result)&0x8000 != 0)
	out := uint16(result)
	s.reg.setNZ16(out)
	s.reg.SetYA(out)
}

func (s *SPC700) cmpw(dpOffset uint8) {
	a := s.reg.YA()
	b := s.read16Direct(dpOffset)
	s.reg.SetFlag(FlagC, a >= b)
	s.reg.setNZ16(a - b)
}

func (s *SPC700) incw(dpOffset uint8) {
	v := s.read16DirectIdle(dpOffset) + 1
	s.write16Direct(dpOffset, v)
	s.reg.setNZ16(v)
}

func (s *SPC700) decw(dpOffset uint8) {
	v := s.read16DirectIdle(dpOffset) - 1
	s.write16Direct(dpOffset, v)
	s.reg.setNZ16(v)
}

func (s *SPC700) mul() {
	s.read8Dummy(s.reg.PC)
	result := uint16(s.reg.Y) * uint16(s.reg.A)
	s.reg.SetYA(result)
	s.reg.setNZ16(result)
	s.addIOCycles(7)
}

// div implements the documented hardware DIV algorithm (bsnes's
// instructions.cpp, cited by the reference implementation): Y:A / X,
// quotient into A, remainder into Y, with the hardware's well-known
// overflow behavior when Y >= X<<1.
func (s *SPC700) div() {
	s.read8Dummy(s.reg.PC)
	y, x := s.reg.Y, s.reg.X
	s.reg.SetFlag(FlagH, y&0xF >= x&0xF)
	s.reg.SetFlag(FlagV, y >= x)
	ya := s.reg.YA()
	xw := uint16(x)
	if uint16(y) < xw<<1 {
		s.reg.A = uint8(ya / xw)
		s.reg.Y = uint8(ya % xw)
	} else {
		s.reg.A = uint8(255 - (ya-(xw<<9))/(256-xw))
		s.reg.Y = uint8(xw + (ya-(xw<<9))%(256-xw))
	}
	s.reg.setNZ8(s.reg.A)
	s.addIOCycles(10)
}

func (s *SPC700) xcn() {
	s.read8Dummy(s.reg.PC)
	s.reg.A = s.reg.A<<4 | s.reg.A>>4
	s.reg.setNZ8(s.reg.A)
	s.addIOCycles(3)
}

func (s *SPC700) daa() {
	s.read8Dummy(s.reg.PC)
	if s.reg.Flag(FlagC) || s.reg.A > 0x99 {
		s.reg.A += 0x60
		s.reg.SetFlag(FlagC, true)
	}
	if s.reg.Flag(FlagH) || s.reg.A&0xF > 9 {
		s.reg.A += 6
	}
	s.reg.setNZ8(s.reg.A)
	s.addIOCycles(1)
}

func (s *SPC700) das() {
	s.read8Dummy(s.reg.PC)
	if !s.reg.Flag(FlagC) || s.reg.A > 0x99 {
		s.reg.A -= 0x60
		s.reg.SetFlag(FlagC, false)
	}
	if !s.reg.Flag(FlagH) || s.reg.A&0xF > 9 {
		s.reg.A -= 6
	}
	s.reg.setNZ8(s.reg.A)
	s.addIOCycles(1)
}

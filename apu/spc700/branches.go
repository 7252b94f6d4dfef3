package spc700

// Branch, jump, call and return instructions. Grounded on
// original_source/core/src/apu/spc700/interpreter/branches.rs and
// other.rs's BRK/RETI, translated the same way as alu.go: const-generic
// parameters become plain arguments baked into the dispatch table's
// closures.

func (s *SPC700) condBranch(taken bool) {
	offset := int8(s.consumeImm8())
	if taken {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) bra() { s.condBranch(true) }

func (s *SPC700) jmpAbsolute() { s.reg.PC = s.consumeImm16() }

func (s *SPC700) jmpAbsXIndirect() {
	indirect := s.consumeImm16() + uint16(s.reg.X)
	s.addIOCycles(1)
	s.reg.PC = s.read16(indirect)
}

func (s *SPC700) cbneDirect() {
	addr := s.directAddr(s.consumeImm8())
	value := s.read8(addr)
	s.addIOCycles(1)
	offset := int8(s.consumeImm8())
	if s.reg.A != value {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) cbneDirectX() {
	addr := s.directAddr(s.consumeImm8() + s.reg.X)
	s.addIOCycles(1)
	value := s.read8(addr)
	s.addIOCycles(1)
	offset := int8(s.consumeImm8())
	if s.reg.A != value {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) dbnzDirect() {
	addr := s.directAddr(s.consumeImm8())
	result := s.read8(addr) - 1
	s.write8(addr, result)
	offset := int8(s.consumeImm8())
	if result != 0 {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) dbnzY() {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	s.reg.Y--
	offset := int8(s.consumeImm8())
	if s.reg.Y != 0 {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) bbs(bit uint8) {
	addr := s.directAddr(s.consumeImm8())
	value := s.read8(addr)
	s.addIOCycles(1)
	offset := int8(s.consumeImm8())
	if value&(1<<bit) != 0 {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) bbc(bit uint8) {
	addr := s.directAddr(s.consumeImm8())
	value := s.read8(addr)
	s.addIOCycles(1)
	offset := int8(s.consumeImm8())
	if value&(1<<bit) == 0 {
		s.addIOCycles(2)
		s.reg.PC = uint16(int32(s.reg.PC) + int32(offset))
	}
}

func (s *SPC700) call() {
	newPC := s.consumeImm16()
	s.addIOCycles(1)
	s.push16(s.reg.PC)
	s.reg.PC = newPC
	s.addIOCycles(2)
}

func (s *SPC700) pcall() {
	newPC := 0xFF00 | uint16(s.consumeImm8())
	s.addIOCycles(1)
	s.push16(s.reg.PC)
	s.reg.PC = newPC
	s.addIOCycles(1)
}

func (s *SPC700) tcall(index uint8) {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	s.push16(s.reg.PC)
	s.addIOCycles(1)
	vector := uint16(0xFFDE) - 2*uint16(index)
	s.reg.PC = s.read16(vector)
}

func (s *SPC700) ret() {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	s.reg.PC = s.pop16()
}

func (s *SPC700) reti() {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	s.reg.SetP(s.pop8())
	s.reg.PC = s.pop16()
}

// brk enters the break exception frame at the fixed vector 0xFFDE, the
// same vector TCALL 0 uses — BRK/RETI behave as exception frames
// using vector 0xFFDE.
func (s *SPC700) brk() {
	s.read8Dummy(s.reg.PC)
	s.push16(s.reg.PC)
	s.push8(s.reg.P)
	s.reg.PC = s.read16(0xFFDE)
	s.reg.SetFlag(FlagI, false)
	s.reg.SetFlag(FlagB, true)
	s.addIOCycles(1)
}

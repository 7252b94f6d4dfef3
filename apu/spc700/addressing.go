package spc700

// Addressing-mode helpers. Each "read*" returns the operand's value and
// charges the bus cycles implied by the access; each "addr*" resolves an
// effective address for a read-modify-write instruction. These mirror
// the reference interpreter's read_effective_addr/do_addr_mode_read
// family, collapsed from const-generic dispatch into plain closures
// since Go has no zero-cost generics over enum-like mode values (the
// same tradeoff cpu/addressing.go makes for the 816 side).

func (s *SPC700) addrDirect() uint16 {
	return s.directAddr(s.consumeImm8())
}

func (s *SPC700) addrDirectX() uint16 {
	base := s.consumeImm8()
	s.addIOCycles(1)
	return s.directAddr(base + s.reg.X)
}

func (s *SPC700) addrDirectY() uint16 {
	base := s.consumeImm8()
	s.addIOCycles(1)
	return s.directAddr(base + s.reg.Y)
}

func (s *SPC700) addrAbs() uint16 {
	return s.consumeImm16()
}

func (s *SPC700) addrAbsX() uint16 {
	addr := s.consumeImm16() + uint16(s.reg.X)
	s.addIOCycles(1)
	return addr
}

func (s *SPC700) addrAbsY() uint16 {
	addr := s.consumeImm16() + uint16(s.reg.Y)
	s.addIOCycles(1)
	return addr
}

func (s *SPC700) addrXReg() uint16 { return s.directAddr(s.reg.X) }
func (s *SPC700) addrYReg() uint16 { return s.directAddr(s.reg.Y) }

// addrDirectXIndirect resolves [(dp+X)]: a direct-page pointer indexed
// by X before the indirection.
func (s *SPC700) addrDirectXIndirect() uint16 {
	indirect := s.consumeImm8() + s.reg.X
	s.addIOCycles(1)
	return s.read16Direct(indirect)
}

// addrDirectIndirectY resolves [(dp)]+Y: a direct-page pointer indexed
// by Y after the indirection.
func (s *SPC700) addrDirectIndirectY() uint16 {
	indirect := s.consumeImm8()
	addr := s.read16Direct(indirect) + uint16(s.reg.Y)
	s.addIOCycles(1)
	return addr
}

// readA, readX, readY read the named register without a bus access.
func (s *SPC700) readA() uint8 { return s.reg.A }
func (s *SPC700) readX() uint8 { return s.reg.X }
func (s *SPC700) readY() uint8 { return s.reg.Y }

package spc700

// MOV family and stack push/pop. Grounded on
// original_source/core/src/apu/spc700/interpreter/transfers.rs.

func (s *SPC700) movXSP() {
	s.read8Dummy(s.reg.PC)
	s.reg.X = s.reg.SP
	s.reg.setNZ8(s.reg.X)
}

func (s *SPC700) movSPX() {
	s.read8Dummy(s.reg.PC)
	s.reg.SP = s.reg.X
}

// movRegFromReg implements the plain register-to-register transfers
// (MOV A,X / MOV A,Y / MOV X,A / MOV Y,A) that set NZ on the moved
// value, unlike MOV X,SP / MOV SP,X above.
func (s *SPC700) movRegFromReg(dst *uint8, src uint8) {
	s.read8Dummy(s.reg.PC)
	*dst = src
	s.reg.setNZ8(src)
}

func (s *SPC700) movDirectImm() {
	value := s.consumeImm8()
	addr := s.directAddr(s.consumeImm8())
	s.read8Dummy(addr)
	s.write8(addr, value)
}

func (s *SPC700) movDirectDirect() {
	srcAddr := s.directAddr(s.consumeImm8())
	value := s.read8(srcAddr)
	dstAddr := s.directAddr(s.consumeImm8())
	s.write8(dstAddr, value)
}

func (s *SPC700) movAXInc() {
	s.read8Dummy(s.reg.PC)
	addr := s.directAddr(s.reg.X)
	s.reg.X++
	value := s.read8(addr)
	s.reg.A = value
	s.reg.setNZ8(value)
	s.addIOCycles(1)
}

func (s *SPC700) movXIncA() {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	addr := s.directAddr(s.reg.X)
	s.reg.X++
	s.write8(addr, s.reg.A)
}

func (s *SPC700) movwYADirect() {
	offset := s.consumeImm8()
	result := s.read16DirectIdle(offset)
	s.reg.SetYA(result)
	s.reg.setNZ16(result)
}

func (s *SPC700) movwDirectYA() {
	offset := s.consumeImm8()
	s.read8Dummy(s.directAddr(offset))
	s.write16Direct(offset, s.reg.YA())
}

func (s *SPC700) pushReg(value uint8) {
	s.read8Dummy(s.reg.PC)
	s.push8(value)
	s.addIOCycles(1)
}

func (s *SPC700) pushPSW() {
	s.read8Dummy(s.reg.PC)
	s.push8(s.reg.P)
	s.addIOCycles(1)
}

func (s *SPC700) popReg(dst *uint8) {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	*dst = s.pop8()
}

func (s *SPC700) popPSW() {
	s.read8Dummy(s.reg.PC)
	s.addIOCycles(1)
	s.reg.SetP(s.pop8())
}

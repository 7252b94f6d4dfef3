package spc700

import "testing"

// stubDSP satisfies DSPPort without touching the real dsp package, keeping
// this package's tests independent of apu/dsp.
type stubDSP struct {
	regs [128]uint8
}

func (d *stubDSP) ReadReg(index uint8) uint8        { return d.regs[index&0x7F] }
func (d *stubDSP) WriteReg(index uint8, value uint8) { d.regs[index&0x7F] = value }

func newTestSPC700() *SPC700 {
	s := New(&stubDSP{})
	s.reg.PC = 0x0200
	return s
}

// TestMul covers the literal scenario: A=0x10, Y=0x08, execute MUL (0xCF)
// -> YA=0x0080, Y=0x00, N=0, Z=0.
func TestMul(t *testing.T) {
	s := newTestSPC700()
	s.reg.A = 0x10
	s.reg.Y = 0x08
	s.memory[0x0200] = 0xCF

	s.Step()

	if got := s.reg.YA(); got != 0x0080 {
		t.Fatalf("YA = %#04x, want 0x0080", got)
	}
	if s.reg.Y != 0x00 {
		t.Fatalf("Y = %#02x, want 0x00", s.reg.Y)
	}
	if s.reg.Flag(FlagN) {
		t.Fatal("N flag set, want clear")
	}
	if s.reg.Flag(FlagZ) {
		t.Fatal("Z flag set, want clear")
	}
}

func TestDivOverflow(t *testing.T) {
	s := newTestSPC700()
	// Y:A = 0x0805, X = 0x02: Y(0x08) >= X<<1(0x04) takes the overflow path.
	s.reg.Y = 0x08
	s.reg.A = 0x05
	s.reg.X = 0x02
	s.memory[0x0200] = 0x9E

	s.Step()

	if !s.reg.Flag(FlagV) {
		t.Fatal("V flag clear, want set on DIV overflow path")
	}
}

// TestStepAlwaysAdvancesTime checks the invariant that cur_time
// strictly increases after every instruction, across a representative
// sample of addressing modes and instruction families.
func TestStepAlwaysAdvancesTime(t *testing.T) {
	opcodes := []uint8{
		0x00,             // NOP
		0x8F, 0x12, 0x34, // MOV dp, #imm
		0x5D, // MOV X,A
		0x60, // CLRC
		0xCF, // MUL
	}
	s := newTestSPC700()
	copy(s.memory[0x0200:], opcodes)

	for i := 0; i < 5; i++ {
		before := s.curTime
		s.Step()
		if s.curTime == before {
			t.Fatalf("step %d: curTime did not advance", i)
		}
	}
}

func TestMovDirectImm(t *testing.T) {
	s := newTestSPC700()
	s.memory[0x0200] = 0x8F
	s.memory[0x0201] = 0x42 // immediate value
	s.memory[0x0202] = 0x10 // direct page offset

	s.Step()

	if got := s.memory[0x0010]; got != 0x42 {
		t.Fatalf("memory[0x10] = %#02x, want 0x42", got)
	}
}

func TestAdcSetsCarryAndOverflow(t *testing.T) {
	s := newTestSPC700()
	s.reg.A = 0x7F
	s.memory[0x0200] = 0x88 // ADC A,#imm
	s.memory[0x0201] = 0x01

	s.Step()

	if s.reg.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", s.reg.A)
	}
	if !s.reg.Flag(FlagV) {
		t.Fatal("V flag clear, want set on signed overflow")
	}
	if s.reg.Flag(FlagC) {
		t.Fatal("C flag set, want clear (no unsigned carry)")
	}
}

func TestMailboxPortsRoundTrip(t *testing.T) {
	s := newTestSPC700()
	s.WritePort(0, 0xAB) // simulate the CPU side writing to the APU
	if got := s.read(0x00F4, AccessDebug); got != 0xAB {
		t.Fatalf("port 0 read by SPC700 program = %#02x, want 0xAB", got)
	}

	s.write(0x00F4, 0xCD, AccessNormal) // SPC700 program writes back
	if got := s.ReadPort(0); got != 0xCD {
		t.Fatalf("port 0 read by CPU side = %#02x, want 0xCD", got)
	}
}

func TestDSPPortRoundTrip(t *testing.T) {
	s := newTestSPC700()
	s.memory[0x0200] = 0xC5 // MOV abs, A  (targets DSP address port 0x00F2)
	s.memory[0x0201] = 0xF2
	s.memory[0x0202] = 0x00
	s.reg.A = 0x0C // main volume-left register index

	s.memory[0x0203] = 0xC5 // MOV abs, A (writes data port 0x00F3)
	s.memory[0x0204] = 0xF3
	s.memory[0x0205] = 0x00

	s.reg.PC = 0x0200
	s.Step()
	s.reg.A = 0x7F
	s.Step()

	dsp := s.dsp.(*stubDSP)
	if dsp.regs[0x0C] != 0x7F {
		t.Fatalf("dsp register 0x0C = %#02x, want 0x7F", dsp.regs[0x0C])
	}
}

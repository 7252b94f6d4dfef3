package cpu

import "testing"

// testMap is a sparse CartMap used only by these tests, standing in
// for a real cart.Map.
type testMap struct {
	data map[uint32]uint8
}

func newTestMap() *testMap { return &testMap{data: map[uint32]uint8{}} }

func (m *testMap) Read(address uint32) (uint8, bool) {
	v, ok := m.data[address]
	if !ok {
		return 0, true // zero-initialized backing store
	}
	return v, true
}

func (m *testMap) Write(address uint32, value uint8) bool {
	m.data[address] = value
	return true
}

func newTestCPU() (*CPU, *testMap) {
	bus := NewBus()
	m := newTestMap()
	bus.AttachCart(m)
	c := NewCPU(bus)
	c.fastROM = true // matches this test suite's assumed 6-cycle baseline access speed
	return c, m
}

// Scenario 1: reset onto a ROM whose first byte at 00:8000
// is EA (NOP); after one step PC=0x8001, I=1, D=0, E=1, PBR=0, SP=0x1FC,
// cur_time advances by 12.
func TestScenarioResetAndStepNOP(t *testing.T) {
	c, m := newTestCPU()
	m.Write(0x00FFFC, 0x00)
	m.Write(0x00FFFD, 0x80)
	m.Write(0x008000, 0xEA)

	c.Reset()
	cycles := c.Step()

	if c.reg.PC != 0x8001 {
		t.Fatalf("PC = %#x, want 0x8001", c.reg.PC)
	}
	if !c.reg.Flag(FlagI) {
		t.Fatal("I flag should be set after reset")
	}
	if c.reg.Flag(FlagD) {
		t.Fatal("D flag should be clear after reset")
	}
	if !c.reg.E {
		t.Fatal("E should be true after reset")
	}
	if c.reg.PBR != 0 {
		t.Fatalf("PBR = %#x, want 0", c.reg.PBR)
	}
	if c.reg.SP != 0x01FC {
		t.Fatalf("SP = %#x, want 0x01FC", c.reg.SP)
	}
	if cycles != 12 {
		t.Fatalf("cycles = %d, want 12", cycles)
	}
}

// Scenario 2: ADC immediate in decimal mode.
func TestScenarioADCDecimalImmediate(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.SetFlag(FlagD, true)
	c.reg.SetFlag(FlagC, true)
	c.reg.SetFlag(FlagM, true)
	c.reg.A = 0x09
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	m.Write(0x008000, 0x69)
	m.Write(0x008001, 0x01)

	c.Step()

	if c.reg.A != 0x11 {
		t.Fatalf("A = %#x, want 0x11", c.reg.A)
	}
	if c.reg.Flag(FlagC) {
		t.Fatal("C should be clear")
	}
	if c.reg.Flag(FlagV) {
		t.Fatal("V should be clear")
	}
	if c.reg.Flag(FlagN) {
		t.Fatal("N should be clear")
	}
	if c.reg.Flag(FlagZ) {
		t.Fatal("Z should be clear")
	}
}

// Scenario 3: MVN block move, 4 bytes bank 0 -> bank 1.
func TestScenarioMVNBlockMove(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.A = 0x0003
	c.reg.X = 0x0000
	c.reg.Y = 0x0000
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	m.Write(0x008000, 0x54)
	m.Write(0x008001, 0x01) // dest bank
	m.Write(0x008002, 0x00) // src bank
	startPC := c.reg.PC

	for i := 0; i < 4; i++ {
		c.Step()
	}

	if c.reg.A != 0xFFFF {
		t.Fatalf("A = %#x, want 0xFFFF", c.reg.A)
	}
	if c.reg.X != 0x0004 {
		t.Fatalf("X = %#x, want 0x0004", c.reg.X)
	}
	if c.reg.Y != 0x0004 {
		t.Fatalf("Y = %#x, want 0x0004", c.reg.Y)
	}
	if c.reg.PC != startPC+3 {
		t.Fatalf("PC = %#x, want %#x", c.reg.PC, startPC+3)
	}
	if c.reg.DBR != 0x01 {
		t.Fatalf("DBR = %#x, want 0x01", c.reg.DBR)
	}
}

// Scenario 6: cart map reducer literal vectors, re-checked
// here against the CPU's own bus decode path is out of scope (that's
// cart/map_test.go) — nothing to duplicate here.

// Boundary: wrapping direct-page access with D&0xFF!=0 charges exactly
// one extra cycle.
func TestBoundaryDirectPageWrapExtraCycle(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.SetFlag(FlagM, true)
	c.reg.D = 0x1234
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	m.Write(0x008000, 0xA5) // LDA dp
	m.Write(0x008001, 0x10)
	m.Write(uint32(c.reg.D+0x10), 0x42)

	withWrap := c.Step()

	c2, m2 := newTestCPU()
	c2.Reset()
	c2.reg.SetE(false)
	c2.reg.SetFlag(FlagM, true)
	c2.reg.D = 0x1200 // low byte zero: no wrap penalty
	c2.reg.PC = 0x8000
	c2.reg.SetPBR(0)
	m2.Write(0x008000, 0xA5)
	m2.Write(0x008001, 0x10)
	m2.Write(uint32(c2.reg.D+0x10), 0x42)

	withoutWrap := c2.Step()

	if withWrap != withoutWrap+1 {
		t.Fatalf("direct-page wrap cycles = %d, no-wrap = %d; want exactly +1", withWrap, withoutWrap)
	}
}

// Boundary: an 8-bit-M Absolute,X read whose index crosses a page
// boundary charges exactly one extra cycle over a same-page read.
func TestBoundaryAbsoluteXPageCross(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.SetFlag(FlagM, true) // 8-bit read
	c.reg.X = 0x01
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	c.reg.SetDBR(0)
	m.Write(0x008000, 0xBD) // LDA abs,X
	m.Write(0x008001, 0xFF)
	m.Write(0x008002, 0x00) // base 0x00FF, +X(1) crosses into 0x0100
	m.Write(0x000100, 0x7)

	crossing := c.Step()

	c2, m2 := newTestCPU()
	c2.Reset()
	c2.reg.SetE(false)
	c2.reg.SetFlag(FlagM, true)
	c2.reg.X = 0x01
	c2.reg.PC = 0x8000
	c2.reg.SetPBR(0)
	c2.reg.SetDBR(0)
	m2.Write(0x008000, 0xBD)
	m2.Write(0x008001, 0x00)
	m2.Write(0x008002, 0x00) // base 0x0000, +X(1) stays in page
	m2.Write(0x000001, 0x7)

	sameBank := c2.Step()

	if crossing != sameBank+1 {
		t.Fatalf("page-cross cycles = %d, same-page = %d; want exactly +1", crossing, sameBank)
	}
}

// Boundary: PEI pushes the 16-bit value stored at the direct-page
// pointer, not the pointer itself.
func TestBoundaryPEIPushesIndirectValue(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.D = 0
	c.reg.SP = 0x01FF
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	m.Write(0x008000, 0xD4) // PEI dp
	m.Write(0x008001, 0x10)
	// Direct-page offset 0x10 falls in the low-WRAM mirror, not cart space.
	c.bus.wram[0x0010] = 0xCD // pointer low
	c.bus.wram[0x0011] = 0xAB // pointer high -> 0xABCD

	c.Step()

	pushed := c.pull16()
	if pushed != 0xABCD {
		t.Fatalf("PEI pushed %#x, want 0xABCD", pushed)
	}
}

// Boundary: REP/SEP update the cached X-flag immediately, truncating
// X/Y to 8 bits when X transitions 0 -> 1.
func TestBoundarySEPTruncatesXY(t *testing.T) {
	c, m := newTestCPU()
	c.Reset()
	c.reg.SetE(false)
	c.reg.SetFlag(FlagX, false) // 16-bit index
	c.reg.X = 0x1234
	c.reg.Y = 0x5678
	c.reg.PC = 0x8000
	c.reg.SetPBR(0)
	m.Write(0x008000, 0xE2) // SEP #$10
	m.Write(0x008001, 0x10)

	c.Step()

	if !c.reg.X8() {
		t.Fatal("X flag should be set after SEP #$10")
	}
	if c.reg.X != 0x0034 {
		t.Fatalf("X = %#x, want 0x0034 (truncated)", c.reg.X)
	}
	if c.reg.Y != 0x0078 {
		t.Fatalf("Y = %#x, want 0x0078 (truncated)", c.reg.Y)
	}
}

// Round-trip: for every (M, X) combination, pushing and pulling A at
// the width M selects restores its value.
func TestRoundTripPushPull(t *testing.T) {
	for _, m8 := range []bool{true, false} {
		for _, x8 := range []bool{true, false} {
			c, _ := newTestCPU()
			c.Reset()
			c.reg.SetE(false)
			c.reg.SetFlag(FlagM, m8)
			c.reg.SetFlag(FlagX, x8)
			c.reg.SP = 0x01FF
			c.reg.A = 0x8421
			c.reg.X = 0x8421
			c.reg.Y = 0x8421

			if m8 {
				c.push8(uint8(c.reg.A))
			} else {
				c.push16(c.reg.A)
			}
			var got uint16
			if m8 {
				got = uint16(c.pull8())
			} else {
				got = c.pull16()
			}
			want := c.reg.A
			if m8 {
				want &= 0xFF
			}
			if got != want {
				t.Fatalf("m8=%v: pulled A=%#x, want %#x", m8, got, want)
			}
		}
	}
}

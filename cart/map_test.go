package cart

import "testing"

func TestReduceLiteralScenario(t *testing.T) {
	got := Reduce(0x1234, 0x900)
	if got != 0x534 {
		t.Fatalf("Reduce(0x1234, 0x900) = 0x%X, want 0x534", got)
	}
}

func TestMirrorLiteralScenario(t *testing.T) {
	got := Mirror(0x1A1A, 0x1800)
	if got != 0x121A {
		t.Fatalf("Mirror(0x1A1A, 0x1800) = 0x%X, want 0x121A", got)
	}
}

func TestReduceComposition(t *testing.T) {
	var addr uint32 = 0xABCDEF
	var m1 uint32 = 0x00F00F
	var m2 uint32 = 0x0F00F0

	got := Reduce(Reduce(addr, m1), m2)
	want := Reduce(addr, m1|m2)
	if got != want {
		t.Fatalf("Reduce(Reduce(a,m1),m2) = 0x%X, want Reduce(a,m1|m2) = 0x%X", got, want)
	}
}

func TestMirrorBounded(t *testing.T) {
	sizes := []uint32{1, 2, 3, 5, 96 * 1024, 0x1800, 0x8000}
	offsets := []uint32{0, 1, 1023, 0xFFFF, 0x123456}
	for _, size := range sizes {
		for _, off := range offsets {
			got := Mirror(off, size)
			if got >= size {
				t.Fatalf("Mirror(%d, %d) = %d, want < %d", off, size, got, size)
			}
		}
	}
}

func TestMirrorPowerOfTwoIsPlainWrap(t *testing.T) {
	var size uint32 = 0x8000
	var offset uint32 = 0x18123
	got := Mirror(offset, size)
	want := offset % size
	if got != want {
		t.Fatalf("Mirror(%#x, %#x) = %#x, want %#x (plain modulo for pow2 size)", offset, size, got, want)
	}
}

func TestMirrorZeroSizeIsPassthrough(t *testing.T) {
	if got := Mirror(0xABCDEF, 0); got != 0xABCDEF {
		t.Fatalf("Mirror(x, 0) = %#x, want unchanged %#x", got, 0xABCDEF)
	}
}

func TestDefaultLoROMRead(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0x42
	rom[0x7FFF] = 0x99

	m := NewMap(rom, nil)
	m.Build(DefaultLoROMRegions())

	if v, ok := m.Read(0x008000); !ok || v != 0x42 {
		t.Fatalf("Read(0x008000) = (%#x, %v), want (0x42, true)", v, ok)
	}
	if v, ok := m.Read(0x00FFFF); !ok || v != 0x99 {
		t.Fatalf("Read(0x00FFFF) = (%#x, %v), want (0x99, true)", v, ok)
	}
	if v, ok := m.Read(0x808000); !ok || v != 0x42 {
		t.Fatalf("mirrored bank 0x80: Read(0x808000) = (%#x, %v), want (0x42, true)", v, ok)
	}
	if _, ok := m.Read(0x000000); ok {
		t.Fatalf("Read(0x000000) should miss (below 8000 in bank 00), got ok=true")
	}
}

func TestCartMapMiss(t *testing.T) {
	m := NewMap(nil, nil)
	if _, ok := m.Read(0x123456); ok {
		t.Fatalf("Read on an empty map should miss")
	}
	if ok := m.Write(0x123456, 0); ok {
		t.Fatalf("Write on an empty map should miss")
	}
}

func TestRAMModifiedFlag(t *testing.T) {
	ram := make([]byte, 0x2000)
	m := NewMap(nil, ram)
	m.Build([]Region{{
		Windows: []Window{{BankLo: 0x70, BankHi: 0x70, AddrLo: 0x0000, AddrHi: 0x1FFF}},
		Size:    uint32(len(ram)),
		Read:    RamRead,
		Write:   RamWrite,
	}})

	if m.RAMModified() {
		t.Fatalf("RAMModified should start false")
	}
	if ok := m.Write(0x700010, 0x7F); !ok {
		t.Fatalf("Write to RAM region should succeed")
	}
	if !m.RAMModified() {
		t.Fatalf("RAMModified should be true after a write")
	}
	m.MarkRAMFlushed()
	if m.RAMModified() {
		t.Fatalf("RAMModified should be false after MarkRAMFlushed")
	}
	if v, ok := m.Read(0x700010); !ok || v != 0x7F {
		t.Fatalf("Read back = (%#x, %v), want (0x7F, true)", v, ok)
	}
}

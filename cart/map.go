// Package cart implements the cart memory-map layer: a
// page-indexed function table mapping a 24-bit bus address into
// (handler, offset) pairs for reads and writes separately, built once
// per cart load from a list of regions.
//
// Grounded in go-jeebie's jeebie/memory/mbc.go (per-controller bank
// windowing: ROM/RAM bank arithmetic, battery flag, bank-count sizing)
// generalized from the Game Boy's fixed 4 MBC shapes into a
// declarative region-list resolver for the SNES's wider address space.
package cart

const (
	pageShift = 9
	pageSize  = 1 << pageShift // 512 bytes
	pageMask  = pageSize - 1
	numPages  = 1 << (24 - pageShift) // 32768 pages covering the 24-bit bus
)

// ReadHandler and WriteHandler are a map region's read and write
// functions. offset is the
// page-resolved backing-store offset OR'd with the address's low
// page-bits.
type ReadHandler func(m *Map, offset uint32) uint8
type WriteHandler func(m *Map, offset uint32, value uint8)

// Window is one (bank-range, addr-range) pair a Region decodes.
type Window struct {
	BankLo, BankHi uint8
	AddrLo, AddrHi uint16
}

// Region describes one memory-map region: one or more address
// windows, a backing-store byte offset, an optional size (0 means
// "unbounded", i.e. no mirroring folds the offset), and a reduction
// mask.
type Region struct {
	Windows    []Window
	Offset     uint32
	Size       uint32 // 0 = no mirroring
	Mask       uint32
	Read       ReadHandler
	Write      WriteHandler
}

// Map is a built, immutable-for-the-cart's-lifetime page table: two
// parallel arrays (read/write) each indexed by addr>>9, holding an
// optional handler and a precomputed backing-store page offset.
type Map struct {
	readFn     [numPages]ReadHandler
	readOffset [numPages]uint32
	writeFn    [numPages]WriteHandler
	writeOffset [numPages]uint32

	rom         []byte
	ram         []byte
	ramModified bool
}

// NewMap creates an empty map bound to the given ROM/RAM backing
// buffers; call Build to install regions.
func NewMap(rom, ram []byte) *Map {
	return &Map{rom: rom, ram: ram}
}

// Reduce removes every bit present in mask from addr, starting from
// the least significant bit, shifting surviving higher bits down.
// Property: Reduce(Reduce(a,m1),m2) == Reduce(a, m1|m2)
// when m1&m2==0.
func Reduce(addr uint32, mask uint32) uint32 {
	var result uint32
	var resultBit uint
	for bit := uint(0); bit < 24; bit++ {
		if mask&(1<<bit) != 0 {
			continue
		}
		if addr&(1<<bit) != 0 {
			result |= 1 << resultBit
		}
		resultBit++
	}
	return result
}

// Mirror folds an offset back into [0, size) by iteratively
// subtracting the largest power-of-two window that still fits,
// reproducing hardware mirroring of non-power-of-two regions (e.g. a
// 96KiB region decoding as 64+32KiB mirrors within a 128KiB aperture:
// addresses beyond the 96KiB of real data alias the last 32KiB block
// rather than wrapping back to offset 0).
func Mirror(offset uint32, size uint32) uint32 {
	if size == 0 {
		return offset
	}
	var base uint32
	for {
		if size&(size-1) == 0 {
			// Power-of-two aperture: plain wraparound.
			return base + offset&(size-1)
		}
		if offset < size {
			return base + offset
		}
		p := uint32(1)
		for p*2 <= size {
			p *= 2
		}
		base += p
		offset -= size
		size -= p
	}
}

// Build installs every region's windows into the page tables. Pages
// not covered by any region are left with nil handlers (a cart-map
// lookup miss; the bus substitutes the open-bus approximation).
func (m *Map) Build(regions []Region) {
	for ri := range regions {
		r := &regions[ri]
		for _, w := range r.Windows {
			for bank := uint32(w.BankLo); bank <= uint32(w.BankHi); bank++ {
				for a := uint32(w.AddrLo); a <= uint32(w.AddrHi); a += pageSize {
					addr := (bank << 16) | a
					within := Reduce(addr, r.Mask)
					within = Mirror(within, r.Size)
					page := addr >> pageShift
					pageOffset := (r.Offset + within) >> pageShift
					if r.Read != nil {
						m.readFn[page] = r.Read
						m.readOffset[page] = pageOffset
					}
					if r.Write != nil {
						m.writeFn[page] = r.Write
						m.writeOffset[page] = pageOffset
					}
					if a == 0xFFFF {
						break // avoid wraparound on the last page of a window
					}
				}
			}
		}
	}
}

// Read looks up the read handler for a 24-bit address and invokes it.
// Returns ok=false when no region covers the address (cart-map miss);
// the bus layer is responsible for the open-bus substitution.
func (m *Map) Read(address uint32) (value uint8, ok bool) {
	page := address >> pageShift
	fn := m.readFn[page]
	if fn == nil {
		return 0, false
	}
	offset := (m.readOffset[page] << pageShift) | (address & pageMask)
	return fn(m, offset), true
}

// Write looks up the write handler for a 24-bit address and invokes
// it. Returns ok=false when no region covers the address.
func (m *Map) Write(address uint32, value uint8) (ok bool) {
	page := address >> pageShift
	fn := m.writeFn[page]
	if fn == nil {
		return false
	}
	offset := (m.writeOffset[page] << pageShift) | (address & pageMask)
	fn(m, offset, value)
	return true
}

// RomRead is the universal ROM-backed read handler: reads from the
// cart's immutable ROM buffer at offset, wrapping within its length.
func RomRead(m *Map, offset uint32) uint8 {
	if len(m.rom) == 0 {
		return 0xFF
	}
	return m.rom[offset%uint32(len(m.rom))]
}

// RamRead reads from the cart's save-RAM buffer.
func RamRead(m *Map, offset uint32) uint8 {
	if len(m.ram) == 0 {
		return 0xFF
	}
	return m.ram[offset%uint32(len(m.ram))]
}

// RamWrite writes to the cart's save-RAM buffer and sets the
// ram_modified flag, for the host's pull-model save-RAM contract.
func RamWrite(m *Map, offset uint32, value uint8) {
	if len(m.ram) == 0 {
		return
	}
	m.ram[offset%uint32(len(m.ram))] = value
	m.ramModified = true
}

// RAM returns the cart's save-RAM contents for the host to persist.
func (m *Map) RAM() []byte { return m.ram }

// RAMModified reports whether save-RAM has been written since the
// last MarkRAMFlushed call.
func (m *Map) RAMModified() bool { return m.ramModified }

// MarkRAMFlushed clears the ram_modified flag after the host has
// persisted RAM(). Pull model: no callback, the host polls.
func (m *Map) MarkRAMFlushed() { m.ramModified = false }

// DefaultLoROMRegions returns the default map used when the cart/board
// database has no entry for a cart: banks 00-7D/80-FF at 8000-FFFF
// plus 40-7D/C0-FF at 0000-7FFF, offset 0, mask 0x8000.
func DefaultLoROMRegions() []Region {
	return []Region{
		{
			Windows: []Window{
				{BankLo: 0x00, BankHi: 0x7D, AddrLo: 0x8000, AddrHi: 0xFFFF},
				{BankLo: 0x80, BankHi: 0xFF, AddrLo: 0x8000, AddrHi: 0xFFFF},
				{BankLo: 0x40, BankHi: 0x7D, AddrLo: 0x0000, AddrHi: 0x7FFF},
				{BankLo: 0xC0, BankHi: 0xFF, AddrLo: 0x0000, AddrHi: 0x7FFF},
			},
			Offset: 0,
			Mask:   0x8000,
			Read:   RomRead,
		},
	}
}

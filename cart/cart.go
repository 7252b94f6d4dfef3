package cart

// Cart is the host-facing wrapper around a cart image: a ROM byte
// slice and a RAM byte slice (rounded up to powers of two) plus the
// Info descriptor that built the Map's regions.
//
// Grounded on jeebie/memory/cartridge.go's Cartridge wrapper, widened
// from a single fixed-layout struct into one that carries an Info
// descriptor and a built Map, since the SNES's region layout is
// data-driven rather than fixed per console generation.
type Cart struct {
	Info Info
	Map  *Map
}

// New builds a Cart from raw ROM/RAM bytes and a precomputed Info
// (typically from a board database lookup; falls back to GuessInfo
// when the caller has none). RAM is resized up to Info.RAMSize,
// rounded up to the next power of two, matching "powers of two
// recommended, so the wrapper rounds up.
func New(rom []byte, info Info) *Cart {
	ram := make([]byte, roundUpPow2(info.RAMSize))
	m := NewMap(rom, ram)

	var regions []Region
	regions = append(regions, info.RomMap...)
	regions = append(regions, info.RamMap...)
	m.Build(regions)

	return &Cart{Info: info, Map: m}
}

// Load builds a Cart from a ROM image and a persisted save-RAM image
// (may be nil/empty for a fresh cart), using info as given: Load does
// no database lookup and no header guessing, so callers resolve Info
// first. The saved image is copied into the start of the cart's RAM.
func Load(rom []byte, savedRAM []byte, info Info) *Cart {
	c := New(rom, info)
	if len(savedRAM) > 0 {
		n := copy(c.Map.ram, savedRAM)
		_ = n
	}
	return c
}

func roundUpPow2(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

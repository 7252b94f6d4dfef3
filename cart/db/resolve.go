package db

import "github.com/adriweb/gosnes/cart"

// ToRegions converts a board's Hardware list into the ROM/RAM region
// lists cart.Map.Build consumes: for a given sha256 the core queries an
// optional database and produces the map directly. ROM hardware gets
// cart.RomRead; RAM hardware gets
// cart.RamRead/RamWrite.
func ToRegions(hardware []Hardware) (rom []cart.Region, ram []cart.Region) {
	for _, hw := range hardware {
		switch hw.Kind {
		case "ROM":
			for _, m := range hw.Map {
				rom = append(rom, toCartRegion(m, cart.RomRead, nil))
			}
		case "RAM":
			for _, m := range hw.Map {
				ram = append(ram, toCartRegion(m, cart.RamRead, cart.RamWrite))
			}
		}
	}
	return rom, ram
}

func toCartRegion(m MapRegion, read cart.ReadHandler, write cart.WriteHandler) cart.Region {
	windows := make([]cart.Window, len(m.Ranges))
	for i, r := range m.Ranges {
		windows[i] = cart.Window{
			BankLo: r.BankLo, BankHi: r.BankHi,
			AddrLo: r.AddrLo, AddrHi: r.AddrHi,
		}
	}

	var size uint32
	if m.Size != nil {
		size = *m.Size
	}

	return cart.Region{
		Windows: windows,
		Offset:  m.Offset,
		Size:    size,
		Mask:    m.Mask,
		Read:    read,
		Write:   write,
	}
}

// ResolveBoard looks up a board name's hardware in db and returns the
// regions and the RAM size (the largest declared size among the RAM
// hardware's map regions), or ok=false if the board is unknown.
func ResolveBoard(boards BoardDB, board string) (romMap, ramMap []cart.Region, ramSize int, ok bool) {
	hw, found := boards[board]
	if !found {
		return nil, nil, 0, false
	}
	romMap, ramMap = ToRegions(hw)
	for _, h := range hw {
		if h.Kind == "RAM" {
			for _, m := range h.Map {
				if m.Size != nil && int(*m.Size) > ramSize {
					ramSize = int(*m.Size)
				}
			}
		}
	}
	return romMap, ramMap, ramSize, true
}

package cart

// Info describes a loaded cart independent of its backing bytes: its
// title, declared save-RAM size, whether it has a battery (and so is
// worth persisting), and the regions that build its ROM/RAM map
//.
type Info struct {
	Title      string
	RAMSize    int
	HasBattery bool
	RomMap     []Region
	RamMap     []Region
}

// header offsets within a ROM image for each of the three candidate
// locations a SNES header can live at, matching the conventional
// LoROM/HiROM/ExHiROM placements.
const (
	headerLoROM   = 0x7FC0
	headerHiROM   = 0xFFC0
	headerExHiROM = 0x40FFC0

	hdrTitle        = 0x00
	hdrTitleLen     = 21
	hdrMapMode      = 0x15
	hdrCartType     = 0x16
	hdrRomSize      = 0x17
	hdrRamSize      = 0x18
	hdrChecksumComp = 0x1C
	hdrChecksum     = 0x1E
	hdrHeaderSize   = 0x20
)

// mapMode bits (low nibble of the map-mode byte).
const (
	mapModeLoROM   = 0x0
	mapModeHiROM   = 0x1
	mapModeExHiROM = 0x5
)

// GuessInfo inspects a raw ROM image at the three conventional header
// locations and derives an Info, scoring each candidate by how well its
// checksum/complement pair and map-mode nibble hold up. Grounded on jeebie/memory/cartridge.go's
// fixed-offset header parse, generalized from a single known layout
// (Game Boy has one header location) into a best-of-three scored pick,
// since the SNES header's bus location depends on the very mapping
// mode being guessed.
func GuessInfo(rom []byte) Info {
	type candidate struct {
		offset int
		mode   uint8
		score  int
	}
	candidates := []candidate{
		{offset: headerLoROM, mode: mapModeLoROM},
		{offset: headerHiROM, mode: mapModeHiROM},
		{offset: headerExHiROM, mode: mapModeExHiROM},
	}

	best := -1
	bestScore := -1
	for i := range candidates {
		c := &candidates[i]
		if c.offset+hdrHeaderSize > len(rom) {
			continue
		}
		c.score = scoreHeader(rom, c.offset, c.mode)
		if c.score > bestScore {
			bestScore = c.score
			best = i
		}
	}

	if best == -1 || bestScore <= 0 {
		return defaultInfo()
	}

	c := candidates[best]
	h := rom[c.offset : c.offset+hdrHeaderSize]
	title := decodeTitle(h[hdrTitle : hdrTitle+hdrTitleLen])
	ramSize := ramSizeFromCode(h[hdrRamSize])
	hasBattery := cartTypeHasBattery(h[hdrCartType])

	return Info{
		Title:      title,
		RAMSize:    ramSize,
		HasBattery: hasBattery,
		RomMap:     romRegionsForMode(c.mode),
		RamMap:     ramRegionsForMode(c.mode, ramSize),
	}
}

// scoreHeader rates how plausible a header at offset is: a valid
// checksum/complement pair scores highest, a map-mode nibble match
// scores next, and printable title bytes add a small tiebreaker.
func scoreHeader(rom []byte, offset int, wantMode uint8) int {
	h := rom[offset : offset+hdrHeaderSize]
	score := 0

	checksum := uint16(h[hdrChecksum]) | uint16(h[hdrChecksum+1])<<8
	complement := uint16(h[hdrChecksumComp]) | uint16(h[hdrChecksumComp+1])<<8
	if checksum^complement == 0xFFFF {
		score += 8
	}

	if h[hdrMapMode]&0x0F == wantMode {
		score += 4
	}

	for _, b := range h[hdrTitle : hdrTitle+hdrTitleLen] {
		if b >= 0x20 && b < 0x7F {
			score++
		}
	}

	return score
}

func decodeTitle(raw []byte) string {
	end := len(raw)
	for end > 0 && (raw[end-1] == 0 || raw[end-1] == ' ') {
		end--
	}
	return string(raw[:end])
}

// ramSizeFromCode turns the header's RAM-size nibble into a byte count:
// 0 means no RAM, otherwise 1<<(10+code) bytes (1KiB doubling steps).
func ramSizeFromCode(code uint8) int {
	if code == 0 {
		return 0
	}
	return 1 << (10 + int(code))
}

// cartTypeHasBattery reports whether the header's cart-type byte names
// one of the battery-backed variants (the low nibble selects the
// co-processor/RAM/battery combination; low-nibble values 0x02, 0x05,
// 0x06, 0x09 and 0x0A indicate battery backup).
func cartTypeHasBattery(cartType uint8) bool {
	switch cartType & 0x0F {
	case 0x02, 0x05, 0x06, 0x09, 0x0A:
		return true
	default:
		return false
	}
}

func defaultInfo() Info {
	return Info{
		Title:   "",
		RAMSize: 0,
		RomMap:  DefaultLoROMRegions(),
		RamMap:  nil,
	}
}

// romRegionsForMode returns the ROM region list for a guessed map mode.
func romRegionsForMode(mode uint8) []Region {
	switch mode {
	case mapModeHiROM:
		return hiROMRegions()
	case mapModeExHiROM:
		return exHiROMRegions()
	default:
		return DefaultLoROMRegions()
	}
}

// ramRegionsForMode returns the cart-RAM region list for a guessed map
// mode, or nil when the cart declares no save RAM.
func ramRegionsForMode(mode uint8, ramSize int) []Region {
	if ramSize == 0 {
		return nil
	}
	mask := uint32(0)
	for (1 << mask) < ramSize {
		mask++
	}
	switch mode {
	case mapModeHiROM:
		return []Region{{
			Windows: []Window{
				{BankLo: 0x20, BankHi: 0x3F, AddrLo: 0x6000, AddrHi: 0x7FFF},
				{BankLo: 0xA0, BankHi: 0xBF, AddrLo: 0x6000, AddrHi: 0x7FFF},
			},
			Offset: 0,
			Size:   uint32(ramSize),
			Read:   RamRead,
			Write:  RamWrite,
		}}
	default: // LoROM and ExHiROM share LoROM-style SRAM placement.
		return []Region{{
			Windows: []Window{
				{BankLo: 0x70, BankHi: 0x7D, AddrLo: 0x0000, AddrHi: 0x7FFF},
				{BankLo: 0xF0, BankHi: 0xFF, AddrLo: 0x0000, AddrHi: 0x7FFF},
			},
			Offset: 0,
			Size:   uint32(ramSize),
			Read:   RamRead,
			Write:  RamWrite,
		}}
	}
}

// hiROMRegions mirrors the whole bank (0000-FFFF) straight onto the ROM
// image, banks C0-FF and their 40-7D shadow.
func hiROMRegions() []Region {
	return []Region{{
		Windows: []Window{
			{BankLo: 0xC0, BankHi: 0xFF, AddrLo: 0x0000, AddrHi: 0xFFFF},
			{BankLo: 0x40, BankHi: 0x7D, AddrLo: 0x0000, AddrHi: 0xFFFF},
		},
		Offset: 0,
		Read:   RomRead,
	}}
}

// exHiROMRegions handles the >4MiB extended HiROM layout: banks C0-FF
// decode the image's second half directly, banks 00-3F/80-BF decode
// the first half with bit 23 of the offset forced low.
func exHiROMRegions() []Region {
	return []Region{
		{
			Windows: []Window{
				{BankLo: 0xC0, BankHi: 0xFF, AddrLo: 0x0000, AddrHi: 0xFFFF},
			},
			Offset: 0x400000,
			Mask:   0xC00000,
			Read:   RomRead,
		},
		{
			Windows: []Window{
				{BankLo: 0x00, BankHi: 0x3F, AddrLo: 0x8000, AddrHi: 0xFFFF},
				{BankLo: 0x80, BankHi: 0xBF, AddrLo: 0x8000, AddrHi: 0xFFFF},
			},
			Offset: 0,
			Mask:   0x800000,
			Read:   RomRead,
		},
	}
}

package db

import (
	"fmt"
	"strconv"
	"strings"
)

// MemoryContent names what a ROM or RAM hardware node actually holds.
type MemoryContent int

const (
	ContentProgram MemoryContent = iota
	ContentBoot
	ContentData
	ContentExpansion
	ContentSave
	ContentInternal
	ContentDownload
)

// AddrRange is one "banklo-bankhi:addrlo-addrhi" component of a map
// node's address attribute; a map node may list several,
// comma-separated.
type AddrRange struct {
	BankLo, BankHi uint8
	AddrLo, AddrHi uint16
}

// MapRegion is one <map> child of a <memory> hardware node: the
// address ranges it decodes, an offset into the backing store, an
// optional declared size (nil means unbounded/no mirroring) and a
// reduction mask — the exact fields cart.Region needs.
type MapRegion struct {
	Ranges []AddrRange
	Offset uint32
	Size   *uint32
	Mask   uint32
}

// Hardware is one <memory>/<slot>/<processor>/<rtc> child of a board
// node. Kind selects which fields are meaningful.
type Hardware struct {
	Kind    string // "ROM", "RAM", "slot", "processor", "rtc"
	Content MemoryContent
	Map     []MapRegion
}

// BoardDB maps a board name (after pattern expansion) to its hardware
// list.
type BoardDB map[string][]Hardware

// LoadBoards parses a boards.bml document into a BoardDB.
//
// Grounded on original_source/core/src/cart/info/db/boards.rs's load():
// same two-pass structure (parse generic BML, then walk board/memory/
// map nodes into typed Hardware/MapRegion values) and the same
// prefix(a,b,c)suffix board-name pattern expansion.
func LoadBoards(input string) (BoardDB, error) {
	nodes, err := Parse(input)
	if err != nil {
		return nil, err
	}

	result := make(BoardDB)
	for _, node := range nodes {
		if node.Name == "database" {
			continue
		}
		if node.Name != "board" || node.Value == nil {
			return nil, fmt.Errorf("unexpected boards root node %q", node.Name)
		}

		names := expandBoardNames(*node.Value)

		var hardware []Hardware
		for _, attr := range node.Attrs {
			h, err := parseHardware(attr)
			if err != nil {
				return nil, err
			}
			hardware = append(hardware, h)
		}

		for _, name := range names {
			result[name] = hardware
		}
	}
	return result, nil
}

// expandBoardNames expands a board name pattern: a plain name expands
// to itself; "prefix(a,b,c)suffix" expands to one name per
// comma-separated variant with prefix/suffix reattached.
func expandBoardNames(pattern string) []string {
	open := strings.IndexByte(pattern, '(')
	if open == -1 {
		return []string{pattern}
	}
	close := strings.IndexByte(pattern[open:], ')')
	if close == -1 {
		return []string{pattern}
	}
	close += open

	prefix := pattern[:open]
	suffix := pattern[close+1:]
	variants := strings.Split(pattern[open+1:close], ",")

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = prefix + v + suffix
	}
	return names
}

func parseHardware(node Node) (Hardware, error) {
	switch node.Name {
	case "memory":
		return parseMemory(node)
	case "slot":
		return Hardware{Kind: "slot"}, nil
	case "processor":
		return Hardware{Kind: "processor"}, nil
	case "rtc":
		return Hardware{Kind: "rtc"}, nil
	default:
		return Hardware{}, fmt.Errorf("unexpected board hardware node %q", node.Name)
	}
}

func parseMemory(node Node) (Hardware, error) {
	typeNode := node.Attr("type")
	contentNode := node.Attr("content")
	if typeNode == nil || typeNode.Value == nil {
		return Hardware{}, fmt.Errorf("memory node missing type attribute")
	}
	if contentNode == nil || contentNode.Value == nil {
		return Hardware{}, fmt.Errorf("memory node missing content attribute")
	}

	content, err := parseContent(*typeNode.Value, *contentNode.Value)
	if err != nil {
		return Hardware{}, err
	}

	var regions []MapRegion
	for _, attr := range node.Attrs {
		if attr.Name != "map" {
			continue
		}
		region, err := parseMapRegion(attr)
		if err != nil {
			return Hardware{}, err
		}
		regions = append(regions, region)
	}

	kind := *typeNode.Value
	if kind != "ROM" && kind != "RAM" {
		return Hardware{}, fmt.Errorf("unknown memory type %q", kind)
	}

	return Hardware{Kind: kind, Content: content, Map: regions}, nil
}

func parseContent(kind, content string) (MemoryContent, error) {
	switch kind {
	case "ROM":
		switch content {
		case "Program":
			return ContentProgram, nil
		case "Boot":
			return ContentBoot, nil
		case "Data":
			return ContentData, nil
		case "Expansion":
			return ContentExpansion, nil
		}
	case "RAM":
		switch content {
		case "Save":
			return ContentSave, nil
		case "Internal":
			return ContentInternal, nil
		case "Data":
			return ContentData, nil
		case "Download":
			return ContentDownload, nil
		}
	}
	return 0, fmt.Errorf("unknown %s memory content %q", kind, content)
}

func parseMapRegion(node Node) (MapRegion, error) {
	addrNode := node.Attr("address")
	if addrNode == nil || addrNode.Value == nil {
		return MapRegion{}, fmt.Errorf("map node missing address attribute")
	}

	ranges, err := parseAddrRanges(*addrNode.Value)
	if err != nil {
		return MapRegion{}, err
	}

	offset, err := optionalHex32(node.Attr("base"), 0)
	if err != nil {
		return MapRegion{}, err
	}
	mask, err := optionalHex32(node.Attr("mask"), 0)
	if err != nil {
		return MapRegion{}, err
	}

	var size *uint32
	if sizeNode := node.Attr("size"); sizeNode != nil && sizeNode.Value != nil {
		v, err := strconv.ParseUint(*sizeNode.Value, 16, 32)
		if err != nil {
			return MapRegion{}, fmt.Errorf("invalid map size %q: %w", *sizeNode.Value, err)
		}
		u := uint32(v)
		size = &u
	}

	return MapRegion{Ranges: ranges, Offset: offset, Size: size, Mask: mask}, nil
}

// parseAddrRanges parses "banklo-bankhi,banklo-bankhi:addrlo-addrhi"
// into one AddrRange per comma-separated bank range, all sharing the
// same address-range suffix.
func parseAddrRanges(spec string) ([]AddrRange, error) {
	bankPart, addrPart, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid map address %q: missing ':'", spec)
	}
	addrLo, addrHi, ok := strings.Cut(addrPart, "-")
	if !ok {
		return nil, fmt.Errorf("invalid map address %q: missing address range", spec)
	}
	lo, err := strconv.ParseUint(addrLo, 16, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid map address %q: %w", spec, err)
	}
	hi, err := strconv.ParseUint(addrHi, 16, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid map address %q: %w", spec, err)
	}

	var ranges []AddrRange
	for _, bankRange := range strings.Split(bankPart, ",") {
		bankLo, bankHi, ok := strings.Cut(bankRange, "-")
		if !ok {
			return nil, fmt.Errorf("invalid map address %q: missing bank range", spec)
		}
		blo, err := strconv.ParseUint(bankLo, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid map address %q: %w", spec, err)
		}
		bhi, err := strconv.ParseUint(bankHi, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid map address %q: %w", spec, err)
		}
		ranges = append(ranges, AddrRange{
			BankLo: uint8(blo), BankHi: uint8(bhi),
			AddrLo: uint16(lo), AddrHi: uint16(hi),
		})
	}
	return ranges, nil
}

func optionalHex32(node *Node, def uint32) (uint32, error) {
	if node == nil || node.Value == nil {
		return def, nil
	}
	v, err := strconv.ParseUint(*node.Value, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", *node.Value, err)
	}
	return uint32(v), nil
}

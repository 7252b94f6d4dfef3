package db

import (
	"fmt"
	"strconv"
	"strings"
)

// CartHardware is one hardware child of a cart's game node: a ROM,
// RAM, RTC or crystal oscillator marker with its declared size and
// volatility — a hardware list of memory/oscillator/RTC nodes with
// size/content/volatile markers.
type CartHardware struct {
	Kind      string // "ROM", "RAM", "RTC", "oscillator"
	Content   MemoryContent
	Size      uint32
	Volatile  bool
	Frequency uint64 // oscillator only
}

// CartEntry is one game node from carts.bml.
type CartEntry struct {
	Label    string
	Name     string
	Region   string
	Revision string
	Board    string
	Hardware []CartHardware
}

// CartDB maps a lowercase hex SHA-256 digest to its cart entry.
type CartDB map[string]CartEntry

// LoadCarts parses a carts.bml document into a CartDB keyed by the
// game node's sha256 attribute.
//
// Grounded on original_source/core/src/cart/info/db/carts.rs's load().
func LoadCarts(input string) (CartDB, error) {
	nodes, err := Parse(input)
	if err != nil {
		return nil, err
	}

	result := make(CartDB)
	for _, node := range nodes {
		if node.Name == "database" {
			continue
		}
		if node.Name != "game" {
			return nil, fmt.Errorf("unexpected carts root node %q", node.Name)
		}

		sha := node.Attr("sha256")
		if sha == nil || sha.Value == nil {
			return nil, fmt.Errorf("game node missing sha256 attribute")
		}

		entry := CartEntry{
			Label:    attrString(node.Attr("label")),
			Name:     attrString(node.Attr("name")),
			Region:   attrString(node.Attr("region")),
			Revision: attrString(node.Attr("revision")),
			Board:    attrString(node.Attr("board")),
		}

		for _, attr := range node.Attrs {
			if attr.Name != "memory" && attr.Name != "oscillator" && attr.Name != "rtc" {
				continue
			}
			hw, err := parseCartHardware(attr)
			if err != nil {
				return nil, err
			}
			entry.Hardware = append(entry.Hardware, hw)
		}

		result[strings.ToLower(*sha.Value)] = entry
	}
	return result, nil
}

func attrString(n *Node) string {
	if n == nil || n.Value == nil {
		return ""
	}
	return *n.Value
}

func parseCartHardware(node Node) (CartHardware, error) {
	switch node.Name {
	case "oscillator":
		freqNode := node.Attr("frequency")
		freq, err := strconv.ParseUint(attrString(freqNode), 10, 64)
		if err != nil {
			return CartHardware{}, fmt.Errorf("invalid oscillator frequency: %w", err)
		}
		return CartHardware{Kind: "oscillator", Frequency: freq}, nil

	case "rtc":
		size, err := parseCartSize(node.Attr("size"))
		if err != nil {
			return CartHardware{}, err
		}
		return CartHardware{Kind: "RTC", Size: size}, nil

	case "memory":
		typeNode := node.Attr("type")
		if typeNode == nil || typeNode.Value == nil {
			return CartHardware{}, fmt.Errorf("memory node missing type attribute")
		}
		contentNode := node.Attr("content")
		if contentNode == nil || contentNode.Value == nil {
			return CartHardware{}, fmt.Errorf("memory node missing content attribute")
		}
		content, err := parseContent(*typeNode.Value, *contentNode.Value)
		if err != nil {
			return CartHardware{}, err
		}
		size, err := parseCartSize(node.Attr("size"))
		if err != nil {
			return CartHardware{}, err
		}
		volatile := node.Attr("volatile") != nil

		return CartHardware{
			Kind:     *typeNode.Value,
			Content:  content,
			Size:     size,
			Volatile: volatile,
		}, nil

	default:
		return CartHardware{}, fmt.Errorf("unexpected cart hardware node %q", node.Name)
	}
}

func parseCartSize(n *Node) (uint32, error) {
	if n == nil || n.Value == nil {
		return 0, fmt.Errorf("hardware node missing size attribute")
	}
	v, err := strconv.ParseUint(*n.Value, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hardware size %q: %w", *n.Value, err)
	}
	return uint32(v), nil
}

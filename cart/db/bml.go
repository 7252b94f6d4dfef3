// Package db parses the cart and board hardware database files
// and turns their hardware/map nodes
// into cart.Region lists the map resolver can build from directly.
//
// Grounded on original_source/core/src/cart/db/bml.rs (the generic
// indentation-based tree parser) and
// original_source/core/src/cart/info/db/boards.rs +
// carts.rs (the board/cart schema built on top of it), ported into
// idiomatic Go: (kind, line) errors returned as a plain error value
// rather than panicking, so parse failures always carry a (kind, line)
// pair instead of panicking.
package db

import (
	"fmt"
	"strings"
)

// ParseErrorKind names the category of a BML syntax error.
type ParseErrorKind int

const (
	IndentedRootNode ParseErrorKind = iota
	InvalidValue
	UnescapedMultilineValue
	InvalidAttribute
)

func (k ParseErrorKind) String() string {
	switch k {
	case IndentedRootNode:
		return "indented BML root node"
	case InvalidValue:
		return "invalid BML value"
	case UnescapedMultilineValue:
		return "unescaped BML multi-line value"
	case InvalidAttribute:
		return "invalid BML attribute"
	default:
		return "unknown BML error"
	}
}

// ParseError is the (kind, line) pair a BML parse failure carries.
type ParseError struct {
	Kind ParseErrorKind
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Kind, e.Line+1)
}

// Node is one BML tree node: a name, an optional value, and a list of
// indented child nodes (which double as both "attributes" and nested
// structure, per BML's single-node-kind grammar).
type Node struct {
	Name  string
	Value *string
	Attrs []Node
}

// HasValue reports whether the node carries a value (as opposed to
// being a bare structural marker).
func (n *Node) HasValue() bool { return n.Value != nil }

// Attr returns the first direct child attribute named name, or nil.
func (n *Node) Attr(name string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return &n.Attrs[i]
		}
	}
	return nil
}

func isNameChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '.'
}

func lineShouldBeSkipped(line string) bool {
	return line == "" || strings.HasPrefix(line, "//")
}

// parseIndent trims leading whitespace off *line and returns how many
// bytes were removed.
func parseIndent(line *string) int {
	trimmed := strings.TrimLeft(*line, " \t")
	n := len(*line) - len(trimmed)
	*line = trimmed
	return n
}

// parseKV parses one "name[:value | =value | ="quoted value"]" term
// off the front of line, returning the node and whatever of line is
// left unconsumed (for attribute chains on the same line).
func parseKV(lineNo int, line string) (Node, string, error) {
	nameEnd := len(line)
	for i := 0; i < len(line); i++ {
		if !isNameChar(line[i]) {
			nameEnd = i
			break
		}
	}
	if nameEnd == len(line) {
		return Node{Name: strings.TrimRight(line, " \t")}, "", nil
	}

	name := line[:nameEnd]
	rest := line[nameEnd:]

	switch {
	case strings.HasPrefix(rest, ":"):
		value := strings.TrimSpace(rest[1:])
		return Node{Name: name, Value: &value}, "", nil

	case strings.HasPrefix(rest, `="`):
		rest = rest[2:]
		end := strings.IndexByte(rest, '"')
		if end == -1 {
			return Node{}, "", &ParseError{Kind: UnescapedMultilineValue, Line: lineNo}
		}
		value := rest[:end]
		return Node{Name: name, Value: &value}, rest[end+1:], nil

	case strings.HasPrefix(rest, "="):
		rest = rest[1:]
		end := len(rest)
		for i := 0; i < len(rest); i++ {
			if rest[i] == ' ' || rest[i] == '\t' {
				end = i
				break
			}
		}
		value := rest[:end]
		if strings.Contains(value, `"`) {
			return Node{}, "", &ParseError{Kind: InvalidValue, Line: lineNo}
		}
		return Node{Name: name, Value: &value}, rest[end:], nil

	default:
		return Node{Name: name}, rest, nil
	}
}

type parser struct {
	lines   []string
	lineNo  int
	curLine string
	curOK   bool
}

func (p *parser) consumeLine() {
	p.lineNo++
	if p.lineNo < len(p.lines) {
		p.curLine = p.lines[p.lineNo]
		p.curOK = true
	} else {
		p.curOK = false
	}
}

func (p *parser) parseNode(indent, lineNo int, line string) (Node, error) {
	node, rest, err := parseKV(lineNo, line)
	if err != nil {
		return Node{}, err
	}
	for rest != "" {
		if n := parseIndent(&rest); n == 0 && rest != "" {
			return Node{}, &ParseError{Kind: InvalidAttribute, Line: lineNo}
		}
		if lineShouldBeSkipped(rest) {
			break
		}
		attr, remaining, err := parseKV(lineNo, rest)
		if err != nil {
			return Node{}, err
		}
		node.Attrs = append(node.Attrs, attr)
		rest = remaining
	}

	p.consumeLine()
	for p.curOK {
		lineNo := p.lineNo
		line := p.curLine
		lineIndent := parseIndent(&line)
		if lineShouldBeSkipped(line) {
			p.consumeLine()
			continue
		}
		if lineIndent <= indent {
			break
		}
		if strings.HasPrefix(line, ":") {
			value := strings.TrimSpace(strings.TrimPrefix(line, ":"))
			if node.Value == nil {
				node.Value = new(string)
			}
			*node.Value += value
			p.consumeLine()
			continue
		}
		child, err := p.parseNode(lineIndent, lineNo, line)
		if err != nil {
			return Node{}, err
		}
		node.Attrs = append(node.Attrs, child)
	}
	return node, nil
}

// Parse parses a whole BML document into its root-level nodes.
func Parse(input string) ([]Node, error) {
	lines := strings.Split(input, "\n")
	p := &parser{lines: lines, lineNo: -1}
	p.consumeLine()

	var result []Node
	for p.curOK {
		lineNo := p.lineNo
		line := p.curLine
		indent := parseIndent(&line)
		if lineShouldBeSkipped(line) {
			p.consumeLine()
			continue
		}
		if indent != 0 {
			return nil, &ParseError{Kind: IndentedRootNode, Line: lineNo}
		}
		node, err := p.parseNode(indent, lineNo, line)
		if err != nil {
			return nil, err
		}
		result = append(result, node)
	}
	return result, nil
}

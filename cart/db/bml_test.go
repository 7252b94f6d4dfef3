package db

import "testing"

func TestParseSimpleTree(t *testing.T) {
	input := "board: SHVC-1A0N-01\n  memory type=ROM content=Program\n    map address=00-7d:8000-ffff\n"
	nodes, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "board" {
		t.Fatalf("expected one 'board' root node, got %+v", nodes)
	}
	if nodes[0].Value == nil || *nodes[0].Value != "SHVC-1A0N-01" {
		t.Fatalf("board value = %v, want SHVC-1A0N-01", nodes[0].Value)
	}
	if len(nodes[0].Attrs) != 1 || nodes[0].Attrs[0].Name != "memory" {
		t.Fatalf("expected one 'memory' child, got %+v", nodes[0].Attrs)
	}
}

func TestParseIndentedRootIsError(t *testing.T) {
	_, err := Parse("  board: foo\n")
	if err == nil {
		t.Fatalf("expected an error for an indented root node")
	}
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != IndentedRootNode {
		t.Fatalf("expected IndentedRootNode error, got %v", err)
	}
}

func TestLoadBoardsExpandsPattern(t *testing.T) {
	input := `board: LOROM(A,B)SRAM
  memory type=ROM content=Program
    map address=00-7d:8000-ffff
  memory type=RAM content=Save
    map address=70-7d:0000-7fff size=2000
`
	boards, err := LoadBoards(input)
	if err != nil {
		t.Fatalf("LoadBoards returned error: %v", err)
	}
	for _, name := range []string{"LOROMASRAM", "LOROMBSRAM"} {
		hw, ok := boards[name]
		if !ok {
			t.Fatalf("expected board %q in db, got %v", name, boards)
		}
		if len(hw) != 2 {
			t.Fatalf("board %q: expected 2 hardware entries, got %d", name, len(hw))
		}
	}
}

func TestLoadCartsParsesSha256(t *testing.T) {
	input := `game
  sha256: DEADBEEF
  label: Test Game
  name: Test Game
  region: NTSC
  revision: 1.0
  board: LOROMSRAM
  memory type=ROM content=Program
    size: 100000
`
	carts, err := LoadCarts(input)
	if err != nil {
		t.Fatalf("LoadCarts returned error: %v", err)
	}
	entry, ok := carts["deadbeef"]
	if !ok {
		t.Fatalf("expected lowercase sha256 key in db, got %v", carts)
	}
	if entry.Board != "LOROMSRAM" || entry.Label != "Test Game" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(entry.Hardware) != 1 || entry.Hardware[0].Kind != "ROM" {
		t.Fatalf("unexpected hardware: %+v", entry.Hardware)
	}
}

func TestResolveBoardBuildsRegions(t *testing.T) {
	input := `board: LOROMSRAM
  memory type=ROM content=Program
    map address=00-7d:8000-ffff mask=8000
  memory type=RAM content=Save
    map address=70-7d:0000-7fff size=2000
`
	boards, err := LoadBoards(input)
	if err != nil {
		t.Fatalf("LoadBoards returned error: %v", err)
	}
	romMap, ramMap, ramSize, ok := ResolveBoard(boards, "LOROMSRAM")
	if !ok {
		t.Fatalf("expected board LOROMSRAM to resolve")
	}
	if len(romMap) != 1 || len(ramMap) != 1 {
		t.Fatalf("expected 1 rom region and 1 ram region, got %d/%d", len(romMap), len(ramMap))
	}
	if ramSize != 0x2000 {
		t.Fatalf("ramSize = %#x, want 0x2000", ramSize)
	}
}

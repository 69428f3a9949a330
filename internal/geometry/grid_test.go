package geometry

import (
	"strings"
	"testing"
)

func TestLoad_PadsShortRows(t *testing.T) {
	g, err := LoadString("+--+\n|\n+--+", DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Rows != 3 || g.Cols != 4 {
		t.Fatalf("expected 3x4 grid, got %dx%d", g.Rows, g.Cols)
	}
	if g.At(1, 3) != ' ' {
		t.Fatalf("expected padded space at (1,3), got %q", g.At(1, 3))
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	if _, err := Load(strings.NewReader(""), DefaultAlphabet()); err == nil {
		t.Fatal("expected error for empty plan")
	}
	if _, err := LoadString("   \n  ", DefaultAlphabet()); err == nil {
		t.Fatal("expected error for all-whitespace plan")
	}
}

func TestLoad_RejectsEmptyAlphabet(t *testing.T) {
	alpha := DefaultAlphabet()
	alpha.Chairs = nil
	if _, err := LoadString("+", alpha); err == nil {
		t.Fatal("expected error for empty chair set")
	}
}

func TestKind_WallPrecedence(t *testing.T) {
	g, err := LoadString("(a-b) W", DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The dash sits inside a label span but stays a wall.
	if k := g.Kind(0, 2); k != Wall {
		t.Fatalf("expected wall inside label span, got %s", k)
	}
	if k := g.Kind(0, 0); k != LabelOpen {
		t.Fatalf("expected labelOpen, got %s", k)
	}
	if k := g.Kind(0, 6); k != ChairMarker {
		t.Fatalf("expected chairMarker, got %s", k)
	}
}

func TestKind_LabelLettersAreNotChairs(t *testing.T) {
	g, err := LoadString("(W hall) W", DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k := g.Kind(0, 1); k != LabelChar {
		t.Fatalf("expected labelChar for W inside span, got %s", k)
	}
	if k := g.Kind(0, 9); k != ChairMarker {
		t.Fatalf("expected chairMarker for W outside span, got %s", k)
	}
	spans := g.LabelSpans()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if name := g.SpanText(spans[0]); name != "W hall" {
		t.Fatalf("expected span text %q, got %q", "W hall", name)
	}
}

func TestScanLabelSpans_IgnoresEmptyAndUnmatched(t *testing.T) {
	g, err := LoadString("() (a\n(ok)", DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spans := g.LabelSpans()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if got := g.SpanText(spans[0]); got != "ok" {
		t.Fatalf("expected %q, got %q", "ok", got)
	}
}

func TestBuildRegionMap_SplitsByWalls(t *testing.T) {
	plan := strings.Join([]string{
		"+---+---+",
		"|   |   |",
		"+---+---+",
	}, "\n")
	g, err := LoadString(plan, DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm := BuildRegionMap(g)
	if len(rm.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(rm.Regions))
	}
	if rm.RegionAt(g, 1, 1) == rm.RegionAt(g, 1, 5) {
		t.Fatal("cells on opposite sides of a wall share a region")
	}
	if rm.RegionAt(g, 0, 0) != -1 {
		t.Fatal("wall cell assigned to a region")
	}
}

func TestBuildRegionMap_ContiguousDiagonalSeparates(t *testing.T) {
	plan := strings.Join([]string{
		`+----+`,
		`| \  |`,
		`|  \ |`,
		`+----+`,
	}, "\n")
	g, err := LoadString(plan, DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm := BuildRegionMap(g)
	// A staircase with one wall cell per row splits the room in two.
	if rm.RegionAt(g, 1, 1) == rm.RegionAt(g, 1, 4) {
		t.Fatal("expected the diagonal to separate the two sides")
	}
	if rm.RegionAt(g, 1, 2) != -1 {
		t.Fatal("diagonal wall cell assigned to a region")
	}
}

func TestBuildRegionMap_GappyDiagonalLeaks(t *testing.T) {
	plan := strings.Join([]string{
		`+-----+`,
		`| \   |`,
		`|   \ |`,
		`+-----+`,
	}, "\n")
	g, err := LoadString(plan, DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm := BuildRegionMap(g)
	// Blocking is strictly per cell: the matrix cell the diagonal skips
	// keeps both sides connected.
	if rm.RegionAt(g, 1, 1) != rm.RegionAt(g, 1, 5) {
		t.Fatal("expected one region across a diagonal with a gap")
	}
}

func TestBuildRegionMap_CoversEveryNonWallCellOnce(t *testing.T) {
	plan := strings.Join([]string{
		"+--+---+",
		"|  | P |",
		"+--+---+",
		"  |   | ",
	}, "\n")
	g, err := LoadString(plan, DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm := BuildRegionMap(g)
	seen := make(map[Cell]int)
	for _, region := range rm.Regions {
		for _, cell := range region.Cells {
			seen[cell]++
		}
	}
	for row := range g.Rows {
		for col := range g.Cols {
			cell := Cell{Row: row, Col: col}
			if g.IsWall(row, col) {
				if seen[cell] != 0 {
					t.Fatalf("wall cell %v claimed by a region", cell)
				}
				continue
			}
			if seen[cell] != 1 {
				t.Fatalf("cell %v claimed %d times", cell, seen[cell])
			}
		}
	}
}

func TestBuildRegionMap_AllWallsYieldNoRegions(t *testing.T) {
	g, err := LoadString("+++\n+++", DefaultAlphabet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rm := BuildRegionMap(g); len(rm.Regions) != 0 {
		t.Fatalf("expected no regions, got %d", len(rm.Regions))
	}
}

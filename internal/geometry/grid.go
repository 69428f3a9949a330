package geometry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyPlan is returned by Load when the input contains no rows.
var ErrEmptyPlan = errors.New("floor plan is empty")

// Alphabet defines which characters act as walls and which mark chairs.
// Both sets must be non-empty; everything else classifies as label or empty.
type Alphabet struct {
	Walls  map[rune]bool
	Chairs map[rune]bool
}

func DefaultAlphabet() Alphabet {
	return Alphabet{
		Walls:  map[rune]bool{'+': true, '-': true, '|': true, '/': true, '\\': true},
		Chairs: map[rune]bool{'W': true, 'P': true, 'S': true, 'C': true},
	}
}

// ParseCharSet turns a comma-separated list like "+,-,|" into a set of
// single characters. Empty entries are rejected.
func ParseCharSet(s string) (map[rune]bool, error) {
	set := make(map[rune]bool)
	for _, part := range strings.Split(s, ",") {
		runes := []rune(part)
		if len(runes) != 1 {
			return nil, fmt.Errorf("invalid character set entry %q", part)
		}
		set[runes[0]] = true
	}
	return set, nil
}

type CellKind string

const (
	Wall        CellKind = "wall"
	LabelOpen   CellKind = "labelOpen"
	LabelClose  CellKind = "labelClose"
	LabelChar   CellKind = "labelChar"
	ChairMarker CellKind = "chairMarker"
	Empty       CellKind = "empty"
)

// LabelSpan is one "(name)" run within a single row. Open and Close are the
// column indices of the parentheses; the name sits strictly between them.
type LabelSpan struct {
	Row   int
	Open  int
	Close int
}

const (
	maskNone = iota
	maskOpen
	maskChar
	maskClose
)

// Grid is the rectangular character matrix of a floor plan. It is immutable
// after Load; all classification context (label spans) is precomputed.
type Grid struct {
	Rows int
	Cols int

	cells     [][]rune
	alphabet  Alphabet
	spans     []LabelSpan
	labelMask []byte
}

// Load reads a floor plan, strips trailing whitespace from every line and
// pads each row with spaces so all rows share the longest line's length.
func Load(r io.Reader, alphabet Alphabet) (*Grid, error) {
	if len(alphabet.Walls) == 0 {
		return nil, errors.New("wall character set is empty")
	}
	if len(alphabet.Chairs) == 0 {
		return nil, errors.New("chair character set is empty")
	}

	var cells [][]rune
	cols := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		line = strings.TrimPrefix(line, "\ufeff")
		row := []rune(line)
		if len(row) > cols {
			cols = len(row)
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read floor plan: %w", err)
	}
	if len(cells) == 0 || cols == 0 {
		return nil, ErrEmptyPlan
	}
	for i, row := range cells {
		for len(row) < cols {
			row = append(row, ' ')
		}
		cells[i] = row
	}

	g := &Grid{
		Rows:     len(cells),
		Cols:     cols,
		cells:    cells,
		alphabet: alphabet,
	}
	g.scanLabelSpans()
	return g, nil
}

// LoadString is a convenience wrapper for in-memory plans.
func LoadString(plan string, alphabet Alphabet) (*Grid, error) {
	return Load(strings.NewReader(plan), alphabet)
}

// scanLabelSpans finds every "(name)" run per row and records a per-cell
// mask so classification can give label content precedence over chair
// letters. An unmatched or empty pair of parentheses is not a span.
func (g *Grid) scanLabelSpans() {
	g.labelMask = make([]byte, g.Rows*g.Cols)
	for r, row := range g.cells {
		for c := 0; c < len(row); c++ {
			if row[c] != '(' {
				continue
			}
			end := -1
			for j := c + 1; j < len(row); j++ {
				if row[j] == ')' {
					end = j
					break
				}
			}
			if end <= c+1 {
				continue
			}
			g.spans = append(g.spans, LabelSpan{Row: r, Open: c, Close: end})
			g.labelMask[r*g.Cols+c] = maskOpen
			for j := c + 1; j < end; j++ {
				g.labelMask[r*g.Cols+j] = maskChar
			}
			g.labelMask[r*g.Cols+end] = maskClose
			c = end
		}
	}
}

// At returns the raw character at (row, col).
func (g *Grid) At(row, col int) rune {
	return g.cells[row][col]
}

// InBounds reports whether (row, col) addresses a grid cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// IsWall reports whether the cell holds a wall character. Walls take
// precedence over every other classification.
func (g *Grid) IsWall(row, col int) bool {
	return g.alphabet.Walls[g.cells[row][col]]
}

// Kind classifies a single cell. Precedence: wall, then label span
// membership, then chair marker, then empty.
func (g *Grid) Kind(row, col int) CellKind {
	ch := g.cells[row][col]
	if g.alphabet.Walls[ch] {
		return Wall
	}
	switch g.labelMask[row*g.Cols+col] {
	case maskOpen:
		return LabelOpen
	case maskChar:
		return LabelChar
	case maskClose:
		return LabelClose
	}
	if g.alphabet.Chairs[ch] {
		return ChairMarker
	}
	return Empty
}

// LabelSpans returns every label span in the grid in row-major order.
func (g *Grid) LabelSpans() []LabelSpan {
	return g.spans
}

// SpanText returns the name enclosed by a span, exactly as written.
func (g *Grid) SpanText(s LabelSpan) string {
	return string(g.cells[s.Row][s.Open+1 : s.Close])
}

// ChairTypes returns the configured chair characters; order is unspecified.
func (g *Grid) ChairTypes() []rune {
	types := make([]rune, 0, len(g.alphabet.Chairs))
	for ch := range g.alphabet.Chairs {
		types = append(types, ch)
	}
	return types
}

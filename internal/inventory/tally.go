package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quietgrid/floorscan/internal/geometry"
)

// Tally maps a chair type to its count. Every configured chair type is
// present, zero-filled, so reports always show the full set.
type Tally map[rune]int

func newTally(types []rune) Tally {
	t := make(Tally, len(types))
	for _, ch := range types {
		t[ch] = 0
	}
	return t
}

func (t Tally) add(other Tally) {
	for ch, n := range other {
		t[ch] += n
	}
}

// Sum returns the number of chairs across every type.
func (t Tally) Sum() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// RegionIssue describes a region that could not be resolved to a room.
// Bounds locate it in the plan; Chairs holds whatever was counted inside
// so nothing is silently dropped.
type RegionIssue struct {
	Code   Code
	Bounds geometry.Rect
	Labels []string
	Chairs Tally
}

// Report is the tally of one analysis run: per-room chair counts, the
// grand total, and every unresolvable region.
type Report struct {
	Total  Tally
	Rooms  map[string]Tally
	Issues []RegionIssue

	order []rune
}

// ChairOrder returns the chair types in presentation order.
func (r *Report) ChairOrder() []rune {
	out := make([]rune, len(r.order))
	copy(out, r.order)
	return out
}

// RoomNames returns the room names sorted alphabetically.
func (r *Report) RoomNames() []string {
	names := make([]string, 0, len(r.Rooms))
	for name := range r.Rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatCounts renders one tally as "W: 14, S: 3, P: 7, C: 1".
func (r *Report) FormatCounts(t Tally) string {
	parts := make([]string, 0, len(r.order))
	for _, ch := range r.order {
		parts = append(parts, fmt.Sprintf("%c: %d", ch, t[ch]))
	}
	return strings.Join(parts, ", ")
}

// String renders the report in the reference layout: the grand total
// first, then every room sorted alphabetically.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("total:\n")
	b.WriteString(r.FormatCounts(r.Total))
	for _, name := range r.RoomNames() {
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString(":\n")
		b.WriteString(r.FormatCounts(r.Rooms[name]))
	}
	return b.String()
}

// chairOrder sorts chair types in reverse alphabetical order, which for
// the default set yields W, S, P, C as in the reference output.
func chairOrder(types []rune) []rune {
	out := make([]rune, len(types))
	copy(out, types)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

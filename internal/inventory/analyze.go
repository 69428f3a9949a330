package inventory

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/quietgrid/floorscan/internal/geometry"
)

// Options controls how unresolvable regions are handled. By default they
// are recorded on the report and skipped; Strict turns an ambiguous label,
// or a missing label on a region that holds chairs, into a failed run.
type Options struct {
	Strict bool
	Logger *zap.Logger
}

// Analyze segments the grid into regions, resolves a room name for each
// and tallies chair markers per room. Duplicate room names merge their
// counts. The grand total is accumulated from the per-room counts, so
// additivity holds by construction.
func Analyze(g *geometry.Grid, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := geometry.BuildRegionMap(g)
	logger.Debug("segmented floor plan",
		zap.Int("rows", g.Rows),
		zap.Int("cols", g.Cols),
		zap.Int("regions", len(rm.Regions)))

	spansByRegion := make(map[int][]geometry.LabelSpan)
	for _, span := range g.LabelSpans() {
		id := rm.RegionAt(g, span.Row, span.Open)
		if id < 0 {
			continue
		}
		spansByRegion[id] = append(spansByRegion[id], span)
	}

	types := g.ChairTypes()
	report := &Report{
		Total: newTally(types),
		Rooms: make(map[string]Tally),
		order: chairOrder(types),
	}

	for _, region := range rm.Regions {
		counts := newTally(types)
		for _, cell := range region.Cells {
			if g.Kind(cell.Row, cell.Col) == geometry.ChairMarker {
				counts[g.At(cell.Row, cell.Col)]++
			}
		}

		spans := spansByRegion[region.ID]
		switch len(spans) {
		case 1:
			name := g.SpanText(spans[0])
			if existing, ok := report.Rooms[name]; ok {
				logger.Debug("merging duplicate room label", zap.String("room", name))
				existing.add(counts)
			} else {
				report.Rooms[name] = counts
			}
			report.Total.add(counts)
			logger.Debug("resolved room",
				zap.String("room", name),
				zap.Int("chairs", counts.Sum()))
		case 0:
			if opts.Strict && counts.Sum() > 0 {
				return nil, &PlanError{
					Code:    CodeMissingLabel,
					Message: fmt.Sprintf("unlabeled region at %s holds %d chairs", boundsText(region.Bounds), counts.Sum()),
				}
			}
			report.Issues = append(report.Issues, RegionIssue{
				Code:   CodeMissingLabel,
				Bounds: region.Bounds,
				Chairs: counts,
			})
			logger.Debug("skipping unlabeled region", zap.String("bounds", boundsText(region.Bounds)))
		default:
			labels := make([]string, 0, len(spans))
			for _, span := range spans {
				labels = append(labels, g.SpanText(span))
			}
			if opts.Strict {
				return nil, &PlanError{
					Code:    CodeAmbiguousLabel,
					Message: fmt.Sprintf("region at %s carries %d labels: %v", boundsText(region.Bounds), len(labels), labels),
				}
			}
			report.Issues = append(report.Issues, RegionIssue{
				Code:   CodeAmbiguousLabel,
				Bounds: region.Bounds,
				Labels: labels,
				Chairs: counts,
			})
			logger.Debug("skipping region with ambiguous label",
				zap.String("bounds", boundsText(region.Bounds)),
				zap.Strings("labels", labels))
		}
	}

	return report, nil
}

// AnalyzeReader loads a plan and analyzes it in one step, mapping load
// failures onto the MalformedGrid error class.
func AnalyzeReader(r io.Reader, alphabet geometry.Alphabet, opts Options) (*Report, error) {
	g, err := geometry.Load(r, alphabet)
	if err != nil {
		return nil, &PlanError{
			Code:    CodeMalformedGrid,
			Message: fmt.Sprintf("failed to load floor plan: %v", err),
		}
	}
	return Analyze(g, opts)
}

func boundsText(b geometry.Rect) string {
	return fmt.Sprintf("rows %d-%d, cols %d-%d", b.MinRow, b.MaxRow, b.MinCol, b.MaxCol)
}

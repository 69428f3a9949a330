package geometry

// Cell addresses one grid position.
type Cell struct {
	Row int
	Col int
}

// Rect is the bounding box of a region, used to locate it in diagnostics.
type Rect struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// Region is one maximal 4-connected component of non-wall cells.
type Region struct {
	ID     int
	Cells  []Cell
	Bounds Rect
}

// RegionMap partitions the grid into regions. Wall cells keep the ID -1 and
// belong to no region; every other cell belongs to exactly one.
type RegionMap struct {
	CellRegionIDs []int
	Regions       []Region
}

// BuildRegionMap floods the grid with a breadth-first traversal per
// unvisited non-wall cell. Walls block on a per-cell basis; diagonal wall
// characters block exactly the cell they occupy, nothing more.
func BuildRegionMap(g *Grid) RegionMap {
	total := g.Rows * g.Cols
	cellRegionIDs := make([]int, total)
	for i := range cellRegionIDs {
		cellRegionIDs[i] = -1
	}

	var regions []Region
	qr := make([]int, 0, total)
	qc := make([]int, 0, total)

	for row := range g.Rows {
		for col := range g.Cols {
			idx := row*g.Cols + col
			if cellRegionIDs[idx] != -1 || g.IsWall(row, col) {
				continue
			}
			regionID := len(regions)
			region := Region{
				ID:     regionID,
				Bounds: Rect{MinRow: row, MinCol: col, MaxRow: row, MaxCol: col},
			}
			cellRegionIDs[idx] = regionID
			qr = qr[:0]
			qc = qc[:0]
			qr = append(qr, row)
			qc = append(qc, col)

			for len(qr) > 0 {
				cr := qr[0]
				cc := qc[0]
				qr = qr[1:]
				qc = qc[1:]

				region.Cells = append(region.Cells, Cell{Row: cr, Col: cc})
				if cr < region.Bounds.MinRow {
					region.Bounds.MinRow = cr
				}
				if cr > region.Bounds.MaxRow {
					region.Bounds.MaxRow = cr
				}
				if cc < region.Bounds.MinCol {
					region.Bounds.MinCol = cc
				}
				if cc > region.Bounds.MaxCol {
					region.Bounds.MaxCol = cc
				}

				for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					nr := cr + d[0]
					nc := cc + d[1]
					if !g.InBounds(nr, nc) || g.IsWall(nr, nc) {
						continue
					}
					nidx := nr*g.Cols + nc
					if cellRegionIDs[nidx] == -1 {
						cellRegionIDs[nidx] = regionID
						qr = append(qr, nr)
						qc = append(qc, nc)
					}
				}
			}
			regions = append(regions, region)
		}
	}

	return RegionMap{CellRegionIDs: cellRegionIDs, Regions: regions}
}

// RegionAt returns the region ID owning (row, col), or -1 for walls.
func (rm RegionMap) RegionAt(g *Grid, row, col int) int {
	return rm.CellRegionIDs[row*g.Cols+col]
}

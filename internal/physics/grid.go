package physics

import "math"

// SpatialGrid is a uniform grid over the horizontal (X,Z) plane for
// broad-phase collision detection. Items are inserted by position and index,
// then nearby items are found via a 3x3 neighbourhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// inserted items so every potential pair is within the neighbourhood.
// Positions outside the covered area are clamped to the border cells.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64
	originX     float64
	originZ     float64
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores item indices; the slice is reused between steps.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid centred on the world origin covering
// width (X) by depth (Z).
func NewSpatialGrid(width, depth, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(depth / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		originX:     -width / 2,
		originZ:     -depth / 2,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// CellSize returns the grid cell edge length.
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item at the given world position.
func (g *SpatialGrid) Insert(x, z float64, index int) {
	col, row := g.posToCell(x, z)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item in the 3x3 cell neighbourhood of (x,z).
// Iteration stops early when fn returns true.
func (g *SpatialGrid) QueryAround(x, z float64, fn func(index int) bool) {
	col, row := g.posToCell(x, z)

	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to cell coordinates, clamped to the grid.
func (g *SpatialGrid) posToCell(x, z float64) (col, row int) {
	col = int(math.Floor((x - g.originX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((z - g.originZ) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

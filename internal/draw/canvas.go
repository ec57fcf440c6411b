package draw

import (
	"math"
)

// Block characters used by the canvas and HUD.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a monochrome pixel buffer rendered with half-block characters,
// giving two square-ish pixels per terminal cell.
type Canvas struct {
	cols, rows int
	pixels     []bool // [y*cols + x], y in sub-pixel rows
}

// NewCanvas creates a canvas covering cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas dimensions, clearing it if they change.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	c.pixels = make([]bool, cols*rows*2)
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() (w, h int) { return c.cols, c.rows * 2 }

// Cells returns the terminal dimensions.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Clear unsets every pixel.
func (c *Canvas) Clear() { clear(c.pixels) }

// Set lights a pixel. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return
	}
	c.pixels[y*c.cols+x] = true
}

// At reports whether a pixel is lit.
func (c *Canvas) At(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows*2 {
		return false
	}
	return c.pixels[y*c.cols+x]
}

// Dot lights the pixel nearest to (x, y).
func (c *Canvas) Dot(x, y float64) {
	c.Set(int(math.Round(x)), int(math.Round(y)))
}

// Line draws a segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}

	e := dx + dy
	for {
		c.Set(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// Ring outlines a circle. Radii under one pixel become a dot.
func (c *Canvas) Ring(cx, cy, r float64) {
	if r < 1 {
		c.Dot(cx, cy)
		return
	}
	steps := max(8, int(2*math.Pi*r))
	px, py := cx+r, cy
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		c.Line(px, py, x, y)
		px, py = x, y
	}
}

// Polygon outlines a closed path.
func (c *Canvas) Polygon(xs, ys []float64) {
	n := min(len(xs), len(ys))
	for i := range n {
		j := (i + 1) % n
		c.Line(xs[i], ys[i], xs[j], ys[j])
	}
}

// Render writes the lit cells to cw. Empty cells are skipped, so the caller
// clears the screen region first.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := range c.rows {
		top := row * 2 * c.cols
		bottom := top + c.cols
		for col := range c.cols {
			up, down := c.pixels[top+col], c.pixels[bottom+col]

			var ch rune
			switch {
			case up && down:
				ch = BlockFull
			case up:
				ch = BlockUpperHalf
			case down:
				ch = BlockLowerHalf
			default:
				continue
			}
			cw.MoveCursor(col+1, row+1)
			cw.WriteRune(ch)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

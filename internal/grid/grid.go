package grid

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"terragen/internal/config"
)

// Grid is a row-major heightmap. Cell (x, y) lives at Cells[y*Width+x].
type Grid struct {
	Width  int
	Height int
	Cells  []float64
}

// New allocates a zeroed width x height grid.
func New(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]float64, width*height),
	}
}

// FromRows copies a rectangular [][]float64 into a Grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", config.ErrInvalidArgument)
	}
	g := New(len(rows[0]), len(rows))
	for y, r := range rows {
		if len(r) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", config.ErrInvalidArgument, y, len(r), g.Width)
		}
		copy(g.Row(y), r)
	}
	return g, nil
}

// check reports a grid whose Cells do not match its dimensions.
func (g *Grid) check() error {
	if g.Width < 0 || g.Height < 0 || len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("%w: %dx%d grid has %d cells", config.ErrInvalidArgument, g.Width, g.Height, len(g.Cells))
	}
	return nil
}

// Index converts (x, y) to a flat index. No bounds checking.
func (g *Grid) Index(x, y int) int { return y*g.Width + x }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) float64 { return g.Cells[y*g.Width+x] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.Cells[y*g.Width+x] = v }

// Row returns row y as a slice aliasing the grid storage.
func (g *Grid) Row(y int) []float64 {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.Height)
	for y := range out {
		out[y] = append([]float64(nil), g.Row(y)...)
	}
	return out
}

// Column returns a copy of column x, top to bottom.
func (g *Grid) Column(x int) []float64 {
	out := make([]float64, g.Height)
	for y := range out {
		out[y] = g.At(x, y)
	}
	return out
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Cells:  append([]float64(nil), g.Cells...),
	}
}

// Equal reports whether both grids have the same shape and identical cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	return floats.Equal(g.Cells, o.Cells)
}

// Sum returns the total of all cells ("mass" for erosion purposes).
func (g *Grid) Sum() float64 { return floats.Sum(g.Cells) }

// MinMax returns the smallest and largest cell values.
func (g *Grid) MinMax() (lo, hi float64) {
	if len(g.Cells) == 0 {
		return 0, 0
	}
	return floats.Min(g.Cells), floats.Max(g.Cells)
}

// Stats returns the mean and sample standard deviation of the cells.
func (g *Grid) Stats() (mean, std float64) {
	return stat.MeanStdDev(g.Cells, nil)
}

// Clamp limits every cell to [lo, hi].
func (g *Grid) Clamp(lo, hi float64) {
	for i, v := range g.Cells {
		g.Cells[i] = mgl64.Clamp(v, lo, hi)
	}
}

// Normalize linearly rescales the grid so its minimum becomes 0 and its
// maximum 1. A flat grid becomes all zeros.
func (g *Grid) Normalize() {
	lo, hi := g.MinMax()
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	for i, v := range g.Cells {
		// divide rather than multiply by 1/span: (hi-lo)/span must be exactly 1
		g.Cells[i] = (v - lo) / span
	}
}

// Crop copies the w x h window whose top-left cell is (x0, y0).
func (g *Grid) Crop(x0, y0, w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 || x0 < 0 || y0 < 0 || x0+w > g.Width || y0+h > g.Height {
		return nil, fmt.Errorf("%w: crop %dx%d at (%d,%d) outside %dx%d grid",
			config.ErrInvalidArgument, w, h, x0, y0, g.Width, g.Height)
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		copy(out.Row(y), g.Cells[(y0+y)*g.Width+x0:(y0+y)*g.Width+x0+w])
	}
	return out, nil
}

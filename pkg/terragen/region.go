package terragen

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"terragen/internal/config"
)

// Region is a rectangular block of chunks, indexed Chunks[row][col], where
// row 0 / col 0 is chunk (X0, Y0).
type Region struct {
	X0, Y0 int
	Size   int
	Chunks [][]*Heightmap
}

// Chunk returns the heightmap of chunk (cx, cy), or nil if it lies outside
// the region.
func (r *Region) Chunk(cx, cy int) *Heightmap {
	row, col := cy-r.Y0, cx-r.X0
	if row < 0 || row >= len(r.Chunks) || col < 0 || col >= len(r.Chunks[row]) {
		return nil
	}
	return r.Chunks[row][col]
}

// Stitch joins the region's chunks into a single heightmap.
func (r *Region) Stitch() *Heightmap {
	rows := len(r.Chunks)
	if rows == 0 {
		return &Heightmap{}
	}
	cols := len(r.Chunks[0])
	out := &Heightmap{Width: cols * r.Size, Height: rows * r.Size}
	out.Cells = make([]float64, out.Width*out.Height)
	for cy, line := range r.Chunks {
		for cx, ch := range line {
			for y := 0; y < r.Size; y++ {
				dst := out.Cells[(cy*r.Size+y)*out.Width+cx*r.Size:]
				copy(dst[:r.Size], ch.Row(y))
			}
		}
	}
	return out
}

// GenerateRegion generates cols x rows chunks starting at chunk (x0, y0)
// concurrently. Chunk generation is independent per chunk, so the result is
// identical to calling GenerateChunkWithConfig for each one. Cancelling ctx
// stops scheduling further chunks.
func GenerateRegion(ctx context.Context, x0, y0, cols, rows, size int, seed uint32, cfg Config) (*Region, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmtInvalid("region %dx%d must be positive", cols, rows)
	}
	if err := config.ValidateSize(size); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Region{X0: x0, Y0: y0, Size: size, Chunks: make([][]*Heightmap, rows)}
	for i := range r.Chunks {
		r.Chunks[i] = make([]*Heightmap, cols)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if gctx.Err() != nil {
				break
			}
			row, col := row, col
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				h, err := defaultSampler.Generate(x0+col, y0+row, size, seed, cfg)
				if err != nil {
					return fmt.Errorf("chunk (%d,%d): %w", x0+col, y0+row, err)
				}
				r.Chunks[row][col] = h
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func fmtInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

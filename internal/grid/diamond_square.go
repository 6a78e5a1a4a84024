package grid

import (
	"fmt"
	"math/rand"

	"terragen/internal/config"
)

// MaxDiamondPower caps diamond-square grids at 4097x4097 cells.
const MaxDiamondPower = 12

// DiamondSquare builds a (2^power+1)^2 fractal heightmap by midpoint
// displacement and rescales it to [0,1]. The result is a whole grid, not a
// point sampler: two grids with different seeds do not share edges.
func DiamondSquare(power int, seed uint64, roughness float64) (*Grid, error) {
	g, err := displace(power, seed, roughness)
	if err != nil {
		return nil, err
	}
	g.Normalize()
	return g, nil
}

// displace runs the diamond and square passes without the final rescale.
func displace(power int, seed uint64, roughness float64) (*Grid, error) {
	if power < 1 || power > MaxDiamondPower {
		return nil, fmt.Errorf("%w: diamond-square power %d outside [1,%d]", config.ErrInvalidArgument, power, MaxDiamondPower)
	}
	if err := config.ValidateRoughness(roughness); err != nil {
		return nil, err
	}

	size := 1<<power + 1
	g := New(size, size)
	rnd := rand.New(rand.NewSource(int64(seed)))
	// uniform in [-1,1)
	jitter := func() float64 { return rnd.Float64()*2 - 1 }

	last := size - 1
	g.Set(0, 0, jitter())
	g.Set(last, 0, jitter())
	g.Set(0, last, jitter())
	g.Set(last, last, jitter())

	step := last
	scale := roughness
	for step > 1 {
		half := step / 2

		// diamond: centre of each square gets the mean of its four corners
		for y := half; y < size; y += step {
			for x := half; x < size; x += step {
				a := g.At(x-half, y-half)
				b := g.At(x+half, y-half)
				c := g.At(x-half, y+half)
				d := g.At(x+half, y+half)
				g.Set(x, y, (a+b+c+d)/4+jitter()*scale)
			}
		}

		// square: edge midpoints average whichever axis neighbours exist
		for y := 0; y < size; y += half {
			shift := half
			if (y/half)%2 == 1 {
				shift = 0
			}
			for x := shift; x < size; x += step {
				sum := 0.0
				n := 0
				if x-half >= 0 {
					sum += g.At(x-half, y)
					n++
				}
				if x+half < size {
					sum += g.At(x+half, y)
					n++
				}
				if y-half >= 0 {
					sum += g.At(x, y-half)
					n++
				}
				if y+half < size {
					sum += g.At(x, y+half)
					n++
				}
				g.Set(x, y, sum/float64(n)+jitter()*scale)
			}
		}

		step = half
		scale *= 0.5
	}
	return g, nil
}

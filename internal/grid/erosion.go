package grid

import (
	"fmt"
	"math"

	"terragen/internal/config"
)

// erosionRate is the share of a pair's excess drop d-talus moved per round:
// half the excess, split over the 8-cell stencil. A cell can then shed at
// most half of its largest excess in one round, so the update is monotone,
// never overshoots and settles towards a grid with no excess.
const erosionRate = 0.5 / 8

// Moore neighbourhood, row-major order.
var (
	neighbourDX = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	neighbourDY = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// ThermalErosion relaxes slopes steeper than talus, in place. Every round,
// each interior cell sends erosionRate*(d-talus) to every neighbour lying
// more than talus below it. Moves are collected in a delta buffer and
// applied after the round, so a round's result does not depend on visit
// order. The outermost ring never sends material (it has no full
// neighbourhood) but does receive it, so total mass is conserved. Heights
// never leave the range they started in, and repeated rounds drive
// MaxExcess towards 0.
func ThermalErosion(g *Grid, iterations int, talus float64) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", config.ErrInvalidArgument)
	}
	if iterations < 0 {
		return fmt.Errorf("%w: negative erosion iterations %d", config.ErrInvalidArgument, iterations)
	}
	if math.IsNaN(talus) || math.IsInf(talus, 0) {
		return fmt.Errorf("%w: talus %v is not finite", config.ErrInvalidArgument, talus)
	}
	if err := g.check(); err != nil {
		return err
	}
	if g.Width < 3 || g.Height < 3 {
		return nil
	}

	w, h := g.Width, g.Height
	delta := make([]float64, len(g.Cells))
	for it := 0; it < iterations; it++ {
		clear(delta)
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				i := y*w + x
				z := g.Cells[i]
				for k := 0; k < 8; k++ {
					j := (y+neighbourDY[k])*w + x + neighbourDX[k]
					d := z - g.Cells[j]
					if d > talus {
						m := erosionRate * (d - talus)
						delta[i] -= m
						delta[j] += m
					}
				}
			}
		}
		for i, d := range delta {
			g.Cells[i] += d
		}
	}
	return nil
}

// MaxExcess returns the largest amount by which an interior cell exceeds one
// of its neighbours beyond talus, or 0 when the grid is stable.
func MaxExcess(g *Grid, talus float64) float64 {
	worst := 0.0
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			z := g.At(x, y)
			for k := 0; k < 8; k++ {
				if d := z - g.At(x+neighbourDX[k], y+neighbourDY[k]) - talus; d > worst {
					worst = d
				}
			}
		}
	}
	return worst
}

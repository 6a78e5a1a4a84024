package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"terragen/internal/config"
	"terragen/internal/grid"
	"terragen/internal/noise"
	"terragen/internal/profiling"
)

const (
	diamondCacheSize = 16
	// MaxRegionPower bounds region grids kept by the backend (1025^2 nodes).
	MaxRegionPower = 10
)

type regionKey struct {
	seed      uint32
	rx, ry    int64
	power     int
	roughness float64
}

// DiamondSquare point-samples diamond-square grids. Every unit cell of noise
// space, (floor(x), floor(y)), is one region covered by a (2^Power+1)^2 grid
// seeded from the region coordinates; samples interpolate bilinearly between
// grid nodes. Regions are generated independently, so the field is
// continuous inside a region but not across region borders.
type DiamondSquare struct {
	regions *memo[regionKey, *grid.Grid]
}

// NewDiamondSquare creates the backend with an empty region cache.
func NewDiamondSquare() *DiamondSquare {
	return &DiamondSquare{regions: newMemo[regionKey, *grid.Grid](diamondCacheSize)}
}

// RegionSeed derives the diamond-square seed for region (rx, ry).
func RegionSeed(seed uint32, rx, ry int64) uint64 {
	return noise.Hash2(seed, rx, ry)
}

// Region returns the normalized grid covering noise cell (rx, ry).
func (d *DiamondSquare) Region(seed uint32, rx, ry int64, p config.Diamond) (*grid.Grid, error) {
	key := regionKey{seed: seed, rx: rx, ry: ry, power: p.Power, roughness: p.Roughness}
	return d.regions.get(key, func() (*grid.Grid, error) {
		defer profiling.Track("terrain.DiamondRegion")()
		return grid.DiamondSquare(p.Power, RegionSeed(seed, rx, ry), p.Roughness)
	})
}

func (d *DiamondSquare) Sample(seed uint32, x, y float64, cfg config.Config) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	g, err := d.Region(seed, int64(fx), int64(fy), cfg.Diamond)
	if err != nil {
		// ValidateConfig rejects every parameter set that can fail here.
		return 0
	}

	last := g.Width - 1
	gx := (x - fx) * float64(last)
	gy := (y - fy) * float64(last)
	ix := min(int(gx), last-1)
	iy := min(int(gy), last-1)
	tx := gx - float64(ix)
	ty := gy - float64(iy)

	top := lerp(g.At(ix, iy), g.At(ix+1, iy), tx)
	bottom := lerp(g.At(ix, iy+1), g.At(ix+1, iy+1), tx)
	return mgl64.Clamp(lerp(top, bottom, ty), 0, 1)
}

// ValidateConfig checks the diamond-square parameters up front so Sample
// never meets a failing region build.
func (d *DiamondSquare) ValidateConfig(cfg config.Config) error {
	p := cfg.Diamond
	if p.Power < 1 || p.Power > MaxRegionPower {
		return fmt.Errorf("%w: diamond power %d outside [1,%d]", config.ErrInvalidArgument, p.Power, MaxRegionPower)
	}
	return config.ValidateRoughness(p.Roughness)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"terragen/internal/config"
	"terragen/internal/noise"
)

// Backend produces a height in [0,1] for a point in noise space. x and y are
// already divided by the configured scale. Implementations must be pure
// functions of their arguments and safe for concurrent use.
type Backend interface {
	Sample(seed uint32, x, y float64, cfg config.Config) float64
}

// ConfigValidator is implemented by backends that accept fewer configurations
// than config.Config.Validate allows.
type ConfigValidator interface {
	ValidateConfig(cfg config.Config) error
}

// FallbackFBM is value-noise fBm (no permutation tables, no dependencies).
type FallbackFBM struct{}

func (FallbackFBM) Sample(seed uint32, x, y float64, cfg config.Config) float64 {
	return noise.FallbackFBM(seed, x, y, cfg.FBM.Octaves, cfg.FBM.Lacunarity, cfg.FBM.Gain)
}

// GradientFBM is Perlin fBm with per-octave permutation tables.
type GradientFBM struct {
	tables *noise.TableCache
}

// NewGradientFBM creates the backend with its own table cache.
func NewGradientFBM() *GradientFBM {
	return &GradientFBM{tables: noise.NewTableCache(0)}
}

func (g *GradientFBM) Sample(seed uint32, x, y float64, cfg config.Config) float64 {
	return noise.GradientFBM(g.tables, seed, x, y, cfg.FBM.Octaves, cfg.FBM.Lacunarity, cfg.FBM.Gain)
}

// octaveSum accumulates amplitude-weighted octaves of a [-1,1] noise and maps
// the normalized sum to [0,1].
func octaveSum(x, y float64, p config.FBM, sample func(octave int, x, y float64) float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < p.Octaves; i++ {
		sum += amplitude * sample(i, x*frequency, y*frequency)
		norm += amplitude
		amplitude *= p.Gain
		frequency *= p.Lacunarity
	}
	v := 0.0
	if norm > 0 {
		v = sum / norm
	}
	return mgl64.Clamp(0.5*(v+1), 0, 1)
}

package terrain

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"

	"terragen/internal/config"
	"terragen/internal/noise"
)

// Backends built on third-party noise packages. They plug in through the
// same Backend interface; a sampler without them registered reports
// config.ErrUnknownBackend instead of substituting another algorithm.

const externalCacheSize = 256

// SimplexFBM is fBm over OpenSimplex noise, one generator per octave seed.
type SimplexFBM struct {
	noises *memo[uint64, opensimplex.Noise]
}

// NewSimplexFBM creates the backend.
func NewSimplexFBM() *SimplexFBM {
	return &SimplexFBM{noises: newMemo[uint64, opensimplex.Noise](externalCacheSize)}
}

func (s *SimplexFBM) noiseFor(seed uint64) opensimplex.Noise {
	n, _ := s.noises.get(seed, func() (opensimplex.Noise, error) {
		return opensimplex.New(int64(seed)), nil
	})
	return n
}

func (s *SimplexFBM) Sample(seed uint32, x, y float64, cfg config.Config) float64 {
	return octaveSum(x, y, cfg.FBM, func(octave int, x, y float64) float64 {
		return s.noiseFor(noise.OctaveSeed(seed, octave)).Eval2(x, y)
	})
}

type perlinKey struct {
	seed       uint32
	octaves    int
	lacunarity float64
	gain       float64
}

// ExternalPerlin hands octave summation to github.com/aquilax/go-perlin.
// That package weights octave i by 1/alpha^i and scales frequency by beta^i,
// so alpha = 1/gain and beta = lacunarity.
type ExternalPerlin struct {
	gens *memo[perlinKey, *perlin.Perlin]
}

// NewExternalPerlin creates the backend.
func NewExternalPerlin() *ExternalPerlin {
	return &ExternalPerlin{gens: newMemo[perlinKey, *perlin.Perlin](externalCacheSize)}
}

func (e *ExternalPerlin) Sample(seed uint32, x, y float64, cfg config.Config) float64 {
	p := cfg.FBM
	key := perlinKey{seed: seed, octaves: p.Octaves, lacunarity: p.Lacunarity, gain: p.Gain}
	gen, _ := e.gens.get(key, func() (*perlin.Perlin, error) {
		return perlin.NewPerlin(1/p.Gain, p.Lacunarity, int32(p.Octaves), int64(seed)), nil
	})

	norm := 0.0
	amplitude := 1.0
	for i := 0; i < p.Octaves; i++ {
		norm += amplitude
		amplitude *= p.Gain
	}
	v := 0.0
	if norm > 0 {
		v = gen.Noise2D(x, y) / norm
	}
	return mgl64.Clamp(0.5*(v+1), 0, 1)
}

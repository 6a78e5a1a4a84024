// Package terragen generates deterministic, seamless terrain heightmaps.
//
// The same seed, chunk coordinates, size and Config always produce the same
// heightmap, and in global sampling mode adjacent chunks sample one
// continuous world field. Every function is safe for concurrent use.
package terragen

import (
	"log"

	"terragen/internal/config"
	"terragen/internal/grid"
	"terragen/internal/noise"
	"terragen/internal/profiling"
	"terragen/internal/terrain"
)

// Heightmap is a row-major grid of heights; values returned by this package
// lie in [0,1].
type Heightmap = grid.Grid

// Config and its parts select and parameterize a backend.
type (
	Config   = config.Config
	FBM      = config.FBM
	Diamond  = config.Diamond
	Backend  = config.Backend
	Sampling = config.Sampling
)

const (
	BackendFallbackFBM    = config.FallbackFBM
	BackendGradientFBM    = config.GradientFBM
	BackendDiamondSquare  = config.DiamondSquare
	BackendSimplexFBM     = config.SimplexFBM
	BackendExternalPerlin = config.ExternalPerlin

	SamplingGlobal = config.Global
	SamplingLocal  = config.Local

	MaxChunkSize    = config.MaxChunkSize
	MaxDiamondPower = grid.MaxDiamondPower
)

var (
	// ErrInvalidArgument wraps every argument error returned by this package.
	ErrInvalidArgument = config.ErrInvalidArgument
	// ErrUnknownBackend reports an unregistered backend; it wraps ErrInvalidArgument.
	ErrUnknownBackend = config.ErrUnknownBackend
)

var defaultSampler = terrain.NewSampler()

// DefaultConfig returns fallback fBm, global sampling, 6 octaves,
// lacunarity 2, gain 0.5, scale 64, erosion off.
func DefaultConfig() Config { return config.Default() }

// LegacyConfig returns the gradient-fBm preset of older releases.
func LegacyConfig() Config { return config.Legacy() }

// ParseBackend and ParseSampling read the names printed by String.
func ParseBackend(s string) (Backend, error)   { return config.ParseBackend(s) }
func ParseSampling(s string) (Sampling, error) { return config.ParseSampling(s) }

// SetLogger sends diagnostic output (cache evictions, erosion padding) to l.
// nil restores the default, which discards everything.
func SetLogger(l *log.Logger) { defaultSampler.SetLogger(l) }

// GenerateChunk returns the size x size heightmap of chunk (chunkX, chunkY)
// using DefaultConfig.
func GenerateChunk(chunkX, chunkY, size int, seed uint32) (*Heightmap, error) {
	return defaultSampler.Generate(chunkX, chunkY, size, seed, config.Default())
}

// GenerateChunkWithConfig is GenerateChunk with an explicit Config.
func GenerateChunkWithConfig(chunkX, chunkY, size int, seed uint32, cfg Config) (*Heightmap, error) {
	return defaultSampler.Generate(chunkX, chunkY, size, seed, cfg)
}

// SampleWorld returns the global-mode, erosion-free height at world
// coordinates (wx, wy).
func SampleWorld(seed uint32, wx, wy float64, cfg Config) (float64, error) {
	return defaultSampler.SampleWorld(seed, wx, wy, cfg)
}

// DiamondSquare returns a (2^nPower+1)^2 midpoint-displacement heightmap
// rescaled to [0,1]. It is a whole grid: separate calls do not tile.
func DiamondSquare(nPower int, seed uint64, roughness float64) (*Heightmap, error) {
	return grid.DiamondSquare(nPower, seed, roughness)
}

// ThermalErosion relaxes slopes steeper than talus in place. The outermost
// ring of cells never sheds material. Values can leave [0,1]; clamp
// afterwards if needed.
func ThermalErosion(h *Heightmap, iterations int, talus float64) error {
	return grid.ThermalErosion(h, iterations, talus)
}

// FBMImage renders a width x height gradient-fBm image whose coordinates are
// normalized by the image size (x/width*scale). Resolution changes detail,
// not extent, and images do not tile; use GenerateChunk for seamless output.
func FBMImage(width, height int, seed uint64, p FBM) (*Heightmap, error) {
	if width <= 0 || height <= 0 || width > MaxChunkSize || height > MaxChunkSize {
		return nil, fmtInvalid("image size %dx%d outside [1,%d]", width, height, MaxChunkSize)
	}
	cfg := config.Default()
	cfg.FBM = p
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Heightmap{
		Width:  width,
		Height: height,
		Cells:  noise.GridFBM(width, height, seed, p.Octaves, p.Lacunarity, p.Gain, p.Scale),
	}, nil
}

// Timings summarizes the n most expensive generation stages so far, e.g.
// "terrain.Generate:12.4ms/32".
func Timings(n int) string { return profiling.TopN(n) }

// ResetTimings clears the totals reported by Timings.
func ResetTimings() { profiling.Reset() }

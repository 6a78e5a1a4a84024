package config

import (
	"fmt"
	"math"
)

const (
	// MaxChunkSize bounds the side length accepted by the chunk sampler.
	MaxChunkSize = 4096
	// MaxErosionIterations bounds per-chunk erosion; each round widens the
	// sampled padding by one cell per side.
	MaxErosionIterations = 1024

	// Octave loops multiply frequency by Lacunarity and amplitude by Gain up
	// to MaxOctaves times. These bounds keep amplitudes and the sampled
	// coordinates finite; MaxFrequency caps Lacunarity^(Octaves-1).
	MaxOctaves    = 32
	MaxLacunarity = 64.0
	MaxFrequency  = 1 << 24
	MaxGain       = 16.0
	MinScale      = 1e-6

	// MaxRoughness bounds diamond-square displacement.
	MaxRoughness = 1e6
)

// FBM holds fractal-sum parameters.
type FBM struct {
	Octaves    int
	Lacunarity float64 // frequency multiplier per octave
	Gain       float64 // amplitude multiplier per octave
	Scale      float64 // world units per noise unit; larger => smoother
}

// Diamond configures the diamond-square backend.
type Diamond struct {
	Power     int // region grids are 2^Power+1 nodes per side
	Roughness float64
}

// Config selects and parameterizes a heightmap backend.
type Config struct {
	Backend  Backend
	Sampling Sampling
	FBM      FBM
	Diamond  Diamond

	// Erosion runs on a padded region around each chunk; see terrain.Sampler.
	ApplyErosion      bool
	ErosionIterations int
	TalusAngle        float64
}

// Default returns fallback fBm with global (seamless) sampling.
func Default() Config {
	return Config{
		Backend:  FallbackFBM,
		Sampling: Global,
		FBM: FBM{
			Octaves:    6,
			Lacunarity: 2.0,
			Gain:       0.5,
			Scale:      64.0,
		},
		Diamond: Diamond{
			Power:     6,
			Roughness: 1.0,
		},
		ApplyErosion:      false,
		ErosionIterations: 8,
		TalusAngle:        0.02,
	}
}

// Legacy mirrors the older generator defaults: gradient fBm, global sampling.
func Legacy() Config {
	c := Default()
	c.Backend = GradientFBM
	return c
}

// Validate reports the first unusable parameter, wrapped in ErrInvalidArgument.
func (c Config) Validate() error {
	if _, ok := backendNames[c.Backend]; !ok {
		return fmt.Errorf("%w %v", ErrUnknownBackend, c.Backend)
	}
	if c.Sampling != Global && c.Sampling != Local {
		return fmt.Errorf("%w: unknown sampling mode %v", ErrInvalidArgument, c.Sampling)
	}
	if c.FBM.Octaves < 1 || c.FBM.Octaves > MaxOctaves {
		return fmt.Errorf("%w: octaves must be in [1,%d], got %d", ErrInvalidArgument, MaxOctaves, c.FBM.Octaves)
	}
	if !finite(c.FBM.Scale) || c.FBM.Scale < MinScale {
		return fmt.Errorf("%w: scale must be a number >= %g, got %v", ErrInvalidArgument, MinScale, c.FBM.Scale)
	}
	if !finite(c.FBM.Lacunarity) || c.FBM.Lacunarity <= 0 || c.FBM.Lacunarity > MaxLacunarity {
		return fmt.Errorf("%w: lacunarity must be in (0,%g], got %v", ErrInvalidArgument, MaxLacunarity, c.FBM.Lacunarity)
	}
	if f := math.Pow(c.FBM.Lacunarity, float64(c.FBM.Octaves-1)); f > MaxFrequency {
		return fmt.Errorf("%w: top octave frequency %g exceeds %d (lacunarity %v, %d octaves)",
			ErrInvalidArgument, f, MaxFrequency, c.FBM.Lacunarity, c.FBM.Octaves)
	}
	if !finite(c.FBM.Gain) || math.Abs(c.FBM.Gain) > MaxGain {
		return fmt.Errorf("%w: gain must be in [-%g,%g], got %v", ErrInvalidArgument, MaxGain, MaxGain, c.FBM.Gain)
	}
	if c.Backend == DiamondSquare {
		if c.Diamond.Power < 1 {
			return fmt.Errorf("%w: diamond power must be >= 1, got %d", ErrInvalidArgument, c.Diamond.Power)
		}
		if err := ValidateRoughness(c.Diamond.Roughness); err != nil {
			return err
		}
	}
	if c.ApplyErosion {
		if c.ErosionIterations < 0 || c.ErosionIterations > MaxErosionIterations {
			return fmt.Errorf("%w: erosion iterations must be in [0,%d], got %d", ErrInvalidArgument, MaxErosionIterations, c.ErosionIterations)
		}
		if !finite(c.TalusAngle) {
			return fmt.Errorf("%w: talus %v is not finite", ErrInvalidArgument, c.TalusAngle)
		}
	}
	return nil
}

// ValidateSize checks a chunk side length.
func ValidateSize(size int) error {
	if size <= 0 || size > MaxChunkSize {
		return fmt.Errorf("%w: chunk size must be in [1,%d], got %d", ErrInvalidArgument, MaxChunkSize, size)
	}
	return nil
}

// ValidateRoughness checks a diamond-square roughness.
func ValidateRoughness(r float64) error {
	if !finite(r) || math.Abs(r) > MaxRoughness {
		return fmt.Errorf("%w: roughness must be in [-%g,%g], got %v", ErrInvalidArgument, MaxRoughness, MaxRoughness, r)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

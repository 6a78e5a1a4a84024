package config

import (
	"fmt"
	"strings"
)

// Backend selects the algorithm that produces chunk heights.
type Backend int

const (
	// FallbackFBM is value-noise fBm with no external dependencies.
	FallbackFBM Backend = iota
	// GradientFBM is fBm over seeded Perlin gradient noise.
	GradientFBM
	// DiamondSquare point-samples cached diamond-square region grids.
	DiamondSquare
	// SimplexFBM is fBm over OpenSimplex noise.
	SimplexFBM
	// ExternalPerlin delegates octave summation to an external Perlin library.
	ExternalPerlin
)

var backendNames = map[Backend]string{
	FallbackFBM:    "fallback-fbm",
	GradientFBM:    "gradient-fbm",
	DiamondSquare:  "diamond-square",
	SimplexFBM:     "simplex-fbm",
	ExternalPerlin: "external-perlin",
}

func (b Backend) String() string {
	if s, ok := backendNames[b]; ok {
		return s
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// Backends lists every backend value in declaration order.
func Backends() []Backend {
	return []Backend{FallbackFBM, GradientFBM, DiamondSquare, SimplexFBM, ExternalPerlin}
}

// ParseBackend accepts the names printed by Backend.String, case-insensitively.
// "legacy-fbm" is accepted as an alias for gradient-fbm.
func ParseBackend(s string) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "legacy-fbm" {
		return GradientFBM, nil
	}
	for b, n := range backendNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownBackend, s)
}

// Sampling selects how chunk-local cells map to noise coordinates.
type Sampling int

const (
	// Global samples world coordinates; adjacent chunks are seamless.
	Global Sampling = iota
	// Local samples chunk-local coordinates, so every chunk covers the same
	// noise window. Kept for compatibility with older outputs; not seamless.
	Local
)

func (s Sampling) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	}
	return fmt.Sprintf("sampling(%d)", int(s))
}

// ParseSampling accepts "global" or "local".
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	}
	return 0, fmt.Errorf("%w: unknown sampling mode %q", ErrInvalidArgument, s)
}

package noise

import "github.com/go-gl/mathgl/mgl64"

const (
	// fallbackOctaveStep offsets the 32-bit seed per octave (an LCG increment).
	fallbackOctaveStep uint32 = 1013904223
	// gradientOctaveStep offsets the 64-bit table seed per octave so each
	// octave gets its own lattice and the octaves do not line up.
	gradientOctaveStep uint64 = 0x9E3779B97F4A7C15
)

// FallbackFBM sums octaves of value noise. The first octave has amplitude
// 0.5. Result is clamped to [0,1]; zero octaves yields 0.
func FallbackFBM(seed uint32, x, y float64, octaves int, lacunarity, gain float64) float64 {
	amplitude := 0.5
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += amplitude * Value(seed+uint32(i)*fallbackOctaveStep, x*frequency, y*frequency)
		norm += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}
	v := 0.0
	if norm > 0 {
		v = sum / norm
	}
	return mgl64.Clamp(v, 0, 1)
}

// OctaveSeed returns the permutation-table seed used for octave i of a
// gradient fBm with the given base seed.
func OctaveSeed(seed uint32, octave int) uint64 {
	return uint64(seed) + uint64(octave)*gradientOctaveStep
}

// GradientFBM sums octaves of Perlin noise, starting at amplitude 1, and maps
// the normalized sum from [-1,1] to [0,1]. Tables come from cache; a nil cache
// builds them per call. Zero octaves yields 0.5, the image of a zero sum.
func GradientFBM(cache *TableCache, seed uint32, x, y float64, octaves int, lacunarity, gain float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += amplitude * perlinFor(cache, OctaveSeed(seed, i)).Noise2D(x*frequency, y*frequency)
		norm += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}
	v := 0.0
	if norm > 0 {
		v = sum / norm
	}
	return mgl64.Clamp(0.5*(v+1), 0, 1)
}

func perlinFor(cache *TableCache, seed uint64) *Perlin {
	if cache == nil {
		return NewPerlin(seed)
	}
	return cache.Get(seed)
}

// GridFBM fills a width x height row-major buffer with gradient fBm sampled at
// (x/width*scale, y/height*scale). Coordinates are normalized by the buffer
// size, so the image always spans the same noise window regardless of
// resolution; it does not tile with neighbouring buffers. All octaves share one
// table built from seed.
func GridFBM(width, height int, seed uint64, octaves int, lacunarity, gain, scale float64) []float64 {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]float64, width*height)
	p := NewPerlin(seed)
	amplitude := 1.0
	frequency := 1.0
	norm := 0.0
	for o := 0; o < octaves; o++ {
		for y := 0; y < height; y++ {
			ny := float64(y) / float64(height) * scale * frequency
			row := out[y*width : (y+1)*width]
			for x := range row {
				nx := float64(x) / float64(width) * scale * frequency
				row[x] += amplitude * p.Noise2D(nx, ny)
			}
		}
		norm += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}
	for i, v := range out {
		if norm > 0 {
			v /= norm
		}
		out[i] = mgl64.Clamp(0.5*(v+1), 0, 1)
	}
	return out
}

package noise

import "math"

// Value noise: lattice corners carry hashed scalars instead of gradients, so
// no permutation table is needed. Range is [0,1).

func smooth(t float64) float64 {
	// cubic smoothstep 3t^2 - 2t^3
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func latticeValue(seed uint32, x, y int64) float64 {
	return Rand01(Hash2(seed, x, y))
}

// Value samples 2D value noise at (x, y).
func Value(seed uint32, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	xi := int64(x0)
	yi := int64(y0)

	sx := smooth(x - x0)
	sy := smooth(y - y0)

	v00 := latticeValue(seed, xi, yi)
	v10 := latticeValue(seed, xi+1, yi)
	v01 := latticeValue(seed, xi, yi+1)
	v11 := latticeValue(seed, xi+1, yi+1)

	return lerp(lerp(v00, v10, sx), lerp(v01, v11, sx), sy)
}

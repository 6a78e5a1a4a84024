package noise

// Deterministic integer hashing. No floating point and no math/rand here:
// outputs must stay stable across Go versions and platforms.

const (
	hashPrimeX = 0x9E3779B185EBCA87
	hashPrimeY = 0xC2B2AE3D27D4EB4F

	inv53 = 1.0 / (1 << 53)
)

// Mix64 is the splitmix64 finalizer: add the golden-ratio increment, then two
// xor-shift/multiply rounds and a final xor-shift.
func Mix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// Hash2 returns a stable hash for 2D integer lattice coordinates + seed.
func Hash2(seed uint32, x, y int64) uint64 {
	return Mix64(uint64(seed) ^ uint64(x)*hashPrimeX ^ uint64(y)*hashPrimeY)
}

// Rand01 maps a hash to [0,1) using its top 53 bits. The low bits of
// multiplicative hashes correlate with the inputs, so they are dropped.
func Rand01(h uint64) float64 {
	return float64(h>>11) * inv53
}

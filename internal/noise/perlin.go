package noise

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Gradient directions indexed by the low 4 bits of a corner hash. This is the
// z=0 slice of Ken Perlin's improved-noise gradient set, so several
// directions repeat.
var grad2 = [16]mgl64.Vec2{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
	{1, 1}, {0, -1}, {-1, 1}, {0, -1},
}

// Perlin is a seeded 2D gradient noise source. Immutable after NewPerlin, so a
// single instance may be shared between goroutines.
type Perlin struct {
	seed uint64
	perm [512]int
}

// NewPerlin builds the permutation table for seed: identity 0..255, a
// Fisher-Yates shuffle driven by a seeded math/rand source, then a second copy
// appended so p[i+1] never wraps.
func NewPerlin(seed uint64) *Perlin {
	p := &Perlin{seed: seed}
	rnd := rand.New(rand.NewSource(int64(seed)))

	for i := 0; i < 256; i++ {
		p.perm[i] = i
	}
	for i := 0; i < 256; i++ {
		j := rnd.Intn(256-i) + i
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	}
	copy(p.perm[256:], p.perm[:256])
	return p
}

// Seed returns the seed the table was built from.
func (p *Perlin) Seed() uint64 { return p.seed }

// fade is the quintic 6t^5 - 15t^4 + 10t^3; unlike smoothstep its second
// derivative is zero at cell edges.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func grad(hash int, x, y float64) float64 {
	return grad2[hash&15].Dot(mgl64.Vec2{x, y})
}

// Noise2D samples gradient noise at (x, y). Output is roughly [-1,1].
func (p *Perlin) Noise2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	X := int(fx) & 255
	Y := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	A := p.perm[X] + Y
	B := p.perm[X+1] + Y

	n00 := grad(p.perm[A], x, y)
	n10 := grad(p.perm[B], x-1, y)
	n01 := grad(p.perm[A+1], x, y-1)
	n11 := grad(p.perm[B+1], x-1, y-1)

	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

// Noise1D is the y=0 line through Noise2D.
func (p *Perlin) Noise1D(x float64) float64 {
	return p.Noise2D(x, 0)
}

// DefaultTableCacheSize bounds how many permutation tables a TableCache keeps.
const DefaultTableCacheSize = 256

// TableCache memoizes Perlin instances by seed. Building a table costs a
// 256-step shuffle, which dominates point sampling when every octave of every
// cell would otherwise rebuild it.
type TableCache struct {
	mu     sync.RWMutex
	tables map[uint64]*Perlin
	limit  int
}

// NewTableCache creates a cache holding at most limit tables. limit <= 0
// selects DefaultTableCacheSize.
func NewTableCache(limit int) *TableCache {
	if limit <= 0 {
		limit = DefaultTableCacheSize
	}
	return &TableCache{
		tables: make(map[uint64]*Perlin),
		limit:  limit,
	}
}

// Get returns the Perlin instance for seed, building it on first use.
func (c *TableCache) Get(seed uint64) *Perlin {
	c.mu.RLock()
	p, ok := c.tables[seed]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Double-check: another goroutine may have built it while we waited.
	if p, ok = c.tables[seed]; ok {
		return p
	}
	if len(c.tables) >= c.limit {
		// Tables are cheap to rebuild; drop everything instead of tracking recency.
		clear(c.tables)
	}
	p = NewPerlin(seed)
	c.tables[seed] = p
	return p
}

// Len reports the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

package terrain

import (
	"math/rand"
	"testing"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"

	"terragen/internal/config"
	"terragen/internal/noise"
)

func TestSimplexSingleOctave(t *testing.T) {
	b := NewSimplexFBM()
	cfg := configFor(config.SimplexFBM)
	cfg.FBM.Octaves = 1
	n := opensimplex.New(int64(noise.OctaveSeed(3, 0)))
	for _, pt := range [][2]float64{{0.1, 0.2}, {-4.5, 9.25}, {100, -100.5}} {
		want := mgl64.Clamp(0.5*(n.Eval2(pt[0], pt[1])+1), 0, 1)
		if got := b.Sample(3, pt[0], pt[1], cfg); got != want {
			t.Errorf("Sample%v = %v, want %v", pt, got, want)
		}
	}
}

func TestExternalPerlinMatchesLibrary(t *testing.T) {
	b := NewExternalPerlin()
	cfg := configFor(config.ExternalPerlin)
	cfg.FBM.Octaves = 3
	lib := perlin.NewPerlin(1/cfg.FBM.Gain, cfg.FBM.Lacunarity, 3, 8)
	norm := 1 + cfg.FBM.Gain + cfg.FBM.Gain*cfg.FBM.Gain
	for _, pt := range [][2]float64{{0.3, 0.6}, {12.1, -3.7}} {
		want := mgl64.Clamp(0.5*(lib.Noise2D(pt[0], pt[1])/norm+1), 0, 1)
		if got := b.Sample(8, pt[0], pt[1], cfg); !mgl64.FloatEqualThreshold(got, want, 1e-12) {
			t.Errorf("Sample%v = %v, want %v", pt, got, want)
		}
	}
}

func TestExternalBackendsVary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, b := range []Backend{NewSimplexFBM(), NewExternalPerlin()} {
		cfg := config.Default()
		lo, hi := 1.0, 0.0
		for i := 0; i < 500; i++ {
			v := b.Sample(42, rng.Float64()*20, rng.Float64()*20, cfg)
			lo = min(lo, v)
			hi = max(hi, v)
		}
		if hi-lo < 0.05 {
			t.Errorf("%T output barely varies: [%v, %v]", b, lo, hi)
		}
	}
}

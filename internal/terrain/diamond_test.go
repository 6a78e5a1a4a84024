package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"terragen/internal/config"
	"terragen/internal/grid"
)

func TestDiamondBackendHitsGridNodes(t *testing.T) {
	// scale 64 and power 6 put one grid node on every world cell, so a chunk
	// is a straight copy of its region grid.
	s := NewSampler()
	cfg := configFor(config.DiamondSquare)
	b, _ := s.Backend(config.DiamondSquare)
	ds := b.(*DiamondSquare)

	for _, c := range [][2]int{{0, 0}, {-1, 0}, {2, -3}} {
		h, err := s.Generate(c[0], c[1], 64, 11, cfg)
		if err != nil {
			t.Fatal(err)
		}
		region, err := ds.Region(11, int64(c[0]), int64(c[1]), cfg.Diamond)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				if h.At(x, y) != region.At(x, y) {
					t.Fatalf("chunk %v cell (%d,%d) = %v, region node = %v", c, x, y, h.At(x, y), region.At(x, y))
				}
			}
		}
	}
}

func TestDiamondRegionMatchesStandalone(t *testing.T) {
	ds := NewDiamondSquare()
	p := config.Diamond{Power: 3, Roughness: 0.7}
	got, err := ds.Region(9, -2, 5, p)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := grid.DiamondSquare(3, RegionSeed(9, -2, 5), 0.7)
	if !got.Equal(want) {
		t.Error("cached region differs from a direct diamond-square run")
	}
	again, _ := ds.Region(9, -2, 5, p)
	if again != got {
		t.Error("second lookup should return the cached grid")
	}
	if RegionSeed(9, 0, 0) == RegionSeed(9, 1, 0) {
		t.Error("neighbouring regions share a seed")
	}
}

func TestDiamondSampleInterpolates(t *testing.T) {
	ds := NewDiamondSquare()
	cfg := configFor(config.DiamondSquare)
	cfg.Diamond.Power = 1 // 3x3 region grid
	g, _ := ds.Region(4, 0, 0, cfg.Diamond)

	// (0.25, 0) sits halfway between nodes (0,0) and (1,0).
	want := (g.At(0, 0) + g.At(1, 0)) / 2
	if got := ds.Sample(4, 0.25, 0, cfg); !mgl64.FloatEqualThreshold(got, want, 1e-12) {
		t.Errorf("Sample(0.25, 0) = %v, want %v", got, want)
	}
	if got := ds.Sample(4, 0.5, 0.5, cfg); got != g.At(1, 1) {
		t.Errorf("Sample(0.5, 0.5) = %v, want centre node %v", got, g.At(1, 1))
	}
}

func TestDiamondValidateConfig(t *testing.T) {
	ds := NewDiamondSquare()
	cfg := configFor(config.DiamondSquare)
	if err := ds.ValidateConfig(cfg); err != nil {
		t.Errorf("default diamond config rejected: %v", err)
	}
	cfg.Diamond.Power = MaxRegionPower + 1
	if err := ds.ValidateConfig(cfg); err == nil {
		t.Error("expected an error for an oversized region power")
	}
}

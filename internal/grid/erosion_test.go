package grid

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"terragen/internal/config"
)

func randomGrid(w, h int, seed int64) *Grid {
	rng := rand.New(rand.NewSource(seed))
	g := New(w, h)
	for i := range g.Cells {
		g.Cells[i] = rng.Float64()
	}
	return g
}

func TestThermalErosionConservesMass(t *testing.T) {
	for _, iters := range []int{1, 5, 25} {
		g := randomGrid(32, 24, int64(iters))
		before := g.Sum()
		if err := ThermalErosion(g, iters, 0.05); err != nil {
			t.Fatalf("ThermalErosion: %v", err)
		}
		after := g.Sum()
		if !mgl64.FloatEqualThreshold(before, after, 1e-9) {
			t.Errorf("%d iterations: mass %v -> %v", iters, before, after)
		}
	}
}

func TestThermalErosionBorderOnlyReceives(t *testing.T) {
	g := randomGrid(16, 16, 3)
	orig := g.Clone()
	if err := ThermalErosion(g, 1, 0.1); err != nil {
		t.Fatalf("ThermalErosion: %v", err)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x != 0 && y != 0 && x != g.Width-1 && y != g.Height-1 {
				continue
			}
			if g.At(x, y) < orig.At(x, y) {
				t.Errorf("border cell (%d,%d) lost height: %v -> %v", x, y, orig.At(x, y), g.At(x, y))
			}
		}
	}
}

func TestThermalErosionPlateauSettles(t *testing.T) {
	// 5x5 field with a raised 3x3 interior block. The block rim sheds
	// (1-talus)/16 to each lower neighbour per round; the block centre has no
	// lower neighbour in the first round.
	g := New(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			g.Set(x, y, 1)
		}
	}
	const talus = 0.5
	if MaxExcess(g, talus) <= 0 {
		t.Fatal("fixture should start unstable")
	}
	if err := ThermalErosion(g, 1, talus); err != nil {
		t.Fatalf("ThermalErosion: %v", err)
	}
	cases := []struct {
		name string
		x, y int
		want float64
	}{
		{"block centre", 2, 2, 1},
		{"block corner", 1, 1, 27.0 / 32},
		{"block edge", 2, 1, 29.0 / 32},
		{"border midpoint", 2, 0, 3.0 / 32},
		{"border corner", 0, 0, 1.0 / 32},
	}
	for _, tc := range cases {
		if v := g.At(tc.x, tc.y); v != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, v, tc.want)
		}
	}

	if err := ThermalErosion(g, 400, talus); err != nil {
		t.Fatalf("ThermalErosion: %v", err)
	}
	if ex := MaxExcess(g, talus); ex > 1e-9 {
		t.Errorf("max excess after 401 rounds = %v, want ~0", ex)
	}
	if !mgl64.FloatEqualThreshold(g.Sum(), 9, 1e-9) {
		t.Errorf("mass = %v, want 9", g.Sum())
	}
}

func TestThermalErosionConverges(t *testing.T) {
	g := randomGrid(32, 32, 1)
	lo, hi := g.MinMax()
	const talus = 0.05

	prev := MaxExcess(g, talus)
	done := 0
	for _, rounds := range []int{100, 400, 2000} {
		if err := ThermalErosion(g, rounds-done, talus); err != nil {
			t.Fatal(err)
		}
		done = rounds
		ex := MaxExcess(g, talus)
		if ex >= prev {
			t.Errorf("after %d rounds max excess %v did not drop below %v", rounds, ex, prev)
		}
		prev = ex
		if l, h := g.MinMax(); l < lo-1e-12 || h > hi+1e-12 {
			t.Fatalf("after %d rounds range [%v, %v] left the initial [%v, %v]", rounds, l, h, lo, hi)
		}
	}
	if prev > 1e-9 {
		t.Errorf("max excess after 2000 rounds = %v, want ~0", prev)
	}
}

func TestThermalErosionSpikeDoesNotOvershoot(t *testing.T) {
	g := New(5, 5)
	g.Set(2, 2, 1)
	if err := ThermalErosion(g, 1, 0); err != nil {
		t.Fatal(err)
	}
	if v := g.At(2, 2); v != 0.5 {
		t.Errorf("spike = %v after one round, want 0.5", v)
	}
	if v := g.At(1, 2); v != 1.0/16 {
		t.Errorf("neighbour = %v, want 1/16", v)
	}
}

func TestThermalErosionOrderIndependent(t *testing.T) {
	// Eroding the transpose must give the transpose of the eroded grid: the
	// delta buffer hides in-round updates from later cells.
	g := randomGrid(12, 9, 11)
	tr := New(g.Height, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tr.Set(y, x, g.At(x, y))
		}
	}
	if err := ThermalErosion(g, 3, 0.2); err != nil {
		t.Fatal(err)
	}
	if err := ThermalErosion(tr, 3, 0.2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !mgl64.FloatEqualThreshold(g.At(x, y), tr.At(y, x), 1e-12) {
				t.Fatalf("(%d,%d): %v vs transposed %v", x, y, g.At(x, y), tr.At(y, x))
			}
		}
	}
}

func TestThermalErosionHighTalusIsNoop(t *testing.T) {
	g := randomGrid(10, 10, 5)
	orig := g.Clone()
	if err := ThermalErosion(g, 4, 1.0); err != nil {
		t.Fatal(err)
	}
	if !g.Equal(orig) {
		t.Error("no difference exceeds talus 1.0 in a [0,1) grid, grid should be unchanged")
	}
}

func TestThermalErosionSmallGrids(t *testing.T) {
	g := New(2, 7)
	g.Set(0, 3, 5)
	orig := g.Clone()
	if err := ThermalErosion(g, 3, 0); err != nil {
		t.Fatal(err)
	}
	if !g.Equal(orig) {
		t.Error("grid without interior cells should be untouched")
	}
}

func TestThermalErosionInvalidArguments(t *testing.T) {
	g := New(4, 4)
	for name, err := range map[string]error{
		"nil grid":           ThermalErosion(nil, 1, 0.1),
		"negative iteration": ThermalErosion(g, -1, 0.1),
		"nan talus":          ThermalErosion(g, 1, math.NaN()),
		"short cells":        ThermalErosion(&Grid{Width: 4, Height: 4, Cells: make([]float64, 15)}, 1, 0.1),
		"negative width":     ThermalErosion(&Grid{Width: -2, Height: -2, Cells: make([]float64, 4)}, 1, 0.1),
	} {
		if !errors.Is(err, config.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}

func BenchmarkThermalErosion(b *testing.B) {
	g := randomGrid(128, 128, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ThermalErosion(g.Clone(), 4, 0.02)
	}
}

package terrain

import (
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats"

	"terragen/internal/config"
	"terragen/internal/grid"
	"terragen/internal/profiling"
)

// Sampler turns chunk coordinates into heightmaps. It owns a registry of
// backends; their caches hold only immutable, key-derived values, so a
// Sampler is safe for concurrent use and its output is a pure function of
// (chunk, size, seed, config).
//
// Chunks are independent of each other: callers may generate many of them
// in parallel against one Sampler.
type Sampler struct {
	mu       sync.RWMutex
	backends map[config.Backend]Backend
	logger   *log.Logger
}

// NewSampler creates a sampler with every built-in backend registered.
func NewSampler() *Sampler {
	s := &Sampler{
		backends: make(map[config.Backend]Backend),
		logger:   log.New(io.Discard, "", 0),
	}
	ds := NewDiamondSquare()
	ds.regions.onEvict = func(n int) {
		s.log().Printf("terragen: diamond-square region cache full, dropped %d regions", n)
	}
	s.Register(config.FallbackFBM, FallbackFBM{})
	s.Register(config.GradientFBM, NewGradientFBM())
	s.Register(config.DiamondSquare, ds)
	s.Register(config.SimplexFBM, NewSimplexFBM())
	s.Register(config.ExternalPerlin, NewExternalPerlin())
	return s
}

// SetLogger redirects diagnostic output. nil discards it.
func (s *Sampler) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

func (s *Sampler) log() *log.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger
}

// Register installs (or replaces) the backend used for kind. A nil backend
// removes the entry.
func (s *Sampler) Register(kind config.Backend, b Backend) {
	s.mu.Lock()
	if b == nil {
		delete(s.backends, kind)
	} else {
		s.backends[kind] = b
	}
	l := s.logger
	s.mu.Unlock()
	l.Printf("terragen: backend %v registered=%t", kind, b != nil)
}

// Backend returns the registered backend for kind.
func (s *Sampler) Backend(kind config.Backend) (Backend, error) {
	s.mu.RLock()
	b, ok := s.backends[kind]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %v", config.ErrUnknownBackend, kind)
	}
	return b, nil
}

func (s *Sampler) prepare(cfg config.Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := s.Backend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if v, ok := b.(ConfigValidator); ok {
		if err := v.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// SampleWorld returns the global-mode height at world coordinates (wx, wy),
// i.e. the value GenerateChunk stores for that world cell when erosion is off.
func (s *Sampler) SampleWorld(seed uint32, wx, wy float64, cfg config.Config) (float64, error) {
	b, err := s.prepare(cfg)
	if err != nil {
		return 0, err
	}
	v := b.Sample(seed, wx/cfg.FBM.Scale, wy/cfg.FBM.Scale, cfg)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: non-finite height at (%v,%v)", config.ErrInvalidArgument, wx, wy)
	}
	return mgl64.Clamp(v, 0, 1), nil
}

// Generate builds the size x size heightmap for chunk (chunkX, chunkY).
//
// In global mode cell (x, y) samples world position
// (chunkX*size+x, chunkY*size+y)/scale, so neighbouring chunks continue the
// same field. In local mode it samples (x, y)/scale and every chunk covers
// the same window.
//
// With erosion enabled the chunk is cut from a region padded by
// ErosionIterations+1 cells per side. After k rounds a cell depends only on
// cells within k steps, so the cropped cells match an erosion of the whole
// world and global-mode chunks remain seamless.
func (s *Sampler) Generate(chunkX, chunkY, size int, seed uint32, cfg config.Config) (*grid.Grid, error) {
	defer profiling.Track("terrain.Generate")()

	if err := config.ValidateSize(size); err != nil {
		return nil, err
	}
	b, err := s.prepare(cfg)
	if err != nil {
		return nil, err
	}

	pad := 0
	if cfg.ApplyErosion && cfg.ErosionIterations > 0 {
		pad = cfg.ErosionIterations + 1
	}

	originX := int64(chunkX) * int64(size)
	originY := int64(chunkY) * int64(size)
	h := s.fill(b, seed, cfg, originX, originY, size, pad)

	if pad > 0 {
		stop := profiling.Track("terrain.Erode")
		err := grid.ThermalErosion(h, cfg.ErosionIterations, cfg.TalusAngle)
		stop()
		if err != nil {
			return nil, err
		}
		if h, err = h.Crop(pad, pad, size, size); err != nil {
			return nil, err
		}
		s.log().Printf("terragen: chunk (%d,%d) eroded %d rounds on %dx%d padded region",
			chunkX, chunkY, cfg.ErosionIterations, size+2*pad, size+2*pad)
	}

	if floats.HasNaN(h.Cells) {
		return nil, fmt.Errorf("%w: chunk (%d,%d) produced non-finite heights", config.ErrInvalidArgument, chunkX, chunkY)
	}
	h.Clamp(0, 1)
	return h, nil
}

// fill samples a (size+2*pad)^2 window whose cell (pad, pad) is chunk-local
// (0, 0).
func (s *Sampler) fill(b Backend, seed uint32, cfg config.Config, originX, originY int64, size, pad int) *grid.Grid {
	side := size + 2*pad
	h := grid.New(side, side)
	scale := cfg.FBM.Scale
	for y := 0; y < side; y++ {
		ly := y - pad
		row := h.Row(y)
		for x := range row {
			lx := x - pad
			var sx, sy float64
			if cfg.Sampling == config.Global {
				sx = float64(originX+int64(lx)) / scale
				sy = float64(originY+int64(ly)) / scale
			} else {
				sx = float64(lx) / scale
				sy = float64(ly) / scale
			}
			row[x] = b.Sample(seed, sx, sy, cfg)
		}
	}
	return h
}

// Package sampler fills a voxel grid from a resolved fractal field.
//
// Each voxel of a region is mapped into fractal space, classified by the
// bound evaluator and materialized as stone, water or air. Solid voxels
// only replace unassigned content, so layers written by earlier passes
// survive; water and air always overwrite.
package sampler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chazu/mathgen/pkg/fractal"
	"github.com/chazu/mathgen/pkg/params"
	"github.com/chazu/mathgen/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrMissingMaterial is returned by New when the registry lacks one of the
// materials the sampler writes.
var ErrMissingMaterial = errors.New("sampler: material not registered")

// Region is an inclusive voxel box plus the water level used for
// non-solid voxels.
type Region struct {
	Min, Max   voxel.Pos
	WaterLevel int
}

// Empty reports whether the region has zero volume.
func (r Region) Empty() bool {
	return r.Area().Empty()
}

// Area returns the voxel extent of the region.
func (r Region) Area() voxel.Area {
	return voxel.NewArea(r.Min, r.Max)
}

// FractalBounds returns the fractal-space box the region maps onto under p.
func (r Region) FractalBounds(p params.Parameters) sdf.Box3 {
	a := p.ToFractal(v3.Vec{X: float64(r.Min.X), Y: float64(r.Min.Y), Z: float64(r.Min.Z)})
	b := p.ToFractal(v3.Vec{X: float64(r.Max.X), Y: float64(r.Max.Y), Z: float64(r.Max.Z)})
	return sdf.Box3{
		Min: v3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: v3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// Stats counts what a sampling pass wrote.
type Stats struct {
	Stone int // solid voxels written as stone
	Kept  int // solid voxels left alone because they were already assigned
	Water int
	Air   int
}

// Total returns the number of voxels visited.
func (s Stats) Total() int {
	return s.Stone + s.Kept + s.Water + s.Air
}

func (s *Stats) add(o Stats) {
	s.Stone += o.Stone
	s.Kept += o.Kept
	s.Water += o.Water
	s.Air += o.Air
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Sampler materializes one resolved parameter set. It holds no mutable
// state and may be used from multiple goroutines.
type Sampler struct {
	params params.Parameters
	field  fractal.Field

	stone voxel.Node
	water voxel.Node
	air   voxel.Node

	logger *slog.Logger
}

// New binds p's evaluator and resolves the stone, water and air materials
// from reg.
func New(p params.Parameters, reg voxel.Registry, opts ...Option) (*Sampler, error) {
	s := &Sampler{
		params: p,
		field:  p.Field(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, m := range []struct {
		name string
		dst  *voxel.Node
	}{
		{voxel.MaterialStone, &s.stone},
		{voxel.MaterialWater, &s.water},
		{voxel.MaterialAir, &s.air},
	} {
		mat, ok := reg.Lookup(m.name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingMaterial, m.name)
		}
		*m.dst = mat.Node()
	}
	return s, nil
}

// Parameters returns the parameters the sampler was built with.
func (s *Sampler) Parameters() params.Parameters { return s.params }

// Field returns the bound field.
func (s *Sampler) Field() fractal.Field { return s.field }

// Shape returns the field as an sdfx solid bounded by r's fractal-space box.
// Sampling classifies voxels through this value: negative is solid.
func (s *Sampler) Shape(r Region) sdf.SDF3 {
	return s.field.WithBounds(r.FractalBounds(s.params))
}

// Sample materializes every voxel of r into g.
func (s *Sampler) Sample(r Region, g voxel.Grid) Stats {
	start := time.Now()
	st := s.sampleSlab(s.Shape(r), r, r.Min.Z, r.Max.Z, g)
	s.finish(r, st, time.Since(start))
	return st
}

// sampleSlab walks z in [z0, z1], then x, with y innermost along the
// grid's Y stride.
func (s *Sampler) sampleSlab(shape sdf.SDF3, r Region, z0, z1 int, g voxel.Grid) Stats {
	var st Stats
	if r.Empty() {
		return st
	}

	c := s.params.Center
	scale := s.params.Scale
	for z := z0; z <= z1; z++ {
		fz := (float64(z) - c.Z) * scale
		for x := r.Min.X; x <= r.Max.X; x++ {
			fx := (float64(x) - c.X) * scale
			i := g.Index(x, r.Min.Y, z)
			for y := r.Min.Y; y <= r.Max.Y; y++ {
				fy := (float64(y) - c.Y) * scale
				switch {
				case shape.Evaluate(v3.Vec{X: fx, Y: fy, Z: fz}) < 0:
					if g.ContentAt(i) == voxel.ContentIgnore {
						g.SetNode(i, s.stone)
						st.Stone++
					} else {
						st.Kept++
					}
				case y <= r.WaterLevel:
					g.SetNode(i, s.water)
					st.Water++
				default:
					g.SetNode(i, s.air)
					st.Air++
				}
				i = g.Advance(i, voxel.AxisY, 1)
			}
		}
	}
	return st
}

func (s *Sampler) finish(r Region, st Stats, d time.Duration) {
	kind := s.params.Kind.String()
	record(kind, st, d)
	s.logger.Debug("sampled region",
		"kind", kind,
		"min", r.Min.String(),
		"max", r.Max.String(),
		"water_level", r.WaterLevel,
		"stone", st.Stone,
		"kept", st.Kept,
		"water", st.Water,
		"air", st.Air,
		"duration", d,
	)
}

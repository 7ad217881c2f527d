// Package params turns a loosely-typed generator configuration into the
// strongly-typed Parameters the sampler runs with.
//
// Resolution is a pure pipeline: parse the raw map, select the generator
// kind, apply that kind's defaults row, then apply the center fallback.
// It never fails; malformed or missing values fall back to defaults.
package params

import (
	"maps"
	"slices"

	"github.com/chazu/mathgen/pkg/fractal"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Configuration keys.
const (
	KeyGenerator  = "generator"
	KeyInvert     = "invert"
	KeySize       = "size"
	KeyScale      = "scale"
	KeyDistance   = "distance"
	KeyIterations = "iterations"
	KeyCenter     = "center"
)

// DefaultMapLimit is the world coordinate limit the size defaults derive from.
const DefaultMapLimit = 31000

// RawConfiguration is the untyped generator configuration. Values may be
// numbers (any Go numeric type or json.Number), strings, booleans, and for
// "center" a map with x, y and z members or a three element list.
type RawConfiguration map[string]any

// Parameters is a resolved generator configuration. Values are never
// mutated after Resolve returns.
type Parameters struct {
	Kind       fractal.Kind
	Center     v3.Vec  // origin of the fractal-space transform
	Size       float64 // nominal extent of the generated mass in voxels
	Scale      float64 // voxel-to-fractal contraction factor
	Distance   float64 // threshold passed to the evaluator
	Iterations int
	Invert     bool

	constants fractal.Constants
}

// Constants returns a copy of the kind-specific extra constants.
func (p Parameters) Constants() fractal.Constants {
	return p.constants.Clone()
}

// Constant returns one extra constant.
func (p Parameters) Constant(name string) (float64, bool) {
	v, ok := p.constants[name]
	return v, ok
}

// Equal reports whether p and o resolve to the same field.
func (p Parameters) Equal(o Parameters) bool {
	return p.Kind == o.Kind &&
		p.Center == o.Center &&
		p.Size == o.Size &&
		p.Scale == o.Scale &&
		p.Distance == o.Distance &&
		p.Iterations == o.Iterations &&
		p.Invert == o.Invert &&
		maps.Equal(p.constants, o.constants)
}

// Field binds the selected evaluator with the resolved threshold,
// iteration count and invert flag.
func (p Parameters) Field() fractal.Field {
	fn := fractal.Bind(p.Kind, p.constants)
	return fractal.NewField(fn, p.Distance, p.Iterations, p.Invert)
}

// ToFractal maps a voxel coordinate into fractal space: (v - center) * scale.
func (p Parameters) ToFractal(v v3.Vec) v3.Vec {
	return v3.Vec{
		X: (v.X - p.Center.X) * p.Scale,
		Y: (v.Y - p.Center.Y) * p.Scale,
		Z: (v.Z - p.Center.Z) * p.Scale,
	}
}

// Resolver resolves configurations against a world coordinate limit.
type Resolver struct {
	// MapLimit is the world coordinate limit; zero means DefaultMapLimit.
	MapLimit float64
}

func (r Resolver) mapLimit() float64 {
	if r.MapLimit == 0 {
		return DefaultMapLimit
	}
	return r.MapLimit
}

// Resolve resolves raw with the default map limit.
func Resolve(raw RawConfiguration) Parameters {
	return Resolver{}.Resolve(raw)
}

// Resolve converts raw into Parameters. It only reads raw, and resolving
// the same configuration twice yields identical results.
func (r Resolver) Resolve(raw RawConfiguration) Parameters {
	f := parse(raw)
	kind, row := selectKind(f.generator)
	p := applyDefaults(f, kind, row, r.mapLimit())
	p.Center = resolveCenter(f, row, p)
	return p
}

// Encode is the inverse of Resolve: it writes every resolved field back
// under its configuration key, so Resolve(Encode(p)) == p.
func Encode(p Parameters) RawConfiguration {
	raw := RawConfiguration{
		KeyGenerator:  p.Kind.String(),
		KeyInvert:     p.Invert,
		KeySize:       p.Size,
		KeyScale:      p.Scale,
		KeyDistance:   p.Distance,
		KeyIterations: p.Iterations,
		KeyCenter: map[string]any{
			"x": p.Center.X,
			"y": p.Center.Y,
			"z": p.Center.Z,
		},
	}
	for name, v := range p.constants {
		raw[name] = v
	}
	return raw
}

// EncodeChanges is Encode without the fields p's kind would default to
// anyway. Resolving the result with r still yields p, and replacing its
// generator does not drag the old kind's defaults along.
func (r Resolver) EncodeChanges(p Parameters) RawConfiguration {
	raw := Encode(p)

	// Center depends on size and invert, scale on size and distance on both,
	// so dependents are tried before what they derive from.
	keys := []string{KeyCenter, KeyDistance, KeyScale, KeySize, KeyIterations, KeyInvert}
	keys = append(keys, slices.Sorted(maps.Keys(p.constants))...)
	for _, key := range keys {
		v := raw[key]
		delete(raw, key)
		if !r.Resolve(raw).Equal(p) {
			raw[key] = v
		}
	}
	return raw
}

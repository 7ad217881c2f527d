package params

import (
	"github.com/chazu/mathgen/pkg/fractal"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// defaultGenerator is selected when the configuration names none.
const defaultGenerator = fractal.KindMandelbox

// defaults is one row of the per-kind defaulting table. Each function sees
// the values resolved before it: size, then scale, then distance.
type defaults struct {
	invert     bool
	iterations int
	size       func(mapLimit float64) float64
	scale      func(size float64) float64
	distance   func(size, scale float64) float64
	// center is nil when the kind defers to the generic fallback.
	center func(size float64) v3.Vec
}

func fullSize(mapLimit float64) float64 { return mapLimit - 1000 }
func halfSize(mapLimit float64) float64 { return (mapLimit - 1000) / 2 }
func inverseSize(size float64) float64  { return 1 / size }
func sameAsScale(_, scale float64) float64 {
	return scale
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

func constantDistance(v float64) func(float64, float64) float64 {
	return func(float64, float64) float64 { return v }
}

var table = map[fractal.Kind]defaults{
	fractal.KindSphere: {
		iterations: 10,
		size:       constant(100),
		scale:      constant(1),
		distance:   func(size, _ float64) float64 { return size },
	},
	fractal.KindMengerSponge: {
		invert:     true,
		iterations: 10,
		size:       halfSize,
		scale:      inverseSize,
		distance:   constantDistance(0.0003),
		center: func(s float64) v3.Vec {
			return v3.Vec{X: -s, Y: -s, Z: -s}
		},
	},
	fractal.KindMandelbox: {
		iterations: 10,
		size:       constant(1000),
		scale:      inverseSize,
		distance:   constantDistance(0.01),
		center: func(s float64) v3.Vec {
			return v3.Vec{X: s * 0.3, Y: -s * 0.6, Z: s * 0.5}
		},
	},
	fractal.KindMandelbulb: {
		invert:     true,
		iterations: 10,
		size:       fullSize,
		scale:      inverseSize,
		distance:   sameAsScale,
		center: func(s float64) v3.Vec {
			return v3.Vec{X: 5, Y: -s - 5, Z: 0}
		},
	},
	fractal.KindHypercomplex: {
		invert:     true,
		iterations: 5,
		size:       fullSize,
		scale:      constant(0.00008),
		distance:   sameAsScale,
		center: func(float64) v3.Vec {
			return v3.Vec{X: 0, Y: -10001, Z: 0}
		},
	},
	fractal.KindMandelboxVaryScale4D: {
		invert:     true,
		iterations: 50,
		size:       fullSize,
		scale:      constant(1),
		distance:   sameAsScale,
	},
	fractal.KindBristorbrot: {
		invert:     true,
		iterations: 10,
		size:       fullSize,
		scale:      inverseSize,
		distance:   sameAsScale,
	},
}

// unknownDefaults applies when the generator name is not recognised. The
// sphere evaluator runs with generic world-sized defaults.
var unknownDefaults = defaults{
	iterations: 10,
	size:       fullSize,
	scale:      inverseSize,
	distance:   sameAsScale,
}

// selectKind picks the kind and its defaults row.
func selectKind(generator *string) (fractal.Kind, defaults) {
	if generator == nil || *generator == "" {
		return defaultGenerator, table[defaultGenerator]
	}
	kind, ok := fractal.ParseKind(*generator)
	if !ok {
		return fractal.KindSphere, unknownDefaults
	}
	return kind, table[kind]
}

// applyDefaults resolves every field except center.
func applyDefaults(f fields, kind fractal.Kind, row defaults, mapLimit float64) Parameters {
	p := Parameters{Kind: kind}

	p.Invert = row.invert
	if f.invert != nil {
		p.Invert = *f.invert
	}

	p.Size = row.size(mapLimit)
	if f.size != nil {
		p.Size = *f.size
	}

	p.Scale = row.scale(p.Size)
	if f.scale != nil {
		p.Scale = *f.scale
	}

	p.Distance = row.distance(p.Size, p.Scale)
	if f.distance != nil {
		p.Distance = *f.distance
	}

	p.Iterations = row.iterations
	if f.iterations != nil {
		p.Iterations = *f.iterations
	}

	p.constants = fractal.DefaultConstants(kind)
	for name := range p.constants {
		if v, ok := f.constants[name]; ok {
			p.constants[name] = v
		}
	}
	return p
}

// resolveCenter applies, in order: an explicit center, the kind's default
// center, the generic fallback. The first that applies wins.
func resolveCenter(f fields, row defaults, p Parameters) v3.Vec {
	if f.center != nil {
		return *f.center
	}
	if row.center != nil {
		return row.center(p.Size)
	}
	return fallbackCenter(p.Size, p.Invert)
}

// fallbackCenter is the generic center: (3, -size-5, 3), raised by ten
// voxels when invert is set.
func fallbackCenter(size float64, invert bool) v3.Vec {
	inv := 0.0
	if invert {
		inv = 1
	}
	return v3.Vec{X: 3, Y: -size + (-5 - (-inv * 10)), Z: 3}
}

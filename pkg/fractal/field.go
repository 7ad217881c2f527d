package fractal

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ sdf.SDF3 = Field{}

// Field is a bound evaluator together with the threshold, iteration count
// and invert flag it is always called with. The zero Field is not usable;
// build one with NewField.
type Field struct {
	fn         Func
	threshold  float64
	iterations int
	invert     bool
	bounds     sdf.Box3
}

// NewField binds fn. Negative iteration counts are clamped to zero.
func NewField(fn Func, threshold float64, iterations int, invert bool) Field {
	if iterations < 0 {
		iterations = 0
	}
	if fn == nil {
		fn = Sphere
	}
	return Field{
		fn:         fn,
		threshold:  threshold,
		iterations: iterations,
		invert:     invert,
	}
}

// WithBounds returns a copy of f reporting b as its bounding box.
func (f Field) WithBounds(b sdf.Box3) Field {
	f.bounds = b
	return f
}

// Inside is the raw evaluator result at a fractal-space point.
func (f Field) Inside(x, y, z float64) bool {
	return f.fn(x, y, z, f.threshold, f.iterations)
}

// Solid applies the invert flag to Inside: exactly one of Solid and
// !Solid holds for every point, and flipping invert flips it.
func (f Field) Solid(x, y, z float64) bool {
	return f.Inside(x, y, z) != f.invert
}

// Evaluate implements sdf.SDF3 with a two-valued field: -1 on solid
// points, +1 elsewhere.
func (f Field) Evaluate(p v3.Vec) float64 {
	if f.Solid(p.X, p.Y, p.Z) {
		return -1
	}
	return 1
}

// BoundingBox implements sdf.SDF3.
func (f Field) BoundingBox() sdf.Box3 {
	return f.bounds
}

// Threshold returns the bound distance threshold.
func (f Field) Threshold() float64 { return f.threshold }

// Iterations returns the bound, clamped iteration count.
func (f Field) Iterations() int { return f.iterations }

// Inverted reports whether the field inverts evaluator results.
func (f Field) Inverted() bool { return f.invert }

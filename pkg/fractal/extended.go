package fractal

import "math"

// Names of the extra constants read by the extension generators.
const (
	ConstPower          = "power"
	ConstConstantFactor = "constantFactor"
	ConstMScale         = "mscale"
	ConstScaleVary      = "scaleVary"
	ConstFold           = "fold"
	ConstRPower         = "rPower"
	ConstMinR           = "minR"
	ConstWAdd           = "wadd"
)

const (
	// escapeRadius bounds the polynomial formulas.
	escapeRadius = 4.0
	// boxEscapeRadius bounds the mandelbox family, which grows linearly.
	boxEscapeRadius = 1024.0
)

// Constants holds named per-generator scalars.
type Constants map[string]float64

// Get returns the named constant, or def when it is absent.
func (c Constants) Get(name string, def float64) float64 {
	if v, ok := c[name]; ok {
		return v
	}
	return def
}

// Clone returns an independent copy of c.
func (c Constants) Clone() Constants {
	if c == nil {
		return nil
	}
	out := make(Constants, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// merge returns a copy of c overlaid with the entries of o whose names are
// already present in c.
func (c Constants) merge(o Constants) Constants {
	out := c.Clone()
	if out == nil {
		out = Constants{}
	}
	for k := range out {
		if v, ok := o[k]; ok {
			out[k] = v
		}
	}
	return out
}

// DefaultConstants returns the constants a kind reads, with their defaults.
// Core kinds read none and get an empty set.
func DefaultConstants(kind Kind) Constants {
	switch kind {
	case KindMandelbulb:
		return Constants{ConstPower: 9, ConstConstantFactor: 1}
	case KindHypercomplex, KindBristorbrot:
		return Constants{ConstConstantFactor: 1}
	case KindMandelboxVaryScale4D:
		return Constants{
			ConstMScale:         1,
			ConstScaleVary:      0.1,
			ConstFold:           1,
			ConstRPower:         1,
			ConstMinR:           0.5,
			ConstWAdd:           0,
			ConstConstantFactor: 1,
		}
	}
	return Constants{}
}

// distanceEstimate is the usual 0.5*r*ln(r)/dr bound for quadratic and
// power formulas. Points that never left the origin are inside.
func distanceEstimate(r, dr float64) float64 {
	if r <= 0 || dr == 0 {
		return 0
	}
	return 0.5 * math.Log(r) * r / dr
}

// Mandelbulb returns the power-n Mandelbulb in spherical coordinates.
func Mandelbulb(power, constantFactor float64) Func {
	return func(x, y, z, threshold float64, iterations int) bool {
		cx, cy, cz := x*constantFactor, y*constantFactor, z*constantFactor
		dr := 1.0
		r := math.Sqrt(x*x + y*y + z*z)
		for n := 0; n < iterations && r < escapeRadius; n++ {
			if r == 0 {
				x, y, z = cx, cy, cz
				r = math.Sqrt(x*x + y*y + z*z)
				continue
			}
			theta := math.Acos(z/r) * power
			phi := math.Atan2(y, x) * power
			zr := math.Pow(r, power)
			dr = math.Pow(r, power-1)*power*dr + 1

			sinTheta := math.Sin(theta)
			x = zr*sinTheta*math.Cos(phi) + cx
			y = zr*sinTheta*math.Sin(phi) + cy
			z = zr*math.Cos(theta) + cz
			r = math.Sqrt(x*x + y*y + z*z)
		}
		return distanceEstimate(r, dr) < threshold
	}
}

// Hypercomplex returns the quadratic hypercomplex iteration on (x, y, z, w)
// with w starting at zero.
func Hypercomplex(constantFactor float64) Func {
	return func(x, y, z, threshold float64, iterations int) bool {
		cx, cy, cz := x*constantFactor, y*constantFactor, z*constantFactor
		w := 0.0
		dr := 1.0
		r := math.Sqrt(x*x + y*y + z*z)
		for n := 0; n < iterations && r < escapeRadius; n++ {
			dr = 2*r*dr + 1
			nx := x*x - y*y - z*z - w*w + cx
			ny := 2*x*y - 2*w*z + cy
			nz := 2*x*z - 2*y*w + cz
			w = 2*x*w + 2*y*z
			x, y, z = nx, ny, nz
			r = math.Sqrt(x*x + y*y + z*z + w*w)
		}
		return distanceEstimate(r, dr) < threshold
	}
}

// Bristorbrot returns the Bristor variant of the 3D quadratic Mandelbrot.
func Bristorbrot(constantFactor float64) Func {
	return func(x, y, z, threshold float64, iterations int) bool {
		cx, cy, cz := x*constantFactor, y*constantFactor, z*constantFactor
		dr := 1.0
		r := math.Sqrt(x*x + y*y + z*z)
		for n := 0; n < iterations && r < escapeRadius; n++ {
			dr = 2*r*dr + 1
			nx := x*x - y*y - z*z + cx
			ny := y*(2*x-z) + cy
			nz := z*(2*x+y) + cz
			x, y, z = nx, ny, nz
			r = math.Sqrt(x*x + y*y + z*z)
		}
		return distanceEstimate(r, dr) < threshold
	}
}

// Vary4D configures MandelboxVaryScale4D.
type Vary4D struct {
	Scale          float64 // starting box scale
	ScaleVary      float64 // per-iteration drift of the scale away from 1
	Fold           float64 // box folding limit, applied to all four axes
	RPower         float64 // exponent applied to the squared 4D radius
	MinR           float64 // inner radius of the sphere fold
	WAdd           float64 // constant added to w after each iteration
	ConstantFactor float64
}

// MandelboxVaryScale4D returns a four dimensional mandelbox whose scale
// drifts by ScaleVary*(|scale|-1) every iteration.
func MandelboxVaryScale4D(v Vary4D) Func {
	minR2 := v.MinR * v.MinR
	return func(x, y, z, threshold float64, iterations int) bool {
		cx, cy, cz := x*v.ConstantFactor, y*v.ConstantFactor, z*v.ConstantFactor
		w := 0.0
		scale := v.Scale
		dr := 1.0
		r := math.Sqrt(x*x + y*y + z*z)
		for n := 0; n < iterations && r < boxEscapeRadius; n++ {
			scale += v.ScaleVary * (math.Abs(scale) - 1)

			x = math.Abs(x+v.Fold) - math.Abs(x-v.Fold) - x
			y = math.Abs(y+v.Fold) - math.Abs(y-v.Fold) - y
			z = math.Abs(z+v.Fold) - math.Abs(z-v.Fold) - z
			w = math.Abs(w+v.Fold) - math.Abs(w-v.Fold) - w

			rr := math.Pow(x*x+y*y+z*z+w*w, v.RPower)
			m := scale
			if rr < minR2 {
				m = scale / minR2
			} else if rr < 1 {
				m = scale / rr
			}

			x = x*m + cx
			y = y*m + cy
			z = z*m + cz
			w = w*m + v.WAdd
			dr = dr*math.Abs(m) + 1
			r = math.Sqrt(x*x + y*y + z*z + w*w)
		}
		return r/math.Abs(dr) < threshold
	}
}

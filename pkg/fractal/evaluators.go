package fractal

import "math"

const (
	// mandelboxPreScale enlarges the mandelbox in world units. It is applied
	// to the point and the threshold once, before iterating.
	mandelboxPreScale = 7.0
	mandelboxScale    = 2.0
	minRadius2        = 0.25

	mengerScale = 3.0
	// mengerBailout is the squared radius past which a point has escaped.
	mengerBailout = 9.0
)

var (
	_ Func = Sphere
	_ Func = MengerSponge
	_ Func = Mandelbox
)

// Sphere reports whether the point is closer than threshold to the origin.
// It ignores iterations.
func Sphere(x, y, z, threshold float64, _ int) bool {
	return math.Sqrt(x*x+y*y+z*z) < threshold
}

// MengerSponge folds the point into the sponge's fundamental domain until it
// escapes or iterations run out, then compares the rescaled radius against
// threshold.
func MengerSponge(x, y, z, threshold float64, iterations int) bool {
	r := x*x + y*y + z*z
	i := 0
	for ; i < iterations && r < mengerBailout; i++ {
		x, y, z = math.Abs(x), math.Abs(y), math.Abs(z)

		// Descending order x >= y >= z. The three swaps must run in this order.
		if x < y {
			x, y = y, x
		}
		if x < z {
			x, z = z, x
		}
		if y < z {
			y, z = z, y
		}

		x = mengerScale*x - (mengerScale - 1)
		y = mengerScale*y - (mengerScale - 1)
		z = mengerScale * z
		if z > 0.5*(mengerScale-1) {
			z -= mengerScale - 1
		}
		r = x*x + y*y + z*z
	}
	return math.Sqrt(r)*math.Pow(mengerScale, float64(-i)) < threshold
}

// Mandelbox iterates box folding and sphere inversion and compares the
// distance estimate r/|dr| against threshold.
//
// fixedRadius2 starts at 1 and is multiplied up every time the inversion
// branch runs; it is not reset between iterations.
func Mandelbox(x, y, z, threshold float64, iterations int) bool {
	x *= mandelboxPreScale
	y *= mandelboxPreScale
	z *= mandelboxPreScale
	threshold *= mandelboxPreScale

	posX, posY, posZ := x, y, z
	dr := 1.0
	fixedRadius2 := 1.0

	for n := 0; n < iterations; n++ {
		x = boxFold(x)
		y = boxFold(y)
		z = boxFold(z)

		r2 := x*x + y*y + z*z
		if r2 < minRadius2 {
			x = x * fixedRadius2 / minRadius2
			y = y * fixedRadius2 / minRadius2
			z = z * fixedRadius2 / minRadius2
			dr = dr * fixedRadius2 / minRadius2
		} else if r2 < fixedRadius2 {
			x = x * fixedRadius2 / r2
			y = y * fixedRadius2 / r2
			z = z * fixedRadius2 / r2
			fixedRadius2 *= fixedRadius2 / r2
		}

		x = x*mandelboxScale + posX
		y = y*mandelboxScale + posY
		z = z*mandelboxScale + posZ
		dr *= mandelboxScale
	}

	r := math.Sqrt(x*x + y*y + z*z)
	return r/math.Abs(dr) < threshold
}

// boxFold reflects v into [-1, 1].
func boxFold(v float64) float64 {
	if v > 1 {
		return 2 - v
	}
	if v < -1 {
		return -2 - v
	}
	return v
}

package fractal

// Func is the common evaluator signature. It reports whether the point
// (x, y, z) lies inside the fractal for the given threshold, iterating the
// underlying transform at most iterations times.
type Func func(x, y, z, threshold float64, iterations int) bool

// Kind enumerates the generator kinds. The set is closed: new generators
// are added here and in Bind, never in the sampler.
type Kind int

const (
	KindSphere Kind = iota
	KindMengerSponge
	KindMandelbox
	KindMandelbulb           // power-n Mandelbulb
	KindHypercomplex         // 4D hypercomplex quadratic
	KindMandelboxVaryScale4D // 4D mandelbox with a drifting scale
	KindBristorbrot
)

var kindNames = [...]string{
	KindSphere:               "sphere",
	KindMengerSponge:         "mengersponge",
	KindMandelbox:            "mandelbox",
	KindMandelbulb:           "mandelbulb2",
	KindHypercomplex:         "hypercomplex",
	KindMandelboxVaryScale4D: "mandelboxVaryScale4D",
	KindBristorbrot:          "bristorbrot",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Extension reports whether the kind is one of the optional escape-time
// generators that read extra constants.
func (k Kind) Extension() bool {
	return k >= KindMandelbulb && int(k) < len(kindNames)
}

// ParseKind maps a configuration name to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindSphere, false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Bind returns the evaluator for kind. The three core kinds ignore c.
// Extension kinds close over a private copy of c with missing entries
// filled from DefaultConstants, so later changes to c have no effect.
// Out-of-range kinds bind the sphere.
func Bind(kind Kind, c Constants) Func {
	switch kind {
	case KindSphere:
		return Sphere
	case KindMengerSponge:
		return MengerSponge
	case KindMandelbox:
		return Mandelbox
	}

	consts := DefaultConstants(kind).merge(c)
	switch kind {
	case KindMandelbulb:
		return Mandelbulb(consts[ConstPower], consts[ConstConstantFactor])
	case KindHypercomplex:
		return Hypercomplex(consts[ConstConstantFactor])
	case KindMandelboxVaryScale4D:
		return MandelboxVaryScale4D(Vary4D{
			Scale:          consts[ConstMScale],
			ScaleVary:      consts[ConstScaleVary],
			Fold:           consts[ConstFold],
			RPower:         consts[ConstRPower],
			MinR:           consts[ConstMinR],
			WAdd:           consts[ConstWAdd],
			ConstantFactor: consts[ConstConstantFactor],
		})
	case KindBristorbrot:
		return Bristorbrot(consts[ConstConstantFactor])
	}
	return Sphere
}

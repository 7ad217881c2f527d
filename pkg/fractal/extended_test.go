package fractal

import "testing"

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok {
			t.Fatalf("ParseKind(%q) not found", k)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k, got, k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	k, ok := ParseKind("julia")
	if ok {
		t.Fatal("ParseKind(julia) reported ok")
	}
	if k != KindSphere {
		t.Errorf("ParseKind(julia) = %v, want sphere", k)
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestKindExtension(t *testing.T) {
	core := map[Kind]bool{KindSphere: true, KindMengerSponge: true, KindMandelbox: true}
	for _, k := range Kinds() {
		if k.Extension() == core[k] {
			t.Errorf("%s.Extension() = %v", k, k.Extension())
		}
	}
}

func TestDefaultConstants(t *testing.T) {
	if len(DefaultConstants(KindMandelbox)) != 0 {
		t.Error("core kinds should not carry constants")
	}
	c := DefaultConstants(KindMandelbulb)
	if c.Get(ConstPower, 0) != 9 {
		t.Errorf("mandelbulb power = %v, want 9", c[ConstPower])
	}
	v := DefaultConstants(KindMandelboxVaryScale4D)
	for _, name := range []string{ConstMScale, ConstScaleVary, ConstFold, ConstRPower, ConstMinR, ConstWAdd, ConstConstantFactor} {
		if _, ok := v[name]; !ok {
			t.Errorf("vary4D defaults missing %q", name)
		}
	}
}

func TestBindCopiesConstants(t *testing.T) {
	c := Constants{ConstPower: 2}
	fn := Bind(KindMandelbulb, c)
	before := fn(0.5, 0.3, 0.1, 0.01, 10)
	c[ConstPower] = 8
	if after := fn(0.5, 0.3, 0.1, 0.01, 10); after != before {
		t.Error("bound evaluator changed after mutating the constants map")
	}
}

func TestExtensionsOriginAndFarPoint(t *testing.T) {
	far := map[Kind][3]float64{
		KindMandelbulb:           {10, 0, 0},
		KindHypercomplex:         {5, 0, 0},
		KindBristorbrot:          {5, 0, 0},
		KindMandelboxVaryScale4D: {2000, 0, 0},
	}
	for k, p := range far {
		fn := Bind(k, nil)
		t.Run(k.String(), func(t *testing.T) {
			if !fn(0, 0, 0, 0.01, 10) {
				t.Error("origin should be inside")
			}
			if fn(p[0], p[1], p[2], 0.01, 10) {
				t.Errorf("%v should be outside", p)
			}
		})
	}
}

func TestDistanceEstimate(t *testing.T) {
	if distanceEstimate(0, 1) != 0 {
		t.Error("zero radius should estimate 0")
	}
	if distanceEstimate(2, 0) != 0 {
		t.Error("zero derivative should estimate 0")
	}
	if distanceEstimate(0.5, 1) >= 0 {
		t.Error("radius below 1 should estimate a negative distance")
	}
}

func TestConstantsCloneNil(t *testing.T) {
	var c Constants
	if c.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
	if c.Get("power", 3) != 3 {
		t.Error("Get on nil should return the default")
	}
}

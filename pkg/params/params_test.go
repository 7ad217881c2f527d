package params

import (
	"encoding/json"
	"testing"

	"github.com/chazu/mathgen/pkg/fractal"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsPerKind(t *testing.T) {
	const limit = DefaultMapLimit
	tests := []struct {
		name       string
		raw        RawConfiguration
		kind       fractal.Kind
		invert     bool
		size       float64
		scale      float64
		distance   float64
		iterations int
		center     v3.Vec
	}{
		{
			name: "unset generator selects mandelbox",
			raw:  RawConfiguration{},
			kind: fractal.KindMandelbox, size: 1000, scale: 1.0 / 1000, distance: 0.01, iterations: 10,
			center: v3.Vec{X: 300, Y: -600, Z: 500},
		},
		{
			name: "mengersponge",
			raw:  RawConfiguration{"generator": "mengersponge"},
			kind: fractal.KindMengerSponge, invert: true, size: (limit - 1000) / 2,
			scale: 1 / ((limit - 1000) / 2.0), distance: 0.0003, iterations: 10,
			center: v3.Vec{X: -15000, Y: -15000, Z: -15000},
		},
		{
			name: "sphere uses the center fallback",
			raw:  RawConfiguration{"generator": "sphere"},
			kind: fractal.KindSphere, size: 100, scale: 1, distance: 100, iterations: 10,
			center: v3.Vec{X: 3, Y: -105, Z: 3},
		},
		{
			name: "sphere fallback shifts with invert",
			raw:  RawConfiguration{"generator": "sphere", "invert": true},
			kind: fractal.KindSphere, invert: true, size: 100, scale: 1, distance: 100, iterations: 10,
			center: v3.Vec{X: 3, Y: -95, Z: 3},
		},
		{
			name: "unknown generator falls back to sphere",
			raw:  RawConfiguration{"generator": "julia"},
			kind: fractal.KindSphere, size: limit - 1000, scale: 1.0 / (limit - 1000),
			distance: 1.0 / (limit - 1000), iterations: 10,
			center: v3.Vec{X: 3, Y: -(limit - 1000) - 5, Z: 3},
		},
		{
			name: "hypercomplex",
			raw:  RawConfiguration{"generator": "hypercomplex"},
			kind: fractal.KindHypercomplex, invert: true, size: limit - 1000, scale: 0.00008,
			distance: 0.00008, iterations: 5, center: v3.Vec{X: 0, Y: -10001, Z: 0},
		},
		{
			name: "mandelboxVaryScale4D",
			raw:  RawConfiguration{"generator": "mandelboxVaryScale4D"},
			kind: fractal.KindMandelboxVaryScale4D, invert: true, size: limit - 1000, scale: 1,
			distance: 1, iterations: 50, center: v3.Vec{X: 3, Y: -(limit - 1000) + 5, Z: 3},
		},
		{
			name: "mandelbulb2",
			raw:  RawConfiguration{"generator": "mandelbulb2"},
			kind: fractal.KindMandelbulb, invert: true, size: limit - 1000, scale: 1.0 / (limit - 1000),
			distance: 1.0 / (limit - 1000), iterations: 10, center: v3.Vec{X: 5, Y: -(limit - 1000) - 5, Z: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.raw)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.invert, p.Invert)
			assert.Equal(t, tt.size, p.Size)
			assert.Equal(t, tt.scale, p.Scale)
			assert.Equal(t, tt.distance, p.Distance)
			assert.Equal(t, tt.iterations, p.Iterations)
			assert.Equal(t, tt.center, p.Center)
		})
	}
}

func TestResolveExplicitValuesWin(t *testing.T) {
	p := Resolve(RawConfiguration{
		"generator":  "mandelbox",
		"invert":     true,
		"size":       500.0,
		"distance":   0.02,
		"iterations": 7,
		"center":     map[string]any{"x": 1.5, "y": -2, "z": 3},
	})
	assert.True(t, p.Invert)
	assert.Equal(t, 500.0, p.Size)
	assert.Equal(t, 1.0/500, p.Scale, "scale defaults from the explicit size")
	assert.Equal(t, 0.02, p.Distance)
	assert.Equal(t, 7, p.Iterations)
	assert.Equal(t, v3.Vec{X: 1.5, Y: -2, Z: 3}, p.Center)
}

func TestResolveWeaklyTypedValues(t *testing.T) {
	p := Resolve(RawConfiguration{
		"generator":  "sphere",
		"invert":     "true",
		"size":       "250",
		"scale":      json.Number("0.5"),
		"iterations": 12.0,
		"center":     []any{"1", 2, 3.5},
	})
	assert.True(t, p.Invert)
	assert.Equal(t, 250.0, p.Size)
	assert.Equal(t, 0.5, p.Scale)
	assert.Equal(t, 250.0, p.Distance)
	assert.Equal(t, 12, p.Iterations)
	assert.Equal(t, v3.Vec{X: 1, Y: 2, Z: 3.5}, p.Center)
}

func TestResolveMalformedValuesFallBack(t *testing.T) {
	p := Resolve(RawConfiguration{
		"generator":  "sphere",
		"size":       "lots",
		"invert":     []int{1, 2},
		"iterations": map[string]any{"n": 1},
		"center":     "origin",
	})
	assert.Equal(t, 100.0, p.Size)
	assert.False(t, p.Invert)
	assert.Equal(t, 10, p.Iterations)
	assert.Equal(t, v3.Vec{X: 3, Y: -105, Z: 3}, p.Center)
}

func TestResolveCenterString(t *testing.T) {
	tests := []struct {
		in   string
		want v3.Vec
	}{
		{"1,2,3", v3.Vec{X: 1, Y: 2, Z: 3}},
		{" -4.5, 0 ,7 ", v3.Vec{X: -4.5, Y: 0, Z: 7}},
		{"1,2", v3.Vec{X: 3, Y: -105, Z: 3}},
		{"1,2,x", v3.Vec{X: 3, Y: -105, Z: 3}},
	}
	for _, tt := range tests {
		p := Resolve(RawConfiguration{"generator": "sphere", "center": tt.in})
		assert.Equal(t, tt.want, p.Center, "center %q", tt.in)
	}
}

func TestResolvePartialCenter(t *testing.T) {
	p := Resolve(RawConfiguration{"center": map[string]any{"y": 10}})
	assert.Equal(t, v3.Vec{X: 0, Y: 10, Z: 0}, p.Center)
}

func TestResolveNilValuesAreAbsent(t *testing.T) {
	p := Resolve(RawConfiguration{"generator": nil, "size": nil, "center": nil})
	assert.Equal(t, Resolve(RawConfiguration{}), p)
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	raw := RawConfiguration{"generator": "mengersponge", "size": 10.0}
	_ = Resolve(raw)
	assert.Equal(t, RawConfiguration{"generator": "mengersponge", "size": 10.0}, raw)
}

func TestResolveIsIdempotent(t *testing.T) {
	raw := RawConfiguration{"generator": "mandelbulb2", "power": 8, "iterations": "6"}
	assert.Equal(t, Resolve(raw), Resolve(raw))
}

func TestEncodeRoundTripAllKinds(t *testing.T) {
	configs := []RawConfiguration{
		{},
		{"generator": "julia", "invert": true},
		{"generator": "sphere", "size": 37.25, "center": map[string]any{"x": 0.1, "y": 0.2, "z": 0.3}},
	}
	for _, k := range fractal.Kinds() {
		configs = append(configs, RawConfiguration{"generator": k.String()})
	}
	for _, raw := range configs {
		want := Resolve(raw)
		got := Resolve(Encode(want))
		assert.Equal(t, want, got, "round trip of %v", raw)
	}
}

func TestEncodeChanges(t *testing.T) {
	configs := []RawConfiguration{
		{},
		{"generator": "julia", "invert": true},
		{"generator": "mandelbox", "size": 500},
		{"generator": "mandelbulb2", "power": 6, "center": map[string]any{"x": 1, "y": 2, "z": 3}},
	}
	for _, k := range fractal.Kinds() {
		configs = append(configs, RawConfiguration{"generator": k.String()})
	}
	r := Resolver{}
	for _, raw := range configs {
		want := r.Resolve(raw)
		got := r.Resolve(r.EncodeChanges(want))
		assert.True(t, want.Equal(got), "round trip of %v", raw)
	}

	for _, k := range fractal.Kinds() {
		assert.Equal(t, RawConfiguration{"generator": k.String()},
			r.EncodeChanges(r.Resolve(RawConfiguration{"generator": k.String()})), "defaults of %s", k)
	}

	raw := r.EncodeChanges(r.Resolve(RawConfiguration{"generator": "mandelbox", "size": 500, "iterations": 4}))
	assert.Equal(t, RawConfiguration{"generator": "mandelbox", "size": 500.0, "iterations": 4}, raw)

	// Switching generator keeps the explicit fields only.
	raw["generator"] = "sphere"
	p := r.Resolve(raw)
	assert.Equal(t, 500.0, p.Size)
	assert.Equal(t, 4, p.Iterations)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, 500.0, p.Distance)
}

func TestParametersEqual(t *testing.T) {
	a := Resolve(RawConfiguration{"generator": "mandelbulb2"})
	assert.True(t, a.Equal(Resolve(Encode(a))))
	assert.False(t, a.Equal(Resolve(RawConfiguration{"generator": "mandelbulb2", "power": 3})))
	assert.False(t, a.Equal(Resolve(RawConfiguration{"generator": "mandelbulb2", "iterations": 3})))
}

func TestConstants(t *testing.T) {
	p := Resolve(RawConfiguration{"generator": "mandelbulb2", "power": 8})
	power, ok := p.Constant(fractal.ConstPower)
	require.True(t, ok)
	assert.Equal(t, 8.0, power)

	c := p.Constants()
	c[fractal.ConstPower] = 2
	power, _ = p.Constant(fractal.ConstPower)
	assert.Equal(t, 8.0, power, "Constants must return a copy")

	box := Resolve(RawConfiguration{"generator": "mandelbox", "power": 3})
	assert.Empty(t, box.Constants(), "constants of other kinds are dropped")

	vary := Resolve(RawConfiguration{"generator": "mandelboxVaryScale4D", "scaleVary": 0.2})
	v, _ := vary.Constant(fractal.ConstScaleVary)
	assert.Equal(t, 0.2, v)
	v, _ = vary.Constant(fractal.ConstMinR)
	assert.Equal(t, 0.5, v)
}

func TestResolverMapLimit(t *testing.T) {
	p := Resolver{MapLimit: 5000}.Resolve(RawConfiguration{"generator": "mengersponge"})
	assert.Equal(t, 2000.0, p.Size)
	assert.Equal(t, v3.Vec{X: -2000, Y: -2000, Z: -2000}, p.Center)
}

func TestParametersField(t *testing.T) {
	p := Resolve(RawConfiguration{"generator": "sphere", "size": 10})
	f := p.Field()
	assert.True(t, f.Solid(0, 0, 0))
	assert.False(t, f.Solid(11, 0, 0))
	assert.Equal(t, 10.0, f.Threshold())

	inv := Resolve(RawConfiguration{"generator": "sphere", "size": 10, "invert": true}).Field()
	assert.False(t, inv.Solid(0, 0, 0))
}

func TestToFractal(t *testing.T) {
	p := Resolve(RawConfiguration{
		"generator": "sphere",
		"scale":     0.5,
		"center":    map[string]any{"x": 10, "y": -4, "z": 0},
	})
	got := p.ToFractal(v3.Vec{X: 12, Y: 0, Z: -2})
	assert.Equal(t, v3.Vec{X: 1, Y: 2, Z: -1}, got)
}

func TestLint(t *testing.T) {
	for _, k := range fractal.Kinds() {
		p := Resolve(RawConfiguration{"generator": k.String()})
		assert.Empty(t, Lint(p), "defaults for %s", k)
	}

	p := Resolve(RawConfiguration{"scale": 0, "distance": -1, "iterations": 0})
	findings := Lint(p)
	fields := make([]string, 0, len(findings))
	for _, f := range findings {
		fields = append(fields, f.Field)
		assert.NotEmpty(t, f.Message)
	}
	assert.ElementsMatch(t, []string{"Scale", "Distance", "Iterations"}, fields)
}

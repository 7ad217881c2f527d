package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/mathgen/pkg/params"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a point so it can be passed to mapgen as a center.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpConfig is the value of a mapgen call: the configuration collected so far.
type sexpConfig struct {
	raw params.RawConfiguration
}

func (c *sexpConfig) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mapgen %d keys)", len(c.raw))
}
func (c *sexpConfig) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArg is one keyword argument in call order.
type kwArg struct {
	name  string
	value zygo.Sexp
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         []kwArg
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword with no following value gets SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	var result kwArgs
	for i := 0; i < len(args); {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw = append(result.kw, kwArg{name: name, value: args[i+1]})
			i += 2
		} else {
			result.kw = append(result.kw, kwArg{name: name, value: zygo.SexpNull})
			i++
		}
	}
	return result
}

// camelKey maps a kebab-case keyword to the camelCase configuration key:
// scale-vary -> scaleVary. Other names are returned unchanged.
func camelKey(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	parts := strings.Split(name, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toValue converts a script value into the loosely-typed form the
// parameter resolver decodes. Integers stay int64; vec3 values become
// {x, y, z} maps; lists become []any.
func toValue(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return toKeywordString(v)
	case *sexpVec3:
		return map[string]any{"x": v.vec.X, "y": v.vec.Y, "z": v.vec.Z}, nil
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(v)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			x, err := toValue(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Configuration collector
// ---------------------------------------------------------------------------

// collector accumulates the configuration written by mapgen calls. It is
// only touched from the goroutine running the sandbox.
type collector struct {
	raw params.RawConfiguration
}

func newCollector() *collector {
	return &collector{raw: params.RawConfiguration{}}
}

func (c *collector) set(key string, value any) {
	if value == nil {
		delete(c.raw, key)
		return
	}
	c.raw[key] = value
}

// snapshot returns a copy of the configuration collected so far.
func (c *collector) snapshot() params.RawConfiguration {
	out := make(params.RawConfiguration, len(c.raw))
	for k, v := range c.raw {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the configuration builtins into env. Source
// must be run through preprocessSource first so :keyword tokens are
// recognisable.
func registerBuiltins(env *zygo.Zlisp, cfg *collector) {

	// -----------------------------------------------------------------------
	// (vec3 0 -600 0)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (mapgen :generator "mengersponge" :size 2000 :invert false)
	//
	// Keyword arguments are merged into the configuration; later calls and
	// later keywords win. A keyword without a value, or with nil, removes
	// the key.
	// -----------------------------------------------------------------------
	env.AddFunction("mapgen", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("mapgen: unexpected positional argument %s",
				pa.positional[0].SexpString(nil))
		}

		for _, kw := range pa.kw {
			key := camelKey(kw.name)
			if kw.value == zygo.SexpNull {
				cfg.set(key, nil)
				continue
			}
			v, err := toValue(kw.value)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mapgen: %s: %w", kw.name, err)
			}
			cfg.set(key, v)
		}

		return &sexpConfig{raw: cfg.snapshot()}, nil
	})
}

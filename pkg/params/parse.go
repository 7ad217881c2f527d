package params

import (
	"strings"

	"github.com/chazu/mathgen/pkg/fractal"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-viper/mapstructure/v2"
)

// fields is the parse-stage view of a configuration. A nil member means
// the key was absent or could not be decoded.
type fields struct {
	generator  *string
	invert     *bool
	size       *float64
	scale      *float64
	distance   *float64
	iterations *int
	center     *v3.Vec
	constants  fractal.Constants
}

// centerFields decodes the nested center object. Missing members read as 0.
type centerFields struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

// parse decodes each known key of raw independently, so one malformed
// value never hides the others.
func parse(raw RawConfiguration) fields {
	var f fields
	f.generator = decodeKey[string](raw, KeyGenerator)
	f.invert = decodeKey[bool](raw, KeyInvert)
	f.size = decodeKey[float64](raw, KeySize)
	f.scale = decodeKey[float64](raw, KeyScale)
	f.distance = decodeKey[float64](raw, KeyDistance)
	f.iterations = decodeKey[int](raw, KeyIterations)
	f.center = decodeCenter(raw[KeyCenter])

	f.constants = fractal.Constants{}
	for _, k := range fractal.Kinds() {
		for name := range fractal.DefaultConstants(k) {
			if v := decodeKey[float64](raw, name); v != nil {
				f.constants[name] = *v
			}
		}
	}
	return f
}

// decodeKey weakly decodes raw[key] into a T.
func decodeKey[T any](raw RawConfiguration, key string) *T {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	var out T
	if err := weakDecode(v, &out); err != nil {
		return nil
	}
	return &out
}

// decodeCenter accepts an {x,y,z} object, a three element list, or a
// string of three comma-separated numbers.
func decodeCenter(v any) *v3.Vec {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		v = parts
	}
	var c centerFields
	if err := weakDecode(v, &c); err == nil {
		return &v3.Vec{X: c.X, Y: c.Y, Z: c.Z}
	}
	var list []float64
	if err := weakDecode(v, &list); err == nil && len(list) == 3 {
		return &v3.Vec{X: list[0], Y: list[1], Z: list[2]}
	}
	return nil
}

func weakDecode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

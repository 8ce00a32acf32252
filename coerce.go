package confect

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ConverterFunc parses a raw property value into a typed value. The result
// must be assignable or convertible to the type the converter is registered
// for.
type ConverterFunc func(raw string) (any, error)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// builtinConverters seeds every binder's converter registry. time.Duration
// and time.Time carry textual encodings that differ from their underlying
// kinds, so the kind rules cannot handle them.
func builtinConverters() map[reflect.Type]ConverterFunc {
	return map[reflect.Type]ConverterFunc{
		reflect.TypeFor[time.Duration](): func(raw string) (any, error) {
			return time.ParseDuration(raw)
		},
		reflect.TypeFor[time.Time](): func(raw string) (any, error) {
			return time.Parse(time.RFC3339, raw)
		},
	}
}

// coerce converts raw to type t, first matching rule wins:
// a registered converter for the exact type, encoding.TextUnmarshaler,
// then the string, bool, integer, and float kinds. The boolean result
// reports whether an applicable conversion succeeded; parse failures
// surface as "no conversion" so the caller can emit a uniform diagnostic.
func (b *Binder) coerce(t reflect.Type, raw string) (reflect.Value, bool) {
	if fn, ok := b.converters[t]; ok {
		out, err := fn(raw)
		return convertResult(t, out, err)
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		pv := reflect.New(t)
		if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, false
		}
		return pv.Elem(), true
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t), true

	case reflect.Bool:
		// Only the literal tokens; no 0/1/t/f shorthand.
		v := reflect.New(t).Elem()
		switch {
		case strings.EqualFold(raw, "true"):
			v.SetBool(true)
		case strings.EqualFold(raw, "false"):
			v.SetBool(false)
		default:
			return reflect.Value{}, false
		}
		return v, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		v := reflect.New(t).Elem()
		v.SetInt(n)
		return v, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		v := reflect.New(t).Elem()
		v.SetUint(n)
		return v, true

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		v := reflect.New(t).Elem()
		v.SetFloat(f)
		return v, true
	}

	return reflect.Value{}, false
}

// convertResult adapts a converter's output to the target type.
func convertResult(t reflect.Type, out any, err error) (reflect.Value, bool) {
	if err != nil || out == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(out)
	if rv.Type() == t {
		return rv, true
	}
	if !rv.Type().ConvertibleTo(t) {
		return reflect.Value{}, false
	}
	return rv.Convert(t), true
}

package confect

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

// logLevel parses from text, standing in for enum-like value types.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "debug", "info", "warn", "error":
		*l = logLevel(text)
		return nil
	}
	return fmt.Errorf("unknown level %q", text)
}

// portNumber exercises named types that fall through to the kind rules.
type portNumber int

func TestCoerce_Builtins(t *testing.T) {
	b := New(nil)

	tests := []struct {
		name   string
		target reflect.Type
		raw    string
		want   any
	}{
		{"string", reflect.TypeFor[string](), "hello", "hello"},
		{"bool true", reflect.TypeFor[bool](), "true", true},
		{"bool case insensitive", reflect.TypeFor[bool](), "TRUE", true},
		{"bool false", reflect.TypeFor[bool](), "False", false},
		{"int", reflect.TypeFor[int](), "42", 42},
		{"int negative", reflect.TypeFor[int](), "-7", -7},
		{"int8 boundary", reflect.TypeFor[int8](), "-128", int8(-128)},
		{"int64 boundary", reflect.TypeFor[int64](), "9223372036854775807", int64(9223372036854775807)},
		{"uint16 boundary", reflect.TypeFor[uint16](), "65535", uint16(65535)},
		{"float32", reflect.TypeFor[float32](), "1.5", float32(1.5)},
		{"float64", reflect.TypeFor[float64](), "-2.25", -2.25},
		{"named int kind", reflect.TypeFor[portNumber](), "8080", portNumber(8080)},
		{"duration", reflect.TypeFor[time.Duration](), "1m30s", 90 * time.Second},
		{"text unmarshaler", reflect.TypeFor[logLevel](), "debug", logLevel("debug")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.coerce(tt.target, tt.raw)
			if !ok {
				t.Fatalf("coerce(%s, %q) reported no conversion", tt.target, tt.raw)
			}
			if got.Interface() != tt.want {
				t.Errorf("coerce(%s, %q) = %v, want %v", tt.target, tt.raw, got.Interface(), tt.want)
			}
		})
	}
}

func TestCoerce_NoConversion(t *testing.T) {
	b := New(nil)

	tests := []struct {
		name   string
		target reflect.Type
		raw    string
	}{
		{"malformed int", reflect.TypeFor[int](), "abc"},
		{"out of range int8", reflect.TypeFor[int8](), "200"},
		{"negative uint", reflect.TypeFor[uint](), "-1"},
		{"bool numeric shorthand", reflect.TypeFor[bool](), "1"},
		{"bool letter shorthand", reflect.TypeFor[bool](), "t"},
		{"bool other token", reflect.TypeFor[bool](), "yes"},
		{"malformed float", reflect.TypeFor[float64](), "1.2.3"},
		{"malformed duration", reflect.TypeFor[time.Duration](), "fast"},
		{"unknown level", reflect.TypeFor[logLevel](), "loud"},
		{"unsupported slice", reflect.TypeFor[[]string](), "a,b"},
		{"unsupported struct", reflect.TypeFor[struct{ X int }](), "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := b.coerce(tt.target, tt.raw); ok {
				t.Errorf("coerce(%s, %q) should report no conversion", tt.target, tt.raw)
			}
		})
	}
}

func TestCoerce_Time(t *testing.T) {
	b := New(nil)

	got, ok := b.coerce(reflect.TypeFor[time.Time](), "2026-01-02T15:04:05Z")
	if !ok {
		t.Fatal("coerce reported no conversion for RFC 3339 time")
	}
	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if !got.Interface().(time.Time).Equal(want) {
		t.Errorf("coerce(time.Time) = %v, want %v", got.Interface(), want)
	}

	if _, ok := b.coerce(reflect.TypeFor[time.Time](), "yesterday"); ok {
		t.Error("coerce(time.Time, \"yesterday\") should report no conversion")
	}
}

func TestCoerce_CustomConverter(t *testing.T) {
	type endpoint struct {
		host string
		port string
	}

	b := New(nil, WithConverter(reflect.TypeFor[endpoint](), func(raw string) (any, error) {
		host, port, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("endpoint %q missing port", raw)
		}
		return endpoint{host: host, port: port}, nil
	}))

	got, ok := b.coerce(reflect.TypeFor[endpoint](), "localhost:8080")
	if !ok {
		t.Fatal("coerce reported no conversion for registered endpoint converter")
	}
	if want := (endpoint{host: "localhost", port: "8080"}); got.Interface() != want {
		t.Errorf("coerce(endpoint) = %v, want %v", got.Interface(), want)
	}

	if _, ok := b.coerce(reflect.TypeFor[endpoint](), "localhost"); ok {
		t.Error("converter error should surface as no conversion")
	}
}

func TestCoerce_ConverterPrecedence(t *testing.T) {
	// An exact-type converter beats the kind rule for the same type.
	b := New(nil, WithConverter(reflect.TypeFor[portNumber](), func(string) (any, error) {
		return portNumber(1), nil
	}))

	got, ok := b.coerce(reflect.TypeFor[portNumber](), "8080")
	if !ok {
		t.Fatal("coerce reported no conversion")
	}
	if got.Interface() != portNumber(1) {
		t.Errorf("registered converter should win over kind rule, got %v", got.Interface())
	}
}

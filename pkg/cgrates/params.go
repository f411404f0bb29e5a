package cgrates

import (
	"encoding/json"
	"maps"
	"math"
	"reflect"
)

// Params options object of a call, sent as the single element of "params".
type Params map[string]any

// Has reports whether field is present and not falsy.
func (p Params) Has(field string) bool {
	v, ok := p[field]
	return ok && !isFalsy(v)
}

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// isFalsy: nil, false, zero numbers, NaN and empty strings.
// Empty but non-nil slices and maps count as present.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}

	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return n == "" || (err == nil && f == 0)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

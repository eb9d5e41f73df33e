// Package encoding snapshots entity attributes with msgpack so rendered
// templates never share mutable state with the models they display, while
// attribute values keep their Go types.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidFormat is returned when packed attributes cannot be decoded.
var ErrInvalidFormat = errors.New("invalid attribute format")

// Attributer is implemented by entities that expose their attributes as a map.
type Attributer interface {
	Attributes() map[string]any
}

// Marshal packs attributes into msgpack.
func Marshal(attrs map[string]any) ([]byte, error) {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return msgpack.Marshal(attrs)
}

// Unmarshal decodes packed attributes. Integers decode as int64 or uint64 and
// floats as float64 regardless of their packed width.
func Unmarshal(data []byte) (map[string]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, errors.Join(ErrInvalidFormat, err)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return attrs, nil
}

// Clone returns a deep copy of attrs that keeps the concrete type of every
// value. Nested map[string]any and []any values are copied element by
// element, scalars and time.Time are immutable and shared, and any other
// value is packed and decoded back into a new value of its own type, so a
// []string stays a []string and a struct stays that struct. Unexported struct
// fields are not copied.
func Clone(attrs map[string]any) (map[string]any, error) {
	if attrs == nil {
		return map[string]any{}, nil
	}
	return cloneMap(attrs)
}

func cloneMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	var errs []error
	for k, v := range m {
		c, err := cloneValue(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			continue
		}
		out[k] = c
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func cloneValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return val, nil
	case map[string]any:
		if val == nil {
			return val, nil
		}
		return cloneMap(val)
	case []any:
		if val == nil {
			return val, nil
		}
		out := make([]any, len(val))
		for i, e := range val {
			c, err := cloneValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return v, nil
	}

	packed, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	ptr := reflect.New(rv.Type())
	if err := msgpack.Unmarshal(packed, ptr.Interface()); err != nil {
		return nil, errors.Join(ErrInvalidFormat, err)
	}
	return ptr.Elem().Interface(), nil
}

// Snapshot clones the attributes of src.
func Snapshot(src Attributer) (map[string]any, error) {
	if src == nil {
		return map[string]any{}, nil
	}
	return Clone(src.Attributes())
}

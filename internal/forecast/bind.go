package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Decode binds doc into dst through dst's mapping table and validates the
// result. dst must be a pointer to a registered struct.
func Decode(provider, path string, doc any, dst any) error {
	if err := Bind(provider, path, doc, dst); err != nil {
		return err
	}
	return Validate(provider, path, dst)
}

// Bind copies the mapped keys of doc into dst without running domain validation.
// Keys present in doc but absent from the mapping table are ignored.
func Bind(provider, path string, doc any, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("forecast: bind target must be a non-nil pointer, got %T", dst)
	}
	p, err := planFor(rv.Elem().Type())
	if err != nil {
		return err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return Malformed(provider, path, "expected object, got %s", describe(doc))
	}
	return p.bind(provider, path, obj, rv.Elem())
}

func (p *plan) bind(provider, path string, obj map[string]any, out reflect.Value) error {
	for _, f := range p.fields {
		fpath := JoinPath(path, f.key)
		raw, present := obj[f.key]
		fv := out.Field(f.index)

		if !present || raw == nil {
			if f.optional {
				continue
			}
			if !present {
				return Invalid(provider, fpath, "missing required field")
			}
			return Invalid(provider, fpath, "null value for required field")
		}

		if f.optional {
			ptr := reflect.New(f.rule.typ)
			if err := f.rule.bind(provider, fpath, raw, ptr.Elem(), f); err != nil {
				return err
			}
			fv.Set(ptr)
			continue
		}
		if err := f.rule.bind(provider, fpath, raw, fv, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *typeRule) bind(provider, path string, raw any, fv reflect.Value, f fieldRule) error {
	switch r.kind {
	case valueString:
		s, ok := raw.(string)
		if !ok {
			return Invalid(provider, path, "expected string, got %s", describe(raw))
		}
		fv.SetString(s)

	case valueBool:
		b, ok := raw.(bool)
		if !ok {
			return Invalid(provider, path, "expected bool, got %s", describe(raw))
		}
		fv.SetBool(b)

	case valueFloat:
		n, ok := toFloat(raw)
		if !ok {
			return Invalid(provider, path, "expected number, got %s", describe(raw))
		}
		if f.percent {
			n /= 100
		}
		fv.SetFloat(n)

	case valueInt:
		n, ok := toFloat(raw)
		if !ok || n != math.Trunc(n) {
			return Invalid(provider, path, "expected integer, got %v", raw)
		}
		if n >= math.MaxInt64 || n < math.MinInt64 || fv.OverflowInt(int64(n)) {
			return Invalid(provider, path, "integer %v out of range for %s", raw, fv.Type())
		}
		fv.SetInt(int64(n))

	case valueTime:
		t, err := parseTime(raw, f.unix)
		if err != nil {
			return &Error{Kind: ErrSchemaValidation, Provider: provider, Path: path, Err: err}
		}
		fv.Set(reflect.ValueOf(t))

	case valueDecoder:
		dec := fv.Addr().Interface().(ValueDecoder)
		if err := dec.DecodeValue(raw); err != nil {
			kind := ErrMalformedResponse
			if errors.Is(err, ErrSchemaValidation) {
				kind = ErrSchemaValidation
			}
			return &Error{Kind: kind, Provider: provider, Path: path, Err: err}
		}

	case valueStruct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return Malformed(provider, path, "expected object, got %s", describe(raw))
		}
		return r.sub.bind(provider, path, obj, fv)

	case valueList:
		items, ok := raw.([]any)
		if !ok {
			return Malformed(provider, path, "expected list, got %s", describe(raw))
		}
		list := reflect.MakeSlice(r.typ, len(items), len(items))
		for i, item := range items {
			if item == nil {
				return Malformed(provider, IndexPath(path, i), "null list entry")
			}
			if err := r.elem.bind(provider, IndexPath(path, i), item, list.Index(i), f); err != nil {
				return err
			}
		}
		fv.Set(list)
	}
	return nil
}

// Number reports raw as a float64 when it holds a JSON number.
func Number(raw any) (float64, bool) {
	return toFloat(raw)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// parseTime accepts epoch seconds for unix fields and timestamp strings for
// all others.
func parseTime(raw any, unix bool) (time.Time, error) {
	if unix {
		f, ok := toFloat(raw)
		if !ok {
			return time.Time{}, fmt.Errorf("expected epoch seconds, got %s", describe(raw))
		}
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return time.Time{}, fmt.Errorf("epoch seconds %v out of range", f)
		}
		return time.Unix(int64(f), 0).UTC(), nil
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected timestamp string, got %s", describe(raw))
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if _, offset := t.Zone(); offset == 0 {
			t = t.UTC()
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

package forecast

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Encode renders v back into its provider's raw key-naming convention, the
// inverse of Bind. Fields mapped with "-" are omitted and must be re-assembled
// by the provider's own encoder. Numbers are emitted as float64, matching what
// encoding/json produces for a generic document.
func Encode(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("forecast: cannot encode nil %T", v)
		}
		rv = rv.Elem()
	}
	p, err := planFor(rv.Type())
	if err != nil {
		return nil, err
	}
	return p.encode(rv), nil
}

// MustEncode is Encode for registered values known to be valid.
func MustEncode(v any) map[string]any {
	doc, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return doc
}

func (p *plan) encode(rv reflect.Value) map[string]any {
	out := make(map[string]any, len(p.fields))
	for _, f := range p.fields {
		fv := rv.Field(f.index)
		if f.optional {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		out[f.key] = f.rule.encode(fv, f)
	}
	return out
}

func (r *typeRule) encode(fv reflect.Value, f fieldRule) any {
	switch r.kind {
	case valueString:
		return fv.String()
	case valueBool:
		return fv.Bool()
	case valueFloat:
		if f.percent {
			return math.Round(fv.Float()*100*1e9) / 1e9
		}
		return fv.Float()
	case valueInt:
		return float64(fv.Int())
	case valueTime:
		t := fv.Interface().(time.Time)
		if f.unix {
			return float64(t.Unix())
		}
		return t.Format(time.RFC3339Nano)
	case valueDecoder:
		return fv.Interface().(ValueEncoder).EncodeValue()
	case valueStruct:
		return r.sub.encode(fv)
	case valueList:
		items := make([]any, fv.Len())
		for i := range items {
			items[i] = r.elem.encode(fv.Index(i), f)
		}
		return items
	}
	return nil
}

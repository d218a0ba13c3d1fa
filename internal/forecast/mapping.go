package forecast

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Mapping rules are declared with a struct tag on every exported field:
//
//	Temperature float64 `src:"temp"`
//	Rain        Probability `src:"RainProbability,percent"`
//	ObservedAt  time.Time `src:"dt,unix"`
//	Entries     []Entry `src:"-"` // assembled by the adapter
//
// Options: "percent" scales a 0-100 value into [0,1]; "unix" encodes a time
// back as epoch seconds. Pointer fields are optional and stay nil when the key
// is absent or null.
const srcTag = "src"

// ValueDecoder is implemented by enumerated types that translate a raw value
// through a fixed lookup table. Unrecognised values must return an error.
type ValueDecoder interface {
	DecodeValue(raw any) error
}

// ValueEncoder is the inverse of ValueDecoder.
type ValueEncoder interface {
	EncodeValue() any
}

type valueKind int

const (
	valueString valueKind = iota + 1
	valueBool
	valueFloat
	valueInt
	valueTime
	valueDecoder
	valueStruct
	valueList
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	decoderType = reflect.TypeOf((*ValueDecoder)(nil)).Elem()
	encoderType = reflect.TypeOf((*ValueEncoder)(nil)).Elem()
)

type typeRule struct {
	kind valueKind
	typ  reflect.Type
	sub  *plan
	elem *typeRule
}

type fieldRule struct {
	index    int
	name     string
	key      string
	percent  bool
	unix     bool
	optional bool
	rule     *typeRule
}

type plan struct {
	typ    reflect.Type
	fields []fieldRule
}

var registry = struct {
	sync.RWMutex
	plans map[reflect.Type]*plan
}{plans: make(map[reflect.Type]*plan)}

// Register compiles the mapping tables of the given struct values (or pointers
// to them), including every nested entity they reference.
func Register(samples ...any) error {
	for _, s := range samples {
		t := reflect.TypeOf(s)
		if t == nil {
			return fmt.Errorf("forecast: cannot register nil")
		}
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if _, err := planFor(t); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register that panics on an invalid mapping table. It is meant
// for package-level registration:
//
//	var _ = forecast.MustRegister(Conditions{}, DailyForecastSet{})
func MustRegister(samples ...any) bool {
	if err := Register(samples...); err != nil {
		panic(err)
	}
	return true
}

func planFor(t reflect.Type) (*plan, error) {
	registry.RLock()
	p, ok := registry.plans[t]
	registry.RUnlock()
	if ok {
		return p, nil
	}

	registry.Lock()
	defer registry.Unlock()
	return compilePlan(t, map[reflect.Type]bool{})
}

// compilePlan must be called with the registry lock held.
func compilePlan(t reflect.Type, visiting map[reflect.Type]bool) (*plan, error) {
	if p, ok := registry.plans[t]; ok {
		return p, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("forecast: %s is not a struct", t)
	}
	if visiting[t] {
		return nil, fmt.Errorf("forecast: %s is recursive", t)
	}
	visiting[t] = true
	defer delete(visiting, t)

	p := &plan{typ: t}
	seen := make(map[string]string)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup(srcTag)
		if !ok || tag == "" {
			return nil, fmt.Errorf("forecast: %s.%s has no mapping rule", t.Name(), f.Name)
		}
		parts := strings.Split(tag, ",")
		key := parts[0]
		if key == "-" {
			continue
		}
		if other, dup := seen[key]; dup {
			return nil, fmt.Errorf("forecast: %s.%s and %s.%s both map key %q", t.Name(), other, t.Name(), f.Name, key)
		}
		seen[key] = f.Name

		fr := fieldRule{index: i, name: f.Name, key: key}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			fr.optional = true
			ft = ft.Elem()
		}
		rule, err := compileType(ft, visiting)
		if err != nil {
			return nil, fmt.Errorf("forecast: %s.%s: %w", t.Name(), f.Name, err)
		}
		fr.rule = rule

		for _, opt := range parts[1:] {
			switch opt {
			case "percent":
				if rule.kind != valueFloat {
					return nil, fmt.Errorf("forecast: %s.%s: percent option requires a float field", t.Name(), f.Name)
				}
				fr.percent = true
			case "unix":
				if rule.kind != valueTime {
					return nil, fmt.Errorf("forecast: %s.%s: unix option requires a time field", t.Name(), f.Name)
				}
				fr.unix = true
			default:
				return nil, fmt.Errorf("forecast: %s.%s: unknown option %q", t.Name(), f.Name, opt)
			}
		}
		p.fields = append(p.fields, fr)
	}

	registry.plans[t] = p
	return p, nil
}

func compileType(t reflect.Type, visiting map[reflect.Type]bool) (*typeRule, error) {
	if reflect.PointerTo(t).Implements(decoderType) {
		if !t.Implements(encoderType) {
			return nil, fmt.Errorf("%s decodes but does not encode", t)
		}
		return &typeRule{kind: valueDecoder, typ: t}, nil
	}
	if t == timeType {
		return &typeRule{kind: valueTime, typ: t}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return &typeRule{kind: valueString, typ: t}, nil
	case reflect.Bool:
		return &typeRule{kind: valueBool, typ: t}, nil
	case reflect.Float32, reflect.Float64:
		return &typeRule{kind: valueFloat, typ: t}, nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return &typeRule{kind: valueInt, typ: t}, nil
	case reflect.Struct:
		sub, err := compilePlan(t, visiting)
		if err != nil {
			return nil, err
		}
		return &typeRule{kind: valueStruct, typ: t, sub: sub}, nil
	case reflect.Slice:
		elem, err := compileType(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return &typeRule{kind: valueList, typ: t, elem: elem}, nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}

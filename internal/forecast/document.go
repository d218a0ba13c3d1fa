package forecast

import (
	"errors"
	"strings"
	"time"
)

// Object asserts that doc is a JSON object.
func Object(provider, path string, doc any) (map[string]any, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, Malformed(provider, path, "expected object, got %s", describe(doc))
	}
	return obj, nil
}

// List asserts that doc is a JSON list.
func List(provider, path string, doc any) ([]any, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, Malformed(provider, path, "expected list, got %s", describe(doc))
	}
	return items, nil
}

// Section returns the object stored under key.
func Section(provider, path string, doc any, key string) (map[string]any, error) {
	obj, err := Object(provider, path, doc)
	if err != nil {
		return nil, err
	}
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, Malformed(provider, JoinPath(path, key), "missing section")
	}
	return Object(provider, JoinPath(path, key), raw)
}

// SectionList returns the list stored under key.
func SectionList(provider, path string, doc any, key string) ([]any, error) {
	obj, err := Object(provider, path, doc)
	if err != nil {
		return nil, err
	}
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, Malformed(provider, JoinPath(path, key), "missing section")
	}
	return List(provider, JoinPath(path, key), raw)
}

// UnwrapSingleton collapses a conceptually singular value that the provider
// wraps in a list. An empty list is malformed; extra entries are ignored.
func UnwrapSingleton(provider, path string, doc any) (any, error) {
	items, err := List(provider, path, doc)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, Malformed(provider, path, "expected one entry, list is empty")
	}
	return items[0], nil
}

// UnwrapField returns a shallow copy of obj whose key holds the first element
// of the list previously stored there. obj itself is not modified.
func UnwrapField(provider, path string, obj map[string]any, key string) (map[string]any, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, Malformed(provider, JoinPath(path, key), "missing list")
	}
	first, err := UnwrapSingleton(provider, JoinPath(path, key), raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	out[key] = first
	return out, nil
}

// DecodeUnwrapped unwraps the singleton list under key and decodes obj into
// dst. Errors inside the unwrapped element report its real position, key[0].
func DecodeUnwrapped(provider, path string, obj map[string]any, key string, dst any) error {
	unwrapped, err := UnwrapField(provider, path, obj, key)
	if err != nil {
		return err
	}
	err = Decode(provider, path, unwrapped, dst)
	var fe *Error
	if errors.As(err, &fe) {
		fe.Path = reindexPath(fe.Path, JoinPath(path, key))
	}
	return err
}

func reindexPath(p, field string) string {
	rest, ok := strings.CutPrefix(p, field)
	if !ok || (rest != "" && rest[0] != '.' && rest[0] != '[') {
		return p
	}
	return IndexPath(field, 0) + rest
}

// WrapField is the inverse of UnwrapField.
func WrapField(obj map[string]any, key string) map[string]any {
	if v, ok := obj[key]; ok {
		obj[key] = []any{v}
	}
	return obj
}

// CheckAscending verifies that times are strictly increasing.
func CheckAscending(provider, path string, times []time.Time) error {
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return Invalid(provider, IndexPath(path, i), "timestamp %s does not follow %s",
				times[i].Format(time.RFC3339), times[i-1].Format(time.RFC3339))
		}
	}
	return nil
}

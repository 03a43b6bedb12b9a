// Package frame loads MARC frame documents and projects them into the
// category -> tag -> subfield code structure rendered by the report.
// A frame is a generic JSON object; the projections pick out the keys that
// carry meaning (recognized categories, numeric tags, $-prefixed codes) and
// ignore documentation and metadata keys without needing a schema.
package frame

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"

	"marcframeview/internal/errors"
)

// MarcCategories lists the recognized categories in rendering order.
var MarcCategories = []string{"bib", "auth", "hold"}

// Frame is the root document: category name to category definition.
type Frame map[string]any

// Definition is a JSON object inside a frame, used for category, tag and
// subfield definitions alike.
type Definition map[string]any

// Entry is one projected (key, value) pair.
type Entry struct {
	Key   string
	Value any
}

// Categories yields every recognized category present in f with a truthy
// value, in MarcCategories order. JSON key order is irrelevant.
func Categories(f Frame) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range MarcCategories {
			dfn, ok := f[name]
			if !ok || !IsTruthy(dfn) {
				continue
			}
			if !yield(name, dfn) {
				return
			}
		}
	}
}

// Tags yields the numeric tags of a category definition with truthy values,
// ordered by string comparison ("100" < "245" < "99").
func Tags(def Definition) iter.Seq2[string, any] {
	return filtered(def, IsTag)
}

// Codes yields the $-prefixed subfield codes of a tag definition with truthy
// values, ordered by string comparison.
func Codes(def Definition) iter.Seq2[string, any] {
	return filtered(def, IsCode)
}

func filtered(def Definition, keep func(string) bool) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range slices.Sorted(maps.Keys(def)) {
			dfn := def[key]
			if !keep(key) || !IsTruthy(dfn) {
				continue
			}
			if !yield(key, dfn) {
				return
			}
		}
	}
}

// IsTag reports whether key is a non-empty run of ASCII decimal digits.
func IsTag(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// IsCode reports whether key names a subfield code.
func IsCode(key string) bool {
	return strings.HasPrefix(key, "$")
}

// IsTruthy reports whether v counts as present. nil, false, numeric zero,
// the empty string and empty objects or arrays are all treated as absent.
func IsTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case Definition:
		return len(val) > 0
	case Frame:
		return len(val) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// AsDefinition returns v as a Definition. It fails when v is not an object,
// which happens when a frame nests a scalar where a category or tag
// definition is expected.
func AsDefinition(v any) (Definition, error) {
	switch val := v.(type) {
	case Definition:
		return val, nil
	case Frame:
		return Definition(val), nil
	case map[string]any:
		return Definition(val), nil
	default:
		return nil, errors.NewParsingError("", fmt.Sprintf("expected an object, got %s", describe(v)), nil)
	}
}

// Collect drains seq into a slice of entries, keeping its order.
func Collect(seq iter.Seq2[string, any]) []Entry {
	entries := []Entry{}
	for key, value := range seq {
		entries = append(entries, Entry{Key: key, Value: value})
	}
	return entries
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Package jsonutil provides shape predicates and narrowing accessors over
// untyped JSON trees, as produced by encoding/json, yaml.v3 or toml decoders.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"release-metadata/internal/types"
)

type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

type undefined struct{}

// Undefined stands in for a missing object key.
var Undefined any = undefined{}

// Field returns obj[key], or Undefined when the key is absent.
func Field(obj map[string]any, key string) any {
	value, ok := obj[key]
	if !ok {
		return Undefined
	}
	return value
}

// KindOf classifies value into one of the JSON shapes.
func KindOf(value any) Kind {
	switch value.(type) {
	case undefined:
		return KindUndefined
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	default:
		return KindOther
	}
}

func IsArray(value any) bool     { return KindOf(value) == KindArray }
func IsBoolean(value any) bool   { return KindOf(value) == KindBoolean }
func IsNull(value any) bool      { return KindOf(value) == KindNull }
func IsNumber(value any) bool    { return KindOf(value) == KindNumber }
func IsObject(value any) bool    { return KindOf(value) == KindObject }
func IsString(value any) bool    { return KindOf(value) == KindString }
func IsUndefined(value any) bool { return KindOf(value) == KindUndefined }

func AsArray(value any) ([]any, bool) {
	v, ok := value.([]any)
	return v, ok
}

func AsBoolean(value any) (bool, bool) {
	v, ok := value.(bool)
	return v, ok
}

// AsNull reports whether value is JSON null.
func AsNull(value any) bool {
	return IsNull(value)
}

func AsObject(value any) (map[string]any, bool) {
	v, ok := value.(map[string]any)
	return v, ok
}

func AsString(value any) (string, bool) {
	v, ok := value.(string)
	return v, ok
}

// AsNumber narrows any numeric representation to float64.
func AsNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// NumberString renders a numeric value the way it would appear in JSON.
func NumberString(value any) (string, bool) {
	switch v := value.(type) {
	case json.Number:
		return v.String(), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	}
	f, ok := AsNumber(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func FetchString(obj map[string]any, key string) (string, error) {
	value := Field(obj, key)
	v, ok := AsString(value)
	if !ok {
		return "", MismatchError(key, KindString, KindOf(value))
	}
	return v, nil
}

func FetchObject(obj map[string]any, key string) (map[string]any, error) {
	value := Field(obj, key)
	v, ok := AsObject(value)
	if !ok {
		return nil, MismatchError(key, KindObject, KindOf(value))
	}
	return v, nil
}

func FetchArray(obj map[string]any, key string) ([]any, error) {
	value := Field(obj, key)
	v, ok := AsArray(value)
	if !ok {
		return nil, MismatchError(key, KindArray, KindOf(value))
	}
	return v, nil
}

// MismatchError reports that key held got instead of want.
func MismatchError(key string, want Kind, got Kind) error {
	article := "a"
	if want == KindArray || want == KindObject {
		article = "an"
	}
	return types.NewKindError(
		types.ErrTypeMismatch,
		errbuilder.CodeInvalidArgument,
		fmt.Sprintf("invalid key %s: expecting %s %s, got %s", key, article, want, got),
		nil,
	)
}

// Compact drops nil entries, keeping the order of the rest.
func Compact[T any](values []*T) []T {
	result := make([]T, 0, len(values))
	for _, value := range values {
		if value != nil {
			result = append(result, *value)
		}
	}
	return result
}

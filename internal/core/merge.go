package core

import (
	"dario.cat/mergo"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"release-metadata/internal/jsonutil"
)

// DeepMerge returns a new object holding target overlaid with source. Nested
// objects are merged recursively, arrays are concatenated (target first) and
// any other source value replaces the target value. Neither input is
// modified.
func DeepMerge(target map[string]any, source map[string]any) (map[string]any, error) {
	result := cloneObject(target)
	overlay := cloneObject(source)
	settleConflicts(result, overlay)

	if err := mergo.Merge(&result, overlay, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to merge ext objects").
			WithCause(err)
	}
	return result, nil
}

// settleConflicts copies source entries that have no counterpart of the same
// JSON shape in target straight into target and removes them from source.
// What remains for mergo is entries present on both sides with one shape:
// objects to recurse into, arrays to append and scalars to override.
func settleConflicts(target map[string]any, source map[string]any) {
	for key, value := range source {
		existing, ok := target[key]
		dst, dstIsObject := existing.(map[string]any)
		src, srcIsObject := value.(map[string]any)
		switch {
		case ok && dstIsObject && srcIsObject:
			settleConflicts(dst, src)
		case !ok, value == nil, jsonutil.KindOf(value) == jsonutil.KindOther,
			jsonutil.KindOf(value) != jsonutil.KindOf(existing):
			target[key] = value
			delete(source, key)
		}
	}
}

func cloneObject(value map[string]any) map[string]any {
	cloned := make(map[string]any, len(value))
	for key, item := range value {
		cloned[key] = cloneValue(item)
	}
	return cloned
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneObject(v)
	case []any:
		cloned := make([]any, len(v))
		for i, item := range v {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return v
	}
}

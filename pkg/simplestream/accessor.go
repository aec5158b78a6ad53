package simplestream

import (
	"github.com/tidwall/gjson"

	"github.com/wuxler/simplestream/pkg/errdefs"
)

// field returns the member of node named key. Member names are matched
// literally, catalog keys routinely contain dots and colons which must not be
// expanded as gjson path syntax. A node that is not an object has no members,
// so lookups against absent or scalar parents report the child as not found.
func field(node gjson.Result, key string) (gjson.Result, bool) {
	var child gjson.Result
	found := false
	if !node.IsObject() {
		return child, false
	}
	node.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			child = v
			found = true
			return false
		}
		return true
	})
	return child, found
}

// objectField returns the object member named key.
func objectField(node gjson.Result, key string) (gjson.Result, error) {
	child, ok := field(node, key)
	if !ok {
		return gjson.Result{}, errdefs.Newf(ErrMissingField, "missing field %q", key)
	}
	if !child.IsObject() {
		return gjson.Result{}, errdefs.Newf(ErrTypeMismatch, "%q is not an object", key)
	}
	return child, nil
}

// stringField returns the string member named key.
func stringField(node gjson.Result, key string) (string, error) {
	child, ok := field(node, key)
	if !ok {
		return "", errdefs.Newf(ErrMissingField, "missing field %q", key)
	}
	if child.Type != gjson.String {
		return "", errdefs.Newf(ErrTypeMismatch, "%q is not a string", key)
	}
	return child.Str, nil
}

// boolField returns the boolean member named key.
func boolField(node gjson.Result, key string) (bool, error) {
	child, ok := field(node, key)
	if !ok {
		return false, errdefs.Newf(ErrMissingField, "missing field %q", key)
	}
	if child.Type != gjson.True && child.Type != gjson.False {
		return false, errdefs.Newf(ErrTypeMismatch, "%q is not a boolean", key)
	}
	return child.Type == gjson.True, nil
}

// int64Field returns the numeric member named key.
func int64Field(node gjson.Result, key string) (int64, error) {
	child, ok := field(node, key)
	if !ok {
		return 0, errdefs.Newf(ErrMissingField, "missing field %q", key)
	}
	if child.Type != gjson.Number {
		return 0, errdefs.Newf(ErrTypeMismatch, "%q is not a number", key)
	}
	return child.Int(), nil
}

// lastKey returns the final member name of node in document order. Catalogs
// append new revisions at the end, so the last member is the most recent.
func lastKey(node gjson.Result) (string, error) {
	last := ""
	found := false
	if !node.IsObject() {
		return "", errdefs.Newf(ErrEmptyObject, "object has no members")
	}
	node.ForEach(func(k, _ gjson.Result) bool {
		last = k.Str
		found = true
		return true
	})
	if !found {
		return "", errdefs.Newf(ErrEmptyObject, "object has no members")
	}
	return last, nil
}

// Package mergepatch applies and computes JSON merge patches (RFC 7396) and
// reads JSON documents through tri-state lookups.
//
// A merge patch is the record-level form of the three states: a member left
// out of the patch keeps the target untouched, a null member removes it and
// any other member replaces it, with objects merged recursively.
package mergepatch

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/tansive/tristate/pkg/tristate"
)

// Lookup resolves a gjson path in doc. A path that does not resolve is
// Absent, a JSON null is Null and anything else is Present.
func Lookup(doc []byte, path string) tristate.Value[gjson.Result] {
	return classify(gjson.GetBytes(doc, path))
}

// LookupAs is Lookup with the Present result decoded into T.
func LookupAs[T any](doc []byte, path string) (tristate.Value[T], error) {
	return tristate.TryMap(Lookup(doc, path), func(r gjson.Result) (T, error) {
		var out T
		if err := json.Unmarshal([]byte(r.Raw), &out); err != nil {
			return out, ErrTypeMismatch.At(path).Err(err)
		}
		return out, nil
	})
}

// Members lists the members of the object at path, each classified as
// Null or Present. The result is Absent when the path does not resolve and
// Null when it holds null. Any other non-object value is reported as an
// empty Present map.
func Members(doc []byte, path string) tristate.Value[map[string]tristate.Value[gjson.Result]] {
	obj := gjson.ParseBytes(doc)
	if path != "" {
		obj = obj.Get(path)
	}
	return tristate.Map(classify(obj), func(r gjson.Result) map[string]tristate.Value[gjson.Result] {
		out := map[string]tristate.Value[gjson.Result]{}
		if !r.IsObject() {
			return out
		}
		r.ForEach(func(k, v gjson.Result) bool {
			out[k.String()] = classify(v)
			return true
		})
		return out
	})
}

func classify(r gjson.Result) tristate.Value[gjson.Result] {
	switch {
	case !r.Exists():
		return tristate.Absent[gjson.Result]()
	case r.Type == gjson.Null:
		return tristate.Null[gjson.Result]()
	default:
		return tristate.Present(r)
	}
}

package mergepatch

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Apply merges patch into doc. A doc that is not an object, or is empty, is
// treated as {} when the patch is an object; a patch that is not an object
// replaces doc entirely.
func Apply(doc, patch []byte) ([]byte, error) {
	if !gjson.ValidBytes(patch) {
		return nil, ErrInvalidPatch
	}
	if len(doc) != 0 && !gjson.ValidBytes(doc) {
		return nil, ErrInvalidDocument
	}
	return merge(doc, gjson.ParseBytes(patch))
}

func merge(target []byte, patch gjson.Result) ([]byte, error) {
	if !patch.IsObject() {
		return []byte(patch.Raw), nil
	}
	cur := gjson.ParseBytes(target)
	if !cur.IsObject() {
		target = []byte("{}")
		cur = gjson.ParseBytes(target)
	}
	existing := map[string]gjson.Result{}
	cur.ForEach(func(k, v gjson.Result) bool {
		if _, seen := existing[k.String()]; !seen {
			existing[k.String()] = v
		}
		return true
	})

	var err error
	patch.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		path := keyPath(name)
		old, found := existing[name]
		if v.Type == gjson.Null {
			if found {
				target, err = sjson.DeleteBytes(target, path)
			}
			return err == nil
		}
		var merged []byte
		merged, err = merge([]byte(old.Raw), v)
		if err != nil {
			return false
		}
		target, err = sjson.SetRawBytes(target, path, merged)
		return err == nil
	})
	if err != nil {
		return nil, ErrInvalidPatch.Err(err)
	}
	return target, nil
}

// keyPath turns an object member name into an sjson path that addresses
// exactly that member, even when the name is numeric or contains path syntax.
func keyPath(name string) string {
	return ":" + gjson.Escape(name)
}

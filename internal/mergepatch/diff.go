package mergepatch

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Diff computes the merge patch that turns original into modified: members
// missing from modified become null, new or changed members are carried over
// and unchanged members are left out. Applying the result to original with
// Apply yields a document equal to modified.
//
// A merge patch has no way to set an object member to null, so Diff fails
// with ErrNullMember when modified holds one that Apply would have to create.
func Diff(original, modified []byte) ([]byte, error) {
	if !gjson.ValidBytes(original) || !gjson.ValidBytes(modified) {
		return nil, ErrInvalidDocument
	}
	patch, _, err := diff(gjson.ParseBytes(original), gjson.ParseBytes(modified), "")
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return []byte("{}"), nil
	}
	return patch, nil
}

// diff returns nil when a and b are equal.
func diff(a, b gjson.Result, at string) ([]byte, bool, error) {
	if !a.IsObject() || !b.IsObject() {
		same, err := equal(a, b)
		if err != nil || same {
			return nil, false, err
		}
		if err := checkNoNullMembers(b, at); err != nil {
			return nil, false, err
		}
		return []byte(b.Raw), true, nil
	}

	var (
		patch = []byte("{}")
		dirty bool
		err   error
	)
	seen := map[string]bool{}
	b.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		seen[name] = true
		old := a.Get(gjson.Escape(name))
		if !old.Exists() {
			if v.Type == gjson.Null {
				err = ErrNullMember.At(join(at, name))
				return false
			}
			if err = checkNoNullMembers(v, join(at, name)); err != nil {
				return false
			}
			patch, err = sjson.SetRawBytes(patch, keyPath(name), []byte(v.Raw))
			dirty = true
			return err == nil
		}
		if v.Type == gjson.Null && old.Type != gjson.Null {
			err = ErrNullMember.At(join(at, name))
			return false
		}
		var sub []byte
		var changed bool
		sub, changed, err = diff(old, v, join(at, name))
		if err != nil || !changed {
			return err == nil
		}
		patch, err = sjson.SetRawBytes(patch, keyPath(name), sub)
		dirty = true
		return err == nil
	})
	if err != nil {
		return nil, false, err
	}
	a.ForEach(func(k, _ gjson.Result) bool {
		if seen[k.String()] {
			return true
		}
		patch, err = sjson.SetRawBytes(patch, keyPath(k.String()), []byte("null"))
		dirty = true
		return err == nil
	})
	if err != nil {
		return nil, false, ErrInvalidPatch.Err(err)
	}
	if !dirty {
		return nil, false, nil
	}
	return patch, true, nil
}

func equal(a, b gjson.Result) (bool, error) {
	if a.Type != b.Type {
		return false, nil
	}
	ca, err := Canonical([]byte(a.Raw))
	if err != nil {
		return false, err
	}
	cb, err := Canonical([]byte(b.Raw))
	if err != nil {
		return false, err
	}
	return bytes.Equal(ca, cb), nil
}

// checkNoNullMembers reports a null member anywhere inside the objects of v.
// Arrays are replaced wholesale by a merge patch, so nulls inside them are fine.
func checkNoNullMembers(v gjson.Result, at string) error {
	if !v.IsObject() {
		return nil
	}
	var err error
	v.ForEach(func(k, m gjson.Result) bool {
		p := join(at, k.String())
		if m.Type == gjson.Null {
			err = ErrNullMember.At(p)
			return false
		}
		err = checkNoNullMembers(m, p)
		return err == nil
	})
	return err
}

func join(at, name string) string {
	if at == "" {
		return name
	}
	return at + "." + name
}

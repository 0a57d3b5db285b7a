// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package input

// Fragment is one decoded element of a request body.  It maps keys to
// values in the order they appeared on the wire.  Each value is a
// string, a *Fragment, or a []interface{} of those.
//
// Attributes of the element have keys starting with "_" ("_href",
// "_media-type"); text content mixed with child elements has the key
// "#text".
type Fragment struct {
	keys   []string
	values map[string]interface{}
}

// NewFragment creates an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{values: make(map[string]interface{})}
}

// Set stores value under key.  A key that is already present keeps its
// original position.
func (f *Fragment) Set(key string, value interface{}) {
	if f.values == nil {
		f.values = make(map[string]interface{})
	}
	if _, present := f.values[key]; !present {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Append adds value under key.  The first value for a key is stored
// as is; later ones turn the entry into a list.
func (f *Fragment) Append(key string, value interface{}) {
	existing, present := f.Get(key)
	if !present {
		f.Set(key, value)
		return
	}
	if list, isList := existing.([]interface{}); isList {
		f.Set(key, append(list, value))
		return
	}
	f.Set(key, []interface{}{existing, value})
}

// Delete removes key, if present.
func (f *Fragment) Delete(key string) {
	if _, present := f.values[key]; !present {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value under key.
func (f *Fragment) Get(key string) (interface{}, bool) {
	if f == nil {
		return nil, false
	}
	value, present := f.values[key]
	return value, present
}

// Has returns whether key is present.
func (f *Fragment) Has(key string) bool {
	_, present := f.Get(key)
	return present
}

// String returns the value under key if it is a string.
func (f *Fragment) String(key string) (string, bool) {
	value, _ := f.Get(key)
	s, ok := value.(string)
	return s, ok
}

// Fragment returns the value under key if it is a nested fragment.
func (f *Fragment) Fragment(key string) (*Fragment, bool) {
	value, _ := f.Get(key)
	child, ok := value.(*Fragment)
	return child, ok
}

// Keys returns the keys in wire order.
func (f *Fragment) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Len returns the number of keys.
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Hash converts the fragment to plain maps and slices, the form field
// type processors work with.
func (f *Fragment) Hash() map[string]interface{} {
	out := make(map[string]interface{}, f.Len())
	for _, key := range f.Keys() {
		out[key] = toHash(f.values[key])
	}
	return out
}

func toHash(value interface{}) interface{} {
	switch v := value.(type) {
	case *Fragment:
		return v.Hash()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = toHash(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = toHash(item)
		}
		return out
	default:
		return value
	}
}

/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package values provides value kinds Go lacks natively.
package values

// Map is an insertion-ordered map with comparable keys of any type. Its
// entry order is observable: equality and serialization walk entries in the
// order they were first set.
type Map struct {
	keys []any
	vals map[any]any
}

// NewMap returns a Map seeded with the given key/value pairs. A trailing key
// without a value is stored with a nil value.
func NewMap(pairs ...any) *Map {
	m := &Map{vals: make(map[any]any, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		var v any
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		m.Set(pairs[i], v)
	}
	return m
}

// Set stores v under k. Existing keys keep their position.
func (m *Map) Set(k, v any) {
	if m.vals == nil {
		m.vals = make(map[any]any)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m *Map) Get(k any) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map) Has(k any) bool {
	_, ok := m.Get(k)
	return ok
}

// Delete removes k and returns whether it was present.
func (m *Map) Delete(k any) bool {
	if m == nil {
		return false
	}
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	if m == nil {
		return nil
	}
	out := make([]any, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(k, v any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Entries returns [key, value] pairs in insertion order.
func (m *Map) Entries() [][2]any {
	if m == nil {
		return nil
	}
	out := make([][2]any, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, [2]any{k, m.vals[k]})
	}
	return out
}

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

// Package path reads and writes nested locations inside composite values.
//
// A path is a dot separated list of keys with optional bracket segments:
//
//	users[0].name
//	items.1..-1.price
//	list[]
//
// "start..end" is an inclusive range over the nearest array; an end of -1
// reaches the last element. "[]" appends and is legal only for Set.
// Negative indices count from the end of an array.
//
// Containers are string-keyed Go maps, slices and arrays, *values.Map and
// exported struct fields. Writes into structs and arrays need a pointer.
package path

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtx/apis"
	uref "dirpx.dev/rtx/utils/reflect"
	"dirpx.dev/rtx/values"
)

var (
	// ErrAppendOutsideSet is returned when "[]" is used to read.
	ErrAppendOutsideSet = fmt.Errorf("%w: rtx(path): append segment outside set", apis.ErrProgrammer)
	// ErrNotContainer is returned when a write descends into a primitive.
	ErrNotContainer = fmt.Errorf("%w: rtx(path): target is not a container", apis.ErrTypeMismatch)
	// ErrRangeNotArray is returned when a range is applied to a non-array.
	ErrRangeNotArray = fmt.Errorf("%w: rtx(path): range on a non-array", apis.ErrTypeMismatch)
	// ErrIndex is returned for a write index that is not an integer or falls
	// before the start of an array.
	ErrIndex = fmt.Errorf("%w: rtx(path): invalid array index", apis.ErrTypeMismatch)
	// ErrValueType is returned when a value cannot be stored in a typed
	// container.
	ErrValueType = fmt.Errorf("%w: rtx(path): value type", apis.ErrTypeMismatch)
)

// Get returns the value at p inside root, or nil when any step is missing.
// A range yields a new []any holding the trailing path of every element in
// the range.
func Get(root any, p string) (any, error) { return std.Get(root, p) }

// Has reports whether every step of p exists inside root.
func Has(root any, p string) (bool, error) { return std.Has(root, p) }

// Set writes v at p inside root, creating missing intermediates: an array
// when the segment addressing it looks like an index, a map[string]any
// otherwise. It returns root, which differs from the argument when root had
// to be created or reallocated (nil roots, appends to a root slice).
func Set(root any, p string, v any) (any, error) { return std.Set(root, p, v) }

// Get is the package Get using ps to parse p.
func (ps *Parser) Get(root any, p string) (any, error) {
	v, _, err := get(root, ps.Parse(p).segs)
	return v, err
}

// Has is the package Has using ps to parse p.
func (ps *Parser) Has(root any, p string) (bool, error) {
	_, ok, err := get(root, ps.Parse(p).segs)
	return ok, err
}

// Set is the package Set using ps to parse p.
func (ps *Parser) Set(root any, p string, v any) (any, error) {
	segs := ps.Parse(p).segs
	if len(segs) == 0 {
		return v, nil
	}
	out, err := set(reflect.ValueOf(root), segs, v)
	if err != nil {
		return root, err
	}
	if !out.IsValid() {
		return nil, nil
	}
	return out.Interface(), nil
}

func get(cur any, segs []segment) (any, bool, error) {
	for i, s := range segs {
		switch s.kind {
		case segAppend:
			return nil, false, fmt.Errorf("%w: %q", ErrAppendOutsideSet, "[]")
		case segRange:
			rv := uref.Indirect(reflect.ValueOf(cur))
			if !isArray(rv) {
				return nil, false, fmt.Errorf("%w: %T", ErrRangeNotArray, cur)
			}
			lo, hi := s.bounds(rv.Len())
			out := make([]any, 0, max(hi-lo+1, 0))
			for j := lo; j <= hi; j++ {
				v, _, err := get(rv.Index(j).Interface(), segs[i+1:])
				if err != nil {
					return nil, false, err
				}
				out = append(out, v)
			}
			return out, true, nil
		}
		next, ok := child(cur, s)
		if !ok {
			return nil, false, nil
		}
		cur = next
	}
	return cur, true, nil
}

// child returns the member s of cur.
func child(cur any, s segment) (any, bool) {
	if m, ok := cur.(*values.Map); ok {
		return m.Get(s.key)
	}
	rv := uref.Indirect(reflect.ValueOf(cur))
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		e := rv.MapIndex(reflect.ValueOf(s.key).Convert(rv.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	case reflect.Slice, reflect.Array:
		if !s.isIndex {
			return nil, false
		}
		i := s.index
		if i < 0 {
			i += rv.Len()
		}
		if i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(s.key)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	}
	return nil, false
}

// set writes v at segs below cur and returns the value that must replace
// cur in its parent.
func set(cur reflect.Value, segs []segment, v any) (reflect.Value, error) {
	if len(segs) == 0 {
		return reflect.ValueOf(v), nil
	}
	s := segs[0]
	cur = materialize(cur, s)

	if m, ok := valueMap(cur); ok {
		if s.kind != segKey {
			return cur, fmt.Errorf("%w: %T", ErrRangeNotArray, m)
		}
		old, _ := m.Get(s.key)
		nv, err := set(reflect.ValueOf(old), segs[1:], v)
		if err != nil {
			return cur, err
		}
		m.Set(s.key, interfaceOf(nv))
		return cur, nil
	}

	rv := uref.Indirect(cur)
	switch rv.Kind() {
	case reflect.Map:
		return cur, setMap(rv, s, segs[1:], v)
	case reflect.Slice, reflect.Array:
		out, err := setArray(rv, s, segs[1:], v)
		if err != nil {
			return cur, err
		}
		if rv.Kind() == reflect.Slice && out.Pointer() != rv.Pointer() || out.Len() != rv.Len() {
			if rv.CanSet() {
				rv.Set(out)
				return cur, nil
			}
			return out, nil
		}
		return cur, nil
	case reflect.Struct:
		if s.kind != segKey {
			return cur, fmt.Errorf("%w: %s", ErrRangeNotArray, rv.Type())
		}
		return cur, setField(rv, s, segs[1:], v)
	}
	if s.kind == segRange {
		return cur, fmt.Errorf("%w: %s", ErrRangeNotArray, typeName(cur))
	}
	return cur, fmt.Errorf("%w: %s at %q", ErrNotContainer, typeName(cur), s.key)
}

// materialize replaces a missing or nil container with an empty one suited
// to the segment addressing it.
func materialize(cur reflect.Value, s segment) reflect.Value {
	if cur.IsValid() && cur.Kind() == reflect.Interface {
		cur = cur.Elem()
	}
	if !cur.IsValid() {
		if s.indexLike() {
			return reflect.ValueOf([]any{})
		}
		return reflect.ValueOf(map[string]any{})
	}
	switch cur.Kind() {
	case reflect.Map:
		if cur.IsNil() {
			return reflect.MakeMap(cur.Type())
		}
	case reflect.Ptr:
		if cur.IsNil() {
			if cur.Type() == reflect.TypeFor[*values.Map]() {
				return reflect.ValueOf(values.NewMap())
			}
			return reflect.New(cur.Type().Elem())
		}
	}
	return cur
}

func setMap(rv reflect.Value, s segment, rest []segment, v any) error {
	if s.kind != segKey {
		return fmt.Errorf("%w: %s", ErrRangeNotArray, rv.Type())
	}
	kt := rv.Type().Key()
	if kt.Kind() != reflect.String {
		return fmt.Errorf("%w: %s has non-string keys", ErrNotContainer, rv.Type())
	}
	if rv.IsNil() {
		if !rv.CanSet() {
			return fmt.Errorf("%w: nil %s", ErrNotContainer, rv.Type())
		}
		rv.Set(reflect.MakeMap(rv.Type()))
	}
	k := reflect.ValueOf(s.key).Convert(kt)
	nv, err := set(rv.MapIndex(k), rest, v)
	if err != nil {
		return err
	}
	ev, err := assignable(nv, rv.Type().Elem())
	if err != nil {
		return err
	}
	rv.SetMapIndex(k, ev)
	return nil
}

// setArray writes into rv and returns the resulting array, which is a new
// slice header when rv had to grow.
func setArray(rv reflect.Value, s segment, rest []segment, v any) (reflect.Value, error) {
	et := rv.Type().Elem()
	switch s.kind {
	case segAppend:
		nv, err := set(reflect.Value{}, rest, v)
		if err != nil {
			return rv, err
		}
		if rv.Kind() != reflect.Slice {
			return rv, fmt.Errorf("%w: cannot append to %s", ErrIndex, rv.Type())
		}
		ev, err := assignable(nv, et)
		if err != nil {
			return rv, err
		}
		return reflect.Append(rv, ev), nil
	case segRange:
		lo, hi := s.bounds(rv.Len())
		for j := lo; j <= hi; j++ {
			if err := setElem(rv, j, rest, v); err != nil {
				return rv, err
			}
		}
		return rv, nil
	}

	if !s.isIndex {
		return rv, fmt.Errorf("%w: %q", ErrIndex, s.key)
	}
	i := s.index
	if i < 0 {
		i += rv.Len()
	}
	if i < 0 {
		return rv, fmt.Errorf("%w: %d", ErrIndex, s.index)
	}
	if i >= rv.Len() {
		if rv.Kind() != reflect.Slice {
			return rv, fmt.Errorf("%w: %d beyond %s", ErrIndex, i, rv.Type())
		}
		rv = reflect.AppendSlice(rv, reflect.MakeSlice(rv.Type(), i+1-rv.Len(), i+1-rv.Len()))
	}
	return rv, setElem(rv, i, rest, v)
}

func setElem(rv reflect.Value, i int, rest []segment, v any) error {
	e := rv.Index(i)
	if !e.CanSet() {
		return fmt.Errorf("%w: %s is not addressable", ErrNotContainer, rv.Type())
	}
	nv, err := set(e, rest, v)
	if err != nil {
		return err
	}
	ev, err := assignable(nv, e.Type())
	if err != nil {
		return err
	}
	e.Set(ev)
	return nil
}

func setField(rv reflect.Value, s segment, rest []segment, v any) error {
	f, ok := rv.Type().FieldByName(s.key)
	if !ok || !f.IsExported() {
		return fmt.Errorf("%w: %s has no field %q", ErrNotContainer, rv.Type(), s.key)
	}
	fv := rv.FieldByIndex(f.Index)
	if !fv.CanSet() {
		return fmt.Errorf("%w: %s is not addressable", ErrNotContainer, rv.Type())
	}
	nv, err := set(fv, rest, v)
	if err != nil {
		return err
	}
	ev, err := assignable(nv, fv.Type())
	if err != nil {
		return err
	}
	fv.Set(ev)
	return nil
}

// assignable converts nv for storage in a slot of type t.
func assignable(nv reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !nv.IsValid() {
		return reflect.Zero(t), nil
	}
	if nv.Kind() == reflect.Interface {
		if nv.IsNil() {
			return reflect.Zero(t), nil
		}
		nv = nv.Elem()
	}
	if nv.Type().AssignableTo(t) {
		return nv, nil
	}
	if isNumber(nv.Kind()) && isNumber(t.Kind()) {
		return nv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot store %s in %s", ErrValueType, nv.Type(), t)
}

func valueMap(cur reflect.Value) (*values.Map, bool) {
	if !cur.IsValid() {
		return nil, false
	}
	if cur.Kind() == reflect.Interface {
		cur = cur.Elem()
	}
	if !cur.IsValid() || !cur.CanInterface() {
		return nil, false
	}
	m, ok := cur.Interface().(*values.Map)
	return m, ok && m != nil
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func isArray(rv reflect.Value) bool {
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

func isNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}

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

package equal

import "reflect"

// identity names a pointer-backed container. Zero identities belong to
// values that cannot take part in a cycle.
type identity struct {
	t reflect.Type
	p uintptr
	n int
}

func identityOf(rv reflect.Value) (identity, bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Ptr:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{t: rv.Type(), p: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{t: rv.Type(), p: rv.Pointer(), n: rv.Len()}, true
	}
	return identity{}, false
}

// stack holds the containers currently being descended into.
type stack struct {
	ids []identity
}

// index returns the depth of id on s, or -1.
func (s *stack) index(id identity) int {
	for i := len(s.ids) - 1; i >= 0; i-- {
		if s.ids[i] == id {
			return i
		}
	}
	return -1
}

func (s *stack) push(id identity) { s.ids = append(s.ids, id) }

func (s *stack) pop() { s.ids = s.ids[:len(s.ids)-1] }

// refs assigns first-seen indices to values that only have an identity.
type refs struct {
	seen map[any]int
	next int
}

func (r *refs) index(rv reflect.Value) int {
	var k any
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		k = identity{t: rv.Type(), p: rv.Pointer()}
	default:
		if !rv.Comparable() {
			r.next++
			return r.next - 1
		}
		k = rv.Interface()
	}
	if r.seen == nil {
		r.seen = make(map[any]int)
	}
	if i, ok := r.seen[k]; ok {
		return i
	}
	r.seen[k] = r.next
	r.next++
	return r.seen[k]
}

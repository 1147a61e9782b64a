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

// Package equal compares and serializes values structurally.
//
// Both operations walk containers with a shared stack discipline: a
// container is pushed before its children are visited and popped after, and
// a container met again while on the stack is not descended into. Set and
// map contents are compared as ordered projections (insertion order for
// *values.Map, token order otherwise), so collections with equal contents
// in a different insertion order are unequal.
package equal

import (
	"reflect"

	goset "github.com/deckarep/golang-set/v2"

	"dirpx.dev/rtx/apis"
	uref "dirpx.dev/rtx/utils/reflect"
)

// Equal reports whether a and b are structurally equal.
//
// Numbers compare by canonical token across Go numeric types: 0 and -0
// differ, NaN equals NaN. Errors compare by message, dates by instant and
// regular expressions by source. Functions and host values are equal only
// to themselves.
func Equal(a, b any) bool {
	w := &comparer{}
	return w.equal(a, b)
}

type comparer struct {
	left, right stack
	ser         serializer
}

func (w *comparer) equal(a, b any) bool {
	ka, kb := uref.Classify(a), uref.Classify(b)
	if ka != kb {
		return false
	}
	switch ka {
	case apis.KindNil:
		return true
	case apis.KindBool, apis.KindNumber, apis.KindString, apis.KindDate, apis.KindRegExp, apis.KindError:
		return scalar(ka, a) == scalar(kb, b)
	case apis.KindFunc, apis.KindHost:
		return same(reflect.ValueOf(a), reflect.ValueOf(b))
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	ida, okA := identityOf(ra)
	idb, okB := identityOf(rb)
	if okA && okB && ida == idb {
		return true
	}

	ia, ib := -1, -1
	if okA {
		ia = w.left.index(ida)
	}
	if okB {
		ib = w.right.index(idb)
	}
	if ia >= 0 || ib >= 0 {
		return ia == ib
	}
	if okA {
		w.left.push(ida)
		defer w.left.pop()
	}
	if okB {
		w.right.push(idb)
		defer w.right.pop()
	}

	switch ka {
	case apis.KindArray:
		if ra.Len() != rb.Len() {
			return false
		}
		for i := range ra.Len() {
			if !w.equal(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case apis.KindObject:
		if ra.Len() != rb.Len() {
			return false
		}
		for _, k := range ra.MapKeys() {
			bk := reflect.ValueOf(k.String())
			if !bk.Type().AssignableTo(rb.Type().Key()) {
				bk = bk.Convert(rb.Type().Key())
			}
			vb := rb.MapIndex(bk)
			if !vb.IsValid() || !w.equal(ra.MapIndex(k).Interface(), vb.Interface()) {
				return false
			}
		}
		return true
	case apis.KindSet:
		sa, sb := a.(goset.Set[any]), b.(goset.Set[any])
		if sa.Cardinality() != sb.Cardinality() {
			return false
		}
		pa, pb := w.ser.setProjection(sa), w.ser.setProjection(sb)
		for i := range pa {
			if !w.equal(pa[i], pb[i]) {
				return false
			}
		}
		return true
	case apis.KindMap:
		ea, eb := w.ser.entries(a), w.ser.entries(b)
		if len(ea) != len(eb) {
			return false
		}
		for i := range ea {
			if !w.equal(ea[i][0], eb[i][0]) || !w.equal(ea[i][1], eb[i][1]) {
				return false
			}
		}
		return true
	}
	return false
}

// same reports identity: pointer-like values by address, other comparable
// values by ==.
func same(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}
	if !a.Comparable() || !b.Comparable() {
		return false
	}
	return a.Interface() == b.Interface()
}

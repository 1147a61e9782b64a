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

package reflect

import (
	"reflect"
	"regexp"
	"time"

	goset "github.com/deckarep/golang-set/v2"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/values"
)

var (
	timeType    = reflect.TypeFor[time.Time]()
	timePtrType = reflect.TypeFor[*time.Time]()
	regexpType  = reflect.TypeFor[*regexp.Regexp]()
	mapType     = reflect.TypeFor[*values.Map]()
	errorType   = reflect.TypeFor[error]()
	setType     = reflect.TypeFor[goset.Set[any]]()
)

// Classify returns the structural kind of v.
//
// Nil pointers and nil funcs classify as KindNil; nil slices and maps keep
// their container kind since they behave as empty containers.
func Classify(v any) apis.Kind {
	if v == nil {
		return apis.KindNil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			return apis.KindNil
		}
	}
	return ClassifyType(rv.Type())
}

// ClassifyType returns the structural kind of values of type t.
func ClassifyType(t reflect.Type) apis.Kind {
	if t == nil {
		return apis.KindNil
	}
	switch t {
	case timeType, timePtrType:
		return apis.KindDate
	case regexpType:
		return apis.KindRegExp
	case mapType:
		return apis.KindMap
	}
	if t.Implements(errorType) {
		return apis.KindError
	}
	if t.Implements(setType) {
		return apis.KindSet
	}

	switch t.Kind() {
	case reflect.Bool:
		return apis.KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return apis.KindNumber
	case reflect.String:
		return apis.KindString
	case reflect.Func:
		return apis.KindFunc
	case reflect.Slice, reflect.Array:
		return apis.KindArray
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return apis.KindObject
		}
		return apis.KindMap
	default:
		return apis.KindHost
	}
}

// Indirect follows pointers and interfaces until it reaches a non-pointer
// value or a nil. Pointers to Date values are kept.
func Indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() || rv.Type() == timePtrType || rv.Type() == regexpType || rv.Type() == mapType {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}

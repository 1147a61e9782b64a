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

package strategy

import (
	"reflect"
	"sync"

	"dirpx.dev/rtx/apis"
	uref "dirpx.dev/rtx/utils/reflect"
)

// NewClassStrategy creates an apis.Strategy that resolves namespaces from the
// structural class of a value, memoized per reflect.Type.
func NewClassStrategy() apis.Strategy {
	return classStrategy{}
}

// classStrategy is the universal fallback. Nil and host values have no
// class namespace and fall through, so the caller picks the generic one.
type classStrategy struct{}

// Ensure classStrategy implements apis.Strategy.
var _ apis.Strategy = (*classStrategy)(nil)

// kindCache caches structural kinds by type.
var kindCache sync.Map // key: reflect.Type, val: apis.Kind

// TryResolve computes the class namespace for v.
func (classStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if uref.Classify(v) == apis.KindNil {
		return "", false
	}
	return byType(reflect.TypeOf(v))
}

// TryResolveType computes the class namespace for t.
func (classStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t)
}

// byType resolves the class namespace for t with memoization.
func byType(t reflect.Type) (string, bool) {
	var k apis.Kind
	if v, ok := kindCache.Load(t); ok {
		k = v.(apis.Kind)
	} else {
		k = uref.ClassifyType(t)
		kindCache.Store(t, k)
	}
	name := k.Namespace()
	return name, name != ""
}

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

	"dirpx.dev/rtx/apis"
)

// NewTypeStrategy creates an apis.Strategy that consults an apis.TypeRegistry.
func NewTypeStrategy(types apis.TypeRegistry) apis.Strategy {
	return &typeStrategy{types: types}
}

// typeStrategy consults host type bindings (reflection-free lookup).
type typeStrategy struct {
	types apis.TypeRegistry
}

// Ensure typeStrategy implements apis.Strategy.
var _ apis.Strategy = (*typeStrategy)(nil)

// TryResolve looks up v's type in the type table.
func (s *typeStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil || s.types == nil {
		return "", false
	}
	return s.types.Lookup(reflect.TypeOf(v))
}

// TryResolveType looks up t in the type table.
func (s *typeStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.types == nil {
		return "", false
	}
	return s.types.Lookup(t)
}

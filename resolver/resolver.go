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

package resolver

import (
	"reflect"

	"dirpx.dev/rtx/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	return NewFiltered(nil, strategies...)
}

// NewFiltered is New with an acceptance check: a name for which accept
// returns false is treated as unhandled and the next strategy runs. A nil
// accept admits every name.
//
// This lets a type bound to a namespace that was never created fall back to
// its structural class instead of to the generic namespace.
func NewFiltered(accept func(string) bool, strategies ...apis.Strategy) apis.Resolver {
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out, accept: accept}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	accept func(string) bool
}

// Resolve runs strategies in order until one produces an accepted namespace.
// Returns an empty string if none did.
func (r chain) Resolve(v any, cfg apis.Config) string {
	return r.first(func(s apis.Strategy) (string, bool) { return s.TryResolve(v, cfg) })
}

// ResolveType is Resolve for a reflect.Type.
func (r chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.first(func(s apis.Strategy) (string, bool) { return s.TryResolveType(t, cfg) })
}

func (r chain) first(try func(apis.Strategy) (string, bool)) string {
	for _, s := range r.strats {
		name, ok := try(s)
		if !ok {
			continue
		}
		if r.accept == nil || r.accept(name) {
			return name
		}
	}
	return ""
}

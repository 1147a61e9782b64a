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

package builder

import (
	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/resolver"
	"dirpx.dev/rtx/strategy"
	"dirpx.dev/rtx/typereg"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildTypes builds and returns a new apis.TypeRegistry based on the provided
// configuration. If a previous table is provided, its entries are copied into
// the new one.
func (b *builder) BuildTypes(cfg apis.Config, prev apis.TypeRegistry) apis.TypeRegistry {
	types := typereg.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = types.Register(e.Type, e.Namespace)
		}
	}
	return types
}

// BuildResolver builds the default resolution chain: a value naming its own
// namespace, then host type bindings, then its structural class.
func (b *builder) BuildResolver(_ apis.Config, types apis.TypeRegistry, known func(string) bool) apis.Resolver {
	return resolver.NewFiltered(known,
		strategy.NewNamerStrategy(),
		strategy.NewTypeStrategy(types),
		strategy.NewClassStrategy(),
	)
}

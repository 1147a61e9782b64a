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

package apis

// Builder composes a TypeRegistry and a Resolver from a Config.
// Implementations may migrate state from previous instances, or ignore them.
type Builder interface {
	// BuildTypes constructs a TypeRegistry for Config. May migrate entries from prev.
	BuildTypes(cfg Config, prev TypeRegistry) TypeRegistry
	// BuildResolver constructs a Resolver consulting types. A non-nil known
	// reports which namespace names exist; names it rejects let the next
	// strategy try.
	BuildResolver(cfg Config, types TypeRegistry, known func(string) bool) Resolver
}

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

import "reflect"

// TypeRegistry binds host Go types to namespace names. It lets values of
// types the structural classifier cannot tell apart (structs, pointers)
// resolve to a dedicated namespace.
type TypeRegistry interface {
	// Register associates a (nearest named) reflect.Type with a namespace.
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(t reflect.Type, namespace string) error
	// Lookup returns the namespace for a type if present.
	Lookup(t reflect.Type) (namespace string, ok bool)
	// Entries returns a snapshot for diagnostics (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, namespace) association in a TypeRegistry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Namespace is the associated namespace name.
	Namespace string
}

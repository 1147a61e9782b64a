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

// Side selects the static or the prototype (instance) member table of a
// native target.
type Side uint8

const (
	// SideStatic is the namespace-level member table (e.g. Array.from).
	SideStatic Side = iota
	// SidePrototype is the per-instance member table (e.g. array.map).
	SidePrototype
)

// String returns "static" or "prototype".
func (s Side) String() string {
	if s == SidePrototype {
		return "prototype"
	}
	return "static"
}

// Target is the native-globals boundary the extension engine copies methods
// onto. Hosts without mutable native types install nothing.
type Target interface {
	// Has reports whether the native type for namespace already defines name on side.
	Has(namespace, name string, side Side) bool
	// Install copies m onto side of the native type, overwriting any member of the same name.
	Install(namespace string, side Side, m *Method) error
}

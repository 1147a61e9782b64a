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

package registry

import (
	"slices"

	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
)

// EntryKind tags a wrapper-surface slot.
type EntryKind uint8

const (
	// EntryDirect slots call their method as is.
	EntryDirect EntryKind = iota
	// EntryDisambiguator slots defer the choice of method to call time:
	// the wrapped value's namespace is resolved first, then its method is
	// looked up.
	EntryDisambiguator
)

// String returns "direct" or "disambiguator".
func (k EntryKind) String() string {
	if k == EntryDisambiguator {
		return "disambiguator"
	}
	return "direct"
}

// Entry is one slot of a wrapper surface.
type Entry struct {
	// Kind tells how the slot dispatches.
	Kind EntryKind
	// Name is the method name.
	Name string
	// Method is set for EntryDirect slots only.
	Method *apis.Method
}

// Entry returns the slot for name on the wrapper surface of namespace.
func (r *Registry) Entry(namespace, name string) (Entry, bool) {
	e, ok := r.surfaces[namespace][name]
	return e, ok
}

// GenericEntry returns the slot for name on the generic wrapper surface,
// the union of every namespace's instance methods.
func (r *Registry) GenericEntry(name string) (Entry, bool) {
	e, ok := r.generic[name]
	return e, ok
}

// GenericNames returns the sorted method names of the generic surface.
func (r *Registry) GenericNames() []string {
	out := make([]string, 0, len(r.generic))
	for name := range r.generic {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// install places an instance method on its namespace surface and merges it
// into the generic surface. The first registrant keeps the generic slot
// while implementations agree; a differing implementation turns the slot
// into a Disambiguator, which is installed at most once per name.
func (r *Registry) install(ns *Namespace, m *apis.Method) {
	surface, ok := r.surfaces[ns.name]
	if !ok {
		surface = make(map[string]Entry)
		r.surfaces[ns.name] = surface
	}
	surface[m.Name()] = Entry{Kind: EntryDirect, Name: m.Name(), Method: m}

	cur, ok := r.generic[m.Name()]
	switch {
	case !ok:
		r.generic[m.Name()] = Entry{Kind: EntryDirect, Name: m.Name(), Method: m}
	case cur.Kind == EntryDisambiguator:
	case cur.Method.Same(m):
	default:
		r.generic[m.Name()] = Entry{Kind: EntryDisambiguator, Name: m.Name()}
		r.log.Debug("disambiguator installed",
			zap.String("method", m.Name()),
			zap.String("first", cur.Method.Namespace()),
			zap.String("second", ns.name))
	}
}

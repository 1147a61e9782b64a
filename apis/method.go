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

import (
	"slices"

	goset "github.com/deckarep/golang-set/v2"
)

// FlagBroadcast marks a generic-namespace method that every other namespace
// inherits unless it defines its own method of the same name.
const FlagBroadcast = "broadcast"

// MethodKind tells which call forms a method exposes.
type MethodKind uint8

const (
	// Static methods are called with the call-site arguments only.
	Static MethodKind = 1 << iota
	// Instance methods receive the wrapped value as their first parameter.
	Instance
	// Both exposes the static and the instance form of the same implementation.
	Both = Static | Instance
)

// HasStatic reports whether k includes the static form.
func (k MethodKind) HasStatic() bool { return k&Static != 0 }

// HasInstance reports whether k includes the instance form.
func (k MethodKind) HasInstance() bool { return k&Instance != 0 }

// String returns "static", "instance", "both" or "none".
func (k MethodKind) String() string {
	switch k {
	case Static:
		return "static"
	case Instance:
		return "instance"
	case Both:
		return "both"
	default:
		return "none"
	}
}

// Func is a normalized static invoker.
type Func func(args ...any) (any, error)

// InstanceFunc is a normalized instance invoker; recv is the receiver.
type InstanceFunc func(recv any, args ...any) (any, error)

// MethodSpec carries everything needed to build a Method.
type MethodSpec struct {
	// Name is the method name inside its namespace.
	Name string
	// Namespace is the owning namespace name.
	Namespace string
	// Kind selects the exposed call forms.
	Kind MethodKind
	// CollectsArguments gathers trailing call-site arguments into one slice.
	CollectsArguments bool
	// Polyfill methods are only extended onto targets lacking the member.
	Polyfill bool
	// Static is the static invoker (nil unless Kind has Static).
	Static Func
	// Instance is the instance invoker (nil unless Kind has Instance).
	Instance InstanceFunc
	// Impl identifies the implementation by its code pointer.
	Impl uintptr
	// Flags are enhancement tags gating native extension.
	Flags []string
}

// Method is a registered operation. It is immutable after registration
// except for its flags.
type Method struct {
	name      string
	namespace string
	kind      MethodKind
	collects  bool
	polyfill  bool
	static    Func
	instance  InstanceFunc
	impl      uintptr
	flags     goset.Set[string]
}

// NewMethod constructs a Method from spec.
func NewMethod(spec MethodSpec) *Method {
	return &Method{
		name:      spec.Name,
		namespace: spec.Namespace,
		kind:      spec.Kind,
		collects:  spec.CollectsArguments,
		polyfill:  spec.Polyfill,
		static:    spec.Static,
		instance:  spec.Instance,
		impl:      spec.Impl,
		flags:     goset.NewSet(spec.Flags...),
	}
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// Namespace returns the name of the namespace that defined m.
func (m *Method) Namespace() string { return m.namespace }

// Kind returns the exposed call forms.
func (m *Method) Kind() MethodKind { return m.kind }

// CollectsArguments reports whether trailing arguments are gathered into a slice.
func (m *Method) CollectsArguments() bool { return m.collects }

// Polyfill reports whether m only fills members missing on a target.
func (m *Method) Polyfill() bool { return m.polyfill }

// Impl returns the code pointer identifying the implementation.
func (m *Method) Impl() uintptr { return m.impl }

// Flags returns the enhancement tags in sorted order.
func (m *Method) Flags() []string {
	out := m.flags.ToSlice()
	slices.Sort(out)
	return out
}

// HasFlag reports whether m carries flag.
func (m *Method) HasFlag(flag string) bool { return m.flags.Contains(flag) }

// SetFlags replaces the enhancement tags.
func (m *Method) SetFlags(flags ...string) {
	m.flags = goset.NewSet(flags...)
}

// AddFlags adds enhancement tags.
func (m *Method) AddFlags(flags ...string) {
	m.flags.Append(flags...)
}

// Same reports whether o describes the identical definition: same name,
// call forms, argument mode and implementation.
func (m *Method) Same(o *Method) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.name == o.name &&
		m.kind == o.kind &&
		m.collects == o.collects &&
		m.impl == o.impl
}

// CallStatic invokes the static form.
func (m *Method) CallStatic(args ...any) (any, error) {
	if m.static == nil {
		return nil, ErrNoStaticForm
	}
	return m.static(args...)
}

// CallInstance invokes the instance form with recv as receiver.
func (m *Method) CallInstance(recv any, args ...any) (any, error) {
	if m.instance == nil {
		return nil, ErrNoInstanceForm
	}
	return m.instance(recv, args...)
}

// WithName returns a copy of m registered under name. Flags are copied.
func (m *Method) WithName(name string) *Method {
	return &Method{
		name:      name,
		namespace: m.namespace,
		kind:      m.kind,
		collects:  m.collects,
		polyfill:  m.polyfill,
		static:    m.static,
		instance:  m.instance,
		impl:      m.impl,
		flags:     m.flags.Clone(),
	}
}

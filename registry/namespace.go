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
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
)

// Namespace is the method table and identity of one value kind.
type Namespace struct {
	reg       *Registry
	name      string
	methods   map[string]*apis.Method
	inherited map[string]bool
	order     []string
	active    bool
	extend    func(*apis.Method) error
	ctor      apis.Func
}

func newNamespace(r *Registry, name string) *Namespace {
	return &Namespace{
		reg:       r,
		name:      name,
		methods:   make(map[string]*apis.Method),
		inherited: make(map[string]bool),
	}
}

// Name returns the namespace name.
func (ns *Namespace) Name() string { return ns.name }

// Registry returns the owning registry.
func (ns *Namespace) Registry() *Registry { return ns.reg }

// Active reports whether an unfiltered extension happened. Methods defined
// on an active namespace are extended as soon as they are registered.
func (ns *Namespace) Active() bool { return ns.active }

// Activate marks ns active. extend is applied to every method defined from
// now on.
func (ns *Namespace) Activate(extend func(*apis.Method) error) {
	ns.active = true
	ns.extend = extend
}

// Method returns the method called name, own or inherited.
func (ns *Namespace) Method(name string) (*apis.Method, bool) {
	m, ok := ns.methods[name]
	return m, ok
}

// Inherited reports whether name was seeded from the generic namespace.
func (ns *Namespace) Inherited(name string) bool { return ns.inherited[name] }

// Methods returns every method in definition order.
func (ns *Namespace) Methods() []*apis.Method {
	out := make([]*apis.Method, 0, len(ns.order))
	for _, name := range ns.order {
		out = append(out, ns.methods[name])
	}
	return out
}

// Define registers fn under name. It is the single entry point behind every
// Define* helper.
func (ns *Namespace) Define(name string, fn any, kind apis.MethodKind, collect bool, flags ...string) error {
	return ns.define(name, fn, kind, collect, false, flags)
}

// DefineStatic registers a static method.
func (ns *Namespace) DefineStatic(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Static, false, false, flags)
}

// DefineInstance registers an instance method. fn takes the receiver first.
func (ns *Namespace) DefineInstance(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Instance, false, false, flags)
}

// DefineInstanceAndStatic registers a method callable both ways. The static
// form takes the receiver as its first argument.
func (ns *Namespace) DefineInstanceAndStatic(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Both, false, false, flags)
}

// DefineStaticWithArguments registers a static method whose trailing
// call-site arguments are collected into its last (slice) parameter.
func (ns *Namespace) DefineStaticWithArguments(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Static, true, false, flags)
}

// DefineInstanceWithArguments is DefineInstance with argument collection.
func (ns *Namespace) DefineInstanceWithArguments(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Instance, true, false, flags)
}

// DefineInstanceAndStaticWithArguments is DefineInstanceAndStatic with
// argument collection.
func (ns *Namespace) DefineInstanceAndStaticWithArguments(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Both, true, false, flags)
}

// DefineStaticPolyfill registers a static method that is only extended onto
// native targets missing a member of that name.
func (ns *Namespace) DefineStaticPolyfill(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Static, false, true, flags)
}

// DefineInstancePolyfill is DefineStaticPolyfill for instance methods.
func (ns *Namespace) DefineInstancePolyfill(name string, fn any, flags ...string) error {
	return ns.define(name, fn, apis.Instance, false, true, flags)
}

// Alias registers newName for an existing method name or, when given a
// func, defines it as an instance method.
func (ns *Namespace) Alias(newName string, existing any) error {
	switch v := existing.(type) {
	case string:
		m, ok := ns.methods[v]
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownMethod, ns.name, v)
		}
		return ns.add(m.WithName(newName))
	default:
		if reflect.ValueOf(existing).Kind() != reflect.Func {
			return fmt.Errorf("%w: %s.%s: alias target %T is neither a method name nor a func",
				ErrInvalidDefinition, ns.name, newName, existing)
		}
		return ns.DefineInstance(newName, existing)
	}
}

// CallStatic calls the static form of name.
func (ns *Namespace) CallStatic(name string, args ...any) (any, error) {
	m, ok := ns.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, ns.name, name)
	}
	return m.CallStatic(args...)
}

// CallInstance calls the instance form of name with recv as receiver.
func (ns *Namespace) CallInstance(name string, recv any, args ...any) (any, error) {
	m, ok := ns.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, ns.name, name)
	}
	return m.CallInstance(recv, args...)
}

// SetConstructor overrides how Construct builds values of this namespace.
func (ns *Namespace) SetConstructor(fn any) error {
	m, err := ns.reg.newMethod(ns.name, "constructor", fn, apis.Static, false, false, nil)
	if err != nil {
		return err
	}
	ns.ctor = m.CallStatic
	return nil
}

// Construct builds a value through the constructor hook. Without a hook it
// returns its first argument unchanged.
func (ns *Namespace) Construct(args ...any) (any, error) {
	if ns.ctor != nil {
		return ns.ctor(args...)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args[0], nil
}

func (ns *Namespace) define(name string, fn any, kind apis.MethodKind, collect, polyfill bool, flags []string) error {
	m, err := ns.reg.newMethod(ns.name, name, fn, kind, collect, polyfill, flags)
	if err != nil {
		return err
	}
	return ns.add(m)
}

// add stores an own definition, replacing any inherited one.
func (ns *Namespace) add(m *apis.Method) error {
	if old, ok := ns.methods[m.Name()]; ok && !ns.inherited[m.Name()] {
		if old.Same(m) {
			return nil
		}
		return fmt.Errorf("%w: %s.%s", ErrConflictingDefinition, ns.name, m.Name())
	}
	delete(ns.inherited, m.Name())
	ns.store(m)
	ns.reg.log.Debug("method defined",
		zap.String("namespace", ns.name),
		zap.String("method", m.Name()),
		zap.Stringer("kind", m.Kind()))

	if ns.reg.IsGeneric(ns) && m.HasFlag(apis.FlagBroadcast) {
		if err := ns.reg.broadcast(m); err != nil {
			return err
		}
	}
	return ns.extendActive(m)
}

// inherit seeds a broadcast method unless ns has its own definition.
func (ns *Namespace) inherit(m *apis.Method) error {
	if _, ok := ns.methods[m.Name()]; ok && !ns.inherited[m.Name()] {
		return nil
	}
	ns.inherited[m.Name()] = true
	ns.store(m)
	ns.reg.log.Debug("method inherited",
		zap.String("namespace", ns.name),
		zap.String("method", m.Name()))
	return ns.extendActive(m)
}

func (ns *Namespace) store(m *apis.Method) {
	if _, ok := ns.methods[m.Name()]; !ok {
		ns.order = append(ns.order, m.Name())
	}
	ns.methods[m.Name()] = m
	if m.Kind().HasInstance() {
		ns.reg.install(ns, m)
	}
}

func (ns *Namespace) extendActive(m *apis.Method) error {
	if !ns.active || ns.extend == nil {
		return nil
	}
	return ns.extend(m)
}

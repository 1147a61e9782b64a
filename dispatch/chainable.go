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

// Package dispatch wraps values so that any namespace's instance methods can
// be called on them without knowing the namespace upfront.
package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/registry"
)

// ErrDisambiguatorCycle indicates that disambiguation resolved to another
// disambiguator. Resolution always ends in a concrete namespace, so this is
// unreachable under a consistent registry.
var ErrDisambiguatorCycle = fmt.Errorf("%w: rtx(dispatch): disambiguator resolved to a disambiguator", apis.ErrInvariant)

// Chainable is the envelope around one raw value. It is immutable; every
// Call returns a new Chainable around the result.
type Chainable struct {
	reg *registry.Registry
	ns  *registry.Namespace
	raw any
}

// Wrap returns a generic Chainable around v. Its surface is the union of
// every namespace's instance methods.
func Wrap(reg *registry.Registry, v any) *Chainable {
	return &Chainable{reg: reg, ns: reg.Generic(), raw: v}
}

// WrapAs returns a Chainable bound to ns. Names ns does not define fall back
// to the generic surface.
func WrapAs(reg *registry.Registry, ns *registry.Namespace, v any) *Chainable {
	if ns == nil {
		ns = reg.Generic()
	}
	return &Chainable{reg: reg, ns: ns, raw: v}
}

// Of wraps v bound to the namespace v resolves to.
func Of(reg *registry.Registry, v any) *Chainable {
	return WrapAs(reg, reg.Resolve(v), v)
}

// Raw returns the wrapped value unchanged.
func (c *Chainable) Raw() any { return c.raw }

// Namespace returns the namespace the wrapper is bound to.
func (c *Chainable) Namespace() *registry.Namespace { return c.ns }

// Names returns the method names callable on any wrapper.
func (c *Chainable) Names() []string { return c.reg.GenericNames() }

// Has reports whether name can be called on c.
func (c *Chainable) Has(name string) bool {
	_, err := c.lookup(name)
	return err == nil
}

// Invoke calls name with the wrapped value as receiver and returns the bare
// result.
func (c *Chainable) Invoke(name string, args ...any) (any, error) {
	m, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return m.CallInstance(c.raw, args...)
}

// Call is Invoke with the result wrapped again, so calls compose.
func (c *Chainable) Call(name string, args ...any) (*Chainable, error) {
	v, err := c.Invoke(name, args...)
	if err != nil {
		return nil, err
	}
	return Wrap(c.reg, v), nil
}

// lookup returns the concrete method answering name for c.raw.
func (c *Chainable) lookup(name string) (*apis.Method, error) {
	if !c.reg.IsGeneric(c.ns) {
		if e, ok := c.reg.Entry(c.ns.Name(), name); ok {
			return c.concrete(e)
		}
	}

	e, ok := c.reg.GenericEntry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", registry.ErrMethodNotFound, name)
	}
	if e.Kind == registry.EntryDirect {
		return e.Method, nil
	}
	return c.disambiguate(name)
}

// disambiguate resolves the namespace of c.raw first, then looks name up on
// that namespace's surface. Values of a namespace lacking name fall back to
// the generic namespace's own definition.
func (c *Chainable) disambiguate(name string) (*apis.Method, error) {
	ns := c.reg.Resolve(c.raw)
	e, ok := c.reg.Entry(ns.Name(), name)
	if !ok && !c.reg.IsGeneric(ns) {
		ns = c.reg.Generic()
		e, ok = c.reg.Entry(ns.Name(), name)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", registry.ErrMethodNotFound, ns.Name(), name)
	}
	c.reg.Logger().Debug("disambiguated",
		zap.String("method", name),
		zap.String("namespace", ns.Name()))
	return c.concrete(e)
}

func (c *Chainable) concrete(e registry.Entry) (*apis.Method, error) {
	if e.Kind == registry.EntryDisambiguator || e.Method == nil {
		return nil, fmt.Errorf("%w: %s", ErrDisambiguatorCycle, e.Name)
	}
	return e.Method, nil
}

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

// Package extension copies registered methods onto native targets.
//
// Extension is best effort: filtered members are skipped silently, and an
// install error stops the loop without undoing earlier installs.
package extension

import (
	"fmt"

	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/registry"
)

// Engine extends namespaces of one registry onto one target.
type Engine struct {
	reg      *registry.Registry
	target   apis.Target
	log      *zap.Logger
	defaults []Option
}

// New returns an Engine. defaults apply before the options of every call.
func New(reg *registry.Registry, target apis.Target, defaults ...Option) *Engine {
	return &Engine{
		reg:      reg,
		target:   target,
		log:      reg.Logger().Named("extension"),
		defaults: defaults,
	}
}

// Target returns the native target of e.
func (e *Engine) Target() apis.Target { return e.target }

// Extend copies the methods of ns onto the target. Without WithMethods,
// ns becomes active: methods defined on it later are extended with the same
// options as they are registered.
func (e *Engine) Extend(ns *registry.Namespace, opts ...Option) error {
	return e.extend(ns, newOptions(e.defaults, opts))
}

// ExtendAll extends every namespace in creation order.
func (e *Engine) ExtendAll(opts ...Option) error {
	o := newOptions(e.defaults, opts)
	for _, ns := range e.reg.Namespaces() {
		if err := e.extend(ns, o); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) extend(ns *registry.Namespace, o *Options) error {
	if o.excludesNamespace(ns.Name()) {
		e.log.Debug("namespace skipped", zap.String("namespace", ns.Name()))
		return nil
	}
	for _, m := range ns.Methods() {
		if err := e.extendMethod(ns, m, o); err != nil {
			return err
		}
	}
	if !o.Filtered() {
		ns.Activate(func(m *apis.Method) error {
			return e.extendMethod(ns, m, o)
		})
	}
	return nil
}

func (e *Engine) extendMethod(ns *registry.Namespace, m *apis.Method, o *Options) error {
	if !o.selects(m.Name()) {
		e.skip(ns, m, apis.SideStatic, "not selected")
		return nil
	}
	if m.Kind().HasStatic() {
		if err := e.install(ns, m, apis.SideStatic, o); err != nil {
			return err
		}
	}
	if m.Kind().HasInstance() {
		if e.reg.IsGeneric(ns) && !o.objectPrototype {
			e.skip(ns, m, apis.SidePrototype, "object prototype disabled")
			return nil
		}
		if err := e.install(ns, m, apis.SidePrototype, o); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) install(ns *registry.Namespace, m *apis.Method, side apis.Side, o *Options) error {
	if e.target.Has(ns.Name(), m.Name(), side) {
		if m.Polyfill() {
			e.skip(ns, m, side, "native member present")
			return nil
		}
		if flag, ok := o.disabled(m.Flags()); ok {
			e.skip(ns, m, side, "enhancement "+flag+" disabled")
			return nil
		}
	}
	if err := e.target.Install(ns.Name(), side, m); err != nil {
		return fmt.Errorf("rtx(extension): %s %s.%s: %w", side, ns.Name(), m.Name(), err)
	}
	e.log.Debug("method extended",
		zap.String("namespace", ns.Name()),
		zap.String("method", m.Name()),
		zap.Stringer("side", side))
	return nil
}

func (e *Engine) skip(ns *registry.Namespace, m *apis.Method, side apis.Side, reason string) {
	e.log.Debug("method skipped",
		zap.String("namespace", ns.Name()),
		zap.String("method", m.Name()),
		zap.Stringer("side", side),
		zap.String("reason", reason))
}

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

// Package registry owns namespaces, their method tables and the wrapper
// surfaces the dispatch layer reads.
//
// A Registry is a caller-owned handle: construct one at process start,
// register namespaces and methods, then read it. It performs no internal
// locking; concurrent mutation requires external synchronization.
package registry

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/builder"
	"dirpx.dev/rtx/config"
)

var (
	// ErrEmptyNamespace is returned when a namespace is created without a name.
	ErrEmptyNamespace = fmt.Errorf("%w: rtx(registry): empty namespace name", apis.ErrProgrammer)
	// ErrInvalidDefinition wraps every violation found while defining a method.
	ErrInvalidDefinition = fmt.Errorf("%w: rtx(registry): invalid method definition", apis.ErrProgrammer)
	// ErrConflictingDefinition indicates a second, different definition of a
	// method name inside one namespace.
	ErrConflictingDefinition = fmt.Errorf("%w: rtx(registry): conflicting method definition", apis.ErrProgrammer)
	// ErrUnknownMethod is returned when an alias points to a missing method.
	ErrUnknownMethod = fmt.Errorf("%w: rtx(registry): unknown method", apis.ErrProgrammer)
	// ErrMethodNotFound is returned when a call names a method no namespace answers.
	ErrMethodNotFound = fmt.Errorf("%w: rtx(registry): method not found", apis.ErrTypeMismatch)
	// ErrArgumentType is returned when a call-site argument cannot be passed
	// to the implementation's parameter.
	ErrArgumentType = fmt.Errorf("%w: rtx(registry): argument type", apis.ErrTypeMismatch)
)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithBuilder sets the builder used to construct the type table and the
// resolver when they are not supplied directly.
func WithBuilder(b apis.Builder) Option {
	return func(r *Registry) {
		if b != nil {
			r.bld = b
		}
	}
}

// WithTypes sets the host type table.
func WithTypes(types apis.TypeRegistry) Option {
	return func(r *Registry) {
		r.types = types
	}
}

// WithResolver sets the value → namespace resolver.
func WithResolver(res apis.Resolver) Option {
	return func(r *Registry) {
		r.res = res
	}
}

// Registry owns every namespace by name.
type Registry struct {
	cfg   apis.Config
	log   *zap.Logger
	bld   apis.Builder
	types apis.TypeRegistry
	res   apis.Resolver

	namespaces map[string]*Namespace
	order      []*Namespace
	generic    map[string]Entry
	surfaces   map[string]map[string]Entry
}

// New constructs a Registry and its generic namespace.
func New(cfg apis.Config, opts ...Option) *Registry {
	if cfg.GenericNamespace == "" {
		cfg.GenericNamespace = config.DefaultGenericNamespace
	}
	r := &Registry{
		cfg:        cfg,
		log:        cfg.Log(),
		bld:        builder.New(),
		namespaces: make(map[string]*Namespace),
		generic:    make(map[string]Entry),
		surfaces:   make(map[string]map[string]Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.types == nil {
		r.types = r.bld.BuildTypes(cfg, nil)
	}
	if r.res == nil {
		r.res = r.bld.BuildResolver(cfg, r.types, r.known)
	}
	_, _ = r.CreateNamespace(cfg.GenericNamespace)
	return r
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() apis.Config { return r.cfg }

// Logger returns the registry logger.
func (r *Registry) Logger() *zap.Logger { return r.log }

// Types returns the host type table.
func (r *Registry) Types() apis.TypeRegistry { return r.types }

// CreateNamespace returns the namespace called name, creating it on first
// use. A new namespace inherits every broadcast method of the generic
// namespace.
func (r *Registry) CreateNamespace(name string) (*Namespace, error) {
	if name == "" {
		return nil, ErrEmptyNamespace
	}
	if ns, ok := r.namespaces[name]; ok {
		return ns, nil
	}

	ns := newNamespace(r, name)
	r.namespaces[name] = ns
	r.order = append(r.order, ns)
	r.surfaces[name] = make(map[string]Entry)

	if err := r.seed(ns); err != nil {
		return nil, fmt.Errorf("rtx(registry): seeding %s: %w", name, err)
	}
	r.log.Debug("namespace created", zap.String("namespace", name))
	return ns, nil
}

// seed copies every broadcast method of the generic namespace into ns.
func (r *Registry) seed(ns *Namespace) error {
	g := r.Generic()
	if g == nil || g == ns {
		return nil
	}
	for _, m := range g.Methods() {
		if !m.HasFlag(apis.FlagBroadcast) {
			continue
		}
		if err := ns.inherit(m); err != nil {
			return err
		}
	}
	return nil
}

// Namespace returns the namespace called name.
func (r *Registry) Namespace(name string) (*Namespace, bool) {
	ns, ok := r.namespaces[name]
	return ns, ok
}

// Namespaces returns every namespace in creation order.
func (r *Registry) Namespaces() []*Namespace {
	out := make([]*Namespace, len(r.order))
	copy(out, r.order)
	return out
}

// Generic returns the namespace answering values no other namespace claims.
func (r *Registry) Generic() *Namespace {
	return r.namespaces[r.cfg.GenericNamespace]
}

// IsGeneric reports whether ns is the generic namespace.
func (r *Registry) IsGeneric(ns *Namespace) bool {
	return ns != nil && ns.name == r.cfg.GenericNamespace
}

// Resolve returns the namespace answering v. Resolution always succeeds:
// values whose namespace is unknown or unregistered get the generic one.
func (r *Registry) Resolve(v any) *Namespace {
	if name := r.res.Resolve(v, r.cfg); name != "" {
		if ns, ok := r.namespaces[name]; ok {
			return ns
		}
	}
	return r.Generic()
}

// known reports whether a namespace called name exists.
func (r *Registry) known(name string) bool {
	_, ok := r.namespaces[name]
	return ok
}

// RegisterType binds a host type to a namespace for resolution.
func (r *Registry) RegisterType(t reflect.Type, namespace string) error {
	return r.types.Register(t, namespace)
}

// broadcast seeds m into every namespace lacking its own definition.
func (r *Registry) broadcast(m *apis.Method) error {
	for _, ns := range r.order {
		if r.IsGeneric(ns) {
			continue
		}
		if err := ns.inherit(m); err != nil {
			return err
		}
	}
	return nil
}

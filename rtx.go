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

package rtx

import (
	"fmt"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/dispatch"
	"dirpx.dev/rtx/equal"
	"dirpx.dev/rtx/extension"
	"dirpx.dev/rtx/format"
	"dirpx.dev/rtx/host"
	"dirpx.dev/rtx/path"
	"dirpx.dev/rtx/registry"
)

// ErrUnknownNamespace is returned when extending a namespace that was never
// created.
var ErrUnknownNamespace = fmt.Errorf("%w: rtx: unknown namespace", apis.ErrProgrammer)

// Runtime bundles a registry, the native target its methods extend onto and
// the extension engine between them.
type Runtime struct {
	cfg   apis.Config
	reg   *registry.Registry
	host  *host.Host
	eng   *extension.Engine
	paths *path.Parser
}

// New builds a Runtime from the given options. The runtime owns a path parser
// memoizing up to PathCacheSize expressions.
func New(opts ...config.Option) *Runtime {
	cfg := config.NewConfig(opts...)
	reg := registry.New(cfg)
	h := host.New()
	return &Runtime{
		cfg:   cfg,
		reg:   reg,
		host:  h,
		eng:   extension.New(reg, h),
		paths: path.NewParser(cfg.PathCacheSize),
	}
}

// Config returns the runtime configuration.
func (r *Runtime) Config() apis.Config { return r.cfg }

// Registry returns the namespace registry.
func (r *Runtime) Registry() *registry.Registry { return r.reg }

// Engine returns the extension engine.
func (r *Runtime) Engine() *extension.Engine { return r.eng }

// Host returns the native globals methods are extended onto.
func (r *Runtime) Host() *host.Host { return r.host }

// Namespace returns the namespace called name, creating it on first use.
func (r *Runtime) Namespace(name string) (*registry.Namespace, error) {
	return r.reg.CreateNamespace(name)
}

// Wrap returns a generic chainable wrapper around v.
func (r *Runtime) Wrap(v any) *dispatch.Chainable {
	return dispatch.Wrap(r.reg, v)
}

// Extend extends the namespace called name onto the host.
func (r *Runtime) Extend(name string, opts ...extension.Option) error {
	ns, ok := r.reg.Namespace(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNamespace, name)
	}
	return r.eng.Extend(ns, opts...)
}

// ExtendAll extends every namespace onto the host.
func (r *Runtime) ExtendAll(opts ...extension.Option) error {
	return r.eng.ExtendAll(opts...)
}

// Paths returns the runtime's path parser.
func (r *Runtime) Paths() *path.Parser { return r.paths }

// Get is path.Get.
func (r *Runtime) Get(root any, p string) (any, error) { return r.paths.Get(root, p) }

// Has is path.Has.
func (r *Runtime) Has(root any, p string) (bool, error) { return r.paths.Has(root, p) }

// Set is path.Set.
func (r *Runtime) Set(root any, p string, v any) (any, error) { return r.paths.Set(root, p, v) }

// Equal is equal.Equal.
func (r *Runtime) Equal(a, b any) bool { return equal.Equal(a, b) }

// Serialize is equal.Serialize.
func (r *Runtime) Serialize(v any) string { return equal.Serialize(v) }

// Format is format.Format.
func (r *Runtime) Format(template string, args ...any) (string, error) {
	return format.Format(template, args...)
}

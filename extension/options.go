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

package extension

import goset "github.com/deckarep/golang-set/v2"

// Options filters what an extension copies onto the native target.
type Options struct {
	methods         goset.Set[string]
	except          goset.Set[string]
	namespaces      goset.Set[string]
	enhance         map[string]bool
	objectPrototype bool
}

// Option configures one extension call.
type Option func(*Options)

// WithMethods restricts the extension to the named methods. A filtered
// extension does not activate its namespace.
func WithMethods(names ...string) Option {
	return func(o *Options) {
		if o.methods == nil {
			o.methods = goset.NewThreadUnsafeSet[string]()
		}
		o.methods.Append(names...)
	}
}

// WithExcept excludes method names and namespace names.
func WithExcept(names ...string) Option {
	return func(o *Options) {
		o.except.Append(names...)
	}
}

// WithNamespaces restricts a global extension to the named namespaces.
func WithNamespaces(names ...string) Option {
	return func(o *Options) {
		if o.namespaces == nil {
			o.namespaces = goset.NewThreadUnsafeSet[string]()
		}
		o.namespaces.Append(names...)
	}
}

// WithEnhance enables or disables an enhancement category. A disabled
// category keeps every method carrying that flag off native members that
// already exist. Categories are enabled unless disabled explicitly.
func WithEnhance(flag string, enabled bool) Option {
	return func(o *Options) {
		o.enhance[flag] = enabled
	}
}

// WithObjectPrototype allows instance methods of the generic namespace onto
// the shared base object type.
func WithObjectPrototype(enabled bool) Option {
	return func(o *Options) {
		o.objectPrototype = enabled
	}
}

func newOptions(defaults, opts []Option) *Options {
	o := &Options{
		except:  goset.NewThreadUnsafeSet[string](),
		enhance: make(map[string]bool),
	}
	for _, opt := range defaults {
		opt(o)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Filtered reports whether WithMethods was given.
func (o *Options) Filtered() bool { return o.methods != nil }

func (o *Options) excludesNamespace(name string) bool {
	if o.except.Contains(name) {
		return true
	}
	return o.namespaces != nil && !o.namespaces.Contains(name)
}

func (o *Options) selects(name string) bool {
	if o.except.Contains(name) {
		return false
	}
	return o.methods == nil || o.methods.Contains(name)
}

// disabled returns the first flag of flags that is explicitly disabled.
func (o *Options) disabled(flags []string) (string, bool) {
	for _, f := range flags {
		if enabled, ok := o.enhance[f]; ok && !enabled {
			return f, true
		}
	}
	return "", false
}

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

// Package rtx is a runtime extension and dispatch library.
//
// rtx keeps one namespace per value kind ("Array", "String", "Date", or a
// namespace bound to your own host types) and lets callers define static
// and instance methods inside each of them. Registered methods can then be
// used three ways:
//
//   - directly through their namespace (ns.CallInstance("first", arr));
//
//   - through a chainable wrapper that exposes the instance methods of every
//     namespace at once and picks the right one per call
//     (rt.Wrap(v).Call("first"));
//
//   - extended onto a native target, the boundary where a host runtime
//     would expose them as members of its own types (rt.ExtendAll()).
//
// # Design
//
// A Runtime is a caller-owned handle around four collaborators:
//
//   - Registry: owns namespaces and their method tables, keeps the wrapper
//     surfaces (one per namespace plus the generic union surface), and
//     resolves any value to the namespace answering it. Resolution always
//     succeeds: values without a namespace of their own resolve to the
//     generic namespace ("Object" by default). Resolution tries, in
//     priority order:
//     1. If the value implements apis.Namer, use v.NamespaceName().
//     2. If the type is bound in the type table, use that namespace.
//     3. Otherwise, classify the value structurally (bool, number,
//     string, date, regexp, function, array, error, set, map, object).
//
//   - Method pipeline: every Define* helper validates the implementation,
//     reports every violation at once, and normalizes the Go func into the
//     static and instance call forms. Instance calls forward at most
//     MaxPositional (4) arguments after the receiver; argument-collecting
//     methods gather every trailing argument into their last slice
//     parameter.
//
//   - Dispatch: wrapping a value and calling a name looks at the wrapper's
//     namespace first, then the generic surface. Names defined differently
//     by several namespaces sit behind a disambiguator that resolves the
//     wrapped value's namespace at call time.
//
//   - Extension engine: copies methods onto an apis.Target, filtered by
//     WithMethods, WithExcept, WithNamespaces, WithEnhance and
//     WithObjectPrototype. Filtering is silent. An unfiltered extension
//     activates its namespace: methods defined later are extended as they
//     are registered.
//
// Alongside the registry, rtx ships the helpers most methods need: path
// expressions with ranges and appends (package path), cycle-safe structural
// equality and serialization (package equal) and path-driven templates
// (package format).
//
// # Usage
//
//	rt := rtx.New(config.WithLogger(logger))
//	arr, _ := rt.Namespace("Array")
//	_ = arr.DefineInstance("first", func(v []any) any { return v[0] })
//
//	v, _ := rt.Wrap([]any{1, 2}).Invoke("first") // 1
//	_ = rt.ExtendAll(extension.WithExcept("first"))
//
// # Concurrency model
//
// Registration and extension are single-threaded: the registry and its
// namespaces take no locks, so concurrent mutation needs external
// synchronization. Reads after setup (resolution, dispatch, path, equal,
// format) do not mutate shared state other than the memo caches, which are
// safe for concurrent use.
package rtx

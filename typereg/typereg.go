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

// Package typereg binds host Go types to namespace names.
package typereg

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	uref "dirpx.dev/rtx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = fmt.Errorf("%w: rtx(typereg): nil reflect.Type provided", apis.ErrProgrammer)
	// ErrEmptyName is returned when an empty namespace name is provided.
	ErrEmptyName = fmt.Errorf("%w: rtx(typereg): empty namespace name provided", apis.ErrProgrammer)
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different namespace.
	ErrConflictingRegistration = fmt.Errorf("%w: rtx(typereg): conflicting type registration", apis.ErrProgrammer)
)

// New constructs a TypeRegistry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.TypeRegistry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple TypeRegistry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to namespace name.
	m sync.Map // map[reflect.Type]string
	// count tracks the number of registered entries.
	count int
}

// Register associates the nearest named type of t with the given namespace.
// It is idempotent for the same (type,namespace) pair.
func (r *registry) Register(t reflect.Type, namespace string) error {
	if t == nil {
		return ErrNilType
	}
	if namespace == "" {
		return ErrEmptyName
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		if errors.Is(err, uref.ErrReflectTypeNotNamed) {
			return fmt.Errorf("%w: %w", apis.ErrProgrammer, err)
		}
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		if old.(string) == namespace {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		if old.(string) == namespace {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(b, namespace)
	r.count++
	return nil
}

// Lookup returns the namespace for a type if present.
func (r *registry) Lookup(t reflect.Type) (namespace string, ok bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:      key.(reflect.Type),
			Namespace: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}

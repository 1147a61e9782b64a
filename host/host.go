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

// Package host models native globals: per-namespace tables of static and
// prototype members that the extension engine installs methods onto.
package host

import (
	"fmt"
	"slices"
	"sync"

	"dirpx.dev/rtx/apis"
)

var (
	// ErrFrozen is returned when installing onto a frozen global.
	ErrFrozen = fmt.Errorf("%w: rtx(host): global is frozen", apis.ErrProgrammer)
	// ErrNoMember is returned when calling a member a global does not have.
	ErrNoMember = fmt.Errorf("%w: rtx(host): no such member", apis.ErrTypeMismatch)
)

// Member is one entry of a global's static or prototype table.
type Member struct {
	// Name is the member name.
	Name string
	// Native is true for members seeded with SetNative.
	Native bool
	// Method is set for members installed from a registry.
	Method *apis.Method
	// Fn is the native implementation. Prototype members take the receiver
	// as their first argument.
	Fn apis.Func
}

// Global is the native global of one namespace.
type Global struct {
	name   string
	static map[string]*Member
	proto  map[string]*Member
	frozen bool
	mu     sync.RWMutex
}

func newGlobal(name string) *Global {
	return &Global{
		name:   name,
		static: make(map[string]*Member),
		proto:  make(map[string]*Member),
	}
}

// Name returns the namespace name of g.
func (g *Global) Name() string { return g.name }

// Freeze makes every further install onto g fail with ErrFrozen.
func (g *Global) Freeze() {
	g.mu.Lock()
	g.frozen = true
	g.mu.Unlock()
}

// Frozen reports whether g is frozen.
func (g *Global) Frozen() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frozen
}

// Member returns the member called name on side.
func (g *Global) Member(side apis.Side, name string) (*Member, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.table(side)[name]
	return m, ok
}

// Members returns the sorted member names on side.
func (g *Global) Members(side apis.Side) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t := g.table(side)
	out := make([]string, 0, len(t))
	for name := range t {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (g *Global) table(side apis.Side) map[string]*Member {
	if side == apis.SidePrototype {
		return g.proto
	}
	return g.static
}

func (g *Global) set(side apis.Side, m *Member) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return fmt.Errorf("%w: %s.%s", ErrFrozen, g.name, m.Name)
	}
	g.table(side)[m.Name] = m
	return nil
}

// Host owns the native globals by namespace name. It implements apis.Target.
type Host struct {
	globals map[string]*Global
	mu      sync.RWMutex
}

var _ apis.Target = (*Host)(nil)

// New returns an empty Host.
func New() *Host {
	return &Host{globals: make(map[string]*Global)}
}

// Global returns the global called name, creating it on first use.
func (h *Host) Global(name string) *Global {
	h.mu.RLock()
	g, ok := h.globals[name]
	h.mu.RUnlock()
	if ok {
		return g
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if g, ok = h.globals[name]; ok {
		return g
	}
	g = newGlobal(name)
	h.globals[name] = g
	return g
}

// Globals returns the sorted names of every global.
func (h *Host) Globals() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.globals))
	for name := range h.globals {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Freeze freezes every existing global.
func (h *Host) Freeze() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, g := range h.globals {
		g.Freeze()
	}
}

// SetNative seeds a pre-existing native member. It overwrites whatever
// member of that name exists, frozen or not.
func (h *Host) SetNative(namespace string, side apis.Side, name string, fn apis.Func) {
	g := h.Global(namespace)
	g.mu.Lock()
	g.table(side)[name] = &Member{Name: name, Native: true, Fn: fn}
	g.mu.Unlock()
}

// Has reports whether the global of namespace has a member called name.
func (h *Host) Has(namespace, name string, side apis.Side) bool {
	h.mu.RLock()
	g, ok := h.globals[namespace]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	_, ok = g.Member(side, name)
	return ok
}

// Install places m on side of the global of namespace, replacing any member
// of the same name.
func (h *Host) Install(namespace string, side apis.Side, m *apis.Method) error {
	member := &Member{Name: m.Name(), Method: m}
	if side == apis.SidePrototype {
		member.Fn = func(args ...any) (any, error) {
			if len(args) == 0 {
				return m.CallInstance(nil)
			}
			return m.CallInstance(args[0], args[1:]...)
		}
	} else {
		member.Fn = m.CallStatic
	}
	return h.Global(namespace).set(side, member)
}

// Members returns the sorted member names on side of the global of namespace.
func (h *Host) Members(namespace string, side apis.Side) []string {
	h.mu.RLock()
	g, ok := h.globals[namespace]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return g.Members(side)
}

// CallStatic calls the static member name of namespace.
func (h *Host) CallStatic(namespace, name string, args ...any) (any, error) {
	m, err := h.member(namespace, apis.SideStatic, name)
	if err != nil {
		return nil, err
	}
	return m.Fn(args...)
}

// CallPrototype calls the prototype member name of namespace on recv.
func (h *Host) CallPrototype(namespace, name string, recv any, args ...any) (any, error) {
	m, err := h.member(namespace, apis.SidePrototype, name)
	if err != nil {
		return nil, err
	}
	return m.Fn(append([]any{recv}, args...)...)
}

func (h *Host) member(namespace string, side apis.Side, name string) (*Member, error) {
	h.mu.RLock()
	g, ok := h.globals[namespace]
	h.mu.RUnlock()
	if ok {
		if m, ok := g.Member(side, name); ok && m.Fn != nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s.%s", ErrNoMember, side, namespace, name)
}

type nop struct{}

// Nop returns a target that reports no members and discards installs.
func Nop() apis.Target { return nop{} }

func (nop) Has(string, string, apis.Side) bool { return false }

func (nop) Install(string, apis.Side, *apis.Method) error { return nil }

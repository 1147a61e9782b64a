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

package dispatch_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/dispatch"
	"dirpx.dev/rtx/registry"
)

type widget struct{ id int }

type gadget struct{ id int }

type stranger struct{}

func setup(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(config.DefaultConfig())

	a, err := reg.CreateNamespace("Widget")
	require.NoError(t, err)
	b, err := reg.CreateNamespace("Gadget")
	require.NoError(t, err)
	require.NoError(t, reg.RegisterType(reflect.TypeOf(widget{}), "Widget"))
	require.NoError(t, reg.RegisterType(reflect.TypeOf(gadget{}), "Gadget"))

	require.NoError(t, a.DefineInstance("label", func(w widget) string { return "widget" }))
	require.NoError(t, b.DefineInstance("label", func(g gadget) string { return "gadget" }))
	require.NoError(t, reg.Generic().DefineInstance("label", func(v any) string { return "generic" }))
	return reg
}

func TestWrap_KeepsRawVerbatim(t *testing.T) {
	reg := setup(t)
	v := &widget{id: 1}

	c := dispatch.Wrap(reg, v)
	assert.Same(t, v, c.Raw())
	assert.Equal(t, reg.Generic(), c.Namespace())
}

func TestInvoke_DisambiguatesByResolvedNamespace(t *testing.T) {
	reg := setup(t)

	cases := []struct {
		name string
		v    any
		want string
	}{
		{"first namespace", widget{}, "widget"},
		{"second namespace", gadget{}, "gadget"},
		{"unknown host falls back to generic", stranger{}, "generic"},
		{"nil falls back to generic", nil, "generic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dispatch.Wrap(reg, tc.v).Invoke("label")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInvoke_MatchesDirectNamespaceCall(t *testing.T) {
	reg := setup(t)
	ns := reg.Resolve(gadget{id: 3})

	direct, err := ns.CallInstance("label", gadget{id: 3})
	require.NoError(t, err)
	wrapped, err := dispatch.Wrap(reg, gadget{id: 3}).Invoke("label")
	require.NoError(t, err)
	assert.Equal(t, direct, wrapped)
}

func TestCall_Chains(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	str, err := reg.CreateNamespace("String")
	require.NoError(t, err)
	arr, err := reg.CreateNamespace("Array")
	require.NoError(t, err)

	require.NoError(t, str.DefineInstance("words", func(s string) []string { return strings.Fields(s) }))
	require.NoError(t, arr.DefineInstance("count", func(v []string) int { return len(v) }))
	require.NoError(t, str.DefineInstance("repeat", func(s string, n int) string { return strings.Repeat(s, n) }))

	c, err := dispatch.Wrap(reg, "ab ").Call("repeat", 3)
	require.NoError(t, err)
	c, err = c.Call("words")
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "ab", "ab"}, c.Raw())

	n, err := c.Invoke("count")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWrapAs_FallsBackToGenericSurface(t *testing.T) {
	reg := setup(t)
	num, err := reg.CreateNamespace("Number")
	require.NoError(t, err)
	require.NoError(t, num.DefineInstance("twice", func(n int) int { return n * 2 }))

	c := dispatch.Of(reg, 21)
	assert.Equal(t, num, c.Namespace())

	got, err := c.Invoke("twice")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	// label is not on Number's surface; the generic surface disambiguates to
	// the generic namespace.
	got, err = c.Invoke("label")
	require.NoError(t, err)
	assert.Equal(t, "generic", got)

	assert.True(t, c.Has("twice"))
	assert.False(t, c.Has("missing"))
	assert.Equal(t, []string{"label", "twice"}, c.Names())
}

func TestInvoke_MissingMethod(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	a, err := reg.CreateNamespace("Widget")
	require.NoError(t, err)
	b, err := reg.CreateNamespace("Gadget")
	require.NoError(t, err)
	require.NoError(t, reg.RegisterType(reflect.TypeOf(widget{}), "Widget"))
	require.NoError(t, a.DefineInstance("only", func(w widget) int { return 1 }))
	require.NoError(t, b.DefineInstance("only", func(g gadget) int { return 2 }))

	_, err = dispatch.Wrap(reg, widget{}).Invoke("nothing")
	assert.ErrorIs(t, err, registry.ErrMethodNotFound)

	// ambiguous name, and neither the resolved nor the generic namespace define it
	_, err = dispatch.Wrap(reg, stranger{}).Invoke("only")
	assert.ErrorIs(t, err, registry.ErrMethodNotFound)

	_, err = dispatch.Wrap(reg, widget{}).Call("nothing")
	assert.ErrorIs(t, err, registry.ErrMethodNotFound)
}

func TestInvoke_DirectGenericSlot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	a, err := reg.CreateNamespace("Widget")
	require.NoError(t, err)
	require.NoError(t, a.DefineInstance("id", func(w widget) int { return w.id }))

	// a single definition is installed directly on the generic surface and
	// is called for any value
	got, err := dispatch.Wrap(reg, widget{id: 9}).Invoke("id")
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

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

package resolver_test

import (
	"reflect"
	"testing"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/resolver"
	"dirpx.dev/rtx/strategy"
	"dirpx.dev/rtx/typereg"
)

type fixed struct {
	name string
	ok   bool
	hits *int
}

func (f fixed) TryResolve(any, apis.Config) (string, bool) {
	*f.hits++
	return f.name, f.ok
}

func (f fixed) TryResolveType(reflect.Type, apis.Config) (string, bool) {
	*f.hits++
	return f.name, f.ok
}

type account struct{}

type self struct{}

func (self) NamespaceName() string { return "Self" }

func TestChain_FirstHandledWins(t *testing.T) {
	var a, b, c int
	r := resolver.New(
		fixed{"", false, &a},
		nil,
		fixed{"Second", true, &b},
		fixed{"Third", true, &c},
	)

	if got := r.Resolve(1, config.DefaultConfig()); got != "Second" {
		t.Fatalf("Resolve = %q, want Second", got)
	}
	if a != 1 || b != 1 || c != 0 {
		t.Fatalf("hits = (%d,%d,%d), want (1,1,0)", a, b, c)
	}
	if got := r.ResolveType(reflect.TypeOf(0), config.DefaultConfig()); got != "Second" {
		t.Fatalf("ResolveType = %q, want Second", got)
	}
}

func TestChain_EmptyWhenUnhandled(t *testing.T) {
	if got := resolver.New().Resolve("x", config.DefaultConfig()); got != "" {
		t.Fatalf("Resolve on empty chain = %q, want empty", got)
	}
}

func TestChain_DefaultOrder(t *testing.T) {
	conf := config.DefaultConfig()
	types := typereg.New(conf)
	if err := types.Register(reflect.TypeOf(account{}), "Account"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewTypeStrategy(types),
		strategy.NewClassStrategy(),
	)

	cases := []struct {
		v    any
		want string
	}{
		{self{}, "Self"},
		{&account{}, "Account"},
		{[]account{}, "Array"},
		{struct{}{}, ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := r.Resolve(tc.v, conf); got != tc.want {
			t.Fatalf("Resolve(%T) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestNewFiltered_RejectedNameFallsThrough(t *testing.T) {
	conf := config.DefaultConfig()
	types := typereg.New(conf)
	if err := types.Register(reflect.TypeOf(account{}), "Account"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	known := map[string]bool{"Self": true, "Array": true}
	r := resolver.NewFiltered(func(name string) bool { return known[name] },
		strategy.NewNamerStrategy(),
		strategy.NewTypeStrategy(types),
		strategy.NewClassStrategy(),
	)

	if got := r.Resolve(self{}, conf); got != "Self" {
		t.Fatalf("Resolve(self) = %q, want Self", got)
	}
	// Account is bound but not accepted, and a host value has no class.
	if got := r.Resolve(&account{}, conf); got != "" {
		t.Fatalf("Resolve(*account) = %q, want empty", got)
	}
	if got := r.ResolveType(reflect.TypeOf([]account{}), conf); got != "Array" {
		t.Fatalf("ResolveType([]account) = %q, want Array", got)
	}
	if got := r.Resolve("text", conf); got != "" {
		t.Fatalf("Resolve(string) = %q, want empty", got)
	}
}

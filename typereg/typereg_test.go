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

package typereg_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/typereg"
)

type money struct{ cents int }

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())

	// pointer -> nearest named = money
	if err := reg.Register(reflect.TypeOf(&money{}), "Money"); err != nil {
		t.Fatalf("Register(&money{}): unexpected error: %v", err)
	}
	if err := reg.Register(reflect.TypeOf(money{}), "Money"); err != nil {
		t.Fatalf("Register(money{}) idempotent: unexpected error: %v", err)
	}

	if name, ok := reg.Lookup(reflect.TypeOf(money{})); !ok || name != "Money" {
		t.Fatalf("Lookup(money{}): got (%q,%v), want (Money,true)", name, ok)
	}
	if name, ok := reg.Lookup(reflect.TypeOf(&money{})); !ok || name != "Money" {
		t.Fatalf("Lookup(&money{}): got (%q,%v), want (Money,true)", name, ok)
	}
	// a slice of money is an array, not money
	if name, ok := reg.Lookup(reflect.TypeOf([]money{})); ok {
		t.Fatalf("Lookup([]money{}): got (%q,%v), want ('',false)", name, ok)
	}

	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestRegister_Conflict(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())

	if err := reg.Register(reflect.TypeOf(&money{}), "Money"); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	err := reg.Register(reflect.TypeOf(money{}), "Currency")
	if !errors.Is(err, typereg.ErrConflictingRegistration) {
		t.Fatalf("expected ErrConflictingRegistration, got: %v", err)
	}
	if !errors.Is(err, apis.ErrProgrammer) {
		t.Fatalf("expected a programmer error, got: %v", err)
	}
}

func TestRegister_Errors(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())

	if err := reg.Register(nil, "x"); !errors.Is(err, typereg.ErrNilType) {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(&money{}), ""); !errors.Is(err, typereg.ErrEmptyName) {
		t.Fatalf("empty name: want ErrEmptyName, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(struct{}{}), "Anon"); !errors.Is(err, apis.ErrProgrammer) {
		t.Fatalf("anonymous type: want programmer error, got %v", err)
	}
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())

	if name, ok := reg.Lookup(nil); ok || name != "" {
		t.Fatalf("Lookup(nil): got (%q,%v), want ('',false)", name, ok)
	}
	if name, ok := reg.Lookup(reflect.TypeOf(&money{})); ok || name != "" {
		t.Fatalf("Lookup(unknown): got (%q,%v), want ('',false)", name, ok)
	}
}

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
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/typereg"
)

type (
	invoice  struct{}
	ledger   struct{}
	customer struct{}
	order    struct{}
)

var hostTypes = map[reflect.Type]string{
	reflect.TypeOf(invoice{}):  "Invoice",
	reflect.TypeOf(ledger{}):   "Ledger",
	reflect.TypeOf(customer{}): "Customer",
	reflect.TypeOf(order{}):    "Order",
}

// TestConcurrentBindAndResolve hammers Lookup through pointer and value
// types while writers re-bind the same namespaces.
func TestConcurrentBindAndResolve(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())
	for typ, ns := range hostTypes {
		if err := reg.Register(typ, ns); err != nil {
			t.Fatalf("Register(%s): %v", typ, err)
		}
	}

	types := make([]reflect.Type, 0, len(hostTypes))
	for typ := range hostTypes {
		types = append(types, typ)
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 2
	for w := range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := range 2000 {
				base := types[(i+w)%len(types)]
				typ := base
				if i%2 == 1 {
					typ = reflect.PointerTo(base)
				}
				if got, ok := reg.Lookup(typ); !ok || got != hostTypes[base] {
					t.Errorf("Lookup(%s) = (%q,%v)", typ, got, ok)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := range 500 {
				typ := types[(i+w)%len(types)]
				if err := reg.Register(reflect.PointerTo(typ), hostTypes[typ]); err != nil {
					t.Errorf("re-Register(*%s): %v", typ, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if reg.Count() != len(hostTypes) {
		t.Fatalf("Count() = %d, want %d", reg.Count(), len(hostTypes))
	}
	for _, e := range reg.Entries() {
		if hostTypes[e.Type] != e.Namespace {
			t.Fatalf("entry %s -> %q, want %q", e.Type, e.Namespace, hostTypes[e.Type])
		}
	}
}

// TestConcurrentConflictingBinds races different namespaces for one type:
// exactly one bind wins, every other one reports a conflict.
func TestConcurrentConflictingBinds(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())
	typ := reflect.TypeOf(invoice{})
	candidates := []string{"Invoice", "Bill", "Receipt", "Statement"}

	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for _, ns := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := reg.Register(typ, ns)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, typereg.ErrConflictingRegistration):
				conflicts.Add(1)
			default:
				t.Errorf("Register(%s): unexpected error %v", ns, err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 || conflicts.Load() != int32(len(candidates)-1) {
		t.Fatalf("wins=%d conflicts=%d, want 1 and %d", wins.Load(), conflicts.Load(), len(candidates)-1)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
}

func TestResetKeepsSnapshots(t *testing.T) {
	reg := typereg.New(config.DefaultConfig())
	_ = reg.Register(reflect.TypeOf(ledger{}), "Ledger")
	_ = reg.Register(reflect.TypeOf(order{}), "Order")

	snap := reg.Entries()
	reg.Reset()

	if reg.Count() != 0 || len(reg.Entries()) != 0 {
		t.Fatalf("after Reset: Count()=%d Entries()=%d, want 0 and 0", reg.Count(), len(reg.Entries()))
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(snap))
	}
	if _, ok := reg.Lookup(reflect.TypeOf(ledger{})); ok {
		t.Fatalf("Lookup(ledger) after Reset: want miss")
	}
}

var _ apis.TypeRegistry = typereg.New(config.DefaultConfig())

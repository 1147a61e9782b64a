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

package registry

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/internal/validation"
)

var errorType = reflect.TypeFor[error]()

// newMethod validates fn and normalizes it into static and instance invokers.
func (r *Registry) newMethod(namespace, name string, fn any, kind apis.MethodKind, collect, polyfill bool, flags []string) (*apis.Method, error) {
	rv := reflect.ValueOf(fn)
	isFunc := fn != nil && rv.Kind() == reflect.Func && !rv.IsNil()

	err := validation.New(validation.AllErrors()).
		AddAssertion(name != "", "method name is empty").
		AddAssertion(kind.HasStatic() || kind.HasInstance(), "method kind selects no call form").
		AddAssertion(isFunc, fmt.Sprintf("implementation is not a func (%T)", fn)).
		AddFunc(func() error {
			if !isFunc {
				return nil
			}
			return checkShape(rv.Type(), kind, collect)
		}).
		Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidDefinition, namespace, name, err)
	}

	iv := invoker{fn: rv, typ: rv.Type(), collect: collect, maxPositional: r.cfg.MaxPositional}
	spec := apis.MethodSpec{
		Name:              name,
		Namespace:         namespace,
		Kind:              kind,
		CollectsArguments: collect,
		Polyfill:          polyfill,
		Impl:              rv.Pointer(),
		Flags:             flags,
	}
	if kind.HasStatic() {
		spec.Static = iv.static
	}
	if kind.HasInstance() {
		spec.Instance = iv.instance
	}
	return apis.NewMethod(spec), nil
}

// checkShape verifies that the parameter list of t suits kind and collect.
// It stops at the first problem: without a receiver the trailing slice
// cannot be located.
func checkShape(t reflect.Type, kind apis.MethodKind, collect bool) error {
	v := validation.New(validation.FailFast())
	n := t.NumIn()
	if kind.HasInstance() {
		v.AddAssertion(n >= 1 && !(t.IsVariadic() && n == 1),
			fmt.Sprintf("instance implementation %s takes no receiver parameter", t))
	}
	if collect {
		need := 1
		if kind.HasInstance() {
			need = 2
		}
		v.AddAssertion(n >= need && t.In(n-1).Kind() == reflect.Slice,
			fmt.Sprintf("argument-collecting implementation %s must end with a slice parameter", t))
	}
	return v.Validate()
}

// invoker adapts a reflected func to the normalized call signatures.
//
// Non-collecting instance calls forward at most maxPositional arguments after
// the receiver; further call-site arguments are dropped. Collecting calls bind
// every parameter but the last positionally and gather the remaining
// arguments, in order, into the trailing slice. Missing arguments are passed
// as zero values.
type invoker struct {
	fn            reflect.Value
	typ           reflect.Type
	collect       bool
	maxPositional int
}

func (iv invoker) static(args ...any) (any, error) {
	return iv.call(nil, false, args)
}

func (iv invoker) instance(recv any, args ...any) (any, error) {
	return iv.call(recv, true, args)
}

func (iv invoker) call(recv any, withRecv bool, args []any) (any, error) {
	t := iv.typ
	n := t.NumIn()
	in := make([]reflect.Value, 0, n)
	first := 0

	if withRecv {
		v, err := convert(recv, t.In(0))
		if err != nil {
			return nil, err
		}
		in = append(in, v)
		first = 1
		if !iv.collect && len(args) > iv.maxPositional {
			args = args[:iv.maxPositional]
		}
	}

	p := 0
	next := func(pt reflect.Type) error {
		var a any
		if p < len(args) {
			a = args[p]
		}
		p++
		v, err := convert(a, pt)
		if err != nil {
			return err
		}
		in = append(in, v)
		return nil
	}

	fixed := n
	if iv.collect || t.IsVariadic() {
		fixed = n - 1
	}
	for i := first; i < fixed; i++ {
		if err := next(t.In(i)); err != nil {
			return nil, err
		}
	}

	switch {
	case iv.collect:
		var rest []any
		if p < len(args) {
			rest = args[p:]
		}
		st := t.In(n - 1)
		sl := reflect.MakeSlice(st, 0, len(rest))
		for _, a := range rest {
			v, err := convert(a, st.Elem())
			if err != nil {
				return nil, err
			}
			sl = reflect.Append(sl, v)
		}
		in = append(in, sl)
		if t.IsVariadic() {
			return results(t, iv.fn.CallSlice(in))
		}
	case t.IsVariadic():
		et := t.In(n - 1).Elem()
		for ; p < len(args); p++ {
			v, err := convert(args[p], et)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return results(t, iv.fn.Call(in))
}

// convert turns a call-site argument into a value assignable to t.
func convert(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if (isNumber(v.Kind()) && isNumber(t.Kind())) ||
		(v.Kind() == t.Kind() && v.Type().ConvertibleTo(t)) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrArgumentType, a, t)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// results normalizes return values: a trailing error is split off, a single
// remaining value is returned as is, several are returned as []any.
func results(t reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && t.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		vals := make([]any, len(out))
		for i, o := range out {
			vals[i] = o.Interface()
		}
		return vals, err
	}
}

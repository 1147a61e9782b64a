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

package equal

import (
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/zeebo/xxh3"

	"dirpx.dev/rtx/apis"
	uref "dirpx.dev/rtx/utils/reflect"
	"dirpx.dev/rtx/values"
)

// CycleToken stands in for a container met again while it is being
// serialized.
const CycleToken = "~cycle"

// Serialize returns the canonical token of v. Structurally equal values
// produce the same token regardless of map insertion order. Functions and
// host values get "#n", n being their first-seen index within this call.
func Serialize(v any) string {
	s := &serializer{}
	var b strings.Builder
	s.write(&b, v)
	return b.String()
}

// Fingerprint returns the 64-bit xxh3 hash of Serialize(v).
func Fingerprint(v any) uint64 {
	return xxh3.HashString(Serialize(v))
}

type serializer struct {
	stack stack
	refs  refs
}

func (s *serializer) token(v any) string {
	var b strings.Builder
	s.write(&b, v)
	return b.String()
}

func (s *serializer) write(b *strings.Builder, v any) {
	k := uref.Classify(v)
	switch k {
	case apis.KindNil:
		b.WriteString("null")
		return
	case apis.KindBool, apis.KindNumber, apis.KindString, apis.KindDate, apis.KindRegExp, apis.KindError:
		b.WriteString(scalar(k, v))
		return
	case apis.KindFunc, apis.KindHost:
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(s.refs.index(reflect.ValueOf(v))))
		return
	}

	rv := reflect.ValueOf(v)
	id, tracked := identityOf(rv)
	if tracked {
		if s.stack.index(id) >= 0 {
			b.WriteString(CycleToken)
			return
		}
		s.stack.push(id)
		defer s.stack.pop()
	}

	switch k {
	case apis.KindArray:
		b.WriteString("a:[")
		for i := range rv.Len() {
			if i > 0 {
				b.WriteByte(',')
			}
			s.write(b, rv.Index(i).Interface())
		}
		b.WriteByte(']')
	case apis.KindObject:
		b.WriteString("o:{")
		for i, key := range objectKeys(rv) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(key.String()))
			b.WriteByte(':')
			s.write(b, rv.MapIndex(key).Interface())
		}
		b.WriteByte('}')
	case apis.KindSet:
		b.WriteString("S:{")
		for i, t := range s.setTokens(v.(goset.Set[any])) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t)
		}
		b.WriteByte('}')
	case apis.KindMap:
		b.WriteString("m:{")
		for i, e := range s.entries(v) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('[')
			s.write(b, e[0])
			b.WriteByte(',')
			s.write(b, e[1])
			b.WriteByte(']')
		}
		b.WriteByte('}')
	}
}

// setTokens returns the sorted element tokens of set.
func (s *serializer) setTokens(set goset.Set[any]) []string {
	out := make([]string, 0, set.Cardinality())
	for _, e := range set.ToSlice() {
		out = append(out, s.token(e))
	}
	slices.Sort(out)
	return out
}

// setProjection returns the elements of set ordered by their token.
func (s *serializer) setProjection(set goset.Set[any]) []any {
	elems := set.ToSlice()
	tokens := make(map[int]string, len(elems))
	idx := make([]int, len(elems))
	for i, e := range elems {
		idx[i] = i
		tokens[i] = s.token(e)
	}
	slices.SortStableFunc(idx, func(a, b int) int { return strings.Compare(tokens[a], tokens[b]) })
	out := make([]any, len(elems))
	for i, j := range idx {
		out[i] = elems[j]
	}
	return out
}

// entries returns the key/value pairs of a map value: insertion order for
// *values.Map, key-token order for Go maps.
func (s *serializer) entries(v any) [][2]any {
	if m, ok := v.(*values.Map); ok {
		return m.Entries()
	}
	rv := reflect.ValueOf(v)
	type pair struct {
		token string
		e     [2]any
	}
	pairs := make([]pair, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		k := it.Key().Interface()
		pairs = append(pairs, pair{token: s.token(k), e: [2]any{k, it.Value().Interface()}})
	}
	slices.SortStableFunc(pairs, func(a, b pair) int { return strings.Compare(a.token, b.token) })
	out := make([][2]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.e
	}
	return out
}

func objectKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	return keys
}

// scalar returns the token of a value of an atomic kind.
func scalar(k apis.Kind, v any) string {
	rv := uref.Indirect(reflect.ValueOf(v))
	switch k {
	case apis.KindBool:
		return "b:" + strconv.FormatBool(rv.Bool())
	case apis.KindNumber:
		return "n:" + number(rv)
	case apis.KindString:
		return "s:" + strconv.Quote(rv.String())
	case apis.KindDate:
		var t time.Time
		if p, ok := v.(*time.Time); ok {
			t = *p
		} else {
			t = v.(time.Time)
		}
		return "d:" + t.UTC().Format(time.RFC3339Nano)
	case apis.KindRegExp:
		return "r:" + strconv.Quote(v.(*regexp.Regexp).String())
	case apis.KindError:
		return "e:" + strconv.Quote(v.(error).Error())
	}
	return ""
}

// number returns the canonical text of a numeric value. Integral floats in
// the exactly representable range print like integers so that 1 and 1.0
// share a token; negative zero prints as "-0".
func number(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	f := rv.Float()
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == 0 && math.Signbit(f):
		return "-0"
	case f == math.Trunc(f) && math.Abs(f) < 1<<53:
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

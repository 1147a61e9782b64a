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

// Package format renders templates whose tokens are path expressions.
//
//	Format("{0} owes {1.amount}", "ada", map[string]any{"amount": 3})
//	Format("{name} is {age}", map[string]any{"name": "bob", "age": 7})
//
// A token starting with a digit selects an argument by index, optionally
// followed by a path into it. Any other token is a path into the first
// argument. "{{" and "}}" render literal braces. Missing values render
// empty.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/internal/cache"
	"dirpx.dev/rtx/path"
)

// ErrUnclosedToken is returned for a "{" without a matching "}".
var ErrUnclosedToken = fmt.Errorf("%w: rtx(format): unclosed token", apis.ErrProgrammer)

type part struct {
	literal string
	token   bool
	arg     int
	path    string
}

var templates = cache.New[string, []part](cache.DefaultCapacity)

// Format renders template with args.
func Format(template string, args ...any) (string, error) {
	parts, err := templates.GetOrCompute(template, compile)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range parts {
		if !p.token {
			b.WriteString(p.literal)
			continue
		}
		if p.arg >= len(args) {
			continue
		}
		v := args[p.arg]
		if p.path != "" {
			if v, err = path.Get(v, p.path); err != nil {
				return "", err
			}
		}
		if v != nil {
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String(), nil
}

func compile(template string) ([]part, error) {
	var (
		parts []part
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, part{literal: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w at offset %d", ErrUnclosedToken, i)
			}
			flush()
			parts = append(parts, token(template[i+1:i+1+end]))
			i += end + 1
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return parts, nil
}

func token(text string) part {
	head, rest, _ := strings.Cut(text, ".")
	if n, err := strconv.Atoi(head); err == nil && n >= 0 {
		return part{token: true, arg: n, path: rest}
	}
	return part{token: true, path: text}
}

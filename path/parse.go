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

package path

import (
	"regexp"
	"strconv"
	"strings"

	"dirpx.dev/rtx/internal/cache"
)

// kind tags a path segment.
type kind uint8

const (
	segKey kind = iota
	segAppend
	segRange
)

// segment is one step of a parsed path. Keys that look like integers carry
// their index so arrays can use it; mappings always use the key text.
type segment struct {
	kind    kind
	key     string
	index   int
	isIndex bool
	start   int
	end     int
}

// Expr is a parsed path expression.
type Expr struct {
	raw  string
	segs []segment
}

// String returns the source text of e.
func (e *Expr) String() string { return e.raw }

// Len returns the number of segments of e.
func (e *Expr) Len() int { return len(e.segs) }

var (
	// start..end at the beginning of a segment, followed by its end
	rangeRe = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)(?:$|[.\[])`)
	// a whole bracketed range
	bracketRangeRe = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)$`)

	std = NewParser(cache.DefaultCapacity)
)

// Parser parses path expressions and memoizes up to a fixed number of them.
// A Parser is safe for concurrent use.
type Parser struct {
	exprs *cache.Bounded[string, *Expr]
}

// NewParser returns a Parser memoizing at most capacity expressions. A
// non-positive capacity selects cache.DefaultCapacity.
func NewParser(capacity int) *Parser {
	return &Parser{exprs: cache.New[string, *Expr](capacity)}
}

// Parse parses p. Results are memoized; the returned Expr must not be
// modified. Parsing never fails: text that is not a well-formed range is
// read as plain keys.
func (ps *Parser) Parse(p string) *Expr {
	e, _ := ps.exprs.GetOrCompute(p, func(p string) (*Expr, error) {
		return parse(p), nil
	})
	return e
}

// Cached returns the number of memoized expressions.
func (ps *Parser) Cached() int { return ps.exprs.Len() }

// Parse parses p with the package Parser.
func Parse(p string) *Expr { return std.Parse(p) }

func parse(p string) *Expr {
	e := &Expr{raw: p}
	rest := p
	for len(rest) > 0 {
		switch {
		case rest[0] == '.':
			rest = rest[1:]
			if len(rest) == 0 || rest[0] == '.' {
				e.segs = append(e.segs, key(""))
			}
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				e.segs = append(e.segs, key(rest[1:]))
				return e
			}
			e.segs = append(e.segs, bracket(rest[1:end]))
			rest = rest[end+1:]
		default:
			if m := rangeRe.FindStringSubmatch(rest); m != nil {
				e.segs = append(e.segs, span(m[1], m[2]))
				rest = rest[len(m[1])+2+len(m[2]):]
				continue
			}
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			e.segs = append(e.segs, key(rest[:end]))
			rest = rest[end:]
		}
	}
	return e
}

func bracket(inner string) segment {
	if inner == "" {
		return segment{kind: segAppend}
	}
	if m := bracketRangeRe.FindStringSubmatch(inner); m != nil {
		return span(m[1], m[2])
	}
	if n := len(inner); n >= 2 && (inner[0] == '"' || inner[0] == '\'') && inner[n-1] == inner[0] {
		return segment{kind: segKey, key: inner[1 : n-1]}
	}
	return key(inner)
}

func key(s string) segment {
	seg := segment{kind: segKey, key: s}
	if n, err := strconv.Atoi(s); err == nil {
		seg.index = n
		seg.isIndex = true
	}
	return seg
}

func span(start, end string) segment {
	lo, _ := strconv.Atoi(start)
	hi, _ := strconv.Atoi(end)
	return segment{kind: segRange, start: lo, end: hi}
}

// indexLike reports whether a container created for s should be an array.
func (s segment) indexLike() bool {
	return s.kind != segKey || s.isIndex
}

// bounds returns the inclusive index range s covers in an array of length n.
// An end of -1 means the last element; other negatives wrap.
func (s segment) bounds(n int) (lo, hi int) {
	lo, hi = s.start, s.end
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	lo = max(lo, 0)
	hi = min(hi, n-1)
	return lo, hi
}

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

package apis

// Kind is the structural class of a value. The set is closed: every Go value
// classifies into exactly one Kind, with KindHost as the catch-all arm.
type Kind uint8

const (
	// KindNil is an untyped nil or a nil pointer/interface.
	KindNil Kind = iota
	// KindBool is a Go bool.
	KindBool
	// KindNumber is any Go integer or floating point number.
	KindNumber
	// KindString is a Go string.
	KindString
	// KindDate is time.Time or *time.Time.
	KindDate
	// KindRegExp is *regexp.Regexp.
	KindRegExp
	// KindFunc is any Go func value.
	KindFunc
	// KindArray is a slice or an array.
	KindArray
	// KindError is any value implementing error.
	KindError
	// KindSet is a mapset.Set[any].
	KindSet
	// KindMap is an insertion-ordered values.Map or a Go map with non-string keys.
	KindMap
	// KindObject is a Go map keyed by strings.
	KindObject
	// KindHost is everything else: structs, pointers, channels.
	KindHost
)

var kindNames = [...]string{
	KindNil:    "nil",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindDate:   "date",
	KindRegExp: "regexp",
	KindFunc:   "function",
	KindArray:  "array",
	KindError:  "error",
	KindSet:    "set",
	KindMap:    "map",
	KindObject: "object",
	KindHost:   "host",
}

// String returns the lower-case tag of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Serializable reports whether values of kind k have a structural token.
// Functions and host values only have an identity.
func (k Kind) Serializable() bool {
	return k != KindFunc && k != KindHost
}

var kindNamespaces = [...]string{
	KindBool:   "Boolean",
	KindNumber: "Number",
	KindString: "String",
	KindDate:   "Date",
	KindRegExp: "RegExp",
	KindFunc:   "Function",
	KindArray:  "Array",
	KindError:  "Error",
	KindSet:    "Set",
	KindMap:    "Map",
	KindObject: "Object",
}

// Namespace returns the default namespace name for k. KindNil and KindHost
// have no namespace of their own and return "".
func (k Kind) Namespace() string {
	if int(k) < len(kindNamespaces) {
		return kindNamespaces[k]
	}
	return ""
}

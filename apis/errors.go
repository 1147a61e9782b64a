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

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error raised by rtx packages wraps exactly one of
// these roots, so callers can classify failures with errors.Is.
var (
	// ErrProgrammer marks invalid use of the registration API: a non-callable
	// implementation, a conflicting duplicate definition, an empty name.
	ErrProgrammer = errors.New("rtx: programmer error")
	// ErrTypeMismatch marks an operation applied to a value of the wrong shape,
	// such as a path write into a primitive or a range over a non-array.
	ErrTypeMismatch = errors.New("rtx: type mismatch")
	// ErrInvariant marks a must-never-happen internal condition.
	ErrInvariant = errors.New("rtx: invariant violation")
)

var (
	// ErrNoStaticForm is returned when a method without a static form is called statically.
	ErrNoStaticForm = fmt.Errorf("%w: method has no static form", ErrProgrammer)
	// ErrNoInstanceForm is returned when a method without an instance form is called on a receiver.
	ErrNoInstanceForm = fmt.Errorf("%w: method has no instance form", ErrProgrammer)
)

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

import "go.uber.org/zap"

// Config carries read-only knobs shared by the registry, the dispatch layer
// and the extension engine. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// GenericNamespace names the namespace answering values no other
	// namespace claims (nil, host values). It doubles as the shared base
	// object type for the extension engine.
	GenericNamespace string

	// MaxPositional limits how many positional arguments a non-collecting
	// instance method receives after its receiver. Further call-site
	// arguments are dropped.
	MaxPositional int

	// PathCacheSize bounds the number of memoized path expressions. The
	// cache is fully reset once it overflows.
	PathCacheSize int

	// MaxUnwrap limits pointer/container unwrapping when normalizing host
	// types for the type table.
	MaxUnwrap int

	// Logger receives debug records about registrations and extensions.
	// A nil Logger discards them.
	Logger *zap.Logger
}

// Log returns the configured logger or a no-op logger.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

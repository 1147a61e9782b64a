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

// Package cache provides a bounded memoization table.
package cache

import "sync"

// DefaultCapacity is the capacity used when a non-positive one is requested.
const DefaultCapacity = 1000

// Bounded memoizes up to Capacity entries. When an insert would exceed the
// capacity the whole table is dropped and filling starts over; there is no
// per-entry eviction. Callers must never depend on a hit for correctness.
type Bounded[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]V
	resets   int
}

// New returns an empty Bounded cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Bounded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bounded[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
	}
}

// Get returns the value cached under k.
func (c *Bounded[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	v, ok := c.entries[k]
	c.mu.Unlock()
	return v, ok
}

// Put stores v under k, resetting the table first if it is full.
func (c *Bounded[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; !ok && len(c.entries) >= c.capacity {
		clear(c.entries)
		c.resets++
	}
	c.entries[k] = v
}

// GetOrCompute returns the cached value for k or computes, stores and returns
// it. Errors from compute are returned and nothing is stored.
func (c *Bounded[K, V]) GetOrCompute(k K, compute func(K) (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := compute(k)
	if err != nil {
		return v, err
	}
	c.Put(k, v)
	return v, nil
}

// Len returns the number of cached entries.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Resets returns how many times the table was dropped on overflow.
func (c *Bounded[K, V]) Resets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resets
}

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

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/rtx/apis"
	"dirpx.dev/rtx/config"
	"dirpx.dev/rtx/registry"
)

func TestConcrete_RejectsDisambiguator(t *testing.T) {
	c := Wrap(registry.New(config.DefaultConfig()), 1)

	_, err := c.concrete(registry.Entry{Kind: registry.EntryDisambiguator, Name: "size"})
	assert.ErrorIs(t, err, ErrDisambiguatorCycle)
	assert.ErrorIs(t, err, apis.ErrInvariant)
}

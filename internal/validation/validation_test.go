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

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainAllErrors(t *testing.T) {
	err := New(AllErrors()).
		AddAssertion(false, "first").
		AddAssertion(true, "ignored").
		AddFunc(func() error { return errors.New("second") }).
		Validate()
	require.Error(t, err)

	violations := Violations(err)
	require.Len(t, violations, 2)
	assert.EqualError(t, violations[0], "first")
	assert.EqualError(t, violations[1], "second")
}

func TestChainFailFast(t *testing.T) {
	called := false
	err := New(FailFast()).
		AddAssertion(false, "stop").
		AddFunc(func() error {
			called = true
			return nil
		}).
		Validate()
	assert.EqualError(t, err, "stop")
	assert.False(t, called)
}

func TestChainNoViolations(t *testing.T) {
	assert.NoError(t, New().AddAssertion(true, "ok").Validate())
	assert.Empty(t, Violations(nil))
}

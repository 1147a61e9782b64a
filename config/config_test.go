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

package config_test

import (
	"testing"

	"go.uber.org/zap"

	"dirpx.dev/rtx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.GenericNamespace != config.DefaultGenericNamespace {
		t.Fatalf("GenericNamespace = %q, want %q", got.GenericNamespace, config.DefaultGenericNamespace)
	}
	if got.MaxPositional != config.DefaultMaxPositional {
		t.Fatalf("MaxPositional = %d, want %d", got.MaxPositional, config.DefaultMaxPositional)
	}
	if got.PathCacheSize != config.DefaultPathCacheSize {
		t.Fatalf("PathCacheSize = %d, want %d", got.PathCacheSize, config.DefaultPathCacheSize)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.Logger != nil {
		t.Fatalf("Logger = %v, want nil", got.Logger)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithGenericNamespace(t *testing.T) {
	c := config.NewConfig(config.WithGenericNamespace("Any"))
	if c.GenericNamespace != "Any" {
		t.Fatalf("GenericNamespace = %q, want Any", c.GenericNamespace)
	}

	c2 := config.NewConfig(config.WithGenericNamespace(""))
	if c2.GenericNamespace != config.DefaultGenericNamespace {
		t.Fatalf("GenericNamespace = %q, want default", c2.GenericNamespace)
	}
}

func TestWithMaxPositional(t *testing.T) {
	c := config.NewConfig(config.WithMaxPositional(2))
	if c.MaxPositional != 2 {
		t.Fatalf("MaxPositional = %d, want 2", c.MaxPositional)
	}

	c2 := config.NewConfig(config.WithMaxPositional(-3))
	if c2.MaxPositional != config.DefaultMaxPositional {
		t.Fatalf("MaxPositional = %d, want default %d", c2.MaxPositional, config.DefaultMaxPositional)
	}
}

func TestWithPathCacheSize_NonPositive_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithPathCacheSize(0))
	if c.PathCacheSize != config.DefaultPathCacheSize {
		t.Fatalf("PathCacheSize = %d, want default %d", c.PathCacheSize, config.DefaultPathCacheSize)
	}
	c2 := config.NewConfig(config.WithPathCacheSize(16))
	if c2.PathCacheSize != 16 {
		t.Fatalf("PathCacheSize = %d, want 16", c2.PathCacheSize)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestWithLogger(t *testing.T) {
	l := zap.NewExample()
	c := config.NewConfig(config.WithLogger(l))
	if c.Logger != l {
		t.Fatalf("Logger = %p, want %p", c.Logger, l)
	}
	if c.Log() != l {
		t.Fatalf("Log() did not return the configured logger")
	}
	if config.DefaultConfig().Log() == nil {
		t.Fatalf("Log() on default config returned nil")
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithGenericNamespace("A"),
		config.WithGenericNamespace("B"),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithMaxPositional(1),
		config.WithMaxPositional(3),
	)

	if c.GenericNamespace != "B" {
		t.Errorf("GenericNamespace = %q, want B (last option wins)", c.GenericNamespace)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if c.MaxPositional != 3 {
		t.Errorf("MaxPositional = %d, want 3 (last option wins)", c.MaxPositional)
	}
}

func TestNewConfig_Guardrails_MaxPositionalZeroAllowed(t *testing.T) {
	c := config.NewConfig(config.WithMaxPositional(0))
	if c.MaxPositional != 0 {
		t.Fatalf("MaxPositional = %d, want 0 (zero is allowed)", c.MaxPositional)
	}
}

// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"testing"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orgDataset(t *testing.T) *dataset {
	t.Helper()
	ds, err := loadDataset("org", trace.Discard())
	require.NoError(t, err)
	return ds
}

func TestCommand(t *testing.T) {
	cmd, err := ParseCommand(`Find "Laptops para Juegos" now`)
	require.NoError(t, err)

	if cmd.Verb != "find" {
		t.Errorf("Expected Verb to be 'find', got '%s'", cmd.Verb)
	}
	if !cmd.HasArgs(2) {
		t.Errorf("Expected command to have at least 2 arguments")
	}
	if cmd.Arg(0) != "Laptops para Juegos" {
		t.Errorf("Expected first argument to be 'Laptops para Juegos', got '%s'", cmd.Arg(0))
	}
	if cmd.Arg(5) != "" {
		t.Errorf("Expected missing argument to be empty, got '%s'", cmd.Arg(5))
	}
	if cmd.FullName != "Find Laptops para Juegos now" {
		t.Errorf("Unexpected FullName '%s'", cmd.FullName)
	}
}

func TestParseCommandErrors(t *testing.T) {
	_, err := ParseCommand("   ")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = ParseCommand(`find "unclosed`)
	assert.True(t, fault.IsErrInvalid(err))
}

func TestQueryManager(t *testing.T) {
	ds := orgDataset(t)
	qm := NewQueryManager(1)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"find", "find Valeria", []string{"# Valeria", "Platform Lead", "Priscila → Carlos → Valeria", "**Depth:** 2"}},
		{"depth", "depth Mateo", []string{"**Mateo** is at depth **3**"}},
		{"path", "path Tomás", []string{"Priscila → Emma → Tomás"}},
		{"match", "match RI", []string{"**Priscila**", "**Valeria**"}},
		{"pattern", "pattern ^[JT]", []string{"**Jeyni**", "**Tomás**"}},
		{"bare text", "mate", []string{`Keys containing "mate"`, "**Mateo**"}},
		{"no matches", "match zzz", []string{"No matches."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := qm.Run(ds, tt.query)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, answer, want)
			}
		})
	}
}

func TestQueryManagerErrors(t *testing.T) {
	ds := orgDataset(t)
	qm := NewQueryManager(1)

	_, err := qm.Run(ds, "find Ema")
	require.Error(t, err)
	assert.True(t, fault.IsErrNotFound(err))
	assert.Contains(t, err.Error(), "did you mean Emma")

	_, err = qm.Run(ds, "depth")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = qm.Run(ds, "pattern (")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = NewQueryManager(0).Run(ds, "path Ema")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoadDataset(t *testing.T) {
	for _, name := range datasetNames {
		ds, err := loadDataset(name, trace.Discard())
		require.NoError(t, err, name)
		assert.NotEmpty(t, ds.rows(), name)
	}

	_, err := loadDataset("garden", trace.Discard())
	assert.True(t, fault.IsErrNotFound(err))
}

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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cybrota/arbor/fault"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	withHome(t)
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var out bytes.Buffer
	root := newRootCmd("arbor")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"version", []string{"version"}, []string{version}},
		{"tree", []string{"tree", "org"}, []string{"Priscila", "Valeria", "Mateo"}},
		{"org levels", []string{"org", "levels", "Valeria"}, []string{"Valeria is 2 levels below the CEO"}},
		{"org chain", []string{"org", "chain", "Mateo"}, []string{"Priscila → Carlos → Valeria → Mateo"}},
		{"org reports", []string{"org", "reports", "Emma"}, []string{"Jeyni", "Analyst", "Tomás"}},
		{"fs locate", []string{"fs", "locate", "foto.jpg"}, []string{"/home/usuario/foto.jpg"}},
		{"fs locate all", []string{"fs", "locate", "--all", "INFO"}, []string{"/home/usuario/documentos/informe.txt"}},
		{"cdn nearest", []string{"cdn", "nearest", "--lat", "12", "--lon", "-90", "-k", "2"}, []string{"Nueva York", "Central → USA", "10.20"}},
		{"cdn lookup", []string{"cdn", "lookup", "usa"}, []string{"USA (Lat:", "Central → USA"}},
		{"catalog search", []string{"catalog", "search", "lap"}, []string{"Laptops para Juegos", "Productos > Electrónicos > Computadoras > Laptops"}},
		{"dom find", []string{"dom", "find", "DIV"}, []string{`<div class="footer">`, "html / body / div"}},
		{"family ancestors", []string{"family", "ancestors", "Sofía", "-g", "2"}, []string{"Jorge", "Elena", "Luis", "Marta"}},
		{"family siblings", []string{"family", "siblings", "Sofía"}, []string{"Diego"}},
		{"expr", []string{"expr"}, []string{"(3 + 4) * 2 = 14"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "org", "levels", "Ema")
	require.Error(t, err)
	assert.True(t, fault.IsErrNotFound(err))
	assert.Contains(t, err.Error(), `did you mean "Emma"`)

	_, err = execute(t, "cdn", "nearest", "--lat", "norte", "--lon", "0")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = execute(t, "cdn", "nearest", "--lat", "95", "--lon", "0")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = execute(t, "catalog", "search", " ")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = execute(t, "dom", "find", "<p>")
	assert.True(t, fault.IsErrInvalid(err))

	_, err = execute(t, "tree", "garden")
	assert.True(t, fault.IsErrNotFound(err))
}

func TestLocateInScannedDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "pkg", "main.go"), []byte("package main\n"), 0644))

	out, err := execute(t, "fs", "locate", "main.go", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "/src/pkg/main.go")
}

func TestSiblingsNeedTheSameParents(t *testing.T) {
	out, err := execute(t, "family", "siblings", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "exactly the same father and mother")

	// Lucía has only a father recorded, and nobody else has exactly that pair.
	out, err = execute(t, "family", "siblings", "Lucía")
	require.NoError(t, err)
	assert.Contains(t, out, "Lucía has no recorded siblings")

	out, err = execute(t, "family", "siblings", "Carlos")
	require.NoError(t, err)
	assert.Contains(t, out, "Pablo")
}

func TestNearestPrintsOnlyTheRanking(t *testing.T) {
	out, err := execute(t, "--verbose", "cdn", "nearest", "--lat", "12", "--lon", "-90", "-k", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Nueva York")
	assert.NotContains(t, out, "user at")
}

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

package genealogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/arbor/fault"
)

func names(people []*Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.Name())
	}
	return out
}

func TestAdd(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("Jorge", "", "")
	require.NoError(t, err)
	_, err = r.Add("Elena", "", "")
	require.NoError(t, err)

	testCases := []struct {
		name   string
		person string
		father string
		mother string
		check  func(error) bool
	}{
		{name: "empty name", person: " ", check: fault.IsErrInvalid},
		{name: "duplicate", person: "Jorge", check: fault.IsErrExists},
		{name: "same parents", person: "Carlos", father: "Jorge", mother: "Jorge", check: fault.IsErrInvalid},
		{name: "unknown father", person: "Carlos", father: "Ramón", check: fault.IsErrNotFound},
		{name: "unknown mother", person: "Carlos", father: "Jorge", mother: "Rita", check: fault.IsErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := r.Add(tc.person, tc.father, tc.mother)
			assert.Nil(t, p)
			assert.True(t, tc.check(err), "got %v", err)
			assert.Equal(t, 2, r.Len())
		})
	}

	carlos, err := r.Add(" Carlos ", "Jorge", "Elena")
	require.NoError(t, err)
	assert.Equal(t, "Carlos", carlos.Name())
	assert.Equal(t, "Jorge", carlos.Father().Name())
	assert.Equal(t, "Elena", carlos.Mother().Name())
	assert.Equal(t, []string{"Jorge", "Elena", "Carlos"}, names(r.People()))
}

func TestAncestorsAtGeneration(t *testing.T) {
	r := Sample()
	sofia, err := r.Get("Sofía")
	require.NoError(t, err)

	assert.Equal(t, []string{}, AncestorsAtGeneration(sofia, 0))
	assert.Equal(t, []string{}, AncestorsAtGeneration(sofia, -2))
	assert.Equal(t, []string{}, AncestorsAtGeneration(nil, 1))
	assert.Equal(t, []string{"Carlos", "Ana"}, AncestorsAtGeneration(sofia, 1))
	assert.Equal(t, []string{"Jorge", "Elena", "Luis", "Marta"}, AncestorsAtGeneration(sofia, 2))
	assert.Empty(t, AncestorsAtGeneration(sofia, 3))

	lucia, _ := r.Get("Lucía")
	assert.Equal(t, []string{"Pablo"}, AncestorsAtGeneration(lucia, 1))
	assert.Equal(t, []string{"Jorge", "Elena"}, AncestorsAtGeneration(lucia, 2))
}

func TestPedigreeCollapse(t *testing.T) {
	build := func(opts ...Option) *Registry {
		r := NewRegistry(opts...)
		for _, e := range [][3]string{
			{"Adán", "", ""},
			{"Eva", "", ""},
			{"Caín", "Adán", "Eva"},
			{"Awan", "Adán", "Eva"},
			{"Enoc", "Caín", "Awan"},
		} {
			_, err := r.Add(e[0], e[1], e[2])
			require.NoError(t, err)
		}
		return r
	}

	got, err := build().Ancestors("Enoc", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adán", "Eva", "Adán", "Eva"}, got)

	got, err = build(WithDedupe(true)).Ancestors("Enoc", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adán", "Eva"}, got)

	_, err = build().Ancestors("Set", 1)
	assert.True(t, fault.IsErrNotFound(err))
}

func TestSiblings(t *testing.T) {
	r := Sample()

	got, err := r.Siblings("Sofía")
	require.NoError(t, err)
	assert.Equal(t, []string{"Diego"}, names(got))

	got, err = r.Siblings("Carlos")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pablo"}, names(got))

	// the roots share the "no parents" pair but are not siblings
	got, err = r.Siblings("Jorge")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Siblings("Lucía")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.Siblings("Nadie")
	assert.True(t, fault.IsErrNotFound(err))
}

func TestChildren(t *testing.T) {
	r := Sample()
	got, err := r.Children("Carlos")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sofía", "Diego"}, names(got))

	got, err = r.Children("Jorge")
	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos", "Pablo"}, names(got))
}

func TestUpdatePredecessors(t *testing.T) {
	r := Sample()

	require.NoError(t, r.UpdatePredecessors("Lucía", "Pablo", "Marta"))
	lucia, _ := r.Get("Lucía")
	assert.Equal(t, []string{"Pablo", "Marta"}, AncestorsAtGeneration(lucia, 1))

	testCases := []struct {
		name   string
		person string
		father string
		mother string
		check  func(error) bool
	}{
		{name: "self", person: "Carlos", father: "Carlos", check: fault.IsErrCycle},
		{name: "own descendant", person: "Jorge", father: "Sofía", check: fault.IsErrCycle},
		{name: "same parents", person: "Diego", father: "Ana", mother: "Ana", check: fault.IsErrInvalid},
		{name: "unknown parent", person: "Diego", mother: "Rita", check: fault.IsErrNotFound},
		{name: "unknown person", person: "Rita", check: fault.IsErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.UpdatePredecessors(tc.person, tc.father, tc.mother)
			assert.True(t, tc.check(err), "got %v", err)
		})
	}

	jorge, _ := r.Get("Jorge")
	assert.False(t, jorge.HasParents())
	diego, _ := r.Get("Diego")
	assert.Equal(t, []string{"Carlos", "Ana"}, AncestorsAtGeneration(diego, 1))
	assert.True(t, diego.DescendsFrom(jorge))
	assert.False(t, jorge.DescendsFrom(diego))

	require.NoError(t, r.UpdatePredecessors("Diego", "", ""))
	assert.False(t, diego.HasParents())
}

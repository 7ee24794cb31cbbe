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

package hierarchy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ lat, lon float64 }

func (p point) Coordinates() (float64, float64) { return p.lat, p.lon }

func servers(t *testing.T) *Tree[point] {
	t.Helper()
	tree := New[point]()
	_, err := tree.Insert("", "Central", point{0, 0})
	require.NoError(t, err)
	_, err = tree.Insert("Central", "USA", point{10, -100})
	require.NoError(t, err)
	_, err = tree.Insert("Central", "Europa", point{50, 10})
	require.NoError(t, err)
	_, err = tree.Insert("Central", "Asia", point{30, 120})
	require.NoError(t, err)
	return tree
}

func TestPlanarDistance(t *testing.T) {
	assert.Equal(t, 5.0, PlanarDistance(0, 0, 3, 4))
	assert.Equal(t, 0.0, PlanarDistance(7, -7, 7, -7))
	assert.Equal(t, PlanarDistance(1, 2, 3, 4), PlanarDistance(3, 4, 1, 2))
}

func TestKNearest(t *testing.T) {
	tree := servers(t)

	ranked := NearestRanked(tree, 12, -90, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "USA", ranked[0].Node.Key())
	assert.Equal(t, "Central", ranked[1].Node.Key())
	assert.InDelta(t, math.Sqrt(104), ranked[0].Score, 1e-9)
	assert.InDelta(t, math.Sqrt(8244), ranked[1].Score, 1e-9)

	assert.Equal(t, []string{"USA", "Central"}, keys(KNearest(tree, 12, -90, 2)))
	assert.Empty(t, KNearest(tree, 12, -90, 0))
	assert.Empty(t, KNearest(tree, 12, -90, -1))
	assert.Empty(t, KNearest(New[point](), 0, 0, 3))

	all := NearestRanked(tree, 12, -90, 10)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Score, all[i].Score)
	}
}

func TestRankByIsStable(t *testing.T) {
	tree := New[point]()
	_, _ = tree.Insert("", "hub", point{0, 0})
	_, _ = tree.Insert("hub", "north", point{1, 0})
	_, _ = tree.Insert("hub", "east", point{0, 1})
	_, _ = tree.Insert("hub", "south", point{-1, 0})

	got := keys(KNearest(tree, 0, 0, 4))
	assert.Equal(t, []string{"hub", "north", "east", "south"}, got)
}

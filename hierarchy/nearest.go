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
	"sort"

	"github.com/samber/lo"
)

// Locator is implemented by payloads placed on a plane.
type Locator interface {
	Coordinates() (lat, lon float64)
}

// Ranked pairs a node with the score it was ranked by.
type Ranked[P any] struct {
	Node  *Node[P]
	Score float64
}

// PlanarDistance treats latitude and longitude as plain cartesian axes.
func PlanarDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat1-lat2, lon1-lon2)
}

// RankBy scores every node of the tree and sorts them ascending. Nodes with
// equal scores keep their pre-order position.
func RankBy[P any](t *Tree[P], metric func(*Node[P]) float64) []Ranked[P] {
	var ranked []Ranked[P]
	for n := range t.Walk() {
		ranked = append(ranked, Ranked[P]{Node: n, Score: metric(n)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})
	return ranked
}

// KNearest returns the k nodes closest to (lat, lon), closest first. A
// non-positive k gives nothing and a k beyond the tree size gives every node.
func KNearest[P Locator](t *Tree[P], lat, lon float64, k int) []*Node[P] {
	return lo.Map(NearestRanked(t, lat, lon, k), func(r Ranked[P], _ int) *Node[P] {
		return r.Node
	})
}

// NearestRanked is KNearest keeping the distances.
func NearestRanked[P Locator](t *Tree[P], lat, lon float64, k int) []Ranked[P] {
	if k <= 0 {
		return []Ranked[P]{}
	}
	ranked := RankBy(t, func(n *Node[P]) float64 {
		nlat, nlon := n.Payload.Coordinates()
		return PlanarDistance(lat, lon, nlat, nlon)
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

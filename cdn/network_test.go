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

package cdn

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

func names(ranked []hierarchy.Ranked[Server]) []string {
	var out []string
	for _, r := range ranked {
		out = append(out, r.Node.Key())
	}
	return out
}

func TestNearest(t *testing.T) {
	n, err := NewNetwork(Server{Name: "Central"}, nil)
	require.NoError(t, err)
	for _, s := range []Server{{"USA", 10, -100}, {"Europa", 50, 10}, {"Asia", 30, 120}} {
		_, err := n.AddServer("Central", s)
		require.NoError(t, err)
	}

	ranked, err := n.Nearest(12, -90, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Central"}, names(ranked))
	assert.InDelta(t, math.Sqrt(104), ranked[0].Score, 1e-9)

	ranked, err = n.Nearest(12, -90, 0)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	ranked, err = n.Nearest(12, -90, 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Central", "Europa", "Asia"}, names(ranked))

	_, err = n.Nearest(91, 0, 3)
	assert.True(t, fault.IsErrInvalid(err))
	assert.Len(t, n.History(), 3)
}

func TestSampleNearest(t *testing.T) {
	n := SampleNetwork(nil)
	ranked, err := n.Nearest(40.4, -3.7, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Madrid", "París", "Europa"}, names(ranked))
}

func TestHistoryLimit(t *testing.T) {
	n := SampleNetwork(nil)
	for i := 0; i < HistoryLimit+5; i++ {
		_, err := n.Nearest(float64(i), 0, 1)
		require.NoError(t, err)
	}
	history := n.History()
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, 5.0, history[0].Lat)
	assert.Equal(t, float64(HistoryLimit+4), history[HistoryLimit-1].Lat)
	assert.Equal(t, "user at (14, 0) → Central", history[HistoryLimit-1].String())

	history[0].Lat = -1
	assert.Equal(t, 5.0, n.History()[0].Lat)
}

func TestLookup(t *testing.T) {
	n := SampleNetwork(nil)

	s, route, err := n.Lookup("tokio")
	require.NoError(t, err)
	assert.Equal(t, "Tokio", s.Name)
	assert.Equal(t, "Central → Asia → Tokio", route)

	_, route, err = n.Lookup(" CENTRAL ")
	require.NoError(t, err)
	assert.Equal(t, "Central", route)

	_, _, err = n.Lookup("Tok")
	assert.True(t, fault.IsErrNotFound(err))
}

func TestAddServer(t *testing.T) {
	n := SampleNetwork(nil)

	_, err := n.AddServer("Marte", Server{"Olympus", 0, 0})
	assert.True(t, fault.IsErrNotFound(err))

	_, err = n.AddServer("Europa", Server{"Polo", 95, 0})
	assert.True(t, fault.IsErrInvalid(err))

	_, err = n.AddServer("", Server{"Otro", 0, 0})
	assert.True(t, fault.IsErrExists(err))

	assert.Equal(t, 10, n.Tree().Len())
}

func TestParseCoordinates(t *testing.T) {
	testCases := []struct {
		lat, lon string
		wantLat  float64
		wantLon  float64
		invalid  bool
	}{
		{lat: "12", lon: "-90", wantLat: 12, wantLon: -90},
		{lat: " 40.4 ", lon: "-3.7", wantLat: 40.4, wantLon: -3.7},
		{lat: "norte", lon: "0", invalid: true},
		{lat: "0", lon: "", invalid: true},
		{lat: "-91", lon: "0", invalid: true},
		{lat: "0", lon: "180.5", invalid: true},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s,%s", tc.lat, tc.lon), func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tc.lat, tc.lon)
			if tc.invalid {
				assert.True(t, fault.IsErrInvalid(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLat, lat)
			assert.Equal(t, tc.wantLon, lon)
		})
	}
}

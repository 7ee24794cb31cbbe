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

// Package cdn arranges content delivery servers in a distribution tree and
// picks the ones closest to a user. Distances are planar on raw degrees.
package cdn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/cybrota/arbor/trace"
)

const (
	// HistoryLimit is how many searches a Network remembers.
	HistoryLimit = 10
	// RouteSeparator joins server names in a route.
	RouteSeparator = " → "
)

var errCoordinates = fault.InvalidError("coordinates out of range")

// Server is a node of the distribution tree.
type Server struct {
	Name string
	Lat  float64
	Lon  float64
}

func (s Server) Coordinates() (float64, float64) { return s.Lat, s.Lon }

// Validate checks the latitude and longitude ranges.
func (s Server) Validate() error {
	return checkRange(s.Lat, s.Lon)
}

func (s Server) String() string {
	return fmt.Sprintf("%s (Lat: %g, Lon: %g)", s.Name, s.Lat, s.Lon)
}

func checkRange(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return errors.Wrapf(errCoordinates, "(%g, %g)", lat, lon)
	}
	return nil
}

// ParseCoordinates reads a latitude and a longitude typed by a user.
func ParseCoordinates(lat, lon string) (float64, float64, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(fault.InvalidError("latitude is not a number"), "%q", lat)
	}
	lg, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(fault.InvalidError("longitude is not a number"), "%q", lon)
	}
	if err := checkRange(la, lg); err != nil {
		return 0, 0, err
	}
	return la, lg, nil
}

// Search is one remembered nearest-server query.
type Search struct {
	Lat     float64
	Lon     float64
	Servers []string
	At      time.Time
}

func (s Search) String() string {
	return fmt.Sprintf("user at (%g, %g) → %s", s.Lat, s.Lon, strings.Join(s.Servers, ", "))
}

// Network is a server tree plus the history of searches run against it.
type Network struct {
	tree    *hierarchy.Tree[Server]
	history []Search
	log     logrus.FieldLogger
}

// NewNetwork creates a network rooted at central.
func NewNetwork(central Server, log logrus.FieldLogger) (*Network, error) {
	n := &Network{tree: hierarchy.New[Server](), log: trace.OrDiscard(log)}
	if _, err := n.tree.Insert("", central.Name, central); err != nil {
		return nil, err
	}
	return n, nil
}

// Tree exposes the underlying hierarchy for read-only queries and rendering.
func (n *Network) Tree() *hierarchy.Tree[Server] {
	return n.tree
}

// AddServer places s under the first server named parent.
func (n *Network) AddServer(parent string, s Server) (*hierarchy.Node[Server], error) {
	if strings.TrimSpace(parent) == "" {
		return nil, errors.Wrapf(fault.ErrDuplicateRoot, "server %q needs a parent", s.Name)
	}
	node, err := n.tree.Insert(parent, s.Name, s)
	if err != nil {
		return nil, errors.Wrapf(err, "server %q", s.Name)
	}
	n.log.WithFields(logrus.Fields{"server": s.Name, "parent": parent}).Debug("server added")
	return node, nil
}

// Nearest returns the k servers closest to (lat, lon) with their distances,
// and records the search.
func (n *Network) Nearest(lat, lon float64, k int) ([]hierarchy.Ranked[Server], error) {
	if err := checkRange(lat, lon); err != nil {
		return nil, err
	}
	ranked := hierarchy.NearestRanked(n.tree, lat, lon, k)

	n.history = append(n.history, Search{
		Lat: lat,
		Lon: lon,
		Servers: lo.Map(ranked, func(r hierarchy.Ranked[Server], _ int) string {
			return r.Node.Key()
		}),
		At: time.Now(),
	})
	if len(n.history) > HistoryLimit {
		n.history = n.history[len(n.history)-HistoryLimit:]
	}
	n.log.WithFields(logrus.Fields{"lat": lat, "lon": lon, "k": k, "found": len(ranked)}).Debug("nearest servers")
	return ranked, nil
}

// History returns the remembered searches, oldest first.
func (n *Network) History() []Search {
	return append([]Search(nil), n.history...)
}

// Lookup finds the first server whose name matches ignoring case and returns
// it with its route from the central server.
func (n *Network) Lookup(name string) (Server, string, error) {
	found := n.tree.FindAllByKeyFold(name)
	if len(found) == 0 {
		return Server{}, "", errors.Wrapf(fault.ErrKeyNotFound, "server %q", name)
	}
	return found[0].Payload, Route(found[0]), nil
}

// Route joins the names from the central server down to node.
func Route(node *hierarchy.Node[Server]) string {
	return strings.Join(node.PathToRoot(), RouteSeparator)
}

// SampleNetwork returns the network used by the command line examples.
func SampleNetwork(log logrus.FieldLogger) *Network {
	n, err := NewNetwork(Server{Name: "Central", Lat: 0, Lon: 0}, log)
	if err != nil {
		panic(err)
	}
	for _, e := range []struct {
		parent string
		server Server
	}{
		{"Central", Server{"USA", 10, -100}},
		{"Central", Server{"Europa", 50, 10}},
		{"Central", Server{"Asia", 30, 120}},
		{"USA", Server{"Nueva York", 12, -90}},
		{"USA", Server{"Los Ángeles", 9, -120}},
		{"Europa", Server{"París", 48, 2}},
		{"Europa", Server{"Madrid", 40, -4}},
		{"Asia", Server{"Beijing", 39, 116}},
		{"Asia", Server{"Tokio", 35, 139}},
	} {
		if _, err := n.AddServer(e.parent, e.server); err != nil {
			panic(err)
		}
	}
	return n
}

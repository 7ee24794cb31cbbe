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
	"fmt"
	"strings"

	"github.com/cybrota/arbor/catalog"
	"github.com/cybrota/arbor/cdn"
	"github.com/cybrota/arbor/diagnosis"
	"github.com/cybrota/arbor/dom"
	"github.com/cybrota/arbor/expr"
	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/filesystem"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/cybrota/arbor/orgchart"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errUnknownDataset = fault.NotFoundError("unknown dataset")

// datasetNames lists the sample trees in the order they are offered.
var datasetNames = []string{"org", "fs", "cdn", "catalog", "dom", "diagnosis", "expr"}

// dataset is a payload-free handle on one tree, so the CLI and the browser
// can query trees of any payload type the same way.
type dataset struct {
	Name  string
	Title string

	rows    func() []hierarchy.Row
	find    func(key string) (hierarchy.Row, error)
	depth   func(key string) (int, error)
	match   func(fragment string) []hierarchy.Row
	pattern func(expr string) ([]hierarchy.Row, error)
	closest func(key string, n int) []string
}

func newDataset[P any](name, title string, tree *hierarchy.Tree[P], describe func(P) string) *dataset {
	toRows := func(nodes []*hierarchy.Node[P]) []hierarchy.Row {
		rows := make([]hierarchy.Row, 0, len(nodes))
		for _, n := range nodes {
			rows = append(rows, hierarchy.RowOf(n, describe))
		}
		return rows
	}

	return &dataset{
		Name:  name,
		Title: title,
		rows: func() []hierarchy.Row {
			return hierarchy.Outline(tree, describe)
		},
		find: func(key string) (hierarchy.Row, error) {
			n := tree.FindByKey(key)
			if n == nil {
				return hierarchy.Row{}, errors.Wrapf(fault.ErrKeyNotFound, "%q in %s", key, name)
			}
			return hierarchy.RowOf(n, describe), nil
		},
		depth: tree.DepthOf,
		match: func(fragment string) []hierarchy.Row {
			return toRows(tree.FindAllBySubstring(fragment))
		},
		pattern: func(expr string) ([]hierarchy.Row, error) {
			nodes, err := tree.FindAllByPattern(expr)
			if err != nil {
				return nil, err
			}
			return toRows(nodes), nil
		},
		closest: tree.ClosestKeys,
	}
}

// loadDataset builds the named sample tree.
func loadDataset(name string, log logrus.FieldLogger) (*dataset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "org":
		return newDataset("org", "Organization chart", orgchart.Sample(log).Tree(), describeEmployee), nil
	case "fs":
		return fsDataset(filesystem.Sample()), nil
	case "cdn":
		return newDataset("cdn", "Content delivery network", cdn.SampleNetwork(log).Tree(), describeServer), nil
	case "catalog":
		return newDataset("catalog", "Product catalog", catalog.Sample().Tree(), describeCategory), nil
	case "dom":
		return newDataset("dom", "Web page", dom.Sample(), describeElement), nil
	case "diagnosis":
		return newDataset("diagnosis", "Diagnosis decision tree", diagnosis.Sample(), describeStep), nil
	case "expr":
		return newDataset("expr", "Expression tree", expr.Sample(), describeToken), nil
	}
	return nil, errors.Wrapf(errUnknownDataset, "%q (choose one of %s)", name, strings.Join(datasetNames, ", "))
}

func fsDataset(t *filesystem.Tree) *dataset {
	return newDataset("fs", "File system", t.Hierarchy(), describeEntry)
}

func describeEmployee(e orgchart.Employee) string {
	return e.String()
}

func describeEntry(e filesystem.Entry) string {
	if e.Dir {
		return e.Kind()
	}
	return fmt.Sprintf("%s, %d bytes", e.Kind(), e.Size)
}

func describeServer(s cdn.Server) string {
	return s.String()
}

func describeCategory(c catalog.Category) string {
	return "Category " + c.Name
}

func describeElement(e dom.Element) string {
	if e.Text == "" {
		return e.String()
	}
	return fmt.Sprintf("%s %q", e, e.Text)
}

func describeStep(s diagnosis.Step) string {
	if s.Answer == "" {
		return s.Text
	}
	return fmt.Sprintf("[%s] %s", s.Answer, s.Text)
}

func describeToken(t expr.Token) string {
	if t.IsNumber() {
		return "number " + t.String()
	}
	return "operator " + t.String()
}

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

// Package orgchart keeps a company hierarchy: a single CEO at the root and
// every other employee under a direct boss. Names are unique.
package orgchart

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/cybrota/arbor/trace"
)

var (
	errCEOExists = fault.ExistsError("organization already has a CEO")
	errNoCEO     = fault.NotFoundError("hire the CEO first")
	errNoTitle   = fault.InvalidError("title must not be empty")
)

// Employee is the payload of every chart node.
type Employee struct {
	Name       string
	Title      string
	Department string
	HiredOn    time.Time
}

// Validate rejects employees without a title.
func (e Employee) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errNoTitle
	}
	return nil
}

func (e Employee) String() string {
	s := fmt.Sprintf("%s (%s)", e.Name, e.Title)
	if e.Department != "" {
		s += ", " + e.Department
	}
	if !e.HiredOn.IsZero() {
		s += ", hired " + FormatHireDate(e.HiredOn)
	}
	return s
}

// Chart is an organization tree.
type Chart struct {
	tree *hierarchy.Tree[Employee]
	log  logrus.FieldLogger
}

// New returns an empty chart. A nil logger discards.
func New(log logrus.FieldLogger) *Chart {
	return &Chart{
		tree: hierarchy.New[Employee](hierarchy.WithUniqueKeys()),
		log:  trace.OrDiscard(log),
	}
}

// Tree exposes the underlying hierarchy for read-only queries and rendering.
func (c *Chart) Tree() *hierarchy.Tree[Employee] {
	return c.tree
}

// Hire adds an employee under boss. An empty boss hires the CEO.
func (c *Chart) Hire(name, title, boss string) (*hierarchy.Node[Employee], error) {
	return c.HireEmployee(Employee{Name: name, Title: title}, boss)
}

// HireEmployee is Hire with the full employee record.
func (c *Chart) HireEmployee(e Employee, boss string) (*hierarchy.Node[Employee], error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Title = strings.TrimSpace(e.Title)
	boss = strings.TrimSpace(boss)

	if boss == "" && !c.tree.IsEmpty() {
		return nil, errors.Wrapf(errCEOExists, "%q", c.tree.Root().Key())
	}
	if boss != "" && c.tree.IsEmpty() {
		return nil, errors.Wrapf(errNoCEO, "boss %q", boss)
	}

	node, err := c.tree.Insert(boss, e.Name, e)
	if err != nil {
		return nil, errors.Wrapf(err, "employee %q", e.Name)
	}
	c.log.WithFields(logrus.Fields{"employee": e.Name, "title": e.Title, "boss": boss}).Debug("employee hired")
	return node, nil
}

// Find returns the employee called name.
func (c *Chart) Find(name string) (Employee, error) {
	node := c.tree.FindByKey(strings.TrimSpace(name))
	if node == nil {
		return Employee{}, errors.Wrapf(fault.ErrKeyNotFound, "employee %q", name)
	}
	return node.Payload, nil
}

// LevelsBelowCEO is the number of management levels between name and the
// CEO. The CEO is at level 0.
func (c *Chart) LevelsBelowCEO(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fault.ErrEmptyKey
	}
	levels, err := c.tree.DepthOf(name)
	if err != nil {
		return 0, errors.Wrapf(err, "employee %q", name)
	}
	return levels, nil
}

// ChainOfCommand lists the names from the CEO down to name.
func (c *Chart) ChainOfCommand(name string) ([]string, error) {
	node := c.tree.FindByKey(strings.TrimSpace(name))
	if node == nil {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "employee %q", name)
	}
	return node.PathToRoot(), nil
}

// Reports returns the direct reports of name in hiring order.
func (c *Chart) Reports(name string) ([]Employee, error) {
	node := c.tree.FindByKey(strings.TrimSpace(name))
	if node == nil {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "employee %q", name)
	}
	reports := make([]Employee, 0, node.NumChildren())
	for _, child := range node.Children() {
		reports = append(reports, child.Payload)
	}
	return reports, nil
}

// Sample returns the chart used by the command line examples.
func Sample(log logrus.FieldLogger) *Chart {
	c := New(log)
	for _, row := range []struct{ name, title, dept, hired, boss string }{
		{"Priscila", "CEO", "Board", "2015-03-02", ""},
		{"Emma", "Finance Head", "Finance", "03/08/2017", "Priscila"},
		{"Carlos", "CTO", "Engineering", "1 Feb 2016", "Priscila"},
		{"Jeyni", "Analyst", "Finance", "2021-09-13", "Emma"},
		{"Tomás", "Accountant", "Finance", "2020-01-20", "Emma"},
		{"Valeria", "Platform Lead", "Engineering", "12 October 2018", "Carlos"},
		{"Mateo", "Engineer", "Engineering", "2022-06-01", "Valeria"},
	} {
		hired, err := ParseHireDate(row.hired)
		if err != nil {
			panic(err)
		}
		e := Employee{Name: row.name, Title: row.title, Department: row.dept, HiredOn: hired}
		if _, err := c.HireEmployee(e, row.boss); err != nil {
			panic(err)
		}
	}
	return c
}

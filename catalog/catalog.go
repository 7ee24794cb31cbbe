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

// Package catalog organizes product categories and finds them by partial name.
package catalog

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

// PathSeparator joins category names in a full path.
const PathSeparator = " > "

var errEmptySearch = fault.InvalidError("search text must not be empty")

// Category is the payload of a catalog node.
type Category struct {
	Name string
}

// Match is a search hit with its full path.
type Match struct {
	Node *hierarchy.Node[Category]
	Path string
}

// Description summarizes a category for display.
type Description struct {
	Path          string
	Subcategories int
}

// Catalog is a tree of categories under one top level category.
type Catalog struct {
	tree *hierarchy.Tree[Category]
}

// New creates a catalog whose top level category is root.
func New(root string) (*Catalog, error) {
	c := &Catalog{tree: hierarchy.New[Category]()}
	if _, err := c.tree.Insert("", root, Category{Name: strings.TrimSpace(root)}); err != nil {
		return nil, err
	}
	return c, nil
}

// Tree exposes the underlying hierarchy for read-only queries and rendering.
func (c *Catalog) Tree() *hierarchy.Tree[Category] {
	return c.tree
}

// Add creates name under the first category, in pre-order, whose name
// contains parent ignoring case.
func (c *Catalog) Add(parent, name string) (*hierarchy.Node[Category], error) {
	parent, name = strings.TrimSpace(parent), strings.TrimSpace(name)
	if parent == "" {
		return nil, errors.Wrap(errEmptySearch, "parent category")
	}
	candidates := c.tree.FindAllBySubstring(parent)
	if len(candidates) == 0 {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "category %q", parent)
	}
	node, err := hierarchy.NewNode(name, Category{Name: name})
	if err != nil {
		return nil, err
	}
	if err := c.tree.Attach(candidates[0], node); err != nil {
		return nil, err
	}
	return node, nil
}

// Search returns every category whose name contains fragment ignoring case.
func (c *Catalog) Search(fragment string) ([]Match, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, errEmptySearch
	}
	var matches []Match
	for _, n := range c.tree.FindAllBySubstring(fragment) {
		matches = append(matches, Match{Node: n, Path: FullPath(n)})
	}
	return matches, nil
}

// FullPath joins the names from the top level category down to n.
func FullPath(n *hierarchy.Node[Category]) string {
	return strings.Join(n.PathToRoot(), PathSeparator)
}

// Describe returns the path and direct subcategory count of n.
func Describe(n *hierarchy.Node[Category]) Description {
	return Description{Path: FullPath(n), Subcategories: n.NumChildren()}
}

// Sample returns the catalog used by the command line examples.
func Sample() *Catalog {
	c, err := New("Productos")
	if err != nil {
		panic(err)
	}
	for _, pair := range [][2]string{
		{"Productos", "Electrónicos"},
		{"Electrónicos", "Computadoras"},
		{"Computadoras", "Laptops"},
		{"Laptops", "Laptops para Juegos"},
		{"Productos", "Ropa"},
		{"Ropa", "Hombre"},
		{"Ropa", "Mujer"},
	} {
		if _, err := c.Add(pair[0], pair[1]); err != nil {
			panic(err)
		}
	}
	return c
}

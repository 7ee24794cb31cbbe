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

// Package filesystem models a directory tree: folders and files hanging from
// a root named "/". Entries are addressed by slash separated paths.
package filesystem

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

// RootName is the key of every tree's root.
const RootName = "/"

var (
	errNotDir      = fault.InvalidError("not a directory")
	errBadName     = fault.InvalidError("name must not contain a slash")
	errNameInUse   = fault.ExistsError("name already used in this directory")
	errRelativeDir = fault.InvalidError("path must start with /")
)

// Entry is a file or a directory.
type Entry struct {
	Name     string
	Dir      bool
	Size     int64
	Modified time.Time

	root bool
}

// Kind is "Directory" or "File".
func (e Entry) Kind() string {
	if e.Dir {
		return "Directory"
	}
	return "File"
}

func (e Entry) Validate() error {
	if e.root && e.Name == RootName {
		return nil
	}
	if strings.Contains(e.Name, "/") {
		return errBadName
	}
	return nil
}

// Tree is a directory hierarchy.
type Tree struct {
	tree *hierarchy.Tree[Entry]
}

// New returns a tree holding only the root directory.
func New() *Tree {
	t := &Tree{tree: hierarchy.New[Entry]()}
	if _, err := t.tree.Insert("", RootName, Entry{Name: RootName, Dir: true, root: true}); err != nil {
		panic(err)
	}
	return t
}

// Hierarchy exposes the underlying tree for read-only queries and rendering.
func (t *Tree) Hierarchy() *hierarchy.Tree[Entry] {
	return t.tree
}

// Mkdir creates the directory name inside dir.
func (t *Tree) Mkdir(dir, name string) (*hierarchy.Node[Entry], error) {
	return t.add(dir, Entry{Name: name, Dir: true})
}

// Touch creates the file name inside dir.
func (t *Tree) Touch(dir, name string, size int64) (*hierarchy.Node[Entry], error) {
	return t.add(dir, Entry{Name: name, Size: size})
}

func (t *Tree) add(dir string, e Entry) (*hierarchy.Node[Entry], error) {
	parent, err := t.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if !parent.Payload.Dir {
		return nil, errors.Wrapf(errNotDir, "%q", dir)
	}
	e.Name = strings.TrimSpace(e.Name)
	if childNamed(parent, e.Name) != nil {
		return nil, errors.Wrapf(errNameInUse, "%q in %q", e.Name, dir)
	}
	node, err := hierarchy.NewNode(e.Name, e)
	if err != nil {
		return nil, err
	}
	if err := t.tree.Attach(parent, node); err != nil {
		return nil, err
	}
	return node, nil
}

// Resolve returns the entry at an absolute path such as /home/usuario.
func (t *Tree) Resolve(path string) (*hierarchy.Node[Entry], error) {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		return nil, errors.Wrapf(errRelativeDir, "%q", path)
	}
	cur := t.tree.Root()
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := childNamed(cur, part)
		if next == nil {
			return nil, errors.Wrapf(fault.ErrKeyNotFound, "path %q", path)
		}
		cur = next
	}
	return cur, nil
}

func childNamed(n *hierarchy.Node[Entry], name string) *hierarchy.Node[Entry] {
	for i := 0; i < n.NumChildren(); i++ {
		if c := n.Child(i); c.Key() == name {
			return c
		}
	}
	return nil
}

// Locate returns the absolute path of the first entry called name, searching
// in pre-order.
func (t *Tree) Locate(name string) (string, error) {
	node := t.tree.FindByKey(strings.TrimSpace(name))
	if node == nil {
		return "", errors.Wrapf(fault.ErrKeyNotFound, "entry %q", name)
	}
	return PathOf(node), nil
}

// LocateAll returns the paths of every entry whose name contains fragment.
func (t *Tree) LocateAll(fragment string) []string {
	var paths []string
	for _, n := range t.tree.FindAllBySubstring(fragment) {
		paths = append(paths, PathOf(n))
	}
	return paths
}

// PathOf renders the absolute path of n. The root is "/".
func PathOf(n *hierarchy.Node[Entry]) string {
	keys := n.PathToRoot()
	return "/" + strings.Join(keys[1:], "/")
}

// Sample returns the tree used by the command line examples.
func Sample() *Tree {
	t := New()
	for _, step := range []struct {
		dir, name string
		isDir     bool
		size      int64
	}{
		{"/", "home", true, 0},
		{"/home", "usuario", true, 0},
		{"/home/usuario", "documentos", true, 0},
		{"/home/usuario/documentos", "informe.txt", false, 2048},
		{"/home/usuario", "foto.jpg", false, 348160},
	} {
		var err error
		if step.isDir {
			_, err = t.Mkdir(step.dir, step.name)
		} else {
			_, err = t.Touch(step.dir, step.name, step.size)
		}
		if err != nil {
			panic(err)
		}
	}
	return t
}

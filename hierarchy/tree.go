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
	"strings"

	"github.com/pkg/errors"
	"github.com/willf/bloom"

	"github.com/cybrota/arbor/fault"
)

const (
	// sizing for the unique-key filter; trees in this project hold tens of nodes
	registryCapacity  = 1024
	registryFalseRate = 0.01
)

var errOwned = fault.InvalidError("node belongs to a unique-key tree")

// Tree owns a single root. All other nodes are reached through children.
type Tree[P any] struct {
	root   *Node[P]
	unique bool

	// keys remembers every key registered through this tree. A negative
	// answer is final, a positive one is confirmed with FindByKey.
	keys *bloom.BloomFilter
}

type options struct {
	unique bool
}

// Option configures a Tree.
type Option func(*options)

// WithUniqueKeys makes the tree reject a second node with an existing key.
// Nodes of a unique tree can then only be linked through its own methods.
func WithUniqueKeys() Option {
	return func(o *options) { o.unique = true }
}

// New creates an empty tree.
func New[P any](opts ...Option) *Tree[P] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tree[P]{unique: o.unique}
	if t.unique {
		t.keys = bloom.NewWithEstimates(registryCapacity, registryFalseRate)
	}
	return t
}

// Root returns the root node or nil for an empty tree.
func (t *Tree[P]) Root() *Node[P] {
	return t.root
}

func (t *Tree[P]) IsEmpty() bool { return t.root == nil }
func (t *Tree[P]) Unique() bool  { return t.unique }

// Len counts the nodes reachable from the root.
func (t *Tree[P]) Len() int {
	count := 0
	for range t.Walk() {
		count++
	}
	return count
}

// Contains reports whether n hangs from this tree's root.
func (t *Tree[P]) Contains(n *Node[P]) bool {
	if n == nil || t.root == nil {
		return false
	}
	return n.top() == t.root
}

// SetRoot installs n as the root. A tree accepts exactly one root.
func (t *Tree[P]) SetRoot(n *Node[P]) error {
	if n == nil {
		return fault.ErrNilNode
	}
	if t.root != nil {
		return errors.Wrapf(fault.ErrDuplicateRoot, "%q is already the root", t.root.key)
	}
	if n.parent != nil {
		return errors.Wrapf(fault.ErrHasParent, "%q is under %q", n.key, n.parent.key)
	}
	if n.owner != nil {
		return errors.Wrapf(errOwned, "%q", n.key)
	}
	if err := t.admit(n); err != nil {
		return err
	}
	t.root = n
	t.register(n)
	return nil
}

// Attach links child under parent, which must already belong to the tree.
// In unique mode every key of child's subtree must be new to the tree.
func (t *Tree[P]) Attach(parent, child *Node[P]) error {
	if parent == nil || child == nil {
		return fault.ErrNilNode
	}
	if !t.Contains(parent) {
		return errors.Wrapf(fault.ErrParentNotInTree, "parent %q", parent.key)
	}
	if child.owner != nil {
		return errors.Wrapf(errOwned, "%q", child.key)
	}
	if err := t.admit(child); err != nil {
		return err
	}
	if err := link(parent, child); err != nil {
		return err
	}
	t.register(child)
	return nil
}

// Insert creates a node and attaches it under the first node keyed
// parentKey. An empty parentKey makes the new node the root.
func (t *Tree[P]) Insert(parentKey, key string, payload P) (*Node[P], error) {
	node, err := NewNode(key, payload)
	if err != nil {
		return nil, err
	}
	parentKey = strings.TrimSpace(parentKey)
	if parentKey == "" {
		if err := t.SetRoot(node); err != nil {
			return nil, err
		}
		return node, nil
	}
	parent := t.FindByKey(parentKey)
	if parent == nil {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "parent %q", parentKey)
	}
	if err := t.Attach(parent, node); err != nil {
		return nil, err
	}
	return node, nil
}

// admit checks that the keys of sub are distinct among themselves and
// absent from the tree. It never mutates.
func (t *Tree[P]) admit(sub *Node[P]) error {
	if !t.unique {
		return nil
	}
	seen := make(map[string]struct{})
	for n := range PreOrder(sub) {
		if _, ok := seen[n.key]; ok {
			return errors.Wrapf(fault.ErrDuplicateKey, "%q", n.key)
		}
		seen[n.key] = struct{}{}
		if t.keys.TestString(n.key) && t.FindByKey(n.key) != nil {
			return errors.Wrapf(fault.ErrDuplicateKey, "%q", n.key)
		}
	}
	return nil
}

func (t *Tree[P]) register(sub *Node[P]) {
	if !t.unique {
		return
	}
	for n := range PreOrder(sub) {
		t.keys.AddString(n.key)
		n.owner = t
	}
}

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

// Package hierarchy is the generic tree core: a rooted, ordered n-ary tree
// of keyed nodes carrying an arbitrary payload, with the pre-order walks and
// structural queries built on top of it.
//
// Trees are meant for a single caller mutating and querying in turn.
// Nothing here is safe for concurrent use.
package hierarchy

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cybrota/arbor/fault"
)

// Node is one entity in a hierarchy. Children are owned by their parent and
// kept in insertion order; the parent link is a back-reference used only for
// upward queries.
type Node[P any] struct {
	key      string
	Payload  P
	parent   *Node[P]
	children []*Node[P]

	// owner is the unique-key tree that registered the node, if any
	owner *Tree[P]
}

// payloads implementing validator are checked when the node is created
type validator interface {
	Validate() error
}

// NewNode creates a detached node. The key is trimmed and must not be empty.
func NewNode[P any](key string, payload P) (*Node[P], error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fault.ErrEmptyKey
	}
	if v, ok := any(payload).(validator); ok {
		if err := v.Validate(); err != nil {
			if !fault.IsErrInvalid(err) {
				err = fault.InvalidError(err.Error())
			}
			return nil, errors.Wrapf(err, "payload of %q", key)
		}
	}
	return &Node[P]{key: key, Payload: payload}, nil
}

// Key returns the node's name.
func (n *Node[P]) Key() string {
	return n.key
}

// Parent returns the parent node, nil for a root or a detached node.
func (n *Node[P]) Parent() *Node[P] {
	return n.parent
}

// Children returns a copy of the child list in display order.
func (n *Node[P]) Children() []*Node[P] {
	kids := make([]*Node[P], len(n.children))
	copy(kids, n.children)
	return kids
}

// Child returns the i-th child or nil when i is out of range.
func (n *Node[P]) Child(i int) *Node[P] {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node[P]) NumChildren() int { return len(n.children) }
func (n *Node[P]) IsRoot() bool     { return n.parent == nil }
func (n *Node[P]) IsLeaf() bool     { return len(n.children) == 0 }

// IsAncestorOf reports whether n lies strictly above other.
func (n *Node[P]) IsAncestorOf(other *Node[P]) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Depth counts the parent links between n and the top of its tree.
func (n *Node[P]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// top returns the highest ancestor of n, or n itself.
func (n *Node[P]) top() *Node[P] {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Attach appends child to parent's children and links it back. The child
// must be detached and must not be parent itself or one of its ancestors.
// Nodes of a unique-key tree are refused; use that tree's Attach.
// Either everything is linked or nothing changes.
func Attach[P any](parent, child *Node[P]) error {
	if parent == nil || child == nil {
		return fault.ErrNilNode
	}
	for _, n := range []*Node[P]{parent, child} {
		if n.owner != nil {
			return errors.Wrapf(errOwned, "%q", n.key)
		}
	}
	return link(parent, child)
}

func link[P any](parent, child *Node[P]) error {
	if child.parent != nil {
		return errors.Wrapf(fault.ErrHasParent, "%q is under %q", child.key, child.parent.key)
	}
	if child == parent || child.IsAncestorOf(parent) {
		return errors.Wrapf(fault.ErrCycle, "%q under %q", child.key, parent.key)
	}
	parent.children = append(parent.children, child)
	child.parent = parent
	return nil
}

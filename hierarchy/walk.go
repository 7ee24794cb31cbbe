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
	"iter"
	"slices"
)

// PreOrder yields n and every node below it, depth first, children in stored
// order, together with the depth relative to n. Breaking out of the range
// loop stops the walk. Children must not be added while walking.
func PreOrder[P any](n *Node[P]) iter.Seq2[*Node[P], int] {
	return func(yield func(*Node[P], int) bool) {
		if n == nil {
			return
		}
		preOrder(n, 0, yield)
	}
}

func preOrder[P any](n *Node[P], depth int, yield func(*Node[P], int) bool) bool {
	if !yield(n, depth) {
		return false
	}
	for _, c := range n.children {
		if !preOrder(c, depth+1, yield) {
			return false
		}
	}
	return true
}

// Walk is PreOrder from the root. An empty tree yields nothing.
func (t *Tree[P]) Walk() iter.Seq2[*Node[P], int] {
	return PreOrder(t.root)
}

// WalkPaths walks like PreOrder and yields, for each node, the keys from n
// down to that node. Every yielded slice is owned by the consumer.
func WalkPaths[P any](n *Node[P]) iter.Seq2[*Node[P], []string] {
	return func(yield func(*Node[P], []string) bool) {
		if n == nil {
			return
		}
		walkPaths(n, nil, yield)
	}
}

func walkPaths[P any](n *Node[P], prefix []string, yield func(*Node[P], []string) bool) bool {
	path := append(slices.Clip(prefix), n.key)
	if !yield(n, slices.Clone(path)) {
		return false
	}
	for _, c := range n.children {
		if !walkPaths(c, path, yield) {
			return false
		}
	}
	return true
}

// Collect returns, in pre-order, every node under n (n included) accepted by match.
func Collect[P any](n *Node[P], match func(*Node[P]) bool) []*Node[P] {
	var found []*Node[P]
	for node := range PreOrder(n) {
		if match(node) {
			found = append(found, node)
		}
	}
	return found
}

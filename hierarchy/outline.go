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

// Row is a flattened, payload-free view of one node, used by listings and
// browsers that handle trees of any payload type.
type Row struct {
	Key      string
	Depth    int
	Path     []string
	Children int
	Detail   string
}

// Outline flattens the tree in pre-order. describe renders the payload and
// may be nil.
func Outline[P any](t *Tree[P], describe func(P) string) []Row {
	var rows []Row
	for n, path := range WalkPaths(t.root) {
		rows = append(rows, row(n, path, describe))
	}
	return rows
}

// RowOf flattens a single node.
func RowOf[P any](n *Node[P], describe func(P) string) Row {
	return row(n, n.PathToRoot(), describe)
}

func row[P any](n *Node[P], path []string, describe func(P) string) Row {
	r := Row{
		Key:      n.key,
		Depth:    len(path) - 1,
		Path:     path,
		Children: len(n.children),
	}
	if describe != nil {
		r.Detail = describe(n.Payload)
	}
	return r
}

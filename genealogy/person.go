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

// Package genealogy models family trees where every person has up to two
// recorded predecessors, a father and a mother. Unlike hierarchy trees a
// person can be reached along several lines of descent.
package genealogy

import (
	"github.com/samber/lo"
)

// Person is an individual in a family registry.
type Person struct {
	name   string
	father *Person
	mother *Person
}

func (p *Person) Name() string     { return p.name }
func (p *Person) Father() *Person  { return p.father }
func (p *Person) Mother() *Person  { return p.mother }
func (p *Person) HasParents() bool { return p.father != nil || p.mother != nil }

// Parents returns the recorded predecessors, father first.
func (p *Person) Parents() []*Person {
	var parents []*Person
	if p.father != nil {
		parents = append(parents, p.father)
	}
	if p.mother != nil {
		parents = append(parents, p.mother)
	}
	return parents
}

// DescendsFrom reports whether other appears anywhere above p.
func (p *Person) DescendsFrom(other *Person) bool {
	if other == nil {
		return false
	}
	for _, parent := range p.Parents() {
		if parent == other || parent.DescendsFrom(other) {
			return true
		}
	}
	return false
}

// AncestorsAtGeneration returns the names of p's ancestors exactly g
// generations up. Generation 1 are the parents, father first. Deeper
// generations list the father's line before the mother's line, and a
// person reached along two lines appears twice.
func AncestorsAtGeneration(p *Person, g int) []string {
	if p == nil || g < 1 {
		return []string{}
	}
	if g == 1 {
		return lo.Map(p.Parents(), func(parent *Person, _ int) string {
			return parent.name
		})
	}
	return append(AncestorsAtGeneration(p.father, g-1), AncestorsAtGeneration(p.mother, g-1)...)
}

// SiblingsOf returns everyone in all, other than p, with exactly the same
// father and mother as p. People with no recorded parents have no siblings.
func SiblingsOf(p *Person, all []*Person) []*Person {
	if p == nil || !p.HasParents() {
		return []*Person{}
	}
	return lo.Filter(all, func(q *Person, _ int) bool {
		return q != p && q.father == p.father && q.mother == p.mother
	})
}

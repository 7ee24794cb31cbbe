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

package genealogy

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/trace"
)

var errSameParents = fault.InvalidError("father and mother must be different people")

// Registry holds people by unique name in the order they were added.
type Registry struct {
	people []*Person
	byName map[string]*Person
	dedupe bool
	log    logrus.FieldLogger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDedupe makes Ancestors report every ancestor once, at its first position.
func WithDedupe(dedupe bool) Option {
	return func(r *Registry) { r.dedupe = dedupe }
}

// WithLogger sets the logger used to record changes.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{byName: make(map[string]*Person)}
	for _, opt := range opts {
		opt(r)
	}
	r.log = trace.OrDiscard(r.log)
	return r
}

// Add records a new person. father and mother are names of people already in
// the registry and may be empty when unknown.
func (r *Registry) Add(name, father, mother string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.ErrEmptyKey
	}
	if _, ok := r.byName[name]; ok {
		return nil, errors.Wrapf(fault.ErrDuplicateKey, "person %q", name)
	}
	f, m, err := r.resolveParents(father, mother)
	if err != nil {
		return nil, errors.Wrapf(err, "person %q", name)
	}

	p := &Person{name: name, father: f, mother: m}
	r.people = append(r.people, p)
	r.byName[name] = p
	r.log.WithFields(logrus.Fields{"person": name, "father": father, "mother": mother}).Debug("person added")
	return p, nil
}

// UpdatePredecessors replaces the recorded father and mother of name. A
// person cannot become its own ancestor.
func (r *Registry) UpdatePredecessors(name, father, mother string) error {
	p, err := r.Get(name)
	if err != nil {
		return err
	}
	f, m, err := r.resolveParents(father, mother)
	if err != nil {
		return errors.Wrapf(err, "person %q", p.name)
	}
	for _, parent := range []*Person{f, m} {
		if parent == p || (parent != nil && parent.DescendsFrom(p)) {
			return errors.Wrapf(fault.ErrCycle, "%q as parent of %q", parent.name, p.name)
		}
	}

	p.father, p.mother = f, m
	r.log.WithFields(logrus.Fields{"person": p.name, "father": father, "mother": mother}).Debug("predecessors updated")
	return nil
}

func (r *Registry) resolveParents(father, mother string) (*Person, *Person, error) {
	father, mother = strings.TrimSpace(father), strings.TrimSpace(mother)
	if father != "" && father == mother {
		return nil, nil, errors.Wrapf(errSameParents, "%q", father)
	}
	f, err := r.lookup(father)
	if err != nil {
		return nil, nil, errors.Wrap(err, "father")
	}
	m, err := r.lookup(mother)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mother")
	}
	return f, m, nil
}

// lookup resolves an optional name; empty means unknown.
func (r *Registry) lookup(name string) (*Person, error) {
	if name == "" {
		return nil, nil
	}
	p, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "%q", name)
	}
	return p, nil
}

// Get returns the person called name.
func (r *Registry) Get(name string) (*Person, error) {
	p, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, errors.Wrapf(fault.ErrKeyNotFound, "person %q", name)
	}
	return p, nil
}

// People returns everyone in insertion order.
func (r *Registry) People() []*Person {
	return append([]*Person(nil), r.people...)
}

func (r *Registry) Len() int { return len(r.people) }

// Children returns the people listing name as father or mother.
func (r *Registry) Children(name string) ([]*Person, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return lo.Filter(r.people, func(q *Person, _ int) bool {
		return q.father == p || q.mother == p
	}), nil
}

// Ancestors is AncestorsAtGeneration for a registered name, honoring the
// dedupe option.
func (r *Registry) Ancestors(name string, g int) ([]string, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	names := AncestorsAtGeneration(p, g)
	if r.dedupe {
		names = lo.Uniq(names)
	}
	return names, nil
}

// Siblings is SiblingsOf for a registered name.
func (r *Registry) Siblings(name string) ([]*Person, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return SiblingsOf(p, r.people), nil
}

// Sample returns the family used by the command line examples.
func Sample(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	for _, entry := range [][3]string{
		{"Jorge", "", ""},
		{"Elena", "", ""},
		{"Luis", "", ""},
		{"Marta", "", ""},
		{"Carlos", "Jorge", "Elena"},
		{"Pablo", "Jorge", "Elena"},
		{"Ana", "Luis", "Marta"},
		{"Sofía", "Carlos", "Ana"},
		{"Diego", "Carlos", "Ana"},
		{"Lucía", "Pablo", ""},
	} {
		if _, err := r.Add(entry[0], entry[1], entry[2]); err != nil {
			panic(err)
		}
	}
	return r
}

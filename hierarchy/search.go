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
	"sort"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/cybrota/arbor/fault"
)

const patternMatchTimeout = 2 * time.Second

// FindByKey returns the first node in pre-order whose key is exactly key.
func (t *Tree[P]) FindByKey(key string) *Node[P] {
	for n := range t.Walk() {
		if n.key == key {
			return n
		}
	}
	return nil
}

// FindAllBySubstring returns every node whose key contains fragment, ignoring
// case. An empty fragment matches every node.
func (t *Tree[P]) FindAllBySubstring(fragment string) []*Node[P] {
	fold := cases.Fold()
	needle := fold.String(fragment)
	return Collect(t.root, func(n *Node[P]) bool {
		return strings.Contains(fold.String(n.key), needle)
	})
}

// FindAllByKeyFold returns every node whose key equals key under case folding.
func (t *Tree[P]) FindAllByKeyFold(key string) []*Node[P] {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(key))
	return Collect(t.root, func(n *Node[P]) bool {
		return fold.String(n.key) == want
	})
}

// FindAllByPattern returns every node whose key matches the regular
// expression. The RE2 compatible syntax is used.
func (t *Tree[P]) FindAllByPattern(pattern string) ([]*Node[P], error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, errors.Wrapf(fault.InvalidError(err.Error()), "pattern %q", pattern)
	}
	re.MatchTimeout = patternMatchTimeout

	var matchErr error
	found := Collect(t.root, func(n *Node[P]) bool {
		if matchErr != nil {
			return false
		}
		ok, err := re.MatchString(n.key)
		if err != nil {
			matchErr = errors.Wrapf(err, "matching %q", n.key)
			return false
		}
		return ok
	})
	if matchErr != nil {
		return nil, matchErr
	}
	return found, nil
}

// ClosestKeys returns up to n distinct keys most similar to key, best first.
// Keys with no similarity at all are left out.
func (t *Tree[P]) ClosestKeys(key string, n int) []string {
	if n <= 0 || t.root == nil {
		return nil
	}
	metric := metrics.NewLevenshtein()
	metric.CaseSensitive = false

	keys := lo.Uniq(lo.Map(Collect(t.root, func(*Node[P]) bool { return true }), func(n *Node[P], _ int) string {
		return n.key
	}))
	scores := make(map[string]float64, len(keys))
	for _, k := range keys {
		scores[k] = strutil.Similarity(key, k, metric)
	}
	keys = lo.Filter(keys, func(k string, _ int) bool { return scores[k] > 0 })
	sort.SliceStable(keys, func(i, j int) bool { return scores[keys[i]] > scores[keys[j]] })

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// DepthOf returns the depth of the first exact match of key. The root is at 0.
func (t *Tree[P]) DepthOf(key string) (int, error) {
	for n, depth := range t.Walk() {
		if n.key == key {
			return depth, nil
		}
	}
	return 0, errors.Wrapf(fault.ErrKeyNotFound, "%q", key)
}

// PathToRoot returns the keys from the root of n's tree down to n.
func (n *Node[P]) PathToRoot() []string {
	var keys []string
	for cur := n; cur != nil; cur = cur.parent {
		keys = append(keys, cur.key)
	}
	return lo.Reverse(keys)
}

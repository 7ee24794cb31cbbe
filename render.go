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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/samber/lo"
)

// renderTree draws rows, which must be in pre-order, as an indented tree.
func renderTree(rows []hierarchy.Row) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	var leveled pterm.LeveledList
	for _, row := range rows {
		text := row.Key
		if row.Detail != "" && row.Detail != row.Key {
			text += pterm.Gray("  " + row.Detail)
		}
		leveled = append(leveled, pterm.LeveledListItem{Level: row.Depth, Text: text})
	}
	return pterm.DefaultTree.WithRoot(putils.TreeFromLeveledList(leveled)).Srender()
}

// renderTable draws a table whose first row is the header.
func renderTable(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.WithHasHeader(true).WithData(data).Srender()
}

// withSuggestions adds the keys closest to key to a not-found error.
func withSuggestions[P any](err error, tree *hierarchy.Tree[P], key string, n int) error {
	if !fault.IsErrNotFound(err) || n <= 0 {
		return err
	}
	similar := tree.ClosestKeys(key, n)
	if len(similar) == 0 {
		return err
	}
	return errors.Wrap(err, fmt.Sprintf("did you mean %s", joinQuoted(similar)))
}

func joinQuoted(keys []string) string {
	return strings.Join(lo.Map(keys, func(k string, _ int) string { return strconv.Quote(k) }), ", ")
}

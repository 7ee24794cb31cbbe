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
	"sort"
	"strings"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

// pathSeparator joins keys when a path is shown to the user.
const pathSeparator = " → "

var (
	errEmptyQuery      = fault.InvalidError("type a query, for example: find Emma")
	errMissingArgument = fault.InvalidError("missing argument")
)

// QueryStrategy answers one kind of command bar query.
type QueryStrategy interface {
	Run(ds *dataset, cmd *Command) (string, error)
	SupportsVerb(verb string) bool
	Priority() int // Lower number = higher priority
}

// Command is one parsed line of the command bar.
type Command struct {
	Parts    []string
	Verb     string
	Args     []string
	FullName string
}

// ParseCommand splits a command bar line the way a shell would, so keys with
// spaces can be quoted.
func ParseCommand(line string) (*Command, error) {
	parts, err := shellwords.Parse(line)
	if err != nil {
		return nil, errors.Wrap(fault.InvalidError(err.Error()), "parse query")
	}
	if len(parts) == 0 {
		return nil, errEmptyQuery
	}
	return &Command{
		Parts:    parts,
		Verb:     strings.ToLower(parts[0]),
		Args:     parts[1:],
		FullName: strings.Join(parts, " "),
	}, nil
}

func (c *Command) HasArgs(n int) bool {
	return len(c.Args) >= n
}

func (c *Command) Arg(n int) string {
	if n >= len(c.Args) {
		return ""
	}
	return c.Args[n]
}

// Rest joins the arguments back together, so unquoted keys with spaces still work.
func (c *Command) Rest() string {
	return strings.Join(c.Args, " ")
}

// QueryManager dispatches a command to the first strategy that accepts its verb.
type QueryManager struct {
	strategies  []QueryStrategy
	suggestions int
}

// NewQueryManager registers the built-in queries. suggestions is the number
// of similar keys offered when a key is not found.
func NewQueryManager(suggestions int) *QueryManager {
	manager := &QueryManager{suggestions: suggestions}

	manager.RegisterStrategy(keyQuery{verb: "find", answer: answerFind})
	manager.RegisterStrategy(keyQuery{verb: "depth", answer: answerDepth})
	manager.RegisterStrategy(keyQuery{verb: "path", answer: answerPath})
	manager.RegisterStrategy(matchQuery{})
	manager.RegisterStrategy(patternQuery{})
	// anything else is treated as text to look for
	manager.RegisterStrategy(textQuery{})

	return manager
}

func (qm *QueryManager) RegisterStrategy(strategy QueryStrategy) {
	qm.strategies = append(qm.strategies, strategy)
	sort.SliceStable(qm.strategies, func(i, j int) bool {
		return qm.strategies[i].Priority() < qm.strategies[j].Priority()
	})
}

// Run parses line and answers it against ds as markdown.
func (qm *QueryManager) Run(ds *dataset, line string) (string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return "", err
	}

	for _, strategy := range qm.strategies {
		if !strategy.SupportsVerb(cmd.Verb) {
			continue
		}
		answer, err := strategy.Run(ds, cmd)
		if fault.IsErrNotFound(err) && cmd.HasArgs(1) {
			if hint := didYouMean(ds, cmd.Rest(), qm.suggestions); hint != "" {
				return "", errors.Wrap(err, hint)
			}
		}
		return answer, err
	}
	return "", errors.Wrapf(fault.InvalidError("no query understands"), "%q", cmd.FullName)
}

// didYouMean names the keys closest to key, or returns "" when none are.
func didYouMean(ds *dataset, key string, n int) string {
	if n <= 0 {
		return ""
	}
	similar := ds.closest(key, n)
	if len(similar) == 0 {
		return ""
	}
	return "did you mean " + strings.Join(similar, ", ")
}

// keyQuery handles verbs that take one existing key.
type keyQuery struct {
	verb   string
	answer func(ds *dataset, key string) (string, error)
}

func (q keyQuery) SupportsVerb(verb string) bool { return verb == q.verb }
func (q keyQuery) Priority() int                 { return 10 }

func (q keyQuery) Run(ds *dataset, cmd *Command) (string, error) {
	if !cmd.HasArgs(1) {
		return "", errors.Wrapf(errMissingArgument, "usage: %s <key>", q.verb)
	}
	return q.answer(ds, cmd.Rest())
}

func answerFind(ds *dataset, key string) (string, error) {
	row, err := ds.find(key)
	if err != nil {
		return "", err
	}
	return describeRow(row), nil
}

func answerDepth(ds *dataset, key string) (string, error) {
	depth, err := ds.depth(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**%s** is at depth **%d**\n", key, depth), nil
}

func answerPath(ds *dataset, key string) (string, error) {
	row, err := ds.find(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Path:** %s\n", strings.Join(row.Path, pathSeparator)), nil
}

type matchQuery struct{}

func (matchQuery) SupportsVerb(verb string) bool { return verb == "match" }
func (matchQuery) Priority() int                 { return 10 }

func (matchQuery) Run(ds *dataset, cmd *Command) (string, error) {
	fragment := cmd.Rest()
	return listRows(fmt.Sprintf("Keys containing %q", fragment), ds.match(fragment)), nil
}

type patternQuery struct{}

func (patternQuery) SupportsVerb(verb string) bool { return verb == "pattern" }
func (patternQuery) Priority() int                 { return 10 }

func (patternQuery) Run(ds *dataset, cmd *Command) (string, error) {
	if !cmd.HasArgs(1) {
		return "", errors.Wrap(errMissingArgument, "usage: pattern <regexp>")
	}
	expr := cmd.Rest()
	rows, err := ds.pattern(expr)
	if err != nil {
		return "", err
	}
	return listRows(fmt.Sprintf("Keys matching `%s`", expr), rows), nil
}

type textQuery struct{}

func (textQuery) SupportsVerb(string) bool { return true }
func (textQuery) Priority() int            { return 100 }

func (textQuery) Run(ds *dataset, cmd *Command) (string, error) {
	return listRows(fmt.Sprintf("Keys containing %q", cmd.FullName), ds.match(cmd.FullName)), nil
}

// describeRow renders one node as a markdown card.
func describeRow(row hierarchy.Row) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("# %s\n\n", row.Key))
	if row.Detail != "" {
		content.WriteString(fmt.Sprintf("%s\n\n", row.Detail))
	}
	content.WriteString(fmt.Sprintf("**Path:** %s\n\n", strings.Join(row.Path, pathSeparator)))
	content.WriteString(fmt.Sprintf("**Depth:** %d\n\n", row.Depth))
	if row.Children == 0 {
		content.WriteString("**Children:** none (leaf)\n")
	} else {
		content.WriteString(fmt.Sprintf("**Children:** %d\n", row.Children))
	}
	return content.String()
}

func listRows(title string, rows []hierarchy.Row) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("## %s\n\n", title))
	if len(rows) == 0 {
		content.WriteString("No matches.\n")
		return content.String()
	}
	for _, row := range rows {
		content.WriteString(fmt.Sprintf("- **%s** (%s)\n", row.Key, strings.Join(row.Path, pathSeparator)))
	}
	return content.String()
}

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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **Arbor %s**

Explore hierarchies from the terminal: organization charts, folders, server networks,
product catalogs, web pages, family trees, decision trees and expressions.

Built with Go %s

# 1. Features
* Print any sample tree with %[3]sarbor tree <dataset>%[3]s
* Look up keys exactly, by substring or by regular expression
* Show the depth of a node and its path from the root
* Find the nearest servers to a point with %[3]sarbor cdn nearest%[3]s
* List ancestors of a given generation and siblings with %[3]sarbor family%[3]s
* Browse a tree interactively with %[3]sarbor browse%[3]s
* Answer a troubleshooting guide with %[3]sarbor diagnose%[3]s

# 2. Datasets
* org, fs, cdn, catalog, dom, diagnosis, expr

# 3. Browser queries
* find <key>: details of a node
* depth <key>: levels below the root
* path <key>: keys from the root down to the node
* match <text>: keys containing the text, ignoring case
* pattern <regexp>: keys matching a regular expression

# Settings
Run %[3]sarbor settings%[3]s to create and show ~/.arbor.yaml

# Please be aware
* Copy to clipboard feature on Linux or Unix requires 'xclip' or 'xsel' command to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version(), "`")
	result := markdown.Render(string(message), 80, 3)
	return string(result)
}

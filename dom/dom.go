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

// Package dom builds element trees from HTML and searches them by tag.
package dom

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

// PathSeparator joins tag names in a match path.
const PathSeparator = " / "

var (
	errEmptyTag   = fault.InvalidError("tag must not be empty")
	errBadTag     = fault.InvalidError("tag may only contain letters and digits")
	errNoElements = fault.InvalidError("document has no elements")
)

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Element is the payload of a DOM node.
type Element struct {
	Tag   string
	Attrs []Attr
	// Text is the element's own text, children excluded.
	Text string
}

// Attr returns the value of the attribute key.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// String renders the opening tag, e.g. <div class="container">.
func (e Element) String() string {
	var b strings.Builder
	b.WriteString("<" + e.Tag)
	for _, a := range e.Attrs {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	b.WriteString(">")
	return b.String()
}

// Match is a search hit with the tags from the document root down to it.
type Match struct {
	Node *hierarchy.Node[Element]
	Path string
}

// Parse reads an HTML document. Only element nodes become tree nodes; the
// parser supplies html, head and body when the input omits them.
func Parse(r io.Reader) (*hierarchy.Tree[Element], error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	top := firstElement(doc)
	if top == nil {
		return nil, errNoElements
	}

	tree := hierarchy.New[Element]()
	root, err := hierarchy.NewNode(top.Data, elementOf(top))
	if err != nil {
		return nil, err
	}
	if err := tree.SetRoot(root); err != nil {
		return nil, err
	}
	if err := build(tree, root, top); err != nil {
		return nil, err
	}
	return tree, nil
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func build(tree *hierarchy.Tree[Element], parent *hierarchy.Node[Element], n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child, err := hierarchy.NewNode(c.Data, elementOf(c))
		if err != nil {
			return err
		}
		if err := tree.Attach(parent, child); err != nil {
			return err
		}
		if err := build(tree, child, c); err != nil {
			return err
		}
	}
	return nil
}

func elementOf(n *html.Node) Element {
	e := Element{Tag: n.Data}
	for _, a := range n.Attr {
		e.Attrs = append(e.Attrs, Attr{Key: a.Key, Val: a.Val})
	}
	var text []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if s := strings.TrimSpace(c.Data); s != "" {
				text = append(text, s)
			}
		}
	}
	e.Text = strings.Join(text, " ")
	return e
}

// FindTags returns every element named tag, ignoring case, in document order.
func FindTags(tree *hierarchy.Tree[Element], tag string) ([]Match, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errEmptyTag
	}
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return nil, errors.Wrapf(errBadTag, "%q", tag)
		}
	}
	var matches []Match
	for _, n := range tree.FindAllByKeyFold(tag) {
		matches = append(matches, Match{Node: n, Path: strings.Join(n.PathToRoot(), PathSeparator)})
	}
	return matches, nil
}

// SamplePage is the document behind Sample.
const SamplePage = `<html>
  <head>
    <title>Ejemplo de Árbol HTML</title>
  </head>
  <body>
    <div class="container">
      <p id="parrafo1">Este es un párrafo dentro de un div.</p>
    </div>
    <div class="footer">
      <span>Este es un span dentro del footer.</span>
    </div>
  </body>
</html>`

// Sample returns the element tree of SamplePage, assembled by hand.
func Sample() *hierarchy.Tree[Element] {
	tree := hierarchy.New[Element]()
	add := func(parent *hierarchy.Node[Element], e Element) *hierarchy.Node[Element] {
		n, err := hierarchy.NewNode(e.Tag, e)
		if err == nil {
			if parent == nil {
				err = tree.SetRoot(n)
			} else {
				err = tree.Attach(parent, n)
			}
		}
		if err != nil {
			panic(err)
		}
		return n
	}

	root := add(nil, Element{Tag: "html"})
	head := add(root, Element{Tag: "head"})
	add(head, Element{Tag: "title", Text: "Ejemplo de Árbol HTML"})
	body := add(root, Element{Tag: "body"})
	container := add(body, Element{Tag: "div", Attrs: []Attr{{"class", "container"}}})
	add(container, Element{Tag: "p", Attrs: []Attr{{"id", "parrafo1"}}, Text: "Este es un párrafo dentro de un div."})
	footer := add(body, Element{Tag: "div", Attrs: []Attr{{"class", "footer"}}})
	add(footer, Element{Tag: "span", Text: "Este es un span dentro del footer."})
	return tree
}

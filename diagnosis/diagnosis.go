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

// Package diagnosis walks yes/no style decision trees. Inner nodes ask a
// question, each child is reached by one answer, and leaves are verdicts.
package diagnosis

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

var (
	errFinished    = fault.InvalidError("a verdict was already reached")
	errNoAnswers   = fault.InvalidError("decision tree is empty")
	errEmptyAnswer = fault.InvalidError("answer label must not be empty")
)

// Step is the payload of a decision node.
type Step struct {
	// Answer labels the edge from the parent question; empty at the root.
	Answer string
	// Text is the question, or the verdict on a leaf.
	Text string
}

// Spec describes a decision tree literally. A Spec without answers is a verdict.
type Spec struct {
	Text    string
	Answers []Answer
}

// Answer is one branch of a question.
type Answer struct {
	Label string
	Next  Spec
}

// Build turns a Spec into a tree. Answer labels must be distinct within a
// question, ignoring case.
func Build(root Spec) (*hierarchy.Tree[Step], error) {
	tree := hierarchy.New[Step]()
	node, err := hierarchy.NewNode(root.Text, Step{Text: strings.TrimSpace(root.Text)})
	if err != nil {
		return nil, err
	}
	if err := tree.SetRoot(node); err != nil {
		return nil, err
	}
	if err := grow(tree, node, root); err != nil {
		return nil, err
	}
	return tree, nil
}

func grow(tree *hierarchy.Tree[Step], parent *hierarchy.Node[Step], spec Spec) error {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(spec.Answers))
	for _, a := range spec.Answers {
		label := strings.TrimSpace(a.Label)
		if label == "" {
			return errors.Wrapf(errEmptyAnswer, "question %q", spec.Text)
		}
		if _, dup := seen[fold.String(label)]; dup {
			return errors.Wrapf(fault.ErrDuplicateKey, "answer %q to %q", label, spec.Text)
		}
		seen[fold.String(label)] = struct{}{}

		child, err := hierarchy.NewNode(a.Next.Text, Step{Answer: label, Text: strings.TrimSpace(a.Next.Text)})
		if err != nil {
			return errors.Wrapf(err, "answer %q to %q", label, spec.Text)
		}
		if err := tree.Attach(parent, child); err != nil {
			return err
		}
		if err := grow(tree, child, a.Next); err != nil {
			return err
		}
	}
	return nil
}

// TrailStep is one answered question.
type TrailStep struct {
	Question string
	Answer   string
}

// Session tracks a walk from the root question to a verdict.
type Session struct {
	tree    *hierarchy.Tree[Step]
	current *hierarchy.Node[Step]
}

// NewSession starts at the root of tree.
func NewSession(tree *hierarchy.Tree[Step]) (*Session, error) {
	if tree == nil || tree.IsEmpty() {
		return nil, errNoAnswers
	}
	return &Session{tree: tree, current: tree.Root()}, nil
}

// Current is the question being asked, or the verdict once Done.
func (s *Session) Current() Step {
	return s.current.Payload
}

// Done reports whether a verdict was reached.
func (s *Session) Done() bool {
	return s.current.IsLeaf()
}

// Answers lists the labels accepted by Choose, in order.
func (s *Session) Answers() []string {
	labels := make([]string, 0, s.current.NumChildren())
	for _, c := range s.current.Children() {
		labels = append(labels, c.Payload.Answer)
	}
	return labels
}

// Choose follows the branch labelled answer, ignoring case.
func (s *Session) Choose(answer string) error {
	if s.Done() {
		return errors.Wrapf(errFinished, "%q", s.current.Payload.Text)
	}
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(answer))
	for _, c := range s.current.Children() {
		if fold.String(c.Payload.Answer) == want {
			s.current = c
			return nil
		}
	}
	return errors.Wrapf(fault.ErrKeyNotFound, "answer %q (want one of %s)", answer, strings.Join(s.Answers(), ", "))
}

// Restart goes back to the root question.
func (s *Session) Restart() {
	s.current = s.tree.Root()
}

// Trail lists the questions answered so far, first question first.
func (s *Session) Trail() []TrailStep {
	var trail []TrailStep
	for n := s.current; n.Parent() != nil; n = n.Parent() {
		trail = append([]TrailStep{{Question: n.Parent().Payload.Text, Answer: n.Payload.Answer}}, trail...)
	}
	return trail
}

func yesNo(yes, no Spec) []Answer {
	return []Answer{{Label: "Yes", Next: yes}, {Label: "No", Next: no}}
}

func verdict(text string) Spec {
	return Spec{Text: text}
}

// SampleSpec is a device troubleshooting guide.
var SampleSpec = Spec{
	Text: "Does the device power on?",
	Answers: yesNo(
		Spec{Text: "Does the screen show an image?", Answers: yesNo(
			Spec{Text: "Does the sound work?", Answers: yesNo(
				Spec{Text: "Does the device connect to the internet?", Answers: yesNo(
					verdict("The device works correctly."),
					Spec{Text: "Is WiFi enabled?", Answers: yesNo(
						Spec{Text: "Are other networks available?", Answers: yesNo(
							verdict("Check the network settings or contact the internet provider."),
							verdict("Check the router or the WiFi signal."),
						)},
						verdict("Enable WiFi in the device settings."),
					)},
				)},
				Spec{Text: "Is the volume up and not muted?", Answers: yesNo(
					verdict("Check the speakers or the sound settings."),
					verdict("Turn the volume up and unmute."),
				)},
			)},
			Spec{Text: "Is the screen lit?", Answers: yesNo(
				Spec{Text: "Is a faint or flickering image visible?", Answers: yesNo(
					verdict("Check the video connection or the graphics card."),
					verdict("Check the screen brightness or try an external monitor."),
				)},
				Spec{Text: "Is the power indicator on?", Answers: yesNo(
					verdict("Check the backlight or the screen power supply."),
					verdict("Possible hardware fault in the screen or the motherboard."),
				)},
			)},
		)},
		Spec{Text: "Is it plugged in?", Answers: yesNo(
			Spec{Text: "Does the charger show a light or indicator?", Answers: yesNo(
				verdict("Check the battery or the internal power supply."),
				Spec{Text: "Does the outlet work with other devices?", Answers: yesNo(
					verdict("Replace the charger."),
					verdict("Check the outlet or use another one."),
				)},
			)},
			verdict("Plug the device in."),
		)},
	),
}

// Sample builds SampleSpec.
func Sample() *hierarchy.Tree[Step] {
	tree, err := Build(SampleSpec)
	if err != nil {
		panic(err)
	}
	return tree
}

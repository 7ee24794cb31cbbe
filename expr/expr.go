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

// Package expr represents arithmetic expressions as trees: operators inside,
// numbers at the leaves.
package expr

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/cybrota/arbor/fault"
	"github.com/cybrota/arbor/hierarchy"
)

var (
	errUnknownOp   = fault.InvalidError("unknown operator")
	errArity       = fault.InvalidError("operator needs exactly two operands")
	errDivByZero   = fault.InvalidError("division by zero")
	errNotANumber  = fault.InvalidError("number node has operands")
	errSameOperand = fault.InvalidError("operands must be different nodes")
)

// Token is the payload of an expression node.
type Token struct {
	Op    string
	Value float64
}

func (t Token) IsNumber() bool { return t.Op == "" }

func (t Token) String() string {
	if t.IsNumber() {
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	}
	return t.Op
}

var precedence = map[string]int{"+": 1, "-": 1, "*": 2, "/": 2}

// Number creates a leaf.
func Number(v float64) *hierarchy.Node[Token] {
	tok := Token{Value: v}
	n, err := hierarchy.NewNode(tok.String(), tok)
	if err != nil {
		panic(err)
	}
	return n
}

// Binary creates an operator node over two detached operands.
func Binary(op string, left, right *hierarchy.Node[Token]) (*hierarchy.Node[Token], error) {
	if _, ok := precedence[op]; !ok {
		return nil, errors.Wrapf(errUnknownOp, "%q", op)
	}
	// operands are checked before either is linked
	for _, operand := range []*hierarchy.Node[Token]{left, right} {
		if operand == nil {
			return nil, errors.Wrapf(fault.ErrNilNode, "operand of %q", op)
		}
		if !operand.IsRoot() {
			return nil, errors.Wrapf(fault.ErrHasParent, "operand %q of %q", operand.Key(), op)
		}
	}
	if left == right {
		return nil, errors.Wrapf(errSameOperand, "%q", op)
	}
	n, err := hierarchy.NewNode(op, Token{Op: op})
	if err != nil {
		return nil, err
	}
	for _, operand := range []*hierarchy.Node[Token]{left, right} {
		if err := hierarchy.Attach(n, operand); err != nil {
			return nil, errors.Wrapf(err, "operand of %q", op)
		}
	}
	return n, nil
}

// Eval computes the value of the expression rooted at n.
func Eval(n *hierarchy.Node[Token]) (float64, error) {
	if n == nil {
		return 0, fault.ErrNilNode
	}
	tok := n.Payload
	if tok.IsNumber() {
		if !n.IsLeaf() {
			return 0, errNotANumber
		}
		return tok.Value, nil
	}
	if n.NumChildren() != 2 {
		return 0, errors.Wrapf(errArity, "%q has %d", tok.Op, n.NumChildren())
	}
	left, err := Eval(n.Child(0))
	if err != nil {
		return 0, err
	}
	right, err := Eval(n.Child(1))
	if err != nil {
		return 0, err
	}
	switch tok.Op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, errDivByZero
		}
		return left / right, nil
	}
	return 0, errors.Wrapf(errUnknownOp, "%q", tok.Op)
}

// Infix renders the expression with the parentheses its shape requires.
func Infix(n *hierarchy.Node[Token]) string {
	if n == nil {
		return ""
	}
	tok := n.Payload
	if tok.IsNumber() || n.NumChildren() != 2 {
		return tok.String()
	}
	p := precedence[tok.Op]
	left := Infix(n.Child(0))
	if lp, ok := precedence[n.Child(0).Payload.Op]; ok && lp < p {
		left = "(" + left + ")"
	}
	right := Infix(n.Child(1))
	// the right side also needs them at equal precedence: 8 - (2 - 1)
	if rp, ok := precedence[n.Child(1).Payload.Op]; ok && (rp < p || rp == p && (tok.Op == "-" || tok.Op == "/")) {
		right = "(" + right + ")"
	}
	return left + " " + tok.Op + " " + right
}

// Sample returns the tree of (3 + 4) * 2.
func Sample() *hierarchy.Tree[Token] {
	sum, err := Binary("+", Number(3), Number(4))
	if err != nil {
		panic(err)
	}
	product, err := Binary("*", sum, Number(2))
	if err != nil {
		panic(err)
	}
	tree := hierarchy.New[Token]()
	if err := tree.SetRoot(product); err != nil {
		panic(err)
	}
	return tree
}

// Package parser implements the table-driven LL(1) parser: a single pass
// that predicts rules from a parse table, matches tokens from the scanner,
// builds the parse tree, and recovers from syntax errors in panic mode.
package parser

import (
	"github.com/dekarrin/minnow/internal/grammar"
	"github.com/dekarrin/minnow/internal/lexer"
)

// Node is one node of the parse tree. Interior nodes carry a non-terminal
// symbol and one child per right-hand-side symbol of the rule chosen for
// them (or a single ε leaf). Terminal leaves carry the kind, lexeme and line
// of the token that matched them; ownership of the lexeme string passes from
// the token to the leaf on match.
type Node struct {
	Sym    grammar.Symbol
	Line   int
	Lexeme string

	Parent   *Node
	Children []*Node
}

// IsLeaf returns whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Equal returns whether two trees have the same shape and symbols. Lines and
// lexemes are compared only on terminal leaves, where they are meaningful.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Sym != o.Sym {
		return false
	}
	if n.Sym.IsTerminal && (n.Line != o.Line || n.Lexeme != o.Lexeme) {
		return false
	}

	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Leaves returns the terminal leaves of the tree in source order, excluding
// ε leaves.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.walkLeaves(&out)
	return out
}

func (n *Node) walkLeaves(out *[]*Node) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		if n.Sym.IsTerminal && n.Sym.Tok != lexer.Epsilon {
			*out = append(*out, n)
		}
		return
	}
	for _, c := range n.Children {
		c.walkLeaves(out)
	}
}

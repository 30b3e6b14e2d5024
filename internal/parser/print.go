package parser

import (
	"fmt"
	"io"

	"github.com/dekarrin/minnow/internal/lexer"
)

const printColWidth = 30

// PrintTree writes the parse tree to w as a fixed-width table, one row per
// node, in in-order traversal (first child, the node itself, remaining
// children). The header row is written exactly once, at the top.
//
// Columns: lexeme, line number, token or non-terminal name, numeric value
// (TK_NUM/TK_RNUM leaves only), parent symbol, leaf flag, node symbol.
// Absent values print as "----"; the root has no parent, so its last three
// columns are "----".
func PrintTree(root *Node, w io.Writer) {
	fmt.Fprintf(w, "%-*s%-*s%-*s%-*s%-*s%-*s%-*s\n\n",
		printColWidth, "lexeme",
		printColWidth, "lineno",
		printColWidth, "token",
		printColWidth, "valueIfNumber",
		printColWidth, "parentNodeSymbol",
		printColWidth, "isLeafNode(yes/no)",
		printColWidth, "NodeSymbol")

	printNode(root, w)
}

func printNode(n *Node, w io.Writer) {
	if n == nil {
		return
	}

	if len(n.Children) > 0 {
		printNode(n.Children[0], w)
	}

	lexeme := "----"
	if n.Lexeme != "" {
		lexeme = n.Lexeme
	}
	fmt.Fprintf(w, "%-*s", printColWidth, lexeme)

	fmt.Fprintf(w, "%-*d", printColWidth, n.Line)

	fmt.Fprintf(w, "%-*s", printColWidth, n.Sym.Name())

	value := "----"
	if n.Sym.IsTerminal && (n.Sym.Tok == lexer.TkNum || n.Sym.Tok == lexer.TkRNum) {
		value = n.Lexeme
	}
	fmt.Fprintf(w, "%-*s", printColWidth, value)

	if n.Parent != nil {
		fmt.Fprintf(w, "%-*s", printColWidth, n.Parent.Sym.Name())

		leaf := "NO"
		if n.IsLeaf() {
			leaf = "YES"
		}
		fmt.Fprintf(w, "%-*s", printColWidth, leaf)

		fmt.Fprintf(w, "%-*s\n", printColWidth, n.Sym.Name())
	} else {
		fmt.Fprintf(w, "%-*s%-*s%-*s\n",
			printColWidth, "----", printColWidth, "----", printColWidth, "----")
	}

	for c := 1; c < len(n.Children); c++ {
		printNode(n.Children[c], w)
	}
}

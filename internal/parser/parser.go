package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/minnow/internal/grammar"
	"github.com/dekarrin/minnow/internal/lexer"
	"github.com/dekarrin/minnow/internal/util"
)

// TokenSource is the stream the driver consumes: a lazy, finite sequence of
// tokens terminated by DOLLAR. The lexer's Scanner satisfies it.
type TokenSource interface {
	// NextToken returns the next meaningful token. Once the input is
	// exhausted it returns a DOLLAR token, and every later call returns
	// DOLLAR again.
	NextToken() *lexer.Token
}

// Parser runs LL(1) predictive parses against a fixed grammar and parse
// table. It is immutable after creation and safe to reuse across parses.
type Parser struct {
	g  *grammar.Grammar
	ff *grammar.FirstFollow
	pt *grammar.ParseTable
}

// New creates a Parser over g with its precomputed first/follow sets and
// parse table.
func New(g *grammar.Grammar, ff *grammar.FirstFollow, pt *grammar.ParseTable) *Parser {
	return &Parser{g: g, ff: ff, pt: pt}
}

// entry pairs a stack symbol with the tree node it will fill or expand. The
// two travel together so the symbol stack and node stack can never fall out
// of step.
type entry struct {
	sym  grammar.Symbol
	node *Node
}

// Parse consumes toks and builds the parse tree. Diagnostics are written to
// diag (os.Stdout when nil) in source order, at most one syntax error per
// source line, followed by a final COMPILATION SUCCESS!/COMPILATION FAILED
// summary. The root node is returned even when the parse fails; the boolean
// reports acceptance.
//
// Recovery is panic-mode with per-kind actions: a mismatched terminal is
// popped with the lookahead kept, an error cell discards the lookahead and
// keeps the non-terminal, and a sync cell abandons the non-terminal with the
// lookahead kept. Suppressed same-line errors still perform their recovery.
func (p *Parser) Parse(toks TokenSource, diag io.Writer) (*Node, bool) {
	if diag == nil {
		diag = os.Stdout
	}

	root := &Node{Sym: grammar.NonTerm(p.g.Start()), Line: -1}

	stack := util.Stack[entry]{Of: []entry{
		{sym: grammar.Term(lexer.Dollar)},
		{sym: grammar.NonTerm(p.g.Start()), node: root},
	}}

	hadError := false
	lastErrLine := -1

	look := toks.NextToken()

	// The loop ends by matching DOLLAR against DOLLAR, by emptying the
	// stack during recovery, or by hitting an error cell on the DOLLAR
	// lookahead: once DOLLAR arrives no other token ever will, so
	// discarding it cannot make progress. Everything else either consumes
	// input or shrinks the stack.
parsing:
	for stack.Len() > 0 {
		top := stack.Peek()

		if top.sym.IsTerminal {
			if top.sym.Tok == lexer.Dollar && look.Kind == lexer.Dollar {
				// successful parse
				break
			}

			if top.sym.Tok == look.Kind {
				// match: the token's lexeme moves into the leaf
				top.node.Line = look.Line
				top.node.Lexeme = look.Lexeme
				stack.Pop()
				look = toks.NextToken()
			} else {
				hadError = true
				if lastErrLine != look.Line {
					lastErrLine = look.Line
					fmt.Fprintf(diag,
						"Line %02d: Syntax Error : Token %s (lexeme %q) does not match expected token %s\n",
						look.Line, look.Kind, look.Lexeme, top.sym.Tok)
				}
				// drop the expected symbol, keep the lookahead
				stack.Pop()
			}
			continue
		}

		nt := top.sym.NT
		cell := p.pt.Get(nt, look.Kind)

		switch {
		case cell == grammar.CellError:
			hadError = true
			if lastErrLine != look.Line {
				lastErrLine = look.Line
				fmt.Fprintf(diag,
					"Line %02d: Syntax Error : Unexpected token %s (lexeme %q) while expanding %s\n",
					look.Line, look.Kind, look.Lexeme, nt)
			}
			if look.Kind == lexer.Dollar {
				break parsing
			}

			// discard the lookahead, keep the non-terminal
			look = toks.NextToken()

		case cell == grammar.CellSync:
			hadError = true
			if lastErrLine != look.Line {
				lastErrLine = look.Line
				fmt.Fprintf(diag,
					"Line %02d: Syntax Error : Unexpected token %s (lexeme %q) while expanding %s; abandoning it\n",
					look.Line, look.Kind, look.Lexeme, nt)
			}
			// abandon the non-terminal, keep the lookahead
			stack.Pop()

		default:
			stack.Pop()

			if p.g.HasEpsilon(nt) && cell == p.g.EpsilonRule(nt) {
				eps := &Node{
					Sym:    grammar.Term(lexer.Epsilon),
					Line:   -1,
					Parent: top.node,
				}
				top.node.Children = []*Node{eps}
				continue
			}

			rule := p.g.Rules(nt)[cell]
			children := make([]*Node, len(rule))
			for i, sym := range rule {
				children[i] = &Node{Sym: sym, Line: -1, Parent: top.node}
			}
			top.node.Children = children

			// push in reverse so the leftmost child is handled next
			for i := len(rule) - 1; i >= 0; i-- {
				stack.Push(entry{sym: rule[i], node: children[i]})
			}
		}
	}

	if stack.Len() == 0 {
		hadError = true
		fmt.Fprintln(diag, "Syntax Error : Symbol stack empty but input not fully consumed")
	} else if !(stack.Len() == 1 && stack.Peek().sym.IsTerminal && stack.Peek().sym.Tok == lexer.Dollar) {
		hadError = true
		fmt.Fprintln(diag, "Syntax Error : Input consumed but symbol stack is not empty")
	}

	if hadError {
		fmt.Fprintln(diag, "COMPILATION FAILED")
	} else {
		fmt.Fprintln(diag, "COMPILATION SUCCESS!")
	}

	return root, !hadError
}

// Package minnow provides the front end of the Minnow compiler: scanning
// source files into tokens and parsing them into parse trees with localized
// error reporting and recovery.
//
// The grammar, its FIRST/FOLLOW sets, and the LL(1) parse table are built
// once when a FrontEnd is created and are immutable afterwards, so one
// FrontEnd can be reused for any number of scans and parses.
package minnow

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dekarrin/minnow/internal/grammar"
	"github.com/dekarrin/minnow/internal/lexer"
	"github.com/dekarrin/minnow/internal/parser"
)

// FrontEnd bundles the parsing infrastructure for one grammar. Create one
// with New or NewFromGrammarFile.
type FrontEnd struct {
	g  *grammar.Grammar
	ff *grammar.FirstFollow
	pt *grammar.ParseTable
	p  *parser.Parser

	// Diag is where scanning and parsing diagnostics are written. If nil,
	// they go to os.Stdout.
	Diag io.Writer
}

// New creates a FrontEnd over the embedded language grammar.
func New() *FrontEnd {
	return NewWithGrammar(grammar.Default())
}

// NewFromGrammarFile creates a FrontEnd over a grammar loaded from the TOML
// file at path.
func NewFromGrammarFile(path string) (*FrontEnd, error) {
	g, err := grammar.LoadTOMLFile(path)
	if err != nil {
		return nil, err
	}
	return NewWithGrammar(g), nil
}

// NewWithGrammar creates a FrontEnd over g, computing its FIRST/FOLLOW sets
// and parse table.
func NewWithGrammar(g *grammar.Grammar) *FrontEnd {
	ff := grammar.ComputeFirstFollow(g)
	pt := grammar.BuildParseTable(g, ff)

	return &FrontEnd{
		g:  g,
		ff: ff,
		pt: pt,
		p:  parser.New(g, ff, pt),
	}
}

func (fe *FrontEnd) diag() io.Writer {
	if fe.Diag == nil {
		return os.Stdout
	}
	return fe.Diag
}

// CleanSource writes the source file at sourcePath to w with every comment
// replaced by a blank line, preserving the line count.
func (fe *FrontEnd) CleanSource(sourcePath string, w io.Writer) error {
	f, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	return lexer.CleanSource(f, w)
}

// TokenListing scans the source file at sourcePath and writes one line per
// token to w, including comment tokens. Lexical errors are reported inline.
func (fe *FrontEnd) TokenListing(sourcePath string, w io.Writer) error {
	f, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	sc := lexer.NewScanner(f, w)
	sc.TokenListing(w)
	return nil
}

// Parse parses the source file at sourcePath. Diagnostics, including the
// final success or failure summary, are written to the FrontEnd's Diag
// writer. The parse tree root is returned even when the parse fails; ok
// reports acceptance.
func (fe *FrontEnd) Parse(sourcePath string) (root *parser.Node, ok bool, err error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, false, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	sc := lexer.NewScanner(f, fe.diag())
	root, ok = fe.p.Parse(sc, fe.diag())
	return root, ok, nil
}

// ParseTimed is Parse plus a wall-clock measurement of the scan and parse.
func (fe *FrontEnd) ParseTimed(sourcePath string) (root *parser.Node, ok bool, elapsed time.Duration, err error) {
	start := time.Now()
	root, ok, err = fe.Parse(sourcePath)
	elapsed = time.Since(start)
	return root, ok, elapsed, err
}

// WriteParseTree writes the fixed-width parse-tree table for root to w.
func (fe *FrontEnd) WriteParseTree(root *parser.Node, w io.Writer) {
	parser.PrintTree(root, w)
}

// TableString renders the LL(1) parse table for inspection.
func (fe *FrontEnd) TableString() string {
	return fe.pt.String()
}

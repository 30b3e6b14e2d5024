// Package lexer implements the scanning half of the front end: a twin-buffer
// input window, a hand-built DFA over the language's token alphabet, and a
// token-stream driver that hides whitespace, comments, buffer refills and
// lexical-error recovery from the parser.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/minnow/internal/trie"
)

// maxIDLen and maxFunIDLen are the lexeme length limits for variable and
// function identifiers. Violations are reported and the token dropped; they
// are not fatal.
const (
	maxIDLen    = 20
	maxFunIDLen = 30
)

// kwTable maps every reserved word to its token kind. It is built once at
// package load and is read-only afterwards, so it is safe to share across
// scanners.
var kwTable = buildKeywordTable()

func buildKeywordTable() *trie.Trie[TokenKind] {
	t := trie.New(TkFieldID)
	for w, kind := range keywords {
		t.Insert(w, kind)
	}
	return t
}

// Scanner turns a source stream into tokens. It owns its twin buffer for the
// lifetime of a scan and writes lexical diagnostics to diag as they are
// discovered, in source order.
type Scanner struct {
	tb   *twinBuffer
	diag io.Writer
}

// NewScanner creates a Scanner over src. Lexical diagnostics are written to
// diag; a nil diag means os.Stdout.
func NewScanner(src io.Reader, diag io.Writer) *Scanner {
	if diag == nil {
		diag = os.Stdout
	}
	return &Scanner{
		tb:   newTwinBuffer(src),
		diag: diag,
	}
}

// HasMore returns whether the read head is on a byte of input rather than
// the end-of-input sentinel. This is raw buffer state: scanning the final
// token of the source can leave the head on the sentinel even though that
// token was returned normally, so end of stream should be detected from the
// DOLLAR token NextToken yields, not from this. Once HasMore returns false,
// NextToken returns only DOLLAR tokens.
func (sc *Scanner) HasMore() bool {
	return !sc.tb.exhausted()
}

// Line returns the 1-indexed line number under the read head.
func (sc *Scanner) Line() int {
	return sc.tb.line
}

// NextToken returns the next token meaningful to the parser. Whitespace,
// newlines and comments are consumed silently; tokens that violate the
// identifier length limits are reported and dropped; invalid patterns are
// reported and skipped. When the input is exhausted a DOLLAR token is
// returned, and every subsequent call returns DOLLAR again.
func (sc *Scanner) NextToken() *Token {
	for {
		if sc.tb.exhausted() {
			return &Token{Kind: Dollar, Line: sc.tb.line}
		}

		tok := sc.scanOne()
		if tok == nil {
			continue
		}

		if tok.Kind == TkComment {
			// the comment skip consumed the trailing newline
			sc.tb.line++
			continue
		}

		if tok.Kind == NullToken || tok.Kind == Newline ||
			tok.Kind == ExitToken || tok.Kind == Blank {
			continue
		}

		if !sc.checkLength(tok) {
			continue
		}

		return tok
	}
}

// scanOne runs the DFA once from the current buffer position. It returns nil
// when the characters consumed produced nothing the caller should see
// (whitespace, a skipped invalid pattern); comments come back as a TK_COMMENT
// token whose lexeme is just "%".
func (sc *Scanner) scanOne() *Token {
	tb := sc.tb

	if tb.cur() == '%' {
		line := tb.line
		sc.skipComment()
		return &Token{Kind: TkComment, Lexeme: "%", Line: line}
	}

	head := tb.pos
	tail := tb.pos

	res := transition(stateStart, tb.at(head))
	for !res.emit && res.next != stateInvalid {
		tail = next(tail)
		res = transition(res.next, tb.at(tail))
	}

	if res.next == stateInvalid {
		sc.reportInvalid(res, head, tail)
		return nil
	}

	if res.kind == Blank {
		tb.setPos(next(tail))
		return nil
	}
	if res.kind == Newline {
		tb.setPos(next(tail))
		tb.line++
		return nil
	}

	// give back retracted characters, then copy the lexeme out of the
	// circular window
	lexEnd := (tail - res.retract + 2*chunkSize) % (2 * chunkSize)

	var word []byte
	for rd := head; ; rd = next(rd) {
		word = append(word, tb.at(rd))
		if rd == lexEnd {
			break
		}
	}

	tb.setPos(next(lexEnd))

	tok := &Token{
		Kind:   res.kind,
		Lexeme: string(word),
		Line:   tb.line,
	}

	switch res.kind {
	case TkFieldID:
		// keyword lexemes arrive as TK_FIELDID; the trie decides
		tok.Kind = kwTable.Lookup(tok.Lexeme)
	case TkFunID:
		if tok.Lexeme == "_main" {
			tok.Kind = TkMain
		}
	}

	return tok
}

// skipComment advances the read head past a '%' comment: everything up to
// and including the next newline, or up to end of input.
func (sc *Scanner) skipComment() {
	tb := sc.tb
	for tb.cur() != '\n' && tb.cur() != 0 {
		tb.setPos(next(tb.pos))
	}
	tb.setPos(next(tb.pos))
}

// checkLength enforces the identifier length limits. A violating token is
// reported and dropped; the scan continues normally after it.
func (sc *Scanner) checkLength(tok *Token) bool {
	if tok.Kind == TkID && len(tok.Lexeme) > maxIDLen {
		fmt.Fprintf(sc.diag,
			"Line %02d: Lexical Error: Variable identifier %q exceeds the maximum length of %d characters\n",
			tok.Line, tok.Lexeme, maxIDLen)
		return false
	}
	if tok.Kind == TkFunID && len(tok.Lexeme) > maxFunIDLen {
		fmt.Fprintf(sc.diag,
			"Line %02d: Lexical Error: Function identifier %q exceeds the maximum length of %d characters\n",
			tok.Line, tok.Lexeme, maxFunIDLen)
		return false
	}
	return true
}

// reportInvalid prints a diagnostic for a DFA sink entry and advances the
// read head past the offending span. Single stray characters are consumed
// whole; an incomplete multi-character pattern is consumed up to (but not
// including) the byte that broke it, which is then rescanned.
func (sc *Scanner) reportInvalid(res transResult, head, tail int) {
	tb := sc.tb

	if head == tail {
		fmt.Fprintf(sc.diag, "Line %02d: Lexical Error: Unknown symbol <%c>\n",
			tb.line, tb.at(head))
		tb.setPos(next(tail))
		return
	}

	fmt.Fprintf(sc.diag, "Line %02d: Lexical Error: Unknown pattern <", tb.line)
	for idx := head; idx != tail; idx = next(idx) {
		fmt.Fprintf(sc.diag, "%c", tb.at(idx))
	}
	fmt.Fprint(sc.diag, ">")
	tb.setPos(tail)

	switch res.errCode {
	case 1:
		fmt.Fprintln(sc.diag, " : Expected @@@")
	case 2:
		fmt.Fprintln(sc.diag, " : Expected !=")
	case 3:
		fmt.Fprintln(sc.diag, " : Expected &&&")
	case 4:
		fmt.Fprintln(sc.diag, " : Expected ==")
	case 5:
		fmt.Fprintln(sc.diag, " : Expected <---")
	case 6:
		fmt.Fprintln(sc.diag, " : Expected a letter [a-z]|[A-Z] after _")
	case 7:
		fmt.Fprintln(sc.diag, " : Expected a lowercase letter [a-z] after #")
	case 8:
		fmt.Fprintln(sc.diag, " : Expected two digits after decimal point")
	case 9:
		fmt.Fprintln(sc.diag, " : Expected a digit [0-9] or +|- after E")
	case 10:
		fmt.Fprintln(sc.diag, " : Expected a digit [0-9] after exponent sign")
	case 11:
		fmt.Fprintln(sc.diag, " : Expected two digits in exponent")
	default:
		fmt.Fprintln(sc.diag)
	}
}

// TokenListing scans the rest of the input and writes one line per token to
// w. Unlike NextToken this is the inspection path: comment tokens are listed
// too. Lexical diagnostics still go to the scanner's diag writer.
func (sc *Scanner) TokenListing(w io.Writer) {
	for !sc.tb.exhausted() {
		tok := sc.scanOne()
		if tok == nil {
			continue
		}

		if tok.Kind == TkComment {
			sc.tb.line++
		}

		if tok.Kind == NullToken || tok.Kind == Newline ||
			tok.Kind == ExitToken || tok.Kind == Blank {
			continue
		}
		if !sc.checkLength(tok) {
			continue
		}

		fmt.Fprintf(w, "Line no. %d  Lexeme %-20s  Token %s\n",
			tok.Line, tok.Lexeme, tok.Kind)
	}
}

// CleanSource copies src to w with each comment ('%' through end of line)
// replaced by a bare newline, so line numbers in the cleaned view match the
// original. Text before a mid-line comment is preserved.
func CleanSource(src io.Reader, w io.Writer) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(w)

	for {
		c, err := br.ReadByte()
		if err != nil {
			break
		}

		if c == '%' {
			for {
				c, err = br.ReadByte()
				if err != nil || c == '\n' {
					break
				}
			}
			bw.WriteByte('\n')
			if err != nil {
				break
			}
			continue
		}

		bw.WriteByte(c)
	}

	return bw.Flush()
}

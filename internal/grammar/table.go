package grammar

import (
	"strconv"

	"github.com/dekarrin/minnow/internal/lexer"
	"github.com/dekarrin/rosed"
)

// Parse-table cell values below zero are not rule indices but directives to
// the driver.
const (
	// CellError marks a (non-terminal, token) pair with no applicable rule;
	// the driver discards the lookahead token.
	CellError = -1

	// CellSync marks a token in FOLLOW of a non-terminal that has no ε-rule;
	// the driver abandons the non-terminal and retries with the same
	// lookahead.
	CellSync = -2
)

// ParseTable is the LL(1) prediction table: one row per non-terminal, one
// column per token kind. Cells hold a rule index (≥ 0), CellError, or
// CellSync.
type ParseTable struct {
	Cell [NumNonTerminals][lexer.NumTokenKinds]int
}

// BuildParseTable fills the table from precomputed FIRST/FOLLOW sets. Every
// cell defaults to CellError; FIRST entries place the contributing rule
// index; FOLLOW entries place the ε-rule index when the non-terminal has
// one, or CellSync (without clobbering FIRST entries) when it does not.
func BuildParseTable(g *Grammar, ff *FirstFollow) *ParseTable {
	pt := &ParseTable{}

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for tk := lexer.TokenKind(0); tk < lexer.NumTokenKinds; tk++ {
			pt.Cell[nt][tk] = CellError
		}
	}

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for k, t := range ff.First[nt] {
			pt.Cell[nt][t] = ff.RuleNo[nt][k]
		}

		if ff.FollowRule[nt] != -1 {
			for _, t := range ff.Follow[nt] {
				pt.Cell[nt][t] = ff.FollowRule[nt]
			}
		} else {
			for _, t := range ff.Follow[nt] {
				if pt.Cell[nt][t] == CellError {
					pt.Cell[nt][t] = CellSync
				}
			}
		}
	}

	return pt
}

// Get returns the cell for expanding nt on lookahead tk.
func (pt *ParseTable) Get(nt NonTerminal, tk lexer.TokenKind) int {
	return pt.Cell[nt][tk]
}

// String renders the table for debugging: one row per non-terminal, one
// column per token kind that has at least one non-error cell (a rule or a
// sync cell) anywhere, with "." for error cells and "s" for sync cells.
func (pt *ParseTable) String() string {
	// only columns that are interesting somewhere
	var cols []lexer.TokenKind
	for tk := lexer.TokenKind(0); tk < lexer.NumTokenKinds; tk++ {
		for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
			if pt.Cell[nt][tk] != CellError {
				cols = append(cols, tk)
				break
			}
		}
	}

	data := [][]string{}

	topRow := []string{""}
	for _, tk := range cols {
		topRow = append(topRow, tk.String())
	}
	data = append(data, topRow)

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		dataRow := []string{nt.String()}
		for _, tk := range cols {
			switch c := pt.Cell[nt][tk]; c {
			case CellError:
				dataRow = append(dataRow, ".")
			case CellSync:
				dataRow = append(dataRow, "s")
			default:
				dataRow = append(dataRow, strconv.Itoa(c))
			}
		}
		data = append(data, dataRow)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 120, rosed.Options{
			TableBorders: true,
		}).
		String()
}

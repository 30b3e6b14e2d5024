package grammar

import (
	"testing"

	"github.com/dekarrin/minnow/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func buildDefaultTable() (*Grammar, *FirstFollow, *ParseTable) {
	g := Default()
	ff := ComputeFirstFollow(g)
	pt := BuildParseTable(g, ff)
	return g, ff, pt
}

func Test_BuildParseTable_cells(t *testing.T) {
	g, _, pt := buildDefaultTable()

	testCases := []struct {
		name   string
		nt     NonTerminal
		tk     lexer.TokenKind
		expect int
	}{
		{
			name:   "program on TK_MAIN predicts its only rule",
			nt:     NtProgram,
			tk:     lexer.TkMain,
			expect: 0,
		},
		{
			name:   "program on TK_FUNID predicts its only rule",
			nt:     NtProgram,
			tk:     lexer.TkFunID,
			expect: 0,
		},
		{
			name:   "otherFunctions on TK_MAIN vanishes",
			nt:     NtOtherFunctions,
			tk:     lexer.TkMain,
			expect: g.EpsilonRule(NtOtherFunctions),
		},
		{
			name:   "ioStmt on TK_WRITE predicts the write rule",
			nt:     NtIOStmt,
			tk:     lexer.TkWrite,
			expect: 1,
		},
		{
			name:   "stmt on TK_SEM has no rule",
			nt:     NtStmt,
			tk:     lexer.TkSem,
			expect: CellError,
		},
		{
			name:   "stmt on TK_RETURN is a sync point",
			nt:     NtStmt,
			tk:     lexer.TkReturn,
			expect: CellSync,
		},
		{
			name:   "optionSingleConstructed on TK_ASSIGNOP vanishes",
			nt:     NtOptionSingleConstructed,
			tk:     lexer.TkAssignOp,
			expect: g.EpsilonRule(NtOptionSingleConstructed),
		},
		{
			name:   "relationalOp on TK_NE predicts its sixth rule",
			nt:     NtRelationalOp,
			tk:     lexer.TkNE,
			expect: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, pt.Get(tc.nt, tc.tk))
		})
	}
}

func Test_BuildParseTable_coverage(t *testing.T) {
	assert := assert.New(t)

	_, ff, pt := buildDefaultTable()

	// every (NT, t) with t in FIRST(NT) or FOLLOW(NT) has a non-error cell
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for _, tk := range ff.First[nt] {
			assert.NotEqual(CellError, pt.Get(nt, tk), "cell[%s][%s]", nt, tk)
		}
		for _, tk := range ff.Follow[nt] {
			assert.NotEqual(CellError, pt.Get(nt, tk), "cell[%s][%s]", nt, tk)
		}
	}
}

func Test_BuildParseTable_syncDiscipline(t *testing.T) {
	assert := assert.New(t)

	g, ff, pt := buildDefaultTable()

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for tk := lexer.TokenKind(0); tk < lexer.NumTokenKinds; tk++ {
			if pt.Get(nt, tk) != CellSync {
				continue
			}

			assert.True(ff.FollowHas(nt, tk), "sync cell[%s][%s] not in FOLLOW", nt, tk)
			assert.False(g.HasEpsilon(nt), "sync cell for nullable %s", nt)
		}
	}
}

func Test_BuildParseTable_ruleIndicesInRange(t *testing.T) {
	assert := assert.New(t)

	g, _, pt := buildDefaultTable()

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		maxRule := len(g.Rules(nt))
		if !g.HasEpsilon(nt) {
			maxRule--
		}
		for tk := lexer.TokenKind(0); tk < lexer.NumTokenKinds; tk++ {
			cell := pt.Get(nt, tk)
			if cell >= 0 {
				assert.LessOrEqual(cell, maxRule, "cell[%s][%s]", nt, tk)
			}
		}
	}
}

func Test_ParseTable_String(t *testing.T) {
	assert := assert.New(t)

	_, _, pt := buildDefaultTable()

	rendered := pt.String()
	assert.Contains(rendered, "program")
	assert.Contains(rendered, "TK_MAIN")
}

package grammar

import (
	"testing"

	"github.com/dekarrin/minnow/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func Test_ComputeFirstFollow_firstSets(t *testing.T) {
	g := Default()
	ff := ComputeFirstFollow(g)

	testCases := []struct {
		nt     NonTerminal
		expect []lexer.TokenKind
		eps    bool
	}{
		{nt: NtProgram, expect: []lexer.TokenKind{lexer.TkFunID, lexer.TkMain}},
		{nt: NtMainFunction, expect: []lexer.TokenKind{lexer.TkMain}},
		{nt: NtOtherFunctions, expect: []lexer.TokenKind{lexer.TkFunID}, eps: true},
		{nt: NtPrimitiveDataType, expect: []lexer.TokenKind{lexer.TkInt, lexer.TkReal}},
		{nt: NtConstructedDataType, expect: []lexer.TokenKind{lexer.TkRecord, lexer.TkUnion, lexer.TkRUID}},
		{nt: NtDataType, expect: []lexer.TokenKind{lexer.TkInt, lexer.TkReal, lexer.TkRecord, lexer.TkUnion, lexer.TkRUID}},
		{nt: NtStmt, expect: []lexer.TokenKind{
			lexer.TkID, lexer.TkWhile, lexer.TkIf, lexer.TkRead, lexer.TkWrite,
			lexer.TkSQL, lexer.TkCall,
		}},
		{nt: NtTypeDefinitions, expect: []lexer.TokenKind{
			lexer.TkRecord, lexer.TkUnion, lexer.TkDefinetype,
		}, eps: true},
		{nt: NtRelationalOp, expect: []lexer.TokenKind{
			lexer.TkLT, lexer.TkLE, lexer.TkEQ, lexer.TkGT, lexer.TkGE, lexer.TkNE,
		}},
		{nt: NtExpPrime, expect: []lexer.TokenKind{lexer.TkPlus, lexer.TkMinus}, eps: true},
		{nt: NtVar, expect: []lexer.TokenKind{lexer.TkID, lexer.TkNum, lexer.TkRNum}},
	}

	for _, tc := range testCases {
		t.Run(tc.nt.String(), func(t *testing.T) {
			assert := assert.New(t)

			assert.ElementsMatch(tc.expect, ff.First[tc.nt])
			assert.Equal(tc.eps, ff.FirstHasEpsilon[tc.nt])
		})
	}
}

func Test_ComputeFirstFollow_followSets(t *testing.T) {
	g := Default()
	ff := ComputeFirstFollow(g)

	testCases := []struct {
		nt     NonTerminal
		expect []lexer.TokenKind
	}{
		{nt: NtProgram, expect: []lexer.TokenKind{lexer.Dollar}},
		{nt: NtMainFunction, expect: []lexer.TokenKind{lexer.Dollar}},
		{nt: NtOtherFunctions, expect: []lexer.TokenKind{lexer.TkMain}},
		{nt: NtStmts, expect: []lexer.TokenKind{lexer.TkEnd}},
		{nt: NtOtherStmts, expect: []lexer.TokenKind{
			lexer.TkReturn, lexer.TkEndWhile, lexer.TkElse, lexer.TkEndIf,
		}},
		{nt: NtExpPrime, expect: []lexer.TokenKind{lexer.TkSem, lexer.TkCL}},
		{nt: NtArithmeticExpression, expect: []lexer.TokenKind{lexer.TkSem, lexer.TkCL}},
		{nt: NtGlobalOrNot, expect: []lexer.TokenKind{lexer.TkSem}},
		{nt: NtRemainingList, expect: []lexer.TokenKind{lexer.TkSQR}},
		{nt: NtMoreIDs, expect: []lexer.TokenKind{lexer.TkSQR}},
	}

	for _, tc := range testCases {
		t.Run(tc.nt.String(), func(t *testing.T) {
			assert := assert.New(t)

			assert.ElementsMatch(tc.expect, ff.Follow[tc.nt])
		})
	}
}

func Test_ComputeFirstFollow_followNeverHasEpsilon(t *testing.T) {
	assert := assert.New(t)

	g := Default()
	ff := ComputeFirstFollow(g)

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		assert.NotContains(ff.Follow[nt], lexer.Epsilon, "FOLLOW(%s)", nt)
		assert.NotEmpty(ff.Follow[nt], "FOLLOW(%s) must not be empty", nt)
	}
}

func Test_ComputeFirstFollow_ruleNumbers(t *testing.T) {
	assert := assert.New(t)

	g := Default()
	ff := ComputeFirstFollow(g)

	// bookkeeping slices stay parallel
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		assert.Equal(len(ff.First[nt]), len(ff.RuleNo[nt]), "RuleNo of %s", nt)
	}

	// every recorded rule index refers to a real regular rule of its
	// non-terminal
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for k := range ff.First[nt] {
			ri := ff.RuleNo[nt][k]
			assert.GreaterOrEqual(ri, 0)
			assert.Less(ri, len(g.Rules(nt)), "rule index of %s", nt)
		}
	}

	// spot check: ioStmt's read and write alternatives
	for k, tk := range ff.First[NtIOStmt] {
		switch tk {
		case lexer.TkRead:
			assert.Equal(0, ff.RuleNo[NtIOStmt][k])
		case lexer.TkWrite:
			assert.Equal(1, ff.RuleNo[NtIOStmt][k])
		}
	}
}

func Test_ComputeFirstFollow_followRule(t *testing.T) {
	assert := assert.New(t)

	g := Default()
	ff := ComputeFirstFollow(g)

	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		if g.HasEpsilon(nt) {
			assert.Equal(g.EpsilonRule(nt), ff.FollowRule[nt], "FollowRule of %s", nt)
		} else {
			assert.Equal(-1, ff.FollowRule[nt], "FollowRule of %s", nt)
		}
	}
}

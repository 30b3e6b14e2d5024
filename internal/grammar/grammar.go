// Package grammar holds the context-free grammar of the language as data,
// computes FIRST and FOLLOW sets over it, and builds the LL(1) parse table
// the parser is driven by. The grammar itself is embedded as text (see
// lang.go) and may be swapped for one loaded from a TOML file; the algorithms
// here treat it as opaque.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/minnow/internal/lexer"
)

// MaxRHSLen is the maximum number of symbols on the right-hand side of any
// single production. It also bounds the arity of every parse-tree node.
const MaxRHSLen = 15

// NonTerminal identifies one of the grammar's non-terminal symbols. The
// declaration order is load-bearing: values index parse-table rows.
type NonTerminal int

const (
	NtProgram NonTerminal = iota
	NtMainFunction
	NtOtherFunctions
	NtFunction
	NtInputPar
	NtOutputPar
	NtParameterList
	NtDataType
	NtPrimitiveDataType
	NtConstructedDataType
	NtRemainingList
	NtStmts
	NtTypeDefinitions
	NtActualOrRedefined
	NtTypeDefinition
	NtFieldDefinitions
	NtFieldDefinition
	NtFieldType
	NtMoreFields
	NtDeclarations
	NtDeclaration
	NtGlobalOrNot
	NtOtherStmts
	NtStmt
	NtAssignmentStmt
	NtSingleOrRecID
	NtOptionSingleConstructed
	NtOneExpansion
	NtMoreExpansions
	NtFunCallStmt
	NtOutputParameters
	NtInputParameters
	NtIterativeStmt
	NtConditionalStmt
	NtElsePart
	NtIOStmt
	NtArithmeticExpression
	NtExpPrime
	NtTerm
	NtTermPrime
	NtFactor
	NtHighPrecedenceOperators
	NtLowPrecedenceOperators
	NtBooleanExpression
	NtVar
	NtLogicalOp
	NtRelationalOp
	NtReturnStmt
	NtOptionalReturn
	NtIDList
	NtMoreIDs
	NtDefinetypeStmt
	NtA

	// NumNonTerminals is the total count of non-terminals; it sizes
	// parse-table rows and every per-NT bookkeeping array.
	NumNonTerminals
)

var ntNames = [NumNonTerminals]string{
	NtProgram:                 "program",
	NtMainFunction:            "mainFunction",
	NtOtherFunctions:          "otherFunctions",
	NtFunction:                "function",
	NtInputPar:                "inputPar",
	NtOutputPar:               "outputPar",
	NtParameterList:           "parameterList",
	NtDataType:                "dataType",
	NtPrimitiveDataType:       "primitiveDataType",
	NtConstructedDataType:     "constructedDataType",
	NtRemainingList:           "remainingList",
	NtStmts:                   "stmts",
	NtTypeDefinitions:         "typeDefinitions",
	NtActualOrRedefined:       "actualOrRedefined",
	NtTypeDefinition:          "typeDefinition",
	NtFieldDefinitions:        "fieldDefinitions",
	NtFieldDefinition:         "fieldDefinition",
	NtFieldType:               "fieldType",
	NtMoreFields:              "moreFields",
	NtDeclarations:            "declarations",
	NtDeclaration:             "declaration",
	NtGlobalOrNot:             "globalOrNot",
	NtOtherStmts:              "otherStmts",
	NtStmt:                    "stmt",
	NtAssignmentStmt:          "assignmentStmt",
	NtSingleOrRecID:           "singleOrRecId",
	NtOptionSingleConstructed: "optionSingleConstructed",
	NtOneExpansion:            "oneExpansion",
	NtMoreExpansions:          "moreExpansions",
	NtFunCallStmt:             "funCallStmt",
	NtOutputParameters:        "outputParameters",
	NtInputParameters:         "inputParameters",
	NtIterativeStmt:           "iterativeStmt",
	NtConditionalStmt:         "conditionalStmt",
	NtElsePart:                "elsePart",
	NtIOStmt:                  "ioStmt",
	NtArithmeticExpression:    "arithmeticExpression",
	NtExpPrime:                "expPrime",
	NtTerm:                    "term",
	NtTermPrime:               "termPrime",
	NtFactor:                  "factor",
	NtHighPrecedenceOperators: "highPrecedenceOperators",
	NtLowPrecedenceOperators:  "lowPrecedenceOperators",
	NtBooleanExpression:       "booleanExpression",
	NtVar:                     "var",
	NtLogicalOp:               "logicalOp",
	NtRelationalOp:            "relationalOp",
	NtReturnStmt:              "returnStmt",
	NtOptionalReturn:          "optionalReturn",
	NtIDList:                  "idList",
	NtMoreIDs:                 "moreIds",
	NtDefinetypeStmt:          "definetypeStmt",
	NtA:                       "A",
}

// String returns the display name of the non-terminal, e.g. "program".
func (nt NonTerminal) String() string {
	if nt < 0 || nt >= NumNonTerminals {
		return fmt.Sprintf("NonTerminal(%d)", int(nt))
	}
	return ntNames[nt]
}

// NonTerminalForName returns the NonTerminal whose display name is s, or
// false if s names no non-terminal.
func NonTerminalForName(s string) (NonTerminal, bool) {
	for i := NonTerminal(0); i < NumNonTerminals; i++ {
		if ntNames[i] == s {
			return i, true
		}
	}
	return 0, false
}

// Symbol is one position of a production's right-hand side: either a
// terminal token kind or a non-terminal. The IsTerminal flag selects which
// field is meaningful.
type Symbol struct {
	IsTerminal bool
	Tok        lexer.TokenKind
	NT         NonTerminal
}

// Term returns a terminal Symbol for the given token kind.
func Term(tk lexer.TokenKind) Symbol {
	return Symbol{IsTerminal: true, Tok: tk}
}

// NonTerm returns a non-terminal Symbol.
func NonTerm(nt NonTerminal) Symbol {
	return Symbol{NT: nt}
}

// Name returns the display name of the symbol: the token name for terminals
// and the non-terminal name otherwise.
func (s Symbol) Name() string {
	if s.IsTerminal {
		return s.Tok.String()
	}
	return s.NT.String()
}

func (s Symbol) String() string {
	return s.Name()
}

// Production is the ordered right-hand side of one grammar rule. A
// Production is never empty; ε-derivability is carried out-of-band by the
// owning non-terminal's epsilon flag.
type Production []Symbol

func (p Production) String() string {
	parts := make([]string, len(p))
	for i := range p {
		parts[i] = p[i].Name()
	}
	return strings.Join(parts, " ")
}

// Grammar is the full rule set: for each non-terminal, an ordered list of
// regular productions plus a flag marking whether the non-terminal also has
// an ε-rule. Production order is significant; it defines rule indices, and
// by convention the ε-rule's index is one past the last regular production
// (see EpsilonRule).
type Grammar struct {
	prods  [NumNonTerminals][]Production
	hasEps [NumNonTerminals]bool
	start  NonTerminal
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() NonTerminal {
	return g.start
}

// Rules returns the regular (non-ε) productions of nt in rule-index order.
// The returned slice is owned by the grammar and must not be modified.
func (g *Grammar) Rules(nt NonTerminal) []Production {
	return g.prods[nt]
}

// HasEpsilon returns whether nt has an ε-rule.
func (g *Grammar) HasEpsilon(nt NonTerminal) bool {
	return g.hasEps[nt]
}

// EpsilonRule returns the rule index of nt's ε-rule, or -1 if nt has none.
// The ε-rule always sorts after every regular production, so its index is
// the regular production count.
func (g *Grammar) EpsilonRule(nt NonTerminal) int {
	if !g.hasEps[nt] {
		return -1
	}
	return len(g.prods[nt])
}

// AddRule appends a regular production for nt. The right-hand side must be
// non-empty and no longer than MaxRHSLen.
func (g *Grammar) AddRule(nt NonTerminal, p Production) error {
	if len(p) == 0 {
		return fmt.Errorf("%s: empty right-hand side; use AddEpsilon", nt)
	}
	if len(p) > MaxRHSLen {
		return fmt.Errorf("%s: right-hand side longer than %d symbols", nt, MaxRHSLen)
	}
	g.prods[nt] = append(g.prods[nt], p)
	return nil
}

// AddEpsilon marks nt as having an ε-rule.
func (g *Grammar) AddEpsilon(nt NonTerminal) {
	g.hasEps[nt] = true
}

// Validate checks that every non-terminal has at least one production (ε
// counts) and that every referenced symbol is in range. It does not check
// that the grammar is LL(1); that is a documented precondition of the parse
// table, not a runtime property.
func (g *Grammar) Validate() error {
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		if len(g.prods[nt]) == 0 && !g.hasEps[nt] {
			return fmt.Errorf("non-terminal %s has no productions", nt)
		}

		for ri, p := range g.prods[nt] {
			for _, sym := range p {
				if sym.IsTerminal {
					if sym.Tok < 0 || sym.Tok >= lexer.NumTokenKinds {
						return fmt.Errorf("%s rule %d: token kind out of range", nt, ri)
					}
				} else if sym.NT < 0 || sym.NT >= NumNonTerminals {
					return fmt.Errorf("%s rule %d: non-terminal out of range", nt, ri)
				}
			}
		}
	}
	return nil
}

// String renders the grammar in the same rule notation Parse accepts.
func (g *Grammar) String() string {
	var sb strings.Builder
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		if len(g.prods[nt]) == 0 && !g.hasEps[nt] {
			continue
		}

		sb.WriteString(nt.String())
		sb.WriteString(" -> ")
		for i, p := range g.prods[nt] {
			sb.WriteString(p.String())
			if i+1 < len(g.prods[nt]) || g.hasEps[nt] {
				sb.WriteString(" | ")
			}
		}
		if g.hasEps[nt] {
			sb.WriteString("eps")
		}
		sb.WriteString(" ;\n")
	}
	return sb.String()
}

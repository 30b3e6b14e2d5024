package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/minnow/internal/lexer"
)

// langRules is the grammar of the language in the rule notation accepted by
// Parse: one rule per non-terminal, alternatives separated by "|", terminals
// written with their token names, "eps" as the final alternative of a
// nullable non-terminal, each rule closed by ";". The left-hand side of the
// first rule is the start symbol.
//
// Alternative order within a rule is significant: it fixes rule indices in
// the parse table, and the ε-alternative must come last.
const langRules = `
program -> otherFunctions mainFunction ;
mainFunction -> TK_MAIN stmts TK_END ;
otherFunctions -> function otherFunctions | eps ;
function -> TK_FUNID inputPar outputPar TK_SEM stmts TK_END ;
inputPar -> TK_INPUT TK_PARAMETER TK_LIST TK_SQL parameterList TK_SQR ;
outputPar -> TK_OUTPUT TK_PARAMETER TK_LIST TK_SQL parameterList TK_SQR | eps ;
parameterList -> dataType TK_ID remainingList ;
dataType -> primitiveDataType | constructedDataType ;
primitiveDataType -> TK_INT | TK_REAL ;
constructedDataType -> TK_RECORD TK_RUID | TK_UNION TK_RUID | TK_RUID ;
remainingList -> TK_COMMA parameterList | eps ;
stmts -> typeDefinitions declarations otherStmts returnStmt ;
typeDefinitions -> actualOrRedefined typeDefinitions | eps ;
actualOrRedefined -> typeDefinition | definetypeStmt ;
typeDefinition -> TK_RECORD TK_RUID fieldDefinitions TK_ENDRECORD | TK_UNION TK_RUID fieldDefinitions TK_ENDUNION ;
fieldDefinitions -> fieldDefinition fieldDefinition moreFields ;
fieldDefinition -> TK_TYPE fieldType TK_COLON TK_FIELDID TK_SEM ;
fieldType -> primitiveDataType | constructedDataType ;
moreFields -> fieldDefinition moreFields | eps ;
declarations -> declaration declarations | eps ;
declaration -> TK_TYPE dataType TK_COLON TK_ID globalOrNot TK_SEM ;
globalOrNot -> TK_COLON TK_GLOBAL | eps ;
otherStmts -> stmt otherStmts | eps ;
stmt -> assignmentStmt | iterativeStmt | conditionalStmt | ioStmt | funCallStmt ;
assignmentStmt -> singleOrRecId TK_ASSIGNOP arithmeticExpression TK_SEM ;
singleOrRecId -> TK_ID optionSingleConstructed ;
optionSingleConstructed -> oneExpansion moreExpansions | eps ;
oneExpansion -> TK_DOT TK_FIELDID ;
moreExpansions -> oneExpansion moreExpansions | eps ;
funCallStmt -> outputParameters TK_CALL TK_FUNID TK_WITH TK_PARAMETERS inputParameters TK_SEM ;
outputParameters -> TK_SQL idList TK_SQR TK_ASSIGNOP | eps ;
inputParameters -> TK_SQL idList TK_SQR ;
iterativeStmt -> TK_WHILE TK_OP booleanExpression TK_CL stmt otherStmts TK_ENDWHILE ;
conditionalStmt -> TK_IF TK_OP booleanExpression TK_CL TK_THEN stmt otherStmts elsePart ;
elsePart -> TK_ELSE stmt otherStmts TK_ENDIF | TK_ENDIF ;
ioStmt -> TK_READ TK_OP var TK_CL TK_SEM | TK_WRITE TK_OP var TK_CL TK_SEM ;
arithmeticExpression -> term expPrime ;
expPrime -> lowPrecedenceOperators term expPrime | eps ;
term -> factor termPrime ;
termPrime -> highPrecedenceOperators factor termPrime | eps ;
factor -> TK_OP arithmeticExpression TK_CL | var ;
highPrecedenceOperators -> TK_MUL | TK_DIV ;
lowPrecedenceOperators -> TK_PLUS | TK_MINUS ;
booleanExpression -> TK_OP booleanExpression TK_CL logicalOp TK_OP booleanExpression TK_CL | var relationalOp var | TK_NOT TK_OP booleanExpression TK_CL ;
var -> singleOrRecId | TK_NUM | TK_RNUM ;
logicalOp -> TK_AND | TK_OR ;
relationalOp -> TK_LT | TK_LE | TK_EQ | TK_GT | TK_GE | TK_NE ;
returnStmt -> TK_RETURN optionalReturn TK_SEM ;
optionalReturn -> TK_SQL idList TK_SQR | eps ;
idList -> TK_ID moreIds ;
moreIds -> TK_COMMA idList | eps ;
definetypeStmt -> TK_DEFINETYPE A TK_RUID TK_AS TK_RUID ;
A -> TK_RECORD | TK_UNION ;
`

// Default returns the grammar of the language, freshly parsed from the
// embedded rule text. It panics only if the embedded text is corrupt, which
// is a build defect, not a runtime condition.
func Default() *Grammar {
	g, err := Parse(langRules)
	if err != nil {
		panic(fmt.Sprintf("embedded grammar is invalid: %v", err))
	}
	return g
}

// Parse reads a grammar from rule text. Each rule is
//
//	lhs -> sym sym ... | sym ... | eps ;
//
// where lhs and non-terminal syms are non-terminal display names, terminal
// syms are token names such as TK_SEM, and "eps" (only valid as the last
// alternative, alone) marks the non-terminal nullable. The first rule's
// left-hand side becomes the start symbol.
func Parse(text string) (*Grammar, error) {
	g := &Grammar{}
	startSet := false

	for _, ruleText := range strings.Split(text, ";") {
		ruleText = strings.TrimSpace(ruleText)
		if ruleText == "" {
			continue
		}

		nt, err := parseRule(g, ruleText)
		if err != nil {
			return nil, err
		}

		if !startSet {
			g.start = nt
			startSet = true
		}
	}

	if !startSet {
		return nil, fmt.Errorf("grammar text contains no rules")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// parseRule parses a single "lhs -> alternatives" rule into g and returns
// the left-hand non-terminal.
func parseRule(g *Grammar, ruleText string) (NonTerminal, error) {
	lhsRHS := strings.SplitN(ruleText, "->", 2)
	if len(lhsRHS) != 2 {
		return 0, fmt.Errorf("rule %q: missing \"->\"", ruleText)
	}

	lhsName := strings.TrimSpace(lhsRHS[0])
	nt, ok := NonTerminalForName(lhsName)
	if !ok {
		return 0, fmt.Errorf("rule %q: unknown non-terminal %q", ruleText, lhsName)
	}

	alts := strings.Split(lhsRHS[1], "|")
	for i, alt := range alts {
		fields := strings.Fields(alt)
		if len(fields) == 0 {
			return 0, fmt.Errorf("rule %q: empty alternative", ruleText)
		}

		if len(fields) == 1 && fields[0] == "eps" {
			if i != len(alts)-1 {
				return 0, fmt.Errorf("rule %q: eps must be the last alternative", ruleText)
			}
			g.AddEpsilon(nt)
			continue
		}

		p := make(Production, 0, len(fields))
		for _, f := range fields {
			sym, err := parseSymbol(f)
			if err != nil {
				return 0, fmt.Errorf("rule %q: %w", ruleText, err)
			}
			p = append(p, sym)
		}

		if err := g.AddRule(nt, p); err != nil {
			return 0, err
		}
	}

	return nt, nil
}

func parseSymbol(name string) (Symbol, error) {
	if name == "eps" {
		return Symbol{}, fmt.Errorf("eps may not appear inside an alternative")
	}

	if strings.HasPrefix(name, "TK_") || name == "DOLLAR" {
		tk, ok := lexer.KindForName(name)
		if !ok {
			return Symbol{}, fmt.Errorf("unknown token name %q", name)
		}
		return Term(tk), nil
	}

	nt, ok := NonTerminalForName(name)
	if !ok {
		return Symbol{}, fmt.Errorf("unknown symbol %q", name)
	}
	return NonTerm(nt), nil
}

package grammar

import "github.com/dekarrin/minnow/internal/lexer"

// FirstFollow holds the FIRST and FOLLOW sets of every non-terminal,
// together with the bookkeeping the parse-table builder needs: which rule
// index contributed each FIRST terminal, and the ε-rule index (if any) to
// write into FOLLOW cells.
//
// Sets are kept as ordered slices in discovery order; First and RuleNo are
// parallel. ε membership in FIRST is tracked out-of-band by FirstHasEpsilon,
// and FOLLOW never contains ε.
type FirstFollow struct {
	First           [NumNonTerminals][]lexer.TokenKind
	RuleNo          [NumNonTerminals][]int
	FirstHasEpsilon [NumNonTerminals]bool

	Follow     [NumNonTerminals][]lexer.TokenKind
	FollowRule [NumNonTerminals]int
}

// FirstHas returns whether t is in FIRST(nt).
func (ff *FirstFollow) FirstHas(nt NonTerminal, t lexer.TokenKind) bool {
	for _, have := range ff.First[nt] {
		if have == t {
			return true
		}
	}
	return false
}

// FollowHas returns whether t is in FOLLOW(nt).
func (ff *FirstFollow) FollowHas(nt NonTerminal, t lexer.TokenKind) bool {
	for _, have := range ff.Follow[nt] {
		if have == t {
			return true
		}
	}
	return false
}

// addFirst records t ∈ FIRST(nt) as contributed by rule ri. If t is already
// present the earlier rule wins; an LL(1) grammar never actually produces
// such a collision across distinct rules, and within one rule the first
// occurrence is the meaningful one.
func (ff *FirstFollow) addFirst(nt NonTerminal, t lexer.TokenKind, ri int) {
	if ff.FirstHas(nt, t) {
		return
	}
	ff.First[nt] = append(ff.First[nt], t)
	ff.RuleNo[nt] = append(ff.RuleNo[nt], ri)
}

// addFollow records t ∈ FOLLOW(nt). ε is never a FOLLOW member and is
// silently ignored.
func (ff *FirstFollow) addFollow(nt NonTerminal, t lexer.TokenKind) {
	if t == lexer.Epsilon || ff.FollowHas(nt, t) {
		return
	}
	ff.Follow[nt] = append(ff.Follow[nt], t)
}

// ComputeFirstFollow computes FIRST and FOLLOW for every non-terminal of g.
//
// FIRST is computed by recursive descent with a per-non-terminal done flag;
// the grammar must be free of left-recursion cycles (a property of the
// supplied grammar, documented as a precondition rather than checked).
// FOLLOW is seeded with DOLLAR on the start symbol, populated from every
// production body, and then dependency edges of the form
// FOLLOW(X) ⊇ FOLLOW(A) are closed transitively by depth-first traversal.
func ComputeFirstFollow(g *Grammar) *FirstFollow {
	ff := &FirstFollow{}
	for i := range ff.FollowRule {
		ff.FollowRule[i] = -1
	}

	// Phase 1: FIRST sets
	var done [NumNonTerminals]bool
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		ff.computeFirstRec(g, nt, &done)
	}

	// Phase 2: FOLLOW sets from every rule body
	ff.addFollow(g.Start(), lexer.Dollar)

	var deps [NumNonTerminals][]NonTerminal
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		for _, p := range g.Rules(nt) {
			ff.followScan(nt, p, &deps)
		}
	}

	// Phase 3: close the FOLLOW(X) ⊇ FOLLOW(A) dependencies
	for nt := NonTerminal(0); nt < NumNonTerminals; nt++ {
		if len(deps[nt]) > 0 {
			var visited [NumNonTerminals]bool
			ff.clearDependency(nt, &deps, &visited)
		}
	}

	return ff
}

func (ff *FirstFollow) computeFirstRec(g *Grammar, nt NonTerminal, done *[NumNonTerminals]bool) {
	if done[nt] {
		return
	}
	done[nt] = true

	for ri, p := range g.Rules(nt) {
		nullable := true
		for _, sym := range p {
			if sym.IsTerminal {
				ff.addFirst(nt, sym.Tok, ri)
				nullable = false
				break
			}

			X := sym.NT
			if !done[X] {
				ff.computeFirstRec(g, X, done)
			}
			for _, t := range ff.First[X] {
				ff.addFirst(nt, t, ri)
			}
			if !ff.FirstHasEpsilon[X] {
				nullable = false
				break
			}
		}

		// the whole right-hand side can vanish
		if nullable {
			ff.FirstHasEpsilon[nt] = true
		}
	}

	if g.HasEpsilon(nt) {
		ff.FirstHasEpsilon[nt] = true
		ff.FollowRule[nt] = g.EpsilonRule(nt)
	}
}

// followScan processes one production A → α X β for every non-terminal X in
// it: FIRST(β) \ {ε} joins FOLLOW(X), and when β can vanish entirely a
// dependency FOLLOW(X) ⊇ FOLLOW(A) is recorded for phase 3.
func (ff *FirstFollow) followScan(a NonTerminal, p Production, deps *[NumNonTerminals][]NonTerminal) {
	for i, sym := range p {
		if sym.IsTerminal {
			continue
		}
		X := sym.NT

		nullableBeta := true
		for _, b := range p[i+1:] {
			if b.IsTerminal {
				ff.addFollow(X, b.Tok)
				nullableBeta = false
				break
			}

			for _, t := range ff.First[b.NT] {
				ff.addFollow(X, t)
			}
			if !ff.FirstHasEpsilon[b.NT] {
				nullableBeta = false
				break
			}
		}

		if nullableBeta && X != a {
			found := false
			for _, have := range deps[a] {
				if have == X {
					found = true
					break
				}
			}
			if !found {
				deps[a] = append(deps[a], X)
			}
		}
	}
}

// clearDependency merges FOLLOW(a) into every non-terminal that depends on
// it, recursing so that multi-step chains settle in one pass. Visit marks
// guard against cycles.
func (ff *FirstFollow) clearDependency(a NonTerminal, deps *[NumNonTerminals][]NonTerminal, visited *[NumNonTerminals]bool) {
	visited[a] = true

	for _, X := range deps[a] {
		for _, t := range ff.Follow[a] {
			ff.addFollow(X, t)
		}
		if !visited[X] {
			ff.clearDependency(X, deps, visited)
		}
	}
}

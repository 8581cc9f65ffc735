/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: productivity.go
Description: Productivity analysis. A nonterminal is productive when it can derive a
string made only of terminals. Computed as a monotone fixed point seeded by the absorbing
states (nonterminals with a direct terminal-only production).
*/

package analysis

import (
	"github.com/kleascm/cfgforge/pkg/grammar"
)

// AbsorbingStates returns the nonterminals with at least one production
// whose rhs holds no nonterminal. This is a local property.
func AbsorbingStates(g *grammar.Grammar) Set {
	out := make(Set)
	for _, p := range g.Productions() {
		if p.TerminalOnly() {
			out.Add(p.Lhs)
		}
	}
	return out
}

// Productive returns the nonterminals that can derive a terminal-only string
func Productive(g *grammar.Grammar) Set {
	productive := AbsorbingStates(g)
	deps := DependencySets(g)

	for changed := true; changed; {
		changed = false
		for _, d := range deps {
			if d.Recursive || productive.Has(d.Lhs) {
				continue
			}
			if allIn(productive, d) {
				productive.Add(d.Lhs)
				changed = true
			}
		}
	}
	return productive
}

func allIn(s Set, d Dependency) bool {
	for _, nt := range d.Needs {
		if !s.Has(nt) {
			return false
		}
	}
	return true
}

// UnproductiveRules returns the nonterminals that are not productive, joined
// with the nonterminals unreachable from the start symbol. Unreachable ones
// count as unproductive whatever their own structure.
func UnproductiveRules(g *grammar.Grammar) Set {
	all := NewSet(g.Nonterminals()...)
	return all.Difference(Productive(g)).Union(Unreachable(g))
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: transience.go
Description: Transience check and the combined structural report. A grammar is transient
when its unproductive nonterminals are exactly its unreachable ones, so every reachable
nonterminal can terminate.
*/

package analysis

import (
	"github.com/kleascm/cfgforge/pkg/grammar"
)

// Unreachable returns the nonterminals not reachable from the start symbol
func Unreachable(g *grammar.Grammar) Set {
	all := NewSet(g.Nonterminals()...)
	return all.Difference(BuildGraph(g).Reachable(g.Start()))
}

// IsTransient reports whether UnproductiveRules(g) equals Unreachable(g)
func IsTransient(g *grammar.Grammar) bool {
	return Analyze(g).Transient
}

// CheckTransient returns a NonTransientGrammarError when g is not transient
func CheckTransient(g *grammar.Grammar) error {
	return Analyze(g).Err()
}

// Report bundles every structural property of one grammar
type Report struct {
	Graph        *Graph
	Reachable    Set
	Unreachable  Set
	Absorbing    Set
	Productive   Set
	Unproductive Set
	Transient    bool
}

// Analyze runs all analyses over g once
func Analyze(g *grammar.Grammar) *Report {
	gr := BuildGraph(g)
	all := NewSet(g.Nonterminals()...)
	reachable := gr.Reachable(g.Start())
	unreachable := all.Difference(reachable)
	productive := Productive(g)
	unproductive := all.Difference(productive).Union(unreachable)

	return &Report{
		Graph:        gr,
		Reachable:    reachable,
		Unreachable:  unreachable,
		Absorbing:    AbsorbingStates(g),
		Productive:   productive,
		Unproductive: unproductive,
		Transient:    unproductive.Equal(unreachable),
	}
}

// Err returns nil for a transient grammar and a NonTransientGrammarError otherwise
func (r *Report) Err() error {
	if r.Transient {
		return nil
	}
	return &grammar.NonTransientGrammarError{
		Unproductive: r.Unproductive.Names(),
		Unreachable:  r.Unreachable.Names(),
	}
}

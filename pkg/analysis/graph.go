/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: graph.go
Description: Transition graph over the nonterminals of a grammar. An edge A -> B exists
for every occurrence of B in a right-hand side of A. Reachability is a depth-first walk
from the start symbol.
*/

package analysis

import (
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

// Graph maps each nonterminal to the nonterminals its productions mention.
// Duplicate edges and self-loops are kept.
type Graph struct {
	nodes []symbols.Symbol
	edges map[symbols.Symbol][]symbols.Symbol
}

// BuildGraph derives the transition graph of g
func BuildGraph(g *grammar.Grammar) *Graph {
	gr := &Graph{
		nodes: g.Nonterminals(),
		edges: make(map[symbols.Symbol][]symbols.Symbol),
	}
	for _, p := range g.Productions() {
		succ := gr.edges[p.Lhs]
		for _, s := range p.Rhs {
			if s.IsNonterminal() {
				succ = append(succ, s)
			}
		}
		gr.edges[p.Lhs] = succ
	}
	return gr
}

// Nodes returns the graph's nonterminals in declaration order
func (gr *Graph) Nodes() []symbols.Symbol {
	return append([]symbols.Symbol(nil), gr.nodes...)
}

// Successors returns the outgoing edges of nt in production order
func (gr *Graph) Successors(nt symbols.Symbol) []symbols.Symbol {
	return append([]symbols.Symbol(nil), gr.edges[nt]...)
}

// Reachable returns every nonterminal reachable from start, start included
func (gr *Graph) Reachable(start symbols.Symbol) Set {
	reached := make(Set)
	stack := []symbols.Symbol{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached.Has(current) {
			continue
		}
		reached.Add(current)
		stack = append(stack, gr.edges[current]...)
	}
	return reached
}

// Dependency is the set of distinct nonterminals one production needs to be
// productive. Recursive is set when the production mentions its own lhs;
// such a production can never be the one that proves its lhs productive.
type Dependency struct {
	Lhs       symbols.Symbol
	Needs     []symbols.Symbol
	Recursive bool
}

// DependencySets returns one Dependency per production, with duplicate
// nonterminals and the lhs self-reference removed.
func DependencySets(g *grammar.Grammar) []Dependency {
	prods := g.Productions()
	deps := make([]Dependency, 0, len(prods))
	for _, p := range prods {
		d := Dependency{Lhs: p.Lhs}
		seen := make(Set)
		for _, s := range p.Rhs {
			if !s.IsNonterminal() || seen.Has(s) {
				continue
			}
			seen.Add(s)
			if s == p.Lhs {
				d.Recursive = true
				continue
			}
			d.Needs = append(d.Needs, s)
		}
		deps = append(deps, d)
	}
	return deps
}

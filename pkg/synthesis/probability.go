/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: probability.go
Description: Probability mass assignment for synthesized PCFG productions. Each lhs group
splits a mass of 1.0: every production but the last draws a share of what remains, and the
last takes the remainder.
*/

package synthesis

import (
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

// maxRedraws bounds how often a zero share is redrawn
const maxRedraws = 8

// AssignProbabilities returns a copy of prods with probabilities assigned per
// lhs group. Groups are processed in order of first lhs appearance and
// productions within a group in slice order, so a seeded source gives
// reproducible results.
func AssignProbabilities(prods []grammar.Production, src grammar.Source) []grammar.Production {
	out := make([]grammar.Production, len(prods))
	copy(out, prods)

	var order []symbols.Symbol
	groups := make(map[symbols.Symbol][]int)
	for i, p := range out {
		if _, ok := groups[p.Lhs]; !ok {
			order = append(order, p.Lhs)
		}
		groups[p.Lhs] = append(groups[p.Lhs], i)
	}

	for _, lhs := range order {
		idx := groups[lhs]
		remaining := 1.0
		for k, i := range idx {
			if k == len(idx)-1 {
				out[i].Probability = remaining
				break
			}
			share := drawShare(src, remaining)
			out[i].Probability = share
			remaining -= share
		}
	}
	return out
}

// drawShare draws from [0, remaining), redrawing values that would leave a
// zero probability on either side.
func drawShare(src grammar.Source, remaining float64) float64 {
	for i := 0; i < maxRedraws; i++ {
		share := src.Float64() * remaining
		if share > 0 && remaining-share > 0 {
			return share
		}
	}
	return remaining / 2
}

// AssignGrammar turns a plain grammar into a PCFG with random probabilities
func AssignGrammar(g *grammar.Grammar, src grammar.Source) (*grammar.Grammar, error) {
	return grammar.NewProbabilistic(g.Start().Value, AssignProbabilities(g.Productions(), src))
}

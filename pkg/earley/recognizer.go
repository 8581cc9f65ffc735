/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: recognizer.go
Description: Earley chart recognizer used for membership testing of generated sentences.
Implements grammar.Deriver. Empty right-hand sides are handled by advancing over nullable
nonterminals during prediction.
*/

package earley

import (
	"strings"
	"unicode/utf8"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

// item is an Earley item: production, dot position and origin column
type item struct {
	prod   int
	dot    int
	origin int
}

type column struct {
	items []item
	seen  map[item]bool
}

func (c *column) add(it item) {
	if c.seen[it] {
		return
	}
	c.seen[it] = true
	c.items = append(c.items, it)
}

// Recognizer decides membership with an Earley chart. It holds no state
// between calls and is safe for concurrent use.
type Recognizer struct{}

// NewRecognizer creates a Recognizer
func NewRecognizer() *Recognizer {
	return &Recognizer{}
}

var _ grammar.Deriver = (*Recognizer)(nil)

// Derive reports whether tokens can be derived from g's start symbol.
// Tokens that are not terminals of g simply make the derivation fail.
func (r *Recognizer) Derive(g *grammar.Grammar, tokens []string) (bool, error) {
	prods := g.Productions()
	// production len(prods) is the augmented rule <accept> -> start
	accept := len(prods)
	prods = append(prods, grammar.Production{Rhs: []symbols.Symbol{g.Start()}})

	byLhs := make(map[symbols.Symbol][]int)
	for i, p := range prods[:accept] {
		byLhs[p.Lhs] = append(byLhs[p.Lhs], i)
	}
	nullable := nullableSet(prods[:accept])

	chart := make([]*column, len(tokens)+1)
	for i := range chart {
		chart[i] = &column{seen: make(map[item]bool)}
	}
	chart[0].add(item{prod: accept})

	for i, col := range chart {
		for j := 0; j < len(col.items); j++ {
			it := col.items[j]
			rhs := prods[it.prod].Rhs

			if it.dot == len(rhs) {
				lhs := prods[it.prod].Lhs
				origin := chart[it.origin]
				for k := 0; k < len(origin.items); k++ {
					waiting := origin.items[k]
					wr := prods[waiting.prod].Rhs
					if waiting.dot < len(wr) && wr[waiting.dot] == lhs {
						col.add(item{prod: waiting.prod, dot: waiting.dot + 1, origin: waiting.origin})
					}
				}
				continue
			}

			next := rhs[it.dot]
			if next.IsNonterminal() {
				for _, p := range byLhs[next] {
					col.add(item{prod: p, origin: i})
				}
				if nullable[next] {
					col.add(item{prod: it.prod, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}

			if i < len(tokens) && tokens[i] == next.Value {
				chart[i+1].add(item{prod: it.prod, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	return chart[len(tokens)].seen[item{prod: accept, dot: 1}], nil
}

// nullableSet returns the nonterminals that derive the empty string
func nullableSet(prods []grammar.Production) map[symbols.Symbol]bool {
	nullable := make(map[symbols.Symbol]bool)
	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			if nullable[p.Lhs] {
				continue
			}
			all := true
			for _, s := range p.Rhs {
				if s.IsTerminal() || !nullable[s] {
					all = false
					break
				}
			}
			if all {
				nullable[p.Lhs] = true
				changed = true
			}
		}
	}
	return nullable
}

// Tokenize splits a generated sentence back into terminal tokens. An empty
// join splits per rune.
func Tokenize(sentence, join string) []string {
	if sentence == "" {
		return nil
	}
	if join != "" {
		return strings.Split(sentence, join)
	}
	tokens := make([]string, 0, utf8.RuneCountInString(sentence))
	for _, r := range sentence {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Member tokenizes sentence and asks d whether g derives it
func Member(d grammar.Deriver, g *grammar.Grammar, sentence, join string) (bool, error) {
	return d.Derive(g, Tokenize(sentence, join))
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metagrammar.go
Description: The meta-grammar whose sentences are production rules. Its TERMINAL and
NONTERMINAL leaves are filled with the caller's alphabet at run time; a lexicon maps each
leaf token back to the typed symbol it stands for, so fragments are decoded without any
textual escaping.
*/

package synthesis

import (
	"fmt"
	"strconv"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

const (
	metaStart       = "S"
	metaRule        = "RULE"
	metaContent     = "CONTENT"
	metaTerminal    = "TERMINAL"
	metaNonterminal = "NONTERMINAL"

	arrowToken       = "->"
	alternationToken = "|"
)

// metaGrammar is a grammar over rule tokens plus the lexicon that decodes them
type metaGrammar struct {
	grammar *grammar.Grammar
	lexicon map[string]symbols.Symbol
}

func nt(name string) symbols.Symbol  { return symbols.Nonterminal(name) }
func tok(value string) symbols.Symbol { return symbols.Terminal(value) }

// CONTENT shapes of the probabilistic meta-grammar. The terminal-only shape
// is weighted by the terminal bias, the others share the rest.
var probabilisticShapes = []struct {
	rhs          []symbols.Symbol
	terminalOnly bool
}{
	{[]symbols.Symbol{nt(metaTerminal)}, true},
	{[]symbols.Symbol{nt(metaNonterminal), nt(metaTerminal)}, false},
	{[]symbols.Symbol{nt(metaNonterminal)}, false},
	{[]symbols.Symbol{nt(metaNonterminal), nt(metaNonterminal)}, false},
}

var plainShapes = [][]symbols.Symbol{
	{nt(metaContent), tok(alternationToken), nt(metaContent)},
	{nt(metaTerminal)},
	{nt(metaTerminal), nt(metaNonterminal)},
	{nt(metaNonterminal), nt(metaTerminal)},
	{nt(metaNonterminal), nt(metaNonterminal)},
	{nt(metaTerminal), nt(metaTerminal)},
	{nt(metaTerminal), nt(metaNonterminal), nt(metaTerminal)},
}

// buildMetaGrammar creates the plain or probabilistic meta-grammar for an
// alphabet. terminalBias is the weight of the terminal-only shape and is
// only used in probabilistic mode.
func buildMetaGrammar(terminals, nonterminals []string, probabilistic bool, terminalBias float64) (*metaGrammar, error) {
	lexicon := make(map[string]symbols.Symbol, len(terminals)+len(nonterminals))

	prods := []grammar.Production{
		grammar.NewProduction(metaStart, nt(metaRule)).WithProbability(1),
		grammar.NewProduction(metaRule, nt(metaNonterminal), tok(arrowToken), nt(metaContent)).WithProbability(1),
	}

	if probabilistic {
		other := (1 - terminalBias) / float64(len(probabilisticShapes)-1)
		for _, shape := range probabilisticShapes {
			weight := other
			if shape.terminalOnly {
				weight = terminalBias
			}
			if weight <= 0 {
				continue
			}
			prods = append(prods, grammar.NewProduction(metaContent, shape.rhs...).WithProbability(weight))
		}
	} else {
		for _, rhs := range plainShapes {
			prods = append(prods, grammar.NewProduction(metaContent, rhs...))
		}
	}

	for _, t := range terminals {
		key := strconv.Quote(t)
		lexicon[key] = symbols.Terminal(t)
		prods = append(prods, grammar.NewProduction(metaTerminal, tok(key)).WithProbability(1/float64(len(terminals))))
	}
	for _, n := range nonterminals {
		lexicon[n] = symbols.Nonterminal(n)
		prods = append(prods, grammar.NewProduction(metaNonterminal, tok(n)).WithProbability(1/float64(len(nonterminals))))
	}

	var (
		g   *grammar.Grammar
		err error
	)
	if probabilistic {
		g, err = grammar.NewProbabilistic(metaStart, prods)
	} else {
		g, err = grammar.New(metaStart, prods)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build meta-grammar: %w", err)
	}
	return &metaGrammar{grammar: g, lexicon: lexicon}, nil
}

// fragment is one decoded meta-grammar sentence: a lhs and its alternatives
type fragment struct {
	lhs          symbols.Symbol
	alternatives [][]symbols.Symbol
}

// decode turns a meta-grammar sentence back into typed symbols
func (m *metaGrammar) decode(sentence []symbols.Symbol) (fragment, error) {
	if len(sentence) < 3 || sentence[1].Value != arrowToken {
		return fragment{}, fmt.Errorf("malformed rule fragment %q", grammar.Join(sentence, " "))
	}

	lhs, ok := m.lexicon[sentence[0].Value]
	if !ok || !lhs.IsNonterminal() {
		return fragment{}, fmt.Errorf("fragment lhs %q is not a nonterminal", sentence[0].Value)
	}

	f := fragment{lhs: lhs}
	var current []symbols.Symbol
	for _, s := range sentence[2:] {
		if s.Value == alternationToken {
			f.alternatives = append(f.alternatives, current)
			current = nil
			continue
		}
		sym, ok := m.lexicon[s.Value]
		if !ok {
			return fragment{}, fmt.Errorf("unknown token %q in fragment", s.Value)
		}
		current = append(current, sym)
	}
	f.alternatives = append(f.alternatives, current)
	return f, nil
}

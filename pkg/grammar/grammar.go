/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grammar.go
Description: Immutable context-free and probabilistic context-free grammar model for
cfgforge. Construction validates that the grammar is closed (every referenced nonterminal
has a production) and, for PCFGs, that each nonterminal's probabilities sum to one.
*/

package grammar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kleascm/cfgforge/pkg/symbols"
)

// SumTolerance is the allowed drift when checking that a PCFG group sums to one
const SumTolerance = 1e-9

// Production rewrites one nonterminal into a sequence of symbols.
// Probability is zero for plain CFG productions.
type Production struct {
	Lhs         symbols.Symbol
	Rhs         []symbols.Symbol
	Probability float64
}

// NewProduction creates a production from a lhs name and rhs symbols
func NewProduction(lhs string, rhs ...symbols.Symbol) Production {
	return Production{Lhs: symbols.Nonterminal(lhs), Rhs: rhs}
}

// WithProbability returns a copy of p carrying the given probability
func (p Production) WithProbability(prob float64) Production {
	p.Probability = prob
	return p
}

// Equal compares lhs and rhs, ignoring probability
func (p Production) Equal(o Production) bool {
	return p.Lhs == o.Lhs && symbols.EqualSeq(p.Rhs, o.Rhs)
}

// TerminalOnly reports whether the rhs contains no nonterminals
func (p Production) TerminalOnly() bool {
	for _, s := range p.Rhs {
		if s.IsNonterminal() {
			return false
		}
	}
	return true
}

// Body renders the rhs (and probability, if any) in grammar text notation
func (p Production) Body() string {
	parts := make([]string, 0, len(p.Rhs)+1)
	for _, s := range p.Rhs {
		parts = append(parts, s.String())
	}
	if p.Probability > 0 {
		parts = append(parts, "["+strconv.FormatFloat(p.Probability, 'g', -1, 64)+"]")
	}
	return strings.Join(parts, " ")
}

// String renders the production as one grammar text line
func (p Production) String() string {
	return p.Lhs.Value + " -> " + p.Body()
}

func (p Production) clone() Production {
	p.Rhs = append([]symbols.Symbol(nil), p.Rhs...)
	return p
}

// Grammar is an immutable (P)CFG
type Grammar struct {
	start         symbols.Symbol
	productions   []Production
	probabilistic bool

	byLhs        map[symbols.Symbol][]int
	nonterminals []symbols.Symbol
	terminals    []symbols.Symbol
}

// New builds a plain context-free grammar
func New(start string, productions []Production) (*Grammar, error) {
	return build(symbols.Nonterminal(start), productions, false)
}

// NewProbabilistic builds a probabilistic grammar. Every production must
// carry a probability in (0,1] and each lhs group must sum to one.
func NewProbabilistic(start string, productions []Production) (*Grammar, error) {
	return build(symbols.Nonterminal(start), productions, true)
}

// MustNew is New that panics on error, for fixtures
func MustNew(start string, productions []Production) *Grammar {
	g, err := New(start, productions)
	if err != nil {
		panic(err)
	}
	return g
}

func build(start symbols.Symbol, productions []Production, probabilistic bool) (*Grammar, error) {
	g := &Grammar{
		start:         start,
		productions:   make([]Production, 0, len(productions)),
		probabilistic: probabilistic,
		byLhs:         make(map[symbols.Symbol][]int),
	}

	seenTerminal := make(map[symbols.Symbol]bool)
	for i, p := range productions {
		if !p.Lhs.IsNonterminal() || p.Lhs.Value == "" {
			return nil, &PreconditionError{Reason: fmt.Sprintf("production %d has a non-nonterminal lhs %s", i, p.Lhs)}
		}
		p = p.clone()
		if !probabilistic {
			p.Probability = 0
		}
		if _, ok := g.byLhs[p.Lhs]; !ok {
			g.nonterminals = append(g.nonterminals, p.Lhs)
		}
		g.byLhs[p.Lhs] = append(g.byLhs[p.Lhs], i)
		for _, s := range p.Rhs {
			if s.IsTerminal() && !seenTerminal[s] {
				seenTerminal[s] = true
				g.terminals = append(g.terminals, s)
			}
		}
		g.productions = append(g.productions, p)
	}

	if _, ok := g.byLhs[start]; !ok {
		return nil, &UndefinedSymbolError{Symbol: start.Value}
	}
	for _, p := range g.productions {
		for _, s := range p.Rhs {
			if s.IsNonterminal() {
				if _, ok := g.byLhs[s]; !ok {
					return nil, &UndefinedSymbolError{Symbol: s.Value}
				}
			}
		}
	}

	if probabilistic {
		if err := g.checkProbabilities(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Grammar) checkProbabilities() error {
	for _, nt := range g.nonterminals {
		sum := 0.0
		for _, i := range g.byLhs[nt] {
			prob := g.productions[i].Probability
			if prob <= 0 || prob > 1 || math.IsNaN(prob) {
				return &ProbabilityError{Symbol: nt.Value, Reason: fmt.Sprintf("probability %g outside (0,1]", prob)}
			}
			sum += prob
		}
		if math.Abs(sum-1) > SumTolerance {
			return &ProbabilityError{Symbol: nt.Value, Sum: sum}
		}
	}
	return nil
}

// Start returns the start nonterminal
func (g *Grammar) Start() symbols.Symbol { return g.start }

// Probabilistic reports whether this grammar is a PCFG
func (g *Grammar) Probabilistic() bool { return g.probabilistic }

// Len returns the number of productions
func (g *Grammar) Len() int { return len(g.productions) }

// Productions returns a copy of all productions in declaration order
func (g *Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	for i, p := range g.productions {
		out[i] = p.clone()
	}
	return out
}

// ProductionsFor returns the productions whose lhs is nt, in declaration order
func (g *Grammar) ProductionsFor(nt symbols.Symbol) []Production {
	idx := g.byLhs[nt]
	out := make([]Production, len(idx))
	for i, j := range idx {
		out[i] = g.productions[j].clone()
	}
	return out
}

// each calls fn for every production of nt without copying
func (g *Grammar) each(nt symbols.Symbol, fn func(p *Production)) {
	for _, j := range g.byLhs[nt] {
		fn(&g.productions[j])
	}
}

// Nonterminals returns the distinct lhs symbols in declaration order
func (g *Grammar) Nonterminals() []symbols.Symbol {
	return append([]symbols.Symbol(nil), g.nonterminals...)
}

// Terminals returns the distinct terminals in order of first appearance
func (g *Grammar) Terminals() []symbols.Symbol {
	return append([]symbols.Symbol(nil), g.terminals...)
}

// HasNonterminal reports whether nt has at least one production
func (g *Grammar) HasNonterminal(nt symbols.Symbol) bool {
	_, ok := g.byLhs[nt]
	return ok
}

// String serializes the grammar, one production per line. The output is
// accepted by Parse.
func (g *Grammar) String() string {
	var b strings.Builder
	for i, p := range g.productions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.String())
	}
	return b.String()
}

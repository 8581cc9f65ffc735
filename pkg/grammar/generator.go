/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generator.go
Description: Stochastic sentence generation. A sentential form starting at the start
symbol is expanded by substituting random productions for random nonterminal occurrences
until only terminals remain. Attempts are bounded by an iteration cap and a try count.
*/

package grammar

import (
	"slices"
	"strings"

	"github.com/kleascm/cfgforge/pkg/symbols"
)

const (
	DefaultMaxTries      = 5
	DefaultMaxIterations = 10000
)

// Source is the random source threaded through synthesis and generation.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Generator expands grammars into sentences
type Generator struct {
	src           Source
	MaxTries      int
	MaxIterations int
}

// NewGenerator creates a Generator with the default caps
func NewGenerator(src Source) *Generator {
	return &Generator{
		src:           src,
		MaxTries:      DefaultMaxTries,
		MaxIterations: DefaultMaxIterations,
	}
}

// Derive returns the terminal symbols of one generated sentence. It fails
// with GenerationExhaustedError when every try ends with nonterminals left.
func (gen *Generator) Derive(g *Grammar) ([]symbols.Symbol, error) {
	total := 0
	for try := 0; try < gen.MaxTries; try++ {
		form, iterations := gen.expand(g)
		total += iterations
		if form != nil {
			return form, nil
		}
	}
	return nil, &GenerationExhaustedError{Tries: gen.MaxTries, Iterations: total}
}

// Sentence generates one sentence and joins its terminal values with join
func (gen *Generator) Sentence(g *Grammar, join string) (string, error) {
	form, err := gen.Derive(g)
	if err != nil {
		return "", err
	}
	return Join(form, join), nil
}

// Join concatenates symbol values with sep
func Join(form []symbols.Symbol, sep string) string {
	values := make([]string, len(form))
	for i, s := range form {
		values[i] = s.Value
	}
	return strings.Join(values, sep)
}

// expand runs one attempt. It returns nil if the iteration cap was exceeded.
func (gen *Generator) expand(g *Grammar) ([]symbols.Symbol, int) {
	form := []symbols.Symbol{g.Start()}
	positions := make([]int, 0, 8)
	iterations := 0

	for {
		positions = positions[:0]
		for i, s := range form {
			if s.IsNonterminal() {
				positions = append(positions, i)
			}
		}
		if len(positions) == 0 {
			return form, iterations
		}

		at := positions[gen.src.Intn(len(positions))]
		rhs := gen.choose(g, form[at])
		form = slices.Replace(form, at, at+1, rhs...)

		iterations++
		if iterations > gen.MaxIterations {
			return nil, iterations
		}
	}
}

// choose picks a production rhs for nt: uniformly for CFGs, weighted by
// probability for PCFGs.
func (gen *Generator) choose(g *Grammar, nt symbols.Symbol) []symbols.Symbol {
	idx := g.byLhs[nt]
	if !g.probabilistic {
		return g.productions[idx[gen.src.Intn(len(idx))]].Rhs
	}

	total := 0.0
	g.each(nt, func(p *Production) { total += p.Probability })

	r := gen.src.Float64() * total
	for _, j := range idx {
		r -= g.productions[j].Probability
		if r < 0 {
			return g.productions[j].Rhs
		}
	}
	return g.productions[idx[len(idx)-1]].Rhs
}

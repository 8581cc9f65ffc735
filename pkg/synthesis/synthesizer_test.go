/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: synthesizer_test.go
Description: Tests for random grammar synthesis and probability assignment.
*/

package synthesis_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
	"github.com/kleascm/cfgforge/pkg/synthesis"
)

func newSynth(probabilistic bool, seed int64) *synthesis.Synthesizer {
	cfg := synthesis.DefaultConfig()
	cfg.Probabilistic = probabilistic
	return synthesis.NewSynthesizer(cfg, rand.New(rand.NewSource(seed)))
}

func TestEveryNonterminalHasAProduction(t *testing.T) {
	terminals := symbols.Terminals(5)
	nonterminals := symbols.Nonterminals(6)

	for _, probabilistic := range []bool{false, true} {
		for seed := int64(1); seed <= 20; seed++ {
			g, err := newSynth(probabilistic, seed).Synthesize(terminals, nonterminals, 12)
			require.NoError(t, err)

			for _, name := range nonterminals {
				assert.True(t, g.HasNonterminal(symbols.Nonterminal(name)), "seed %d: %s has no production", seed, name)
			}
		}
	}
}

func TestProductionCountAndStartRule(t *testing.T) {
	g, err := newSynth(true, 5).Synthesize(symbols.Terminals(4), symbols.Nonterminals(3), 9)
	require.NoError(t, err)

	assert.Equal(t, 10, g.Len(), "rule count plus the start production")
	first := g.Productions()[0]
	assert.Equal(t, symbols.Nonterminal(symbols.Start), first.Lhs)
	assert.Equal(t, []symbols.Symbol{symbols.Nonterminal("A")}, first.Rhs)
	assert.Equal(t, 1.0, first.Probability)
	assert.Equal(t, symbols.Nonterminal(symbols.Start), g.Start())
}

func TestProductionsAreDistinctAndSorted(t *testing.T) {
	g, err := newSynth(false, 11).Synthesize(symbols.Terminals(3), symbols.Nonterminals(3), 10)
	require.NoError(t, err)

	prods := g.Productions()[1:]
	for i := range prods {
		for j := i + 1; j < len(prods); j++ {
			assert.False(t, prods[i].Equal(prods[j]), "duplicate %s", prods[i])
		}
		if i > 0 {
			assert.LessOrEqual(t, symbols.Compare(prods[i-1].Lhs, prods[i].Lhs), 0)
		}
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g, err := newSynth(true, seed).Synthesize(symbols.Terminals(6), symbols.Nonterminals(4), 15)
		require.NoError(t, err)
		require.True(t, g.Probabilistic())

		for _, nt := range g.Nonterminals() {
			sum := 0.0
			for _, p := range g.ProductionsFor(nt) {
				assert.Greater(t, p.Probability, 0.0)
				sum += p.Probability
			}
			assert.LessOrEqual(t, math.Abs(sum-1), 1e-9, "seed %d: %s sums to %g", seed, nt, sum)
		}
	}
}

func TestSynthesisIsDeterministicForSeed(t *testing.T) {
	a, err := newSynth(true, 77).Synthesize(symbols.Terminals(5), symbols.Nonterminals(5), 10)
	require.NoError(t, err)
	b, err := newSynth(true, 77).Synthesize(symbols.Terminals(5), symbols.Nonterminals(5), 10)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestSynthesizedGrammarRoundTrips(t *testing.T) {
	g, err := newSynth(true, 8).Synthesize(symbols.Terminals(5), symbols.Nonterminals(4), 8)
	require.NoError(t, err)

	back, err := grammar.Parse(g.String())
	require.NoError(t, err)
	assert.Equal(t, g.Len(), back.Len())
	assert.True(t, back.Probabilistic())
}

func TestPreconditions(t *testing.T) {
	tests := []struct {
		name         string
		terminals    []string
		nonterminals []string
		rules        int
	}{
		{"too few rules", []string{"a"}, []string{"A", "B"}, 1},
		{"no terminals", nil, []string{"A"}, 1},
		{"no nonterminals", []string{"a"}, nil, 1},
		{"reserved start", []string{"a"}, []string{"S"}, 1},
		{"repeated nonterminal", []string{"a"}, []string{"A", "A"}, 2},
		{"bad name", []string{"a"}, []string{"A B"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSynth(true, 1).Synthesize(tt.terminals, tt.nonterminals, tt.rules)
			var pe *grammar.PreconditionError
			assert.True(t, errors.As(err, &pe), "got %v", err)
		})
	}
}

func TestSynthesisExhaustion(t *testing.T) {
	// one terminal and one nonterminal allow only four distinct PCFG productions
	cfg := synthesis.DefaultConfig()
	cfg.DrawsPerRule = 50
	s := synthesis.NewSynthesizer(cfg, rand.New(rand.NewSource(2)))

	_, err := s.Synthesize([]string{"a"}, []string{"A"}, 5)
	var exhausted *grammar.SynthesisExhaustedError
	require.True(t, errors.As(err, &exhausted), "got %v", err)
	assert.Equal(t, 250, exhausted.Attempts)
	assert.ErrorIs(t, err, grammar.ErrSynthesisExhausted)
}

func TestTerminalBiasOne(t *testing.T) {
	cfg := synthesis.DefaultConfig()
	cfg.TerminalBias = 1
	s := synthesis.NewSynthesizer(cfg, rand.New(rand.NewSource(4)))

	g, err := s.Synthesize(symbols.Terminals(26), symbols.Nonterminals(3), 6)
	require.NoError(t, err)
	for _, p := range g.Productions()[1:] {
		assert.True(t, p.TerminalOnly(), "%s", p)
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := synthesis.DefaultConfig()
	cfg.TerminalBias = 1.5
	_, err := synthesis.NewSynthesizer(cfg, rand.New(rand.NewSource(1))).Synthesize([]string{"a"}, []string{"A"}, 1)
	assert.ErrorIs(t, err, grammar.ErrPrecondition)
}

func TestAssignProbabilities(t *testing.T) {
	A, B := symbols.Nonterminal("A"), symbols.Nonterminal("B")
	prods := []grammar.Production{
		{Lhs: A, Rhs: []symbols.Symbol{symbols.Terminal("a")}},
		{Lhs: B, Rhs: []symbols.Symbol{symbols.Terminal("b")}},
		{Lhs: A, Rhs: []symbols.Symbol{B}},
		{Lhs: A, Rhs: []symbols.Symbol{A, B}},
	}
	out := synthesis.AssignProbabilities(prods, rand.New(rand.NewSource(10)))

	require.Len(t, out, 4)
	assert.Zero(t, prods[0].Probability, "input is not modified")
	assert.Equal(t, 1.0, out[1].Probability, "single production takes all mass")
	assert.InDelta(t, 1.0, out[0].Probability+out[2].Probability+out[3].Probability, 1e-12)
	for _, p := range out {
		assert.Greater(t, p.Probability, 0.0)
	}
}

func TestAssignGrammar(t *testing.T) {
	g := grammar.MustParse("S -> A\nA -> \"a\" | \"b\" A | A A")
	pg, err := synthesis.AssignGrammar(g, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.True(t, pg.Probabilistic())
	assert.Equal(t, 1.0, pg.ProductionsFor(symbols.Nonterminal("S"))[0].Probability)
}

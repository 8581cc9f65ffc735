/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metagrammar_test.go
Description: Tests for the rule meta-grammar and fragment decoding.
*/

package synthesis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

func TestProbabilisticMetaGrammarWeights(t *testing.T) {
	meta, err := buildMetaGrammar([]string{"a", "b"}, []string{"A"}, true, 0.4)
	require.NoError(t, err)
	require.True(t, meta.grammar.Probabilistic())

	content := meta.grammar.ProductionsFor(symbols.Nonterminal(metaContent))
	require.Len(t, content, 4)
	assert.InDelta(t, 0.4, content[0].Probability, 1e-12)
	assert.InDelta(t, 0.2, content[1].Probability, 1e-12)
}

func TestZeroBiasDropsTerminalShape(t *testing.T) {
	meta, err := buildMetaGrammar([]string{"a"}, []string{"A"}, true, 0)
	require.NoError(t, err)
	assert.Len(t, meta.grammar.ProductionsFor(symbols.Nonterminal(metaContent)), 3)
}

func TestDecodeKeepsSymbolKinds(t *testing.T) {
	// "A" is both a terminal and a nonterminal of the target alphabet
	meta, err := buildMetaGrammar([]string{"A", "|"}, []string{"A"}, false, 0)
	require.NoError(t, err)

	f, err := meta.decode([]symbols.Symbol{
		tok("A"), tok(arrowToken), tok(`"A"`), tok("A"), tok(alternationToken), tok(`"|"`),
	})
	require.NoError(t, err)

	assert.Equal(t, symbols.Nonterminal("A"), f.lhs)
	require.Len(t, f.alternatives, 2)
	assert.Equal(t, []symbols.Symbol{symbols.Terminal("A"), symbols.Nonterminal("A")}, f.alternatives[0])
	assert.Equal(t, []symbols.Symbol{symbols.Terminal("|")}, f.alternatives[1])
}

func TestDecodeRejectsMalformed(t *testing.T) {
	meta, err := buildMetaGrammar([]string{"a"}, []string{"A"}, false, 0)
	require.NoError(t, err)

	_, err = meta.decode([]symbols.Symbol{tok("A"), tok("a")})
	assert.Error(t, err)
	_, err = meta.decode([]symbols.Symbol{tok(`"a"`), tok(arrowToken), tok("A")})
	assert.Error(t, err)
	_, err = meta.decode([]symbols.Symbol{tok("A"), tok(arrowToken), tok("Z")})
	assert.Error(t, err)
}

func TestPlainMetaGrammarSentencesDecode(t *testing.T) {
	meta, err := buildMetaGrammar(symbols.Terminals(3), symbols.Nonterminals(3), false, 0)
	require.NoError(t, err)
	gen := grammar.NewGenerator(rand.New(rand.NewSource(6)))

	for i := 0; i < 100; i++ {
		sentence, err := gen.Derive(meta.grammar)
		require.NoError(t, err)
		f, err := meta.decode(sentence)
		require.NoError(t, err)
		for _, alt := range f.alternatives {
			assert.NotEmpty(t, alt)
		}
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: symbols_test.go
Description: Tests for grammar symbols and alphabet generation.
*/

package symbols_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kleascm/cfgforge/pkg/symbols"
)

func TestSymbolKinds(t *testing.T) {
	a := symbols.Terminal("a")
	A := symbols.Nonterminal("A")

	assert.True(t, a.IsTerminal())
	assert.False(t, a.IsNonterminal())
	assert.True(t, A.IsNonterminal())
	assert.NotEqual(t, symbols.Terminal("A"), A, "same text, different kind")

	assert.Equal(t, `"a"`, a.String())
	assert.Equal(t, "A", A.String())
	assert.Equal(t, "terminal", symbols.KindTerminal.String())
}

func TestCompareOrdersNonterminalsFirst(t *testing.T) {
	seq := []symbols.Symbol{
		symbols.Terminal("b"),
		symbols.Nonterminal("B"),
		symbols.Terminal("a"),
		symbols.Nonterminal("A"),
	}
	slices.SortFunc(seq, symbols.Compare)

	assert.Equal(t, []symbols.Symbol{
		symbols.Nonterminal("A"),
		symbols.Nonterminal("B"),
		symbols.Terminal("a"),
		symbols.Terminal("b"),
	}, seq)
}

func TestCompareSeq(t *testing.T) {
	a := []symbols.Symbol{symbols.Nonterminal("A")}
	ab := []symbols.Symbol{symbols.Nonterminal("A"), symbols.Terminal("b")}

	assert.Equal(t, -1, symbols.CompareSeq(a, ab))
	assert.Equal(t, 1, symbols.CompareSeq(ab, a))
	assert.True(t, symbols.EqualSeq(ab, slices.Clone(ab)))
}

func TestAlphabets(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, symbols.Terminals(3))
	assert.Len(t, symbols.Terminals(30), 26)

	nts := symbols.Nonterminals(20)
	assert.Len(t, nts, 20)
	assert.NotContains(t, nts, symbols.Start)
	assert.Equal(t, "T", nts[18], "S is skipped")
	assert.Len(t, symbols.Nonterminals(40), 25)
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: set.go
Description: Set of nonterminals used by the structural analyses.
*/

package analysis

import (
	"slices"
	"strings"

	"github.com/kleascm/cfgforge/pkg/symbols"
)

// Set is an unordered set of symbols
type Set map[symbols.Symbol]struct{}

// NewSet creates a set holding the given symbols
func NewSet(of ...symbols.Symbol) Set {
	s := make(Set, len(of))
	for _, sym := range of {
		s.Add(sym)
	}
	return s
}

// Add inserts sym. Adding an existing element has no effect.
func (s Set) Add(sym symbols.Symbol) { s[sym] = struct{}{} }

// Has reports membership
func (s Set) Has(sym symbols.Symbol) bool {
	_, ok := s[sym]
	return ok
}

// Len returns the number of elements
func (s Set) Len() int { return len(s) }

// Equal reports whether both sets hold the same elements
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for sym := range s {
		if !o.Has(sym) {
			return false
		}
	}
	return true
}

// Union returns a new set with the elements of s and o
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for sym := range s {
		out.Add(sym)
	}
	for sym := range o {
		out.Add(sym)
	}
	return out
}

// Difference returns a new set with the elements of s not in o
func (s Set) Difference(o Set) Set {
	out := make(Set)
	for sym := range s {
		if !o.Has(sym) {
			out.Add(sym)
		}
	}
	return out
}

// Sorted returns the elements in symbol order
func (s Set) Sorted() []symbols.Symbol {
	out := make([]symbols.Symbol, 0, len(s))
	for sym := range s {
		out = append(out, sym)
	}
	slices.SortFunc(out, symbols.Compare)
	return out
}

// Names returns the sorted element values
func (s Set) Names() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, sym := range sorted {
		out[i] = sym.Value
	}
	return out
}

// String renders the set as {A, B, C}
func (s Set) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: symbols.go
Description: Grammar symbols and symbol alphabets for cfgforge. A Symbol is a tagged
terminal/nonterminal value decided once at construction. The alphabet helpers produce
the disjoint terminal and nonterminal pools used to seed grammar synthesis.
*/

package symbols

import (
	"fmt"
	"strconv"
)

// Kind tags a Symbol as terminal or nonterminal
type Kind int

const (
	KindNonterminal Kind = iota
	KindTerminal
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNonterminal:
		return "nonterminal"
	case KindTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Start is the reserved start symbol name
const Start = "S"

// Symbol is an immutable grammar symbol. The zero value is the nonterminal
// with an empty name and is never produced by the constructors.
type Symbol struct {
	Kind  Kind
	Value string
}

// Terminal creates a terminal symbol
func Terminal(value string) Symbol {
	return Symbol{Kind: KindTerminal, Value: value}
}

// Nonterminal creates a nonterminal symbol
func Nonterminal(name string) Symbol {
	return Symbol{Kind: KindNonterminal, Value: name}
}

// IsTerminal reports whether s is a terminal
func (s Symbol) IsTerminal() bool {
	return s.Kind == KindTerminal
}

// IsNonterminal reports whether s is a nonterminal
func (s Symbol) IsNonterminal() bool {
	return s.Kind == KindNonterminal
}

// String renders the symbol in grammar text notation: nonterminals bare,
// terminals double-quoted.
func (s Symbol) String() string {
	if s.IsTerminal() {
		return strconv.Quote(s.Value)
	}
	return s.Value
}

// Less orders symbols by (kind, value). Nonterminals sort first.
func Less(a, b Symbol) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Value < b.Value
}

// Compare is the three-way form of Less, for slices.SortFunc
func Compare(a, b Symbol) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// CompareSeq compares two symbol sequences lexicographically
func CompareSeq(a, b []Symbol) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// EqualSeq reports whether two symbol sequences are identical
func EqualSeq(a, b []Symbol) bool {
	return CompareSeq(a, b) == 0
}

// Terminals returns the first n lowercase letters.
func Terminals(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n && i < 26; i++ {
		out = append(out, string(rune('a'+i)))
	}
	return out
}

// Nonterminals returns n uppercase letters in alphabetical order, skipping the
// reserved start symbol. At most 25 names are available.
func Nonterminals(n int) []string {
	out := make([]string, 0, n)
	for r := 'A'; r <= 'Z' && len(out) < n; r++ {
		name := string(r)
		if name == Start {
			continue
		}
		out = append(out, name)
	}
	return out
}

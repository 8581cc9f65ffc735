/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: enumerate.go
Description: Brute-force enumeration of the strings a grammar accepts, up to a length.
Every terminal product of length 1..maxLength is tested with a Deriver.
*/

package earley

import (
	"iter"
	"strings"

	"github.com/kleascm/cfgforge/pkg/grammar"
)

// ValidStrings yields, shortest first and in product order of terminals,
// every string of at most maxLength tokens that d accepts for g. Tokens are
// concatenated without separator. Enumeration stops at the first Deriver
// error, which is reported through errp when it is non-nil.
func ValidStrings(g *grammar.Grammar, d grammar.Deriver, terminals []string, maxLength int, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		if len(terminals) == 0 {
			return
		}
		for length := 1; length <= maxLength; length++ {
			digits := make([]int, length)
			tokens := make([]string, length)
			for {
				for i, dgt := range digits {
					tokens[i] = terminals[dgt]
				}
				ok, err := d.Derive(g, tokens)
				if err != nil {
					if errp != nil {
						*errp = err
					}
					return
				}
				if ok && !yield(strings.Join(tokens, "")) {
					return
				}
				if !increment(digits, len(terminals)) {
					break
				}
			}
		}
	}
}

// increment advances an odometer of base-n digits, rightmost fastest
func increment(digits []int, n int) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < n {
			return true
		}
		digits[i] = 0
	}
	return false
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: deriver.go
Description: Membership-testing capability. Synthesis, analysis and generation never parse;
callers that need to know whether a token sequence belongs to a grammar inject a Deriver.
*/

package grammar

// Deriver attempts to derive a token sequence from a grammar's start symbol
type Deriver interface {
	Derive(g *Grammar, tokens []string) (bool, error)
}

// DeriverFunc adapts a function to the Deriver interface
type DeriverFunc func(g *Grammar, tokens []string) (bool, error)

// Derive calls f
func (f DeriverFunc) Derive(g *Grammar, tokens []string) (bool, error) {
	return f(g, tokens)
}

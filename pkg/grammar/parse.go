/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parse.go
Description: Reader for the line-oriented grammar text format ("LHS -> RHS1 | RHS2",
terminals double-quoted, optional "[p]" probability per alternative). Lexing and parsing
are done with participle; the result is validated through New/NewProbabilistic.
*/

package grammar

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/kleascm/cfgforge/pkg/symbols"
)

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Float", Pattern: `\d+(\.\d*)?([eE][-+]?\d+)?|\.\d+([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[|\[\]]`},
	{Name: "Newline", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

type fileNode struct {
	Rules []*ruleNode `Newline* ( @@ Newline* )*`
}

type ruleNode struct {
	Pos          lexer.Position
	Lhs          string             `@Ident "->"`
	Alternatives []*alternativeNode `@@ ( "|" Newline* @@ )*`
}

type alternativeNode struct {
	Pos         lexer.Position
	Symbols     []*symbolNode `@@+`
	Probability string        `( "[" @Float "]" )?`
}

type symbolNode struct {
	Terminal    string `  @String`
	Nonterminal string `| @Ident`
}

var textParser = participle.MustBuild[fileNode](
	participle.Lexer(textLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse reads grammar text. The first rule's lhs is the start symbol. The
// grammar is probabilistic when its alternatives carry "[p]"; mixing
// weighted and unweighted alternatives is an error.
func Parse(text string) (*Grammar, error) {
	file, err := textParser.ParseString("", text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(file.Rules) == 0 {
		return nil, &ParseError{Msg: "no productions"}
	}

	var (
		productions []Production
		weighted    int
		unweighted  int
	)
	for _, rule := range file.Rules {
		for _, alt := range rule.Alternatives {
			p := Production{Lhs: symbols.Nonterminal(rule.Lhs)}
			for _, sym := range alt.Symbols {
				if sym.Nonterminal != "" {
					p.Rhs = append(p.Rhs, symbols.Nonterminal(sym.Nonterminal))
					continue
				}
				value, err := strconv.Unquote(sym.Terminal)
				if err != nil {
					return nil, &ParseError{Pos: alt.Pos.String(), Msg: fmt.Sprintf("bad terminal %s", sym.Terminal), Err: err}
				}
				p.Rhs = append(p.Rhs, symbols.Terminal(value))
			}

			if alt.Probability == "" {
				unweighted++
			} else {
				prob, err := strconv.ParseFloat(alt.Probability, 64)
				if err != nil {
					return nil, &ParseError{Pos: alt.Pos.String(), Msg: "bad probability", Err: err}
				}
				p.Probability = prob
				weighted++
			}
			productions = append(productions, p)
		}
	}

	if weighted > 0 && unweighted > 0 {
		return nil, &ParseError{Msg: fmt.Sprintf("%d alternatives carry probabilities and %d do not", weighted, unweighted)}
	}

	start := file.Rules[0].Lhs
	if weighted > 0 {
		return NewProbabilistic(start, productions)
	}
	return New(start, productions)
}

// MustParse is Parse that panics on error, for fixtures
func MustParse(text string) *Grammar {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: synthesizer.go
Description: Random production synthesis. Right-hand sides are generated by expanding the
meta-grammar; a first pass gives every nonterminal one production, a second pass adds
random distinct productions until the requested rule count is reached. Probabilistic
grammars then get their probability mass assigned per nonterminal.
*/

package synthesis

import (
	"fmt"
	"io"
	"regexp"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/symbols"
)

// Config holds synthesis parameters
type Config struct {
	Probabilistic bool    `json:"probabilistic" mapstructure:"probabilistic"`
	TerminalBias  float64 `json:"terminal_bias" mapstructure:"terminal_bias"` // weight of terminal-only rules (PCFG only)
	DrawsPerRule  int     `json:"draws_per_rule" mapstructure:"draws_per_rule"`
	MaxTries      int     `json:"max_tries" mapstructure:"max_tries"`           // meta-grammar generation tries
	MaxIterations int     `json:"max_iterations" mapstructure:"max_iterations"` // meta-grammar expansions per try
}

// DefaultConfig returns the configuration matching the uniform meta-grammar
func DefaultConfig() *Config {
	return &Config{
		Probabilistic: true,
		TerminalBias:  0.25,
		DrawsPerRule:  1000,
		MaxTries:      grammar.DefaultMaxTries,
		MaxIterations: grammar.DefaultMaxIterations,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.TerminalBias < 0 || c.TerminalBias > 1 {
		return &grammar.PreconditionError{Reason: fmt.Sprintf("terminal bias %g outside [0,1]", c.TerminalBias)}
	}
	if c.DrawsPerRule <= 0 {
		return &grammar.PreconditionError{Reason: "draws per rule must be positive"}
	}
	if c.MaxTries <= 0 || c.MaxIterations <= 0 {
		return &grammar.PreconditionError{Reason: "generation caps must be positive"}
	}
	return nil
}

var nonterminalName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Synthesizer builds random grammars
type Synthesizer struct {
	config *Config
	src    grammar.Source
	gen    *grammar.Generator
	logger logrus.FieldLogger
}

// NewSynthesizer creates a Synthesizer. A nil config uses DefaultConfig.
func NewSynthesizer(config *Config, src grammar.Source) *Synthesizer {
	if config == nil {
		config = DefaultConfig()
	}
	gen := grammar.NewGenerator(src)
	gen.MaxTries = config.MaxTries
	gen.MaxIterations = config.MaxIterations

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &Synthesizer{
		config: config,
		src:    src,
		gen:    gen,
		logger: discard,
	}
}

// SetLogger sets the logger used for synthesis diagnostics
func (s *Synthesizer) SetLogger(logger logrus.FieldLogger) {
	s.logger = logger
}

// Config returns the synthesizer configuration
func (s *Synthesizer) Config() *Config {
	return s.config
}

// Synthesize returns a grammar with exactly ruleCount distinct synthesized
// productions plus the start production S -> nonterminals[0].
func (s *Synthesizer) Synthesize(terminals, nonterminals []string, ruleCount int) (*grammar.Grammar, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if err := checkAlphabet(terminals, nonterminals, ruleCount); err != nil {
		return nil, err
	}

	meta, err := buildMetaGrammar(terminals, nonterminals, s.config.Probabilistic, s.config.TerminalBias)
	if err != nil {
		return nil, err
	}

	prods := make([]grammar.Production, 0, ruleCount+1)
	draws := 0

	// every nonterminal gets the first alternative of its own fragment
	for _, name := range nonterminals {
		draws++
		f, err := s.fragment(meta)
		if err != nil {
			return nil, &grammar.SynthesisExhaustedError{Attempts: draws, Err: err}
		}
		prods = append(prods, grammar.Production{Lhs: symbols.Nonterminal(name), Rhs: f.alternatives[0]})
	}

	limit := s.config.DrawsPerRule * ruleCount
	for len(prods) < ruleCount {
		if draws >= limit {
			return nil, &grammar.SynthesisExhaustedError{
				Attempts: draws,
				Err:      fmt.Errorf("only %d of %d distinct productions found", len(prods), ruleCount),
			}
		}
		draws++
		f, err := s.fragment(meta)
		if err != nil {
			return nil, &grammar.SynthesisExhaustedError{Attempts: draws, Err: err}
		}
		for _, rhs := range f.alternatives {
			p := grammar.Production{Lhs: f.lhs, Rhs: rhs}
			if containsProduction(prods, p) {
				continue
			}
			prods = append(prods, p)
			if len(prods) == ruleCount {
				break
			}
		}
	}

	if s.config.Probabilistic {
		prods = AssignProbabilities(prods, s.src)
	}
	slices.SortStableFunc(prods, compareProductions)

	start := grammar.Production{
		Lhs:         symbols.Nonterminal(symbols.Start),
		Rhs:         []symbols.Symbol{symbols.Nonterminal(nonterminals[0])},
		Probability: 1,
	}
	prods = append([]grammar.Production{start}, prods...)

	s.logger.WithFields(logrus.Fields{
		"rules":         ruleCount,
		"draws":         draws,
		"probabilistic": s.config.Probabilistic,
	}).Debug("Grammar synthesized")

	if s.config.Probabilistic {
		return grammar.NewProbabilistic(symbols.Start, prods)
	}
	return grammar.New(symbols.Start, prods)
}

// fragment expands the meta-grammar once and decodes the result
func (s *Synthesizer) fragment(meta *metaGrammar) (fragment, error) {
	sentence, err := s.gen.Derive(meta.grammar)
	if err != nil {
		return fragment{}, err
	}
	return meta.decode(sentence)
}

func checkAlphabet(terminals, nonterminals []string, ruleCount int) error {
	if len(terminals) == 0 || len(nonterminals) == 0 {
		return &grammar.PreconditionError{Reason: "terminal and nonterminal alphabets must not be empty"}
	}
	if ruleCount < len(nonterminals) {
		return &grammar.PreconditionError{
			Reason: fmt.Sprintf("rule count %d is smaller than the %d nonterminals", ruleCount, len(nonterminals)),
		}
	}

	seen := make(map[string]bool)
	for _, t := range terminals {
		if t == "" || seen["t"+t] {
			return &grammar.PreconditionError{Reason: fmt.Sprintf("terminal %q is empty or repeated", t)}
		}
		seen["t"+t] = true
	}
	for _, n := range nonterminals {
		if !nonterminalName.MatchString(n) || seen["n"+n] {
			return &grammar.PreconditionError{Reason: fmt.Sprintf("nonterminal %q is invalid or repeated", n)}
		}
		if n == symbols.Start {
			return &grammar.PreconditionError{Reason: fmt.Sprintf("nonterminal %q is reserved for the start symbol", n)}
		}
		seen["n"+n] = true
	}
	return nil
}

func containsProduction(prods []grammar.Production, p grammar.Production) bool {
	for _, q := range prods {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

func compareProductions(a, b grammar.Production) int {
	if c := symbols.Compare(a.Lhs, b.Lhs); c != 0 {
		return c
	}
	return symbols.CompareSeq(a.Rhs, b.Rhs)
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for grammar construction, synthesis, analysis and sentence
generation. Every bounded-retry failure reports the attempts it consumed.
*/

package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds, matched with errors.Is
var (
	ErrPrecondition        = errors.New("precondition violated")
	ErrSynthesisExhausted  = errors.New("grammar synthesis exhausted")
	ErrUndefinedSymbol     = errors.New("undefined nonterminal")
	ErrNonTransient        = errors.New("grammar is not transient")
	ErrGenerationExhausted = errors.New("grammar too complex to generate a sentence")
	ErrProbability         = errors.New("invalid production probabilities")
	ErrParse               = errors.New("grammar text is malformed")
)

// PreconditionError reports a caller mistake. It is never retried.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPrecondition, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// SynthesisExhaustedError reports that a synthesis attempt ran out of budget
type SynthesisExhaustedError struct {
	Attempts int
	Err      error
}

func (e *SynthesisExhaustedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s after %d attempts: %v", ErrSynthesisExhausted, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s after %d attempts", ErrSynthesisExhausted, e.Attempts)
}

func (e *SynthesisExhaustedError) Is(target error) bool { return target == ErrSynthesisExhausted }

func (e *SynthesisExhaustedError) Unwrap() error { return e.Err }

// UndefinedSymbolError reports a nonterminal that is referenced but has no production
type UndefinedSymbolError struct {
	Symbol string
}

func (e *UndefinedSymbolError) Error() string {
	return fmt.Sprintf("%s: %s has no productions", ErrUndefinedSymbol, e.Symbol)
}

func (e *UndefinedSymbolError) Is(target error) bool { return target == ErrUndefinedSymbol }

// NonTransientGrammarError is the soft failure raised for a grammar whose
// unproductive nonterminals are not exactly its unreachable ones.
type NonTransientGrammarError struct {
	Unproductive []string
	Unreachable  []string
}

func (e *NonTransientGrammarError) Error() string {
	return fmt.Sprintf("%s: unproductive {%s}, unreachable {%s}", ErrNonTransient,
		strings.Join(e.Unproductive, ", "), strings.Join(e.Unreachable, ", "))
}

func (e *NonTransientGrammarError) Is(target error) bool { return target == ErrNonTransient }

// GenerationExhaustedError reports a sentence generation that hit its try and iteration caps
type GenerationExhaustedError struct {
	Tries      int
	Iterations int
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("%s (%d tries, %d expansions)", ErrGenerationExhausted, e.Tries, e.Iterations)
}

func (e *GenerationExhaustedError) Is(target error) bool { return target == ErrGenerationExhausted }

// ProbabilityError reports an unnormalized or out-of-range PCFG
type ProbabilityError struct {
	Symbol string
	Sum    float64
	Reason string
}

func (e *ProbabilityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", ErrProbability, e.Symbol, e.Reason)
	}
	return fmt.Sprintf("%s: productions of %s sum to %g", ErrProbability, e.Symbol, e.Sum)
}

func (e *ProbabilityError) Is(target error) bool { return target == ErrProbability }

// ParseError wraps a failure to read grammar text
type ParseError struct {
	Pos string
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(ErrParse.Error())
	if e.Pos != "" {
		b.WriteString(" at ")
		b.WriteString(e.Pos)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline.go
Description: Grammar acquisition loop. Synthesizes fresh grammars until one passes the
transience check or the try budget runs out. Exhausted synthesis attempts and
non-transient grammars are discarded whole and retried; caller mistakes fail immediately.
*/

package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kleascm/cfgforge/pkg/analysis"
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/synthesis"
)

// DefaultTries is the acquisition budget used when none is configured
const DefaultTries = 1000

// Request describes the grammar to acquire
type Request struct {
	Terminals    []string
	Nonterminals []string
	Rules        int
}

// Result is an accepted grammar with its analysis
type Result struct {
	RunID    string
	Grammar  *grammar.Grammar
	Report   *analysis.Report
	Attempts int
}

// AttemptsExhaustedError reports that no acceptable grammar was found
type AttemptsExhaustedError struct {
	Attempts int
	Last     error
}

func (e *AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("could not generate a grammar in %d tries: %v", e.Attempts, e.Last)
}

func (e *AttemptsExhaustedError) Unwrap() error { return e.Last }

// Pipeline acquires transient grammars
type Pipeline struct {
	synth     *synthesis.Synthesizer
	tries     int
	reporters []Reporter
}

// New creates a Pipeline. tries <= 0 uses DefaultTries.
func New(synth *synthesis.Synthesizer, tries int) *Pipeline {
	if tries <= 0 {
		tries = DefaultTries
	}
	return &Pipeline{synth: synth, tries: tries}
}

// AddReporter registers a reporter for attempt events
func (p *Pipeline) AddReporter(r Reporter) {
	p.reporters = append(p.reporters, r)
}

// Acquire synthesizes grammars until a transient one is found
func (p *Pipeline) Acquire(req Request) (*Result, error) {
	runID := uuid.New().String()

	var last error
	for attempt := 1; attempt <= p.tries; attempt++ {
		g, err := p.synth.Synthesize(req.Terminals, req.Nonterminals, req.Rules)
		if err != nil {
			if !errors.Is(err, grammar.ErrSynthesisExhausted) {
				return nil, err
			}
			last = err
			p.notifyAttempt(runID, attempt, err)
			continue
		}

		report := analysis.Analyze(g)
		if err := report.Err(); err != nil {
			last = err
			p.notifyAttempt(runID, attempt, err)
			continue
		}

		p.notifyAttempt(runID, attempt, nil)
		res := &Result{RunID: runID, Grammar: g, Report: report, Attempts: attempt}
		for _, r := range p.reporters {
			r.OnAccepted(res)
		}
		return res, nil
	}
	return nil, &AttemptsExhaustedError{Attempts: p.tries, Last: last}
}

func (p *Pipeline) notifyAttempt(runID string, attempt int, err error) {
	for _, r := range p.reporters {
		r.OnAttempt(runID, attempt, err)
	}
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter hooks for the acquisition loop and a logging implementation.
*/

package pipeline

import (
	"github.com/kleascm/cfgforge/pkg/logging"
)

// Reporter is notified of acquisition events
type Reporter interface {
	// OnAttempt is called after every synthesis attempt; err is nil for the accepted one.
	OnAttempt(runID string, attempt int, err error)
	// OnAccepted is called once with the accepted grammar.
	OnAccepted(res *Result)
}

// LoggerReporter logs acquisition events
type LoggerReporter struct {
	logger *logging.Logger
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger *logging.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnAttempt logs one attempt
func (r *LoggerReporter) OnAttempt(runID string, attempt int, err error) {
	r.logger.LogGrammarAttempt(runID, attempt, err)
}

// OnAccepted logs the accepted grammar
func (r *LoggerReporter) OnAccepted(res *Result) {
	r.logger.LogGrammarAccepted(res.RunID, res.Attempts, res.Grammar.Len(), res.Grammar.Probabilistic())
}

// CountingReporter tallies rejected attempts by kind
type CountingReporter struct {
	Attempts    int
	Rejected    int
	Accepted    int
	LastRejects []error
}

// OnAttempt counts one attempt
func (r *CountingReporter) OnAttempt(runID string, attempt int, err error) {
	r.Attempts++
	if err != nil {
		r.Rejected++
		r.LastRejects = append(r.LastRejects, err)
	}
}

// OnAccepted counts the accepted grammar
func (r *CountingReporter) OnAccepted(res *Result) {
	r.Accepted++
}

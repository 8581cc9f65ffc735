/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: builder.go
Description: Builder turns an accepted grammar into a dataset: it saves the grammar, generates
the requested documents into a sink and logs progress after each one.
*/

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/logging"
)

// Stats summarizes a finished build
type Stats struct {
	RunID     string        `json:"run_id"`
	Grammar   string        `json:"grammar"`
	Documents []string      `json:"documents"`
	Sentences int           `json:"sentences"`
	Failures  int           `json:"failures"`
	Duration  time.Duration `json:"duration"`
}

// Builder writes datasets into a Sink
type Builder struct {
	sink    Sink
	gen     *grammar.Generator
	options Options
	logger  *logging.Logger
}

// NewBuilder creates a Builder. logger may be nil.
func NewBuilder(sink Sink, gen *grammar.Generator, options Options, logger *logging.Logger) (*Builder, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return &Builder{sink: sink, gen: gen, options: options, logger: logger}, nil
}

// Build saves g under suffix and writes the configured number of documents.
// A document whose generation exhausts its tries is counted as a failure and skipped.
func (b *Builder) Build(ctx context.Context, runID, suffix string, g *grammar.Grammar) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: runID}

	loc, err := b.sink.SaveGrammar(ctx, runID, suffix, g)
	if err != nil {
		return nil, err
	}
	stats.Grammar = loc

	total := b.options.Documents
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		doc, err := Document(b.gen, g, b.options.Sentences, b.options.TokenJoin, b.options.SentenceJoin)
		if err != nil {
			stats.Failures++
			if b.logger != nil {
				b.logger.Warning("Document skipped", map[string]interface{}{
					"run_id":   runID,
					"document": i,
					"error":    err.Error(),
				})
			}
			continue
		}

		loc, err := b.sink.SaveDocument(ctx, runID, i, doc)
		if err != nil {
			return stats, fmt.Errorf("document %d: %w", i, err)
		}
		stats.Documents = append(stats.Documents, loc)
		stats.Sentences += b.options.Sentences
		if b.logger != nil {
			b.logger.LogDocument(runID, i, total, loc)
		}
	}

	stats.Duration = time.Since(start)
	if b.logger != nil {
		b.logger.LogStats(runID, len(stats.Documents), stats.Sentences, stats.Failures)
	}
	return stats, nil
}

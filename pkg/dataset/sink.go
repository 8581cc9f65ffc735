/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sink.go
Description: Dataset sinks persist accepted grammars and generated documents. FileSink writes
plain text files in the grammars/ and documents/ layout.
*/

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/cfgforge/pkg/grammar"
)

// Sink stores grammars and documents of a run
type Sink interface {
	// SaveGrammar stores g under suffix and returns where it went
	SaveGrammar(ctx context.Context, runID, suffix string, g *grammar.Grammar) (string, error)
	// SaveDocument stores document number index (1-based) and returns where it went
	SaveDocument(ctx context.Context, runID string, index int, doc string) (string, error)
	Close() error
}

// FileSink writes grammars to <dir>/grammars/grammar_<suffix>.txt and documents
// to <dir>/documents/<prefix>_<index>.txt
type FileSink struct {
	dir    string
	prefix string
}

// NewFileSink creates the output directories and returns the sink
func NewFileSink(dir, prefix string) (*FileSink, error) {
	for _, sub := range []string{"grammars", "documents"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}
	return &FileSink{dir: dir, prefix: prefix}, nil
}

// GrammarPath returns the file a grammar with suffix is saved to
func (s *FileSink) GrammarPath(suffix string) string {
	return filepath.Join(s.dir, "grammars", fmt.Sprintf("grammar_%s.txt", suffix))
}

// DocumentPath returns the file document index is saved to
func (s *FileSink) DocumentPath(index int) string {
	return filepath.Join(s.dir, "documents", fmt.Sprintf("%s_%d.txt", s.prefix, index))
}

// SaveGrammar writes g in grammar text format
func (s *FileSink) SaveGrammar(ctx context.Context, runID, suffix string, g *grammar.Grammar) (string, error) {
	path := s.GrammarPath(suffix)
	if err := os.WriteFile(path, []byte(g.String()+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write grammar: %w", err)
	}
	return path, nil
}

// SaveDocument writes one document file
func (s *FileSink) SaveDocument(ctx context.Context, runID string, index int, doc string) (string, error) {
	path := s.DocumentPath(index)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

// Close is a no-op for files
func (s *FileSink) Close() error { return nil }

// LoadGrammar reads a grammar file
func LoadGrammar(path string) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}
	g, err := grammar.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: document.go
Description: Documents are runs of generated sentences joined by a separator.
*/

package dataset

import (
	"fmt"
	"strings"

	"github.com/kleascm/cfgforge/pkg/grammar"
)

// Options controls how documents are assembled
type Options struct {
	Documents      int    `json:"documents" mapstructure:"documents" toml:"documents"`
	Sentences      int    `json:"sentences" mapstructure:"sentences" toml:"sentences"`
	TokenJoin      string `json:"token_join" mapstructure:"token_join" toml:"token_join"`
	SentenceJoin   string `json:"sentence_join" mapstructure:"sentence_join" toml:"sentence_join"`
	FilenamePrefix string `json:"filename_prefix" mapstructure:"filename_prefix" toml:"filename_prefix"`
}

// DefaultOptions returns five documents of five space-joined sentences
func DefaultOptions() Options {
	return Options{
		Documents:      5,
		Sentences:      5,
		TokenJoin:      " ",
		SentenceJoin:   ".",
		FilenamePrefix: "document",
	}
}

// Validate checks the options
func (o Options) Validate() error {
	if o.Documents < 0 || o.Sentences <= 0 {
		return &grammar.PreconditionError{Reason: fmt.Sprintf("need a non-negative document count and a positive sentence count, got %d and %d", o.Documents, o.Sentences)}
	}
	if o.FilenamePrefix == "" {
		return &grammar.PreconditionError{Reason: "filename prefix must not be empty"}
	}
	return nil
}

// Document generates n sentences from g and joins them
func Document(gen *grammar.Generator, g *grammar.Grammar, n int, tokenJoin, sentenceJoin string) (string, error) {
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := gen.Sentence(g, tokenJoin)
		if err != nil {
			return "", fmt.Errorf("sentence %d: %w", i+1, err)
		}
		sentences = append(sentences, s)
	}
	return strings.Join(sentences, sentenceJoin), nil
}

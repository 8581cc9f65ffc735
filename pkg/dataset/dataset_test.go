/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dataset_test.go
Description: Tests for document generation, the file and SQLite sinks, manifests and the builder.
*/

package dataset_test

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/cfgforge/pkg/dataset"
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/logging"
)

const fixture = `S -> A [1]
A -> "a" [0.5] | "b" B [0.5]
B -> "c" [1]`

func newGen(seed int64) *grammar.Generator {
	return grammar.NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestDocument(t *testing.T) {
	g := grammar.MustParse(fixture)

	doc, err := dataset.Document(newGen(1), g, 4, " ", ".")
	require.NoError(t, err)

	sentences := strings.Split(doc, ".")
	require.Len(t, sentences, 4)
	for _, s := range sentences {
		assert.Contains(t, []string{"a", "b c"}, s)
	}
}

func TestDocumentPropagatesExhaustion(t *testing.T) {
	g := grammar.MustParse("S -> A\nA -> \"x\" A")
	gen := newGen(1)
	gen.MaxIterations = 20

	_, err := dataset.Document(gen, g, 2, " ", ".")
	assert.ErrorIs(t, err, grammar.ErrGenerationExhausted)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, dataset.DefaultOptions().Validate())

	opts := dataset.DefaultOptions()
	opts.Sentences = 0
	assert.ErrorIs(t, opts.Validate(), grammar.ErrPrecondition)

	opts = dataset.DefaultOptions()
	opts.FilenamePrefix = ""
	assert.Error(t, opts.Validate())
}

func TestFileSinkLayout(t *testing.T) {
	dir := t.TempDir()
	sink, err := dataset.NewFileSink(dir, "doc")
	require.NoError(t, err)
	defer sink.Close()

	g := grammar.MustParse(fixture)
	ctx := context.Background()

	path, err := sink.SaveGrammar(ctx, "run", "5_5_5", g)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "grammars", "grammar_5_5_5.txt"), path)

	path, err = sink.SaveDocument(ctx, "run", 3, "a.b c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "documents", "doc_3.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a.b c", string(data))

	back, err := dataset.LoadGrammar(sink.GrammarPath("5_5_5"))
	require.NoError(t, err)
	assert.Equal(t, g.String(), back.String())
}

func TestLoadGrammarErrors(t *testing.T) {
	_, err := dataset.LoadGrammar(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("S ->"), 0644))
	_, err = dataset.LoadGrammar(bad)
	assert.ErrorIs(t, err, grammar.ErrParse)
}

func TestSQLiteSink(t *testing.T) {
	sink, err := dataset.NewSQLiteSink(filepath.Join(t.TempDir(), "cfgforge.db"))
	require.NoError(t, err)
	defer sink.Close()

	g := grammar.MustParse(fixture)
	ctx := context.Background()

	loc, err := sink.SaveGrammar(ctx, "run-1", "3_2_3", g)
	require.NoError(t, err)
	assert.Contains(t, loc, "#grammars/")

	for i, doc := range []string{"a.a", "b c.a"} {
		_, err := sink.SaveDocument(ctx, "run-1", i+1, doc)
		require.NoError(t, err)
	}
	_, err = sink.SaveDocument(ctx, "run-2", 1, "other")
	require.NoError(t, err)

	back, err := sink.Grammar(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, g.String(), back.String())

	docs, err := sink.Documents(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.a", "b c.a"}, docs)

	_, err = sink.Grammar(ctx, "missing")
	assert.Error(t, err)
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.toml")
	m := &dataset.Manifest{
		RunID:         "run-1",
		Seed:          42,
		Created:       time.Date(2024, 6, 11, 1, 30, 0, 0, time.UTC),
		Terminals:     []string{"a", "b"},
		Nonterminals:  []string{"A"},
		Rules:         3,
		Probabilistic: true,
		TerminalBias:  0.6,
		Attempts:      7,
		Grammar:       "grammars/grammar_2_1_3.txt",
		Sink:          "file",
		Options:       dataset.DefaultOptions(),
		Written:       5,
	}
	require.NoError(t, dataset.WriteManifest(path, m))

	back, err := dataset.ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, dataset.ManifestFormat, back.Format)
	assert.Equal(t, m.RunID, back.RunID)
	assert.Equal(t, m.Seed, back.Seed)
	assert.True(t, m.Created.Equal(back.Created))
	assert.Equal(t, m.Terminals, back.Terminals)
	assert.Equal(t, m.Options, back.Options)
	assert.Equal(t, m.Written, back.Written)
}

func TestReadManifestRejectsForeignFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("format = \"OTHER\"\n"), 0644))

	_, err := dataset.ReadManifest(path)
	assert.Error(t, err)
}

func TestBuilderFileSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := dataset.NewFileSink(dir, "document")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelInfo,
		Format:  logging.LogFormatText,
		Console: &buf,
	})
	require.NoError(t, err)
	defer logger.Close()

	opts := dataset.DefaultOptions()
	opts.Documents = 3
	opts.Sentences = 2
	builder, err := dataset.NewBuilder(sink, newGen(4), opts, logger)
	require.NoError(t, err)

	stats, err := builder.Build(context.Background(), "run-1", "2_2_3", grammar.MustParse(fixture))
	require.NoError(t, err)

	assert.Len(t, stats.Documents, 3)
	assert.Equal(t, 6, stats.Sentences)
	assert.Zero(t, stats.Failures)
	for i := 1; i <= 3; i++ {
		_, err := os.Stat(sink.DocumentPath(i))
		assert.NoError(t, err)
	}
	assert.Contains(t, buf.String(), "Document written")
	assert.Contains(t, buf.String(), "Statistics update")
}

func TestBuilderSkipsFailedDocuments(t *testing.T) {
	sink, err := dataset.NewSQLiteSink(filepath.Join(t.TempDir(), "db.sqlite"))
	require.NoError(t, err)
	defer sink.Close()

	gen := newGen(1)
	gen.MaxIterations = 10
	opts := dataset.DefaultOptions()
	opts.Documents = 2
	builder, err := dataset.NewBuilder(sink, gen, opts, nil)
	require.NoError(t, err)

	stats, err := builder.Build(context.Background(), "run-x", "x", grammar.MustParse("S -> \"x\" S"))
	require.NoError(t, err)
	assert.Empty(t, stats.Documents)
	assert.Equal(t, 2, stats.Failures)
}

func TestBuilderStopsOnCancel(t *testing.T) {
	sink, err := dataset.NewFileSink(t.TempDir(), "document")
	require.NoError(t, err)
	builder, err := dataset.NewBuilder(sink, newGen(1), dataset.DefaultOptions(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := builder.Build(ctx, "run", "s", grammar.MustParse(fixture))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stats.Documents)
}

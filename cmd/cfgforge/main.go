/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for cfgforge. Synthesizes random context-free and
probabilistic grammars, analyzes grammar files, samples and recognizes sentences and
builds document datasets.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/cmd/cfgforge/commands"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfgforge",
		Short: "cfgforge - random context-free grammar synthesis",
		Long: `cfgforge synthesizes random context-free grammars (plain or probabilistic),
keeps only those whose unproductive rules are all unreachable, and generates
sentences and document datasets from them.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Log output directory (empty logs to console only)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (0 = time based)")
	rootCmd.PersistentFlags().String("join", " ", "Token separator of generated sentences")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("logging.output_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("pipeline.seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("generation.join_char", rootCmd.PersistentFlags().Lookup("join"))

	// Grammar shape flags shared by generate and dataset
	grammarFlags := func(cmd *cobra.Command) {
		cmd.Flags().Int("terminals", 20, "Number of terminal symbols")
		cmd.Flags().Int("nonterminals", 10, "Number of nonterminal symbols")
		cmd.Flags().Int("rules", 20, "Number of productions (at least the nonterminal count)")
		cmd.Flags().Bool("pcfg", true, "Synthesize a probabilistic grammar")
		cmd.Flags().Float64("terminal-bias", 0.6, "Weight of terminal-only productions (PCFG only)")
		cmd.Flags().Int("tries", 1000, "Grammar acquisition attempts")
	}
	bindGrammarFlags := func(cmd *cobra.Command) {
		viper.BindPFlag("grammar.terminals", cmd.Flags().Lookup("terminals"))
		viper.BindPFlag("grammar.nonterminals", cmd.Flags().Lookup("nonterminals"))
		viper.BindPFlag("grammar.rules", cmd.Flags().Lookup("rules"))
		viper.BindPFlag("grammar.probabilistic", cmd.Flags().Lookup("pcfg"))
		viper.BindPFlag("grammar.terminal_bias", cmd.Flags().Lookup("terminal-bias"))
		viper.BindPFlag("pipeline.tries", cmd.Flags().Lookup("tries"))
	}

	// generate
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a transient random grammar",
		Long: `Synthesize random grammars until one is found whose unproductive rules are
exactly its unreachable ones, then print it with sample sentences.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindGrammarFlags(cmd)
			viper.BindPFlag("generate.output", cmd.Flags().Lookup("output"))
			viper.BindPFlag("generate.samples", cmd.Flags().Lookup("samples"))
		},
		RunE: commands.RunGenerate,
	}
	grammarFlags(generateCmd)
	generateCmd.Flags().String("output", "", "Save the grammar to this file")
	generateCmd.Flags().Int("samples", 10, "Number of sample sentences to print")
	rootCmd.AddCommand(generateCmd)

	// analyze
	analyzeCmd := &cobra.Command{
		Use:   "analyze <grammar-file>",
		Short: "Report reachability, productivity and transience of a grammar",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlag("analyze.strict", cmd.Flags().Lookup("strict"))
		},
		RunE: commands.RunAnalyze,
	}
	analyzeCmd.Flags().Bool("strict", false, "Fail when the grammar is not transient")
	rootCmd.AddCommand(analyzeCmd)

	// sample
	sampleCmd := &cobra.Command{
		Use:   "sample <grammar-file>",
		Short: "Generate sentences from a grammar file",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlag("sample.count", cmd.Flags().Lookup("count"))
		},
		RunE: commands.RunSample,
	}
	sampleCmd.Flags().Int("count", 10, "Number of sentences")
	rootCmd.AddCommand(sampleCmd)

	// check
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check <grammar-file> <sentence>",
		Short: "Test whether a sentence is in the language of a grammar",
		Long: `Tokenize the sentence on the join separator (or per character when the
separator is empty) and run an Earley recognizer over it.`,
		Args: cobra.ExactArgs(2),
		RunE: commands.RunCheck,
	})

	// enumerate
	enumerateCmd := &cobra.Command{
		Use:   "enumerate <grammar-file>",
		Short: "List the strings of a grammar up to a length",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlag("enumerate.max_length", cmd.Flags().Lookup("max-length"))
			viper.BindPFlag("enumerate.terminals", cmd.Flags().Lookup("terminals"))
			viper.BindPFlag("enumerate.limit", cmd.Flags().Lookup("limit"))
		},
		RunE: commands.RunEnumerate,
	}
	enumerateCmd.Flags().Int("max-length", 4, "Maximum string length in tokens")
	enumerateCmd.Flags().StringSlice("terminals", []string{}, "Token alphabet (defaults to the grammar's terminals)")
	enumerateCmd.Flags().Int("limit", 0, "Stop after this many strings (0 = no limit)")
	rootCmd.AddCommand(enumerateCmd)

	// dataset
	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Build a document dataset from a fresh grammar",
		Long: `Acquire a transient grammar and write documents generated from it to text
files or a SQLite database, together with a TOML manifest of the run.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindGrammarFlags(cmd)
			viper.BindPFlag("dataset.output_dir", cmd.Flags().Lookup("output-dir"))
			viper.BindPFlag("dataset.documents", cmd.Flags().Lookup("documents"))
			viper.BindPFlag("dataset.sentences", cmd.Flags().Lookup("sentences"))
			viper.BindPFlag("dataset.filename_prefix", cmd.Flags().Lookup("prefix"))
			viper.BindPFlag("dataset.sink", cmd.Flags().Lookup("sink"))
			viper.BindPFlag("dataset.sqlite_path", cmd.Flags().Lookup("sqlite-path"))
			viper.BindPFlag("dataset.metrics_dir", cmd.Flags().Lookup("metrics-dir"))
			viper.BindPFlag("generation.sentence_join_char", cmd.Flags().Lookup("sentence-join"))
		},
		RunE: commands.RunDataset,
	}
	grammarFlags(datasetCmd)
	datasetCmd.Flags().String("output-dir", "data", "Dataset output directory")
	datasetCmd.Flags().Int("documents", 5, "Number of documents")
	datasetCmd.Flags().Int("sentences", 5, "Sentences per document")
	datasetCmd.Flags().String("prefix", "document", "Document filename prefix")
	datasetCmd.Flags().String("sink", "file", "Dataset sink (file, sqlite)")
	datasetCmd.Flags().String("sqlite-path", "data/cfgforge.db", "SQLite database for the sqlite sink")
	datasetCmd.Flags().String("metrics-dir", "", "Write a JSON run report under this directory")
	datasetCmd.Flags().String("sentence-join", ".", "Separator between sentences of a document")
	rootCmd.AddCommand(datasetCmd)

	return rootCmd
}

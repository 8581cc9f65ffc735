/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for cfgforge runs. Values come from viper, so a config file,
CFGFORGE_* environment variables and bound command-line flags all feed the same keys.
Load applies defaults, decodes the groups and validates them.
*/

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/pkg/dataset"
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/logging"
	"github.com/kleascm/cfgforge/pkg/pipeline"
	"github.com/kleascm/cfgforge/pkg/symbols"
	"github.com/kleascm/cfgforge/pkg/synthesis"
)

// EnvPrefix is the prefix of environment overrides, e.g. CFGFORGE_GRAMMAR_RULES
const EnvPrefix = "CFGFORGE"

// Sink kinds
const (
	SinkFile   = "file"
	SinkSQLite = "sqlite"
)

// GrammarConfig sizes the synthesized grammar
type GrammarConfig struct {
	Terminals     int     `json:"terminals" mapstructure:"terminals"`
	Nonterminals  int     `json:"nonterminals" mapstructure:"nonterminals"`
	Rules         int     `json:"rules" mapstructure:"rules"`
	Probabilistic bool    `json:"probabilistic" mapstructure:"probabilistic"`
	TerminalBias  float64 `json:"terminal_bias" mapstructure:"terminal_bias"`
}

// GenerationConfig bounds sentence generation
type GenerationConfig struct {
	MaxTries         int    `json:"max_tries" mapstructure:"max_tries"`
	MaxIterations    int    `json:"max_iterations" mapstructure:"max_iterations"`
	JoinChar         string `json:"join_char" mapstructure:"join_char"`
	SentenceJoinChar string `json:"sentence_join_char" mapstructure:"sentence_join_char"`
}

// PipelineConfig controls grammar acquisition
type PipelineConfig struct {
	Tries        int   `json:"tries" mapstructure:"tries"`
	Seed         int64 `json:"seed" mapstructure:"seed"` // 0 seeds from the clock
	DrawsPerRule int   `json:"draws_per_rule" mapstructure:"draws_per_rule"`
}

// DatasetConfig controls where and how much is written
type DatasetConfig struct {
	OutputDir      string `json:"output_dir" mapstructure:"output_dir"`
	Documents      int    `json:"documents" mapstructure:"documents"`
	Sentences      int    `json:"sentences" mapstructure:"sentences"`
	FilenamePrefix string `json:"filename_prefix" mapstructure:"filename_prefix"`
	Sink           string `json:"sink" mapstructure:"sink"`
	SQLitePath     string `json:"sqlite_path" mapstructure:"sqlite_path"`
	MetricsDir     string `json:"metrics_dir" mapstructure:"metrics_dir"` // empty disables run reports
}

// Config is the full cfgforge configuration
type Config struct {
	Grammar    GrammarConfig        `json:"grammar" mapstructure:"grammar"`
	Generation GenerationConfig     `json:"generation" mapstructure:"generation"`
	Pipeline   PipelineConfig       `json:"pipeline" mapstructure:"pipeline"`
	Dataset    DatasetConfig        `json:"dataset" mapstructure:"dataset"`
	Logging    logging.LoggerConfig `json:"logging" mapstructure:"logging"`
}

// Default returns the stock configuration
func Default() *Config {
	synth := synthesis.DefaultConfig()
	opts := dataset.DefaultOptions()
	return &Config{
		Grammar: GrammarConfig{
			Terminals:     20,
			Nonterminals:  10,
			Rules:         20,
			Probabilistic: synth.Probabilistic,
			TerminalBias:  0.6,
		},
		Generation: GenerationConfig{
			MaxTries:         grammar.DefaultMaxTries,
			MaxIterations:    grammar.DefaultMaxIterations,
			JoinChar:         opts.TokenJoin,
			SentenceJoinChar: opts.SentenceJoin,
		},
		Pipeline: PipelineConfig{
			Tries:        pipeline.DefaultTries,
			DrawsPerRule: synth.DrawsPerRule,
		},
		Dataset: DatasetConfig{
			OutputDir:      "data",
			Documents:      opts.Documents,
			Sentences:      opts.Sentences,
			FilenamePrefix: opts.FilenamePrefix,
			Sink:           SinkFile,
			SQLitePath:     "data/cfgforge.db",
		},
		Logging: *logging.DefaultLoggerConfig(),
	}
}

// SetDefaults registers Default() under its viper keys
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("grammar.terminals", d.Grammar.Terminals)
	v.SetDefault("grammar.nonterminals", d.Grammar.Nonterminals)
	v.SetDefault("grammar.rules", d.Grammar.Rules)
	v.SetDefault("grammar.probabilistic", d.Grammar.Probabilistic)
	v.SetDefault("grammar.terminal_bias", d.Grammar.TerminalBias)

	v.SetDefault("generation.max_tries", d.Generation.MaxTries)
	v.SetDefault("generation.max_iterations", d.Generation.MaxIterations)
	v.SetDefault("generation.join_char", d.Generation.JoinChar)
	v.SetDefault("generation.sentence_join_char", d.Generation.SentenceJoinChar)

	v.SetDefault("pipeline.tries", d.Pipeline.Tries)
	v.SetDefault("pipeline.seed", d.Pipeline.Seed)
	v.SetDefault("pipeline.draws_per_rule", d.Pipeline.DrawsPerRule)

	v.SetDefault("dataset.output_dir", d.Dataset.OutputDir)
	v.SetDefault("dataset.documents", d.Dataset.Documents)
	v.SetDefault("dataset.sentences", d.Dataset.Sentences)
	v.SetDefault("dataset.filename_prefix", d.Dataset.FilenamePrefix)
	v.SetDefault("dataset.sink", d.Dataset.Sink)
	v.SetDefault("dataset.sqlite_path", d.Dataset.SQLitePath)
	v.SetDefault("dataset.metrics_dir", d.Dataset.MetricsDir)

	v.SetDefault("logging.level", string(d.Logging.Level))
	v.SetDefault("logging.format", string(d.Logging.Format))
	v.SetDefault("logging.output_dir", d.Logging.OutputDir)
	v.SetDefault("logging.max_files", d.Logging.MaxFiles)
	v.SetDefault("logging.timestamp", d.Logging.Timestamp)
	v.SetDefault("logging.caller", d.Logging.Caller)
	v.SetDefault("logging.colors", d.Logging.Colors)
}

// Load reads the configuration held by v. The env prefix and key replacer are set
// on v so that nested keys map to CFGFORGE_GROUP_KEY variables.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every group
func (c *Config) Validate() error {
	g := c.Grammar
	if g.Terminals <= 0 || g.Terminals > 26 {
		return fmt.Errorf("grammar.terminals must be in 1..26, got %d", g.Terminals)
	}
	if g.Nonterminals <= 0 || g.Nonterminals > 25 {
		return fmt.Errorf("grammar.nonterminals must be in 1..25, got %d", g.Nonterminals)
	}
	if g.Rules < g.Nonterminals {
		return fmt.Errorf("grammar.rules (%d) must be at least grammar.nonterminals (%d)", g.Rules, g.Nonterminals)
	}
	if err := c.SynthesisConfig().Validate(); err != nil {
		return err
	}
	if c.Pipeline.Tries <= 0 {
		return fmt.Errorf("pipeline.tries must be positive")
	}
	switch c.Dataset.Sink {
	case SinkFile, SinkSQLite:
	default:
		return fmt.Errorf("unsupported dataset sink: %s", c.Dataset.Sink)
	}
	if err := c.DatasetOptions().Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// SynthesisConfig converts the grammar and generation groups
func (c *Config) SynthesisConfig() *synthesis.Config {
	return &synthesis.Config{
		Probabilistic: c.Grammar.Probabilistic,
		TerminalBias:  c.Grammar.TerminalBias,
		DrawsPerRule:  c.Pipeline.DrawsPerRule,
		MaxTries:      c.Generation.MaxTries,
		MaxIterations: c.Generation.MaxIterations,
	}
}

// DatasetOptions converts the dataset and generation groups
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Documents:      c.Dataset.Documents,
		Sentences:      c.Dataset.Sentences,
		TokenJoin:      c.Generation.JoinChar,
		SentenceJoin:   c.Generation.SentenceJoinChar,
		FilenamePrefix: c.Dataset.FilenamePrefix,
	}
}

// Request builds the acquisition request from the grammar group
func (c *Config) Request() pipeline.Request {
	return pipeline.Request{
		Terminals:    symbols.Terminals(c.Grammar.Terminals),
		Nonterminals: symbols.Nonterminals(c.Grammar.Nonterminals),
		Rules:        c.Grammar.Rules,
	}
}

// NewGenerator returns a sentence generator with the configured caps
func (c *Config) NewGenerator(src grammar.Source) *grammar.Generator {
	gen := grammar.NewGenerator(src)
	gen.MaxTries = c.Generation.MaxTries
	gen.MaxIterations = c.Generation.MaxIterations
	return gen
}

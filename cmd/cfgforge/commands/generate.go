/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Generate command. Acquires a transient random grammar, prints it with a few
sample sentences and optionally saves it in grammar text format.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/pkg/config"
	"github.com/kleascm/cfgforge/pkg/logging"
	"github.com/kleascm/cfgforge/pkg/pipeline"
	"github.com/kleascm/cfgforge/pkg/synthesis"
)

// RunGenerate acquires and prints a grammar
func RunGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	res, err := acquire(cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated grammar after %d tries.\n", res.Attempts)
	fmt.Fprintln(out, res.Grammar)

	if path := viper.GetString("generate.output"); path != "" {
		if err := os.WriteFile(path, []byte(res.Grammar.String()+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to save grammar: %w", err)
		}
		fmt.Fprintf(out, "\n💾 Grammar saved to %s\n", path)
	}

	samples := viper.GetInt("generate.samples")
	if samples <= 0 {
		return nil
	}
	src, _ := newSource(cfg.Pipeline.Seed + 1)
	gen := cfg.NewGenerator(src)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Sample Sentences:")
	for i := 0; i < samples; i++ {
		sentence, err := gen.Sentence(res.Grammar, cfg.Generation.JoinChar)
		if err != nil {
			logger.Warning("Sentence skipped", map[string]interface{}{"run_id": res.RunID, "error": err.Error()})
			continue
		}
		logger.LogSentence(res.RunID, sentence)
		fmt.Fprintln(out, sentence)
	}
	return nil
}

// acquire runs the acquisition pipeline described by cfg
func acquire(cfg *config.Config, logger *logging.Logger) (*pipeline.Result, error) {
	src, seed := newSource(cfg.Pipeline.Seed)
	logger.Info("Seeding random source", map[string]interface{}{"seed": seed})
	cfg.Pipeline.Seed = seed

	synth := synthesis.NewSynthesizer(cfg.SynthesisConfig(), src)
	synth.SetLogger(logger.GetLogger())

	p := pipeline.New(synth, cfg.Pipeline.Tries)
	p.AddReporter(pipeline.NewLoggerReporter(logger))
	return p.Acquire(cfg.Request())
}

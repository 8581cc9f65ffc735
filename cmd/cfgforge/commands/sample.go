/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Sample command. Generates sentences from a grammar file.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunSample prints sentences generated from a grammar file
func RunSample(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	g, err := loadGrammar(args)
	if err != nil {
		return err
	}

	src, _ := newSource(cfg.Pipeline.Seed)
	gen := cfg.NewGenerator(src)
	out := cmd.OutOrStdout()
	for i := 0; i < viper.GetInt("sample.count"); i++ {
		sentence, err := gen.Sentence(g, cfg.Generation.JoinChar)
		if err != nil {
			return err
		}
		logger.LogSentence("", sentence)
		fmt.Fprintln(out, sentence)
	}
	return nil
}

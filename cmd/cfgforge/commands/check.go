/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Check command. Tests whether a sentence belongs to the language of a grammar file.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kleascm/cfgforge/pkg/earley"
)

// RunCheck reports membership of args[1] in the grammar at args[0]
func RunCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	g, err := loadGrammar(args)
	if err != nil {
		return err
	}

	ok, err := earley.Member(earley.NewRecognizer(), g, args[1], cfg.Generation.JoinChar)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %q is in the language\n", args[1])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "❌ %q is not in the language\n", args[1])
	}
	return nil
}

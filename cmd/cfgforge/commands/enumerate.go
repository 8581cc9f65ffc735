/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: enumerate.go
Description: Enumerate command. Lists the strings of a grammar file up to a length.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/pkg/earley"
)

// RunEnumerate prints every accepted string of length 1..max-length
func RunEnumerate(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(); err != nil {
		return err
	}
	g, err := loadGrammar(args)
	if err != nil {
		return err
	}

	terminals := viper.GetStringSlice("enumerate.terminals")
	if len(terminals) == 0 {
		for _, t := range g.Terminals() {
			terminals = append(terminals, t.Value)
		}
	}

	limit := viper.GetInt("enumerate.limit")
	out := cmd.OutOrStdout()
	var iterErr error
	n := 0
	for s := range earley.ValidStrings(g, earley.NewRecognizer(), terminals, viper.GetInt("enumerate.max_length"), &iterErr) {
		fmt.Fprintln(out, s)
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return iterErr
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyze.go
Description: Analyze command. Prints reachability, productivity and transience of a grammar file.
*/

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/pkg/analysis"
)

// RunAnalyze analyzes a grammar file
func RunAnalyze(cmd *cobra.Command, args []string) error {
	if _, _, err := setup(); err != nil {
		return err
	}
	g, err := loadGrammar(args)
	if err != nil {
		return err
	}

	report := analysis.Analyze(g)
	WriteReport(cmd.OutOrStdout(), report)

	if viper.GetBool("analyze.strict") {
		return report.Err()
	}
	return nil
}

// WriteReport renders a per-nonterminal table followed by the verdict
func WriteReport(w io.Writer, report *analysis.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Nonterminal", "Successors", "Reachable", "Absorbing", "Productive"})
	for _, nt := range report.Graph.Nodes() {
		var succ []string
		for _, s := range report.Graph.Successors(nt) {
			succ = append(succ, s.Value)
		}
		table.Append([]string{
			nt.Value,
			strings.Join(succ, " "),
			yesNo(report.Reachable.Has(nt)),
			yesNo(report.Absorbing.Has(nt)),
			yesNo(report.Productive.Has(nt)),
		})
	}
	table.Render()

	fmt.Fprintf(w, "Unreachable:  %s\n", report.Unreachable)
	fmt.Fprintf(w, "Unproductive: %s\n", report.Unproductive)
	if report.Transient {
		fmt.Fprintln(w, "✅ Transient: every unproductive rule is unreachable")
	} else {
		fmt.Fprintln(w, "❌ Not transient")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

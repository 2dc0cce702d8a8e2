package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spamsift/internal/cli"
)

func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the built-in example messages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			var b strings.Builder
			b.WriteString(cli.FormatTitle("Example messages"))
			b.WriteString("\n")
			for i, msg := range cli.ExampleMessages {
				fmt.Fprintf(&b, "%d. %s\n", i+1, msg)
			}
			b.WriteString("\n")
			b.WriteString(cli.SubtleStyle.Render("Classify one with: spamsift classify --example N"))
			fmt.Fprintln(cmd.OutOrStdout(), b.String())
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the rule groups",
	}
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesMatchCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rule groups in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), formatGroups(a.registry.Groups(), a.policy, verbose))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show every pattern")
	return cmd
}

func formatGroups(groups []model.PatternGroup, policy *rules.Policy, verbose bool) string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle(cli.RulesIcon + " Rule groups"))
	b.WriteString("\n")

	for i, g := range groups {
		fmt.Fprintf(&b, "%d. %s  %s  min hits %d, %d pattern(s)\n",
			i+1, cli.BoldStyle.Render(g.Name), priorityText(g.Priority), g.MinHits, len(g.Patterns))
		if verbose {
			for _, p := range g.Patterns {
				b.WriteString("     " + cli.SubtleStyle.Render(p) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(cli.FormatInfo(fmt.Sprintf("%s hits count as spam once the total score reaches %d",
		policy.AggregateGroup, policy.AggregateMinScore)))
	return b.String()
}

func priorityText(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return cli.ErrorStyle.Render(p.String())
	case model.PriorityMedium:
		return cli.WarningStyle.Render(p.String())
	default:
		return cli.SubtleStyle.Render(p.String())
	}
}

// ruleMatchOutput is the --json form of a rules-only analysis.
type ruleMatchOutput struct {
	Result   model.MatchResult `json:"result"`
	Decision ruleDecision      `json:"decision"`
}

type ruleDecision struct {
	TriggeredBy string `json:"triggered_by,omitempty"`
	Reason      string `json:"reason"`
	Spam        bool   `json:"spam"`
}

func rulesMatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match MESSAGE|-",
		Short: "Run only the rule layer against a message",
		Long: `Show which rule groups and patterns a message hits and what the rule
policy decides, without consulting the statistical model.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := messageFromArgs(cmd.InOrStdin(), args, 0)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			result := rules.NewMatcher(a.registry).Analyze(text)
			decision := a.policy.Decide(result)

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ruleMatchOutput{
					Result: result,
					Decision: ruleDecision{
						Spam:        decision.Spam,
						TriggeredBy: decision.TriggeredBy,
						Reason:      decision.Reason,
					},
				})
			}

			var b strings.Builder
			if lines := cli.GroupHitLines(result.GroupHits, a.groupOrder()); len(lines) > 0 {
				b.WriteString(strings.Join(lines, "\n"))
				b.WriteString("\n\n")
			}
			b.WriteString(cli.FormatMatches(result.Matches))
			fmt.Fprintf(&b, "\n\nTotal score: %d\n", result.TotalScore)
			if decision.Spam {
				b.WriteString(cli.SpamStyle.Render(cli.SpamIcon + " Rules flag this message as spam: " + decision.Reason))
			} else {
				b.WriteString(cli.SubtleStyle.Render("Rules do not decide: " + decision.Reason))
			}

			fmt.Fprintln(out, cli.RenderBox("Rule analysis", b.String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the analysis as JSON")
	return cmd
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

const defaultHistoryLimit = 20

func historyCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently classified messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), appOptions{withHistory: true, requireHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.RecentVerdicts(cmd.Context(), limit)
			if err != nil {
				return common.NewUserError("Failed to read history", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No verdicts recorded yet."))
				return nil
			}
			fmt.Fprintln(out, formatHistory(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "maximum number of records to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print records as JSON")

	cmd.AddCommand(historyStatsCmd())
	cmd.AddCommand(historyShowCmd())
	return cmd
}

func formatHistory(records []model.VerdictRecord) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s  %s  %-6s  %s\n",
			cli.SubtleStyle.Render(r.ClassifiedAt.Local().Format("2006-01-02 15:04")),
			cli.SubtleStyle.Render(shortID(r.ID)),
			r.Verdict.Label,
			cli.Truncate(r.Message, 60))
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func historyStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded verdicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), appOptions{withHistory: true, requireHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.store.VerdictStats(cmd.Context())
			if err != nil {
				return common.NewUserError("Failed to read history", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatStats(stats))
			return nil
		},
	}
}

func formatStats(stats *model.VerdictStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n\n", stats.Total)
	b.WriteString(cli.BoldStyle.Render("By label"))
	writeCounts(&b, stats.ByLabel)
	b.WriteString("\n\n")
	b.WriteString(cli.BoldStyle.Render("By decision path"))
	writeCounts(&b, stats.ByVia)
	return cli.RenderBox(cli.ChartIcon+" History", b.String())
}

func writeCounts[K ~string](b *strings.Builder, counts map[K]int) {
	keys := make([]K, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "\n  • %s: %d", k, counts[k])
	}
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recorded verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), appOptions{withHistory: true, requireHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.store.GetVerdict(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No verdict with id %q", args[0]), err)
				}
				return common.NewUserError("Failed to read history", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.SubtleStyle.Render(record.ID+"  "+record.ClassifiedAt.Local().Format("2006-01-02 15:04:05")))
			fmt.Fprintln(out, record.Message)
			fmt.Fprintln(out, cli.FormatVerdict(&record.Verdict, a.groupOrder()))
			return nil
		},
	}
}

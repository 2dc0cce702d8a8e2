package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// batchLine is one --json result row.
type batchLine struct {
	Verdict *model.Verdict `json:"verdict"`
	Message string         `json:"message"`
	Index   int            `json:"index"`
}

// batchSummary counts verdicts by label and decision path.
type batchSummary struct {
	spam, ham          int
	viaRules, viaModel int
}

func summarize(verdicts []*model.Verdict) batchSummary {
	var s batchSummary
	for _, v := range verdicts {
		if v.IsSpam() {
			s.spam++
		} else {
			s.ham++
		}
		if v.Explanation.Via == model.ViaRules {
			s.viaRules++
		} else {
			s.viaModel++
		}
	}
	return s
}

func batchCmd() *cobra.Command {
	var (
		workers    int
		jsonOutput bool
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE|-",
		Short: "Classify one message per line from a file",
		Long: `Classify every non-blank line of FILE (or stdin with "-") as its own message.

Results keep input order. The batch stops at the first message that cannot be
classified, for example when a message needs the statistical model and none
is loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), appOptions{withModel: true, withHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			messages, err := readBatchInput(cmd, args[0])
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				return common.NewUserError("No messages found in input", common.ErrInvalidInput)
			}

			if workers <= 0 {
				workers = a.settings.BatchWorkers
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			var bar *progressbar.ProgressBar
			if !noProgress && !jsonOutput {
				bar = newProgressBar(cmd.ErrOrStderr(), len(messages), "Classifying messages")
			}

			verdicts, err := a.classifier.ClassifyBatch(ctx, messages, workers, func(done int) {
				if bar != nil {
					_ = bar.Set(done)
				}
			})
			if err != nil {
				if handler.WasInterrupted() {
					return common.NewUserError("Batch interrupted", err)
				}
				return common.NewUserError("Batch failed: "+common.UserMessage(err), err)
			}

			for i, v := range verdicts {
				a.record(ctx, messages[i], v)
			}

			slog.Debug("Batch complete", "messages", len(messages), "workers", workers)

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeBatchJSON(out, messages, verdicts)
			}
			fmt.Fprintln(out, formatBatchTable(messages, verdicts))
			fmt.Fprintln(out, formatBatchSummary(summarize(verdicts)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of concurrent workers (default: batch.workers)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print one JSON object per line")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

func readBatchInput(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return cli.ReadMessages(cmd.Context(), cmd.InOrStdin())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Cannot open %s", path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close input file", "error", closeErr)
		}
	}()

	return cli.ReadMessages(cmd.Context(), f)
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
}

func writeBatchJSON(w io.Writer, messages []string, verdicts []*model.Verdict) error {
	enc := json.NewEncoder(w)
	for i, v := range verdicts {
		if err := enc.Encode(batchLine{Index: i + 1, Message: messages[i], Verdict: v}); err != nil {
			return fmt.Errorf("failed to write result %d: %w", i+1, err)
		}
	}
	return nil
}

func formatBatchTable(messages []string, verdicts []*model.Verdict) string {
	rowStyle := lipgloss.NewStyle().PaddingRight(2)
	var b strings.Builder
	for i, v := range verdicts {
		via := string(v.Explanation.Via)
		if v.Explanation.TriggeredBy != "" {
			via += " (" + v.Explanation.TriggeredBy + ")"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			rowStyle.Width(5).Render(fmt.Sprintf("%d.", i+1)),
			rowStyle.Width(8).Render(labelCell(v.Label)),
			rowStyle.Width(36).Render(via),
			cli.Truncate(messages[i], 60),
		))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func labelCell(label model.Label) string {
	if label == model.LabelSpam {
		return cli.SpamStyle.Render(string(label))
	}
	return cli.HamStyle.Render(string(label))
}

func formatBatchSummary(s batchSummary) string {
	content := fmt.Sprintf("%s Spam: %d\n%s Ham: %d\n\n%s Rules decided: %d\n%s Model decided: %d",
		cli.SpamIcon, s.spam,
		cli.HamIcon, s.ham,
		cli.RulesIcon, s.viaRules,
		cli.ModelIcon, s.viaModel)
	return cli.RenderBox(cli.ChartIcon+" Summary", content)
}

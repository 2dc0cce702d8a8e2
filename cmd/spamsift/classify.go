package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// classifyOutput is the --json form of a single classification.
type classifyOutput struct {
	Verdict *model.Verdict `json:"verdict"`
	Message string         `json:"message"`
	ID      string         `json:"id,omitempty"`
}

func classifyCmd() *cobra.Command {
	var (
		example    int
		jsonOutput bool
		showMatch  bool
	)

	cmd := &cobra.Command{
		Use:   "classify [message|-]",
		Short: "Classify a single message",
		Long: `Classify one SMS message as spam or ham.

The message is taken from the arguments, from stdin when the only argument
is "-", or from the built-in examples with --example.`,
		Example: `  spamsift classify "Congratulations! You have won a free gift"
  echo "see you at 6" | spamsift classify -
  spamsift classify --example 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := messageFromArgs(cmd.InOrStdin(), args, example)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), appOptions{withModel: true, withHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			verdict, err := a.classifier.Classify(cmd.Context(), text)
			if err != nil {
				return common.NewUserError("Classification failed: "+common.UserMessage(err), err)
			}
			id := a.record(cmd.Context(), text, verdict)

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(classifyOutput{Message: text, Verdict: verdict, ID: id})
			}

			fmt.Fprintln(out, cli.FormatVerdict(verdict, a.groupOrder()))
			if showMatch && len(verdict.Matches) > 0 {
				fmt.Fprintln(out, cli.RenderBox("Matched patterns", cli.FormatMatches(verdict.Matches)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&example, "example", "e", 0, "classify built-in example N (see 'spamsift examples')")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the verdict as JSON")
	cmd.Flags().BoolVar(&showMatch, "matches", false, "list every pattern that matched")

	return cmd
}

// messageFromArgs resolves the message to classify.
func messageFromArgs(stdin io.Reader, args []string, example int) (string, error) {
	var text string
	switch {
	case example != 0:
		if len(args) > 0 {
			return "", common.NewUserError("Use either a message or --example, not both", common.ErrInvalidInput)
		}
		msg, ok := cli.Example(example)
		if !ok {
			return "", common.NewUserError(
				fmt.Sprintf("Example %d does not exist; choose 1-%d", example, len(cli.ExampleMessages)),
				common.ErrInvalidInput)
		}
		text = msg
	case len(args) == 1 && args[0] == "-":
		msg, err := cli.ReadMessage(stdin)
		if err != nil {
			return "", err
		}
		text = msg
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		return "", common.NewUserError("Provide a message, '-' to read stdin, or --example N", common.ErrInvalidInput)
	}

	return cli.ValidateMessage(text)
}

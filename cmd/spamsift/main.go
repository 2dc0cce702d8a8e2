// Package main contains the spamsift CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/common"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "spamsift",
		Short: "📱 SMS spam detection",
		Long: `spamsift: classify SMS messages as spam or ham.

Messages are checked against prioritized rule groups first (financial
solicitation, loan offers, phishing, lottery, promotions). When no group
qualifies, a statistical model (TF-IDF + linear SVM) makes the call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfgFile, cmd.ErrOrStderr()); err != nil {
				return err
			}
			// --no-history is the inverse of history.enabled.
			if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
				viper.Set("history.enabled", false)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/spamsift/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("model", "", "path to the linear model JSON file")
	flags.String("vectorizer", "", "path to the TF-IDF vectorizer JSON file")
	flags.String("rules", "", "YAML rule-group file replacing the built-in groups")
	flags.String("db", "", "path to the history database")
	flags.Bool("no-history", false, "do not record verdicts in the history database")

	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("model.path", flags.Lookup("model"))
	_ = viper.BindPFlag("vectorizer.path", flags.Lookup("vectorizer"))
	_ = viper.BindPFlag("rules.path", flags.Lookup("rules"))
	_ = viper.BindPFlag("database.path", flags.Lookup("db"))

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(examplesCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(interactiveCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		if !errors.Is(err, common.ErrInvalidInput) {
			slog.Debug("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

func initConfig(cfgFile string, logOut io.Writer) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/spamsift", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SPAMSIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := common.SetupLogger(logOut, viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spamsift %s\n", version)
		},
	}
}

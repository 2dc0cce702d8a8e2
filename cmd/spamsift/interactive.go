package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spamsift/internal/cli"
	"github.com/Veraticus/spamsift/internal/tui"
	"github.com/Veraticus/spamsift/internal/tui/themes"
)

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"ui"},
		Short:   "Open the interactive classifier screen",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := viper.GetString("ui.theme")
			theme, ok := themes.ByName(name)
			if !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(themes.Names(), ", "))
			}

			a, err := newApp(cmd.Context(), appOptions{withModel: true, withHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			opts := []tui.Option{
				tui.WithClassifier(a.classifier),
				tui.WithTheme(theme),
				tui.WithExamples(cli.ExampleMessages),
				tui.WithGroupOrder(a.groupOrder()),
			}
			if a.store != nil {
				opts = append(opts, tui.WithStorage(a.store))
			}

			return tui.Run(cmd.Context(), opts...)
		},
	}

	cmd.Flags().String("theme", themes.Default.Name, "color theme ("+strings.Join(themes.Names(), ", ")+")")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

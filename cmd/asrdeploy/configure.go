package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-asrdeploy/pkg/content"
	"github.com/goliatone/go-asrdeploy/pkg/renderers/tui"
	"github.com/goliatone/go-asrdeploy/pkg/session"
)

func configureCommand(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Choose the script options interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			initial, err := cfg.Script()
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())

			configurator := tui.New(
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithGPUWarning(content.Default().Generator.GPUWarning),
				tui.WithTheme(tui.Theme{InfoPrefix: "! "}),
				tui.WithLogger(logger),
			)
			out, err := configurator.Render(cmd.Context(), session.NewHolder(initial))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatScript), "output format: script, json or pretty")
	return cmd
}

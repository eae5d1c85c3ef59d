package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func presetsCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			file, err := global.Presets(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCONFIG\tDESCRIPTION")
			for _, name := range file.Names() {
				preset, _ := file.Get(name)
				resolved, err := preset.Config()
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, resolved.String(), preset.Description)
			}
			return tw.Flush()
		},
	}
}

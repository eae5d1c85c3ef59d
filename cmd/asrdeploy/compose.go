package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-asrdeploy/pkg/script"
)

type composeOptions struct {
	fields script.Fields
	preset string
	format string
}

func composeCommand(global *globalOptions) *cobra.Command {
	opts := &composeOptions{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Print the deployment script for the chosen options",
		Long: "Print the deployment script for the chosen options. Flags apply over\n" +
			"the preset (when given), which applies over the configured defaults.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			base, err := cfg.Script()
			if err != nil {
				return err
			}
			if opts.preset != "" {
				file, err := global.Presets(cfg)
				if err != nil {
					return err
				}
				if base, err = file.Lookup(opts.preset); err != nil {
					return err
				}
			}

			final, err := opts.fields.Apply(base)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), script.Render(final), opts.format)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.fields.Mode, "mode", "m", "", "execution mode: file or realtime")
	flags.StringVarP(&opts.fields.Device, "device", "d", "", "device: cpu or gpu")
	flags.StringVar(&opts.fields.Model, "model", "", "model variant: 0.6B or Chat")
	flags.StringVarP(&opts.fields.Language, "language", "l", "", "language: zho or auto")
	flags.StringVarP(&opts.preset, "preset", "p", "", "start from a named preset")
	flags.StringVarP(&opts.format, "format", "f", "script", "output format: script or json")
	return cmd
}

func writeDocument(w io.Writer, doc script.Document, format string) error {
	switch format {
	case "", "script":
		_, err := io.WriteString(w, doc.Body)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q (want script or json)", format)
	}
}

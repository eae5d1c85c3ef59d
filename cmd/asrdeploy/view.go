package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-asrdeploy/pkg/orchestrator"
	"github.com/goliatone/go-asrdeploy/pkg/view"
)

func viewCommand(global *globalOptions) *cobra.Command {
	var (
		renderer string
		preset   string
	)

	names := make([]string, 0, len(view.All()))
	for _, name := range view.All() {
		names = append(names, string(name))
	}

	cmd := &cobra.Command{
		Use:       "view <" + strings.Join(names, "|") + ">",
		Short:     "Render one view to the terminal",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := view.Parse(args[0])
			if err != nil {
				return err
			}
			cfg, err := global.Load()
			if err != nil {
				return err
			}
			initial, err := cfg.Script()
			if err != nil {
				return err
			}
			if preset != "" {
				file, err := global.Presets(cfg)
				if err != nil {
					return err
				}
				if initial, err = file.Lookup(preset); err != nil {
					return err
				}
			}

			orch, err := newOrchestrator(cfg, cfg.NewLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			out, _, err := orch.Generate(cmd.Context(), orchestrator.Request{
				View:     name,
				Config:   initial,
				Renderer: renderer,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&renderer, "renderer", "r", "text", "renderer to use (text or vanilla)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "configure the generator view from a preset")
	return cmd
}

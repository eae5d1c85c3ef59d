package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	global := newGlobalOptions()

	root := &cobra.Command{
		Use:           "asrdeploy",
		Short:         "Plan on-device Qwen3-ASR deployments and generate their Python scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	global.PersistentFlags(root)

	root.AddCommand(composeCommand(global))
	root.AddCommand(configureCommand(global))
	root.AddCommand(serveCommand(global))
	root.AddCommand(viewCommand(global))
	root.AddCommand(presetsCommand(global))
	return root
}

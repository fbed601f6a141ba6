package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "peekweb",
		Short: "news and events portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(NewServeCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

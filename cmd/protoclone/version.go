package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(a *app, version, commit, date string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if output == "json" {
				return writeJSON(out, map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				}, a.colorize(out))
			}
			fmt.Fprintf(out, "protoclone %s (commit: %s, built: %s)\n", version, commit, date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}

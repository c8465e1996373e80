package main

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/protoclone"
	"github.com/spf13/cobra"
)

func newPoliciesCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "policies",
		Short: "List the registered cloning policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for name := range protoclone.Policies() {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			if output == "json" {
				return writeJSON(out, names, a.colorize(out))
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}

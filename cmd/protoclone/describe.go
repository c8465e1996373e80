package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/protoclone"
	"github.com/deepnoodle-ai/protoclone/object"
	"github.com/deepnoodle-ai/protoclone/proto"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

func newDescribeCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Show how a configuration compiles",
		Long: `Describe compiles a configuration and prints the resulting strategy:
the default and per-type policies, the structural flags, where metadata
is kept, the kind of cloning table new objects receive, and the steps
run on every clone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := protoclone.LoadConfig(args[0])
			if err != nil {
				return err
			}
			s, err := protoclone.Compile(cfg, protoclone.WithLogger(a.logger))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(output) {
			case "json":
				return writeJSON(out, s.Describe(), a.colorize(out))
			case "", "text":
				writeDescription(out, s.Describe())
				return nil
			default:
				return fmt.Errorf("unknown output format: %s", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")
	return cmd
}

func writeJSON(w io.Writer, v any, colorize bool) error {
	var (
		data []byte
		err  error
	)
	if colorize {
		data, err = prettyjson.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeDescription(w io.Writer, d proto.Description) {
	key := color.New(color.FgCyan).SprintFunc()
	val := color.New(color.FgYellow).SprintFunc()

	def := d.Default
	if def == "" {
		def = "(none)"
	}
	fmt.Fprintf(w, "%s %s\n", key("default:"), val(def))
	fmt.Fprintf(w, "%s\n", key("types:"))
	for _, typ := range object.Types {
		name, ok := d.Types[string(typ)]
		if !ok {
			name = "(unset)"
		}
		fmt.Fprintf(w, "  %-9s %s\n", typ, val(name))
	}
	fmt.Fprintf(w, "%s %t\n", key("delegation:"), d.UseDelegation)
	fmt.Fprintf(w, "%s %t\n", key("slot protection:"), d.UseSlotProtection)
	fmt.Fprintf(w, "%s %t\n", key("extra metadata:"), d.UseExtraMetadata)
	fmt.Fprintf(w, "%s %t\n", key("clone delegation:"), d.UseCloneDelegation)
	fmt.Fprintf(w, "%s %s\n", key("metadata:"), val(d.Metadata))
	fmt.Fprintf(w, "%s %s\n", key("table:"), val(d.Table))
	fmt.Fprintf(w, "%s %s\n", key("steps:"), strings.Join(d.Steps, " -> "))
}

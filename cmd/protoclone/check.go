package main

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/protoclone"
	"github.com/deepnoodle-ai/protoclone/errz"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Load and compile configuration files",
		Example: `  # Check a single configuration
  protoclone check clone.yaml

  # Check several at once
  protoclone check configs/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen, color.Bold).SprintFunc()
			fail := color.New(color.FgRed, color.Bold).SprintFunc()

			var failed int
			for _, path := range args {
				if err := a.check(path); err != nil {
					failed++
					fmt.Fprintf(out, "%s %s%s: %v\n", fail("FAIL"), path, errorCode(err), err)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", ok("OK"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d configuration(s) failed", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) check(path string) error {
	cfg, err := protoclone.LoadConfig(path)
	if err != nil {
		a.logger.Debug().Err(err).Str("path", path).Msg("load failed")
		return err
	}
	if _, err := protoclone.Compile(cfg, protoclone.WithLogger(a.logger)); err != nil {
		return err
	}
	a.logger.Info().Str("path", path).Msg("configuration ok")
	return nil
}

func errorCode(err error) string {
	var e *errz.Error
	if errors.As(err, &e) {
		return fmt.Sprintf(" [%s]", e.Kind.Code())
	}
	return ""
}

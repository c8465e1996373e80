package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds state shared by every subcommand.
type app struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCommand(version, commit, date string) *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "protoclone",
		Short: "Check and inspect prototype cloning configurations",
		Long: `protoclone loads cloning configurations written in YAML, compiles them
and reports how objects built from them will be cloned.

Settings may also be given as environment variables prefixed with
PROTOCLONE_, for example PROTOCLONE_LOG_LEVEL=debug.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")

	a.v.SetEnvPrefix("protoclone")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("no-color", flags.Lookup("no-color"))

	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newDescribeCommand(a))
	cmd.AddCommand(newPoliciesCommand(a))
	cmd.AddCommand(newVersionCommand(a, version, commit, date))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString("log-level")))
	if err != nil {
		return fmt.Errorf("invalid log level %q", a.v.GetString("log-level"))
	}
	if a.v.GetBool("no-color") {
		color.NoColor = true
	}
	stderr := cmd.ErrOrStderr()
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     stderr,
		NoColor: color.NoColor || !isTerminal(stderr),
	}).Level(level).With().Timestamp().Logger()
	return nil
}

func (a *app) colorize(w io.Writer) bool {
	return !color.NoColor && isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

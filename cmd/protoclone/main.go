package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCommand(version, commit, date)
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func printError(msg string) {
	os.Stderr.WriteString(color.RedString(msg) + "\n")
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wahlimport",
		Short:         "Import election result spreadsheets into the results database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)

	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newRunsCmd())
	return cmd
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitCode(err)
	}
	return exitOK
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

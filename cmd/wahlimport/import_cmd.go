package main

import (
	stderrors "errors"

	"wahlimport/app"
	"wahlimport/internal/errors"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import one election result workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importError(runImport(cmd, args[0], sheet))
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default: first sheet of the workbook)")
	return cmd
}

func runImport(cmd *cobra.Command, path, sheet string) error {
	ctx := cmd.Context()
	c, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	if err := c.Migrate(ctx); err != nil {
		return err
	}
	_, err = c.ImportService(cmd.OutOrStdout()).Import(ctx, app.ImportRequest{Path: path, Sheet: sheet})
	return err
}

// importError maps import failures onto the three user-facing messages
func importError(err error) error {
	if err == nil {
		return nil
	}
	switch errors.GetCode(err) {
	case errors.CodeFileNotFound:
		return withCode(exitFileNotFound, stderrors.New("the specified file was not found"))
	case errors.CodeValueError:
		return withCode(exitValueError, &messageError{prefix: "value error", err: err})
	}
	return withCode(exitFailure, &messageError{prefix: "import failed", err: err})
}

type messageError struct {
	prefix string
	err    error
}

func (e *messageError) Error() string {
	return e.prefix + ": " + e.err.Error()
}

func (e *messageError) Unwrap() error {
	return e.err
}

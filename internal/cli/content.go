package cli

import (
	"fmt"
	"io"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/spf13/cobra"
)

func newCatCommand(app *App) *cobra.Command {
	var offset, limit int64

	cobraCmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset < 0 {
				return perrors.Newf(perrors.CodeInvalidInput, "--offset must not be negative, got %d", offset)
			}
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			data, err := a.ReadFile(cmd.Context(), p, limit, offset)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cobraCmd.Flags().Int64Var(&offset, "offset", 0, "Start reading at this byte")
	cobraCmd.Flags().Int64Var(&limit, "limit", -1, "Read at most this many bytes (-1 reads to the end)")

	return cobraCmd
}

func newWriteCommand(app *App) *cobra.Command {
	var offset int64

	cobraCmd := &cobra.Command{
		Use:   "write PATH",
		Short: "Write standard input to a file",
		Long: `Writes standard input to PATH. Bytes before --offset are kept and the
file ends after the written data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if offset < 0 {
				return perrors.Newf(perrors.CodeInvalidInput, "--offset must not be negative, got %d", offset)
			}
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return perrors.Wrap(err, perrors.CodeExecutionFailed, "Cannot read standard input")
			}
			n, err := a.WriteFile(cmd.Context(), p, data, offset)
			if err != nil {
				return err
			}
			return app.emit(cmd, map[string]int64{"written": n}, func(io.Writer) error {
				return nil
			})
		},
	}

	cobraCmd.Flags().Int64Var(&offset, "offset", 0, "Start writing at this byte")

	return cobraCmd
}

func newMktempCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mktemp TEMPLATE",
		Short: "Create an empty file with a unique name",
		Long: `Creates an empty file named after TEMPLATE. A trailing run of X in the
name is replaced by random characters; ".XXXXXX" is appended if the name
has none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			created, err := a.CreateTempFile(cmd.Context(), p)
			if err != nil {
				return err
			}
			return app.emit(cmd, map[string]string{"path": created.String()}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, created)
				return err
			})
		},
	}
}

func newTouchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "touch PATH...",
		Short: "Create empty files that do not exist yet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, a, err := app.devices.open(arg)
				if err != nil {
					return err
				}
				if err := a.EnsureExistingFile(cmd.Context(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

package cli

import (
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
	"github.com/spf13/cobra"
)

func newMkdirCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir PATH...",
		Short: "Create directories and their parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, a, err := app.devices.open(arg)
				if err != nil {
					return err
				}
				if err := a.CreateDirectory(cmd.Context(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCpCommand(app *App) *cobra.Command {
	var recursive bool

	cobraCmd := &cobra.Command{
		Use:   "cp SOURCE TARGET",
		Short: "Copy a file or a directory tree, also between devices",
		Long: `Copies SOURCE to TARGET. With -r the contents of the directory SOURCE
are copied into the directory TARGET. Trees are streamed as a tar archive
when both devices have tar and are copied file by file otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parse(args[0])
			if err != nil {
				return err
			}
			dst, err := parse(args[1])
			if err != nil {
				return err
			}

			if recursive {
				return app.devices.Copier.CopyRecursively(cmd.Context(), src, dst)
			}
			return core.CopyFile(cmd.Context(), app.devices.Router, src, dst)
		},
	}

	cobraCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Copy a directory tree")

	return cobraCmd
}

func newMvCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv SOURCE TARGET",
		Short: "Rename a file on one device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			dst, err := parse(args[1])
			if err != nil {
				return err
			}
			return a.RenameFile(cmd.Context(), src, dst)
		},
	}
}

func newRmCommand(app *App) *cobra.Command {
	var recursive bool

	cobraCmd := &cobra.Command{
		Use:   "rm PATH...",
		Short: "Remove files or directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, a, err := app.devices.open(arg)
				if err != nil {
					return err
				}
				if recursive {
					err = a.RemoveRecursively(cmd.Context(), p)
				} else {
					err = a.RemoveFile(cmd.Context(), p)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cobraCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove directories and their contents")

	return cobraCmd
}

func newChmodCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chmod MODE PATH...",
		Short: "Set permissions from an octal mode such as 644",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			perms, err := core.ParsePermissions(args[0])
			if err != nil {
				return perrors.Wrapf(err, perrors.CodeInvalidInput, "Invalid mode %q", args[0])
			}
			for _, arg := range args[1:] {
				p, a, err := app.devices.open(arg)
				if err != nil {
					return err
				}
				if err := a.SetPermissions(cmd.Context(), p, perms); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

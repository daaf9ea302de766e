package cli

import (
	"fmt"
	"io"
	"slices"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
	"github.com/spf13/cobra"
)

func newStatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH...",
		Short: "Show type, size, permissions and modification time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var entries []EntryOutput
			for _, arg := range args {
				if app.devices.synthetic(arg) {
					info, _, err := app.devices.Engine.Stat(ctx, arg)
					if err != nil {
						return err
					}
					entries = append(entries, entryOutput(core.Local(arg), info))
					continue
				}

				p, a, err := app.devices.open(arg)
				if err != nil {
					return err
				}
				info := a.Stat(ctx, p)
				if !info.Exists() && !info.IsSymlink() {
					return perrors.WithPath(perrors.Newf(perrors.CodeNotFound, "%s does not exist", p), p.String())
				}
				entries = append(entries, entryOutput(p, info))
			}

			return app.emit(cmd, entries, func(w io.Writer) error {
				for _, e := range entries {
					fmt.Fprintln(w, e.long())
				}
				return nil
			})
		},
	}
}

// LsOptions holds the flags of the ls command.
type LsOptions struct {
	Recursive bool
	Names     []string
	Files     bool
	Dirs      bool
	Hidden    bool
	Long      bool
}

// Filter translates the flags into an iteration filter.
func (o LsOptions) Filter() core.Filter {
	f := core.Filter{
		NameFilters: o.Names,
		Recursive:   o.Recursive,
		Flags:       core.FilterNoDotAndDotDot,
	}
	if o.Files {
		f.Flags |= core.FilterFiles
	}
	if o.Dirs {
		f.Flags |= core.FilterDirs
	}
	if o.Hidden {
		f.Flags |= core.FilterHidden
	}
	return f
}

func newLsCommand(app *App) *cobra.Command {
	var opts LsOptions

	cobraCmd := &cobra.Command{
		Use:   "ls PATH",
		Short: "List a directory",
		Example: `  devfs ls -r --name '*.log' ssh://build@ci/var/log
  devfs ls /__devices__/docker`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if app.devices.synthetic(args[0]) {
				paths, _, err := app.devices.Engine.ReadDir(ctx, args[0])
				if err != nil {
					return err
				}
				names := make([]string, 0, len(paths))
				for _, p := range paths {
					names = append(names, p.String())
				}
				slices.Sort(names)
				return app.emit(cmd, names, func(w io.Writer) error {
					for _, n := range names {
						fmt.Fprintln(w, n)
					}
					return nil
				})
			}

			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}

			var entries []EntryOutput
			cb := core.PathCallback(func(e core.Path) core.IterationPolicy {
				entries = append(entries, EntryOutput{Path: e.String()})
				return core.Continue
			})
			if opts.Long || app.jsonOut {
				cb = core.InfoCallback(func(e core.Path, info core.StatInfo) core.IterationPolicy {
					entries = append(entries, entryOutput(e, info))
					return core.Continue
				})
			}
			if err := a.IterateDirectory(ctx, p, opts.Filter(), cb); err != nil {
				return err
			}
			slices.SortFunc(entries, func(x, y EntryOutput) int {
				switch {
				case x.Path < y.Path:
					return -1
				case x.Path > y.Path:
					return 1
				}
				return 0
			})

			return app.emit(cmd, entries, func(w io.Writer) error {
				for _, e := range entries {
					if opts.Long {
						fmt.Fprintln(w, e.long())
					} else {
						fmt.Fprintln(w, e.Path)
					}
				}
				return nil
			})
		},
	}

	cobraCmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "List subdirectories recursively")
	cobraCmd.Flags().StringArrayVar(&opts.Names, "name", nil, "Only list names matching the glob (repeatable)")
	cobraCmd.Flags().BoolVar(&opts.Files, "files", false, "Only list files")
	cobraCmd.Flags().BoolVar(&opts.Dirs, "dirs", false, "Only list directories")
	cobraCmd.Flags().BoolVarP(&opts.Hidden, "hidden", "a", false, "Include hidden entries")
	cobraCmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "Show permissions, size and modification time")
	cobraCmd.MarkFlagsMutuallyExclusive("files", "dirs")

	return cobraCmd
}

func newReadlinkCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "readlink PATH",
		Short: "Print the resolved target of a symbolic link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			target, err := a.SymlinkTarget(cmd.Context(), p)
			if err != nil {
				return err
			}
			return app.emit(cmd, map[string]string{"target": target.String()}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, target)
				return err
			})
		},
	}
}

func newDfCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "df PATH",
		Short: "Print the bytes available on the file system holding PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			n := a.BytesAvailable(cmd.Context(), p)
			if n < 0 {
				return perrors.Newf(perrors.CodeExecutionFailed, "Cannot determine free space on %s", p)
			}
			return app.emit(cmd, map[string]int64{"available": n}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, n)
				return err
			})
		},
	}
}

func newIDCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "id PATH",
		Short: "Print the device-unique identifier of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(args[0])
			if err != nil {
				return err
			}
			id := a.FileID(cmd.Context(), p)
			if id == "" {
				return perrors.Newf(perrors.CodeNotFound, "No identifier for %s", p)
			}
			return app.emit(cmd, map[string]string{"id": id}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, id)
				return err
			})
		},
	}
}

func newEnvCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "env [PATH]",
		Short: "Print the environment of a device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(deviceArg(args))
			if err != nil {
				return err
			}
			env, err := a.Environment(cmd.Context(), p)
			if err != nil {
				return err
			}
			return app.emit(cmd, env, func(w io.Writer) error {
				keys := make([]string, 0, len(env))
				for k := range env {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%s=%s\n", k, env[k])
				}
				return nil
			})
		},
	}
}

func newUnameCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uname [PATH]",
		Short: "Print the operating system of a device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, a, err := app.devices.open(deviceArg(args))
			if err != nil {
				return err
			}
			osName := a.OSType(cmd.Context(), p).String()
			return app.emit(cmd, map[string]string{"os": osName}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, osName)
				return err
			})
		},
	}
}

// deviceArg returns the optional device argument, defaulting to the local
// root.
func deviceArg(args []string) string {
	if len(args) == 0 {
		return "/"
	}
	return args[0]
}

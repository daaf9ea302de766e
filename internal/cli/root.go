// Package cli implements the devfs command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jmgilman/devaccess/config"
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/internal/logging"
	"github.com/spf13/cobra"
)

// App holds the state shared by all commands of one invocation.
type App struct {
	configPath string
	jsonOut    bool

	devices  *Devices
	closeLog func() error
}

// NewRootCommand creates the root command. If app already holds devices the
// configuration is not loaded.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devfs",
		Short: "Access files on local and remote devices",
		Long: `devfs runs file operations against the local machine and against
remote devices reached over ssh or docker exec.

Paths are plain local paths, scheme://host/path or
/__devices__/scheme/host/path:

  devfs ls -r ssh://build@ci-runner/var/log
  devfs cp -r ./site docker://web/usr/share/nginx/html`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if app.closeLog != nil {
				return app.closeLog()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOut, "json", false, "Print results and errors as JSON")

	// Queries
	rootCmd.AddCommand(newStatCommand(app))
	rootCmd.AddCommand(newLsCommand(app))
	rootCmd.AddCommand(newReadlinkCommand(app))
	rootCmd.AddCommand(newDfCommand(app))
	rootCmd.AddCommand(newIDCommand(app))
	rootCmd.AddCommand(newEnvCommand(app))
	rootCmd.AddCommand(newUnameCommand(app))

	// Contents
	rootCmd.AddCommand(newCatCommand(app))
	rootCmd.AddCommand(newWriteCommand(app))
	rootCmd.AddCommand(newMktempCommand(app))
	rootCmd.AddCommand(newTouchCommand(app))

	// Tree changes
	rootCmd.AddCommand(newMkdirCommand(app))
	rootCmd.AddCommand(newCpCommand(app))
	rootCmd.AddCommand(newMvCommand(app))
	rootCmd.AddCommand(newRmCommand(app))
	rootCmd.AddCommand(newChmodCommand(app))

	return rootCmd
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if a.devices != nil {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	logger.Debug("configuration loaded", "config", a.configPath, "timeout", cfg.Shell.Timeout)
	a.devices = NewDevices(cfg, logger)
	return nil
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &App{}
	rootCmd := NewRootCommand(app)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		app.reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error to the process exit status: 0 for success, 2 for
// bad arguments or configuration and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case perrors.HasCode(err, perrors.CodeInvalidInput, perrors.CodeInvalidConfig):
		return 2
	default:
		return 1
	}
}

func (a *App) reportError(w io.Writer, err error) {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(perrors.ToJSON(err)); encErr == nil {
			return
		}
	}

	var pe perrors.PlatformError
	if perrors.As(err, &pe) {
		fmt.Fprintf(w, "Error: %s\n", pe.Message())
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

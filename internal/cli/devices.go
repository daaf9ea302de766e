package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/jmgilman/devaccess/config"
	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
	"github.com/jmgilman/devaccess/fs/desktop"
	"github.com/jmgilman/devaccess/fs/engine"
	"github.com/jmgilman/devaccess/fs/shell"
	"github.com/jmgilman/devaccess/fs/tarpipe"
)

// Devices wires the backends for every supported scheme.
type Devices struct {
	Router *core.Router
	Copier *tarpipe.Copier
	Engine *engine.Handler
}

// NewDevices serves local paths with the desktop backend and the ssh and
// docker schemes with the shell backend.
func NewDevices(cfg *config.Config, logger *slog.Logger) *Devices {
	local := desktop.New(
		desktop.WithLogger(logger),
		desktop.WithTempTries(cfg.Temp.MaxTries),
	)
	router := core.NewRouter(local)

	shellOpts := []shell.Option{
		shell.WithLogger(logger),
		shell.WithTempTries(cfg.Temp.MaxTries),
		shell.WithRemoveDepths(shell.RemoveDepths{
			Home:    cfg.Remove.HomeDepth,
			Tmp:     cfg.Remove.TmpDepth,
			Default: cfg.Remove.DefaultDepth,
		}),
	}
	if cfg.Shell.DisableFind {
		shellOpts = append(shellOpts, shell.WithoutFind())
	}
	if cfg.Shell.DisableTar {
		shellOpts = append(shellOpts, shell.WithoutTar())
	}
	timeout := shell.WithRunTimeout(cfg.Shell.Timeout)

	router.Register("ssh", func(host string) (core.Access, error) {
		logger.Debug("connecting device", "scheme", "ssh", "host", host)
		return shell.New(shell.NewSSHRunner(host, cfg.Shell.SSHOptions, timeout), shellOpts...), nil
	})
	router.Register("docker", func(container string) (core.Access, error) {
		logger.Debug("connecting device", "scheme", "docker", "host", container)
		return shell.New(shell.NewDockerRunner(container, timeout), shellOpts...), nil
	})

	copierOpts := []tarpipe.Option{tarpipe.WithLogger(logger)}
	if cfg.Shell.DisableTar {
		copierOpts = append(copierOpts, tarpipe.WithoutTar())
	}

	return &Devices{
		Router: router,
		Copier: tarpipe.New(router, copierOpts...),
		Engine: engine.New(router, router, engine.WithLogger(logger)),
	}
}

// parse turns a command line argument into a path. Relative local paths
// are made absolute.
func parse(arg string) (core.Path, error) {
	p, err := core.ParsePath(arg)
	if err != nil {
		return core.Path{}, perrors.Wrapf(err, perrors.CodeInvalidInput, "Invalid path %q", arg)
	}
	if !p.NeedsDevice() && !p.IsAbsolute() && !p.IsVirtual() {
		abs, err := filepath.Abs(p.Path)
		if err != nil {
			return core.Path{}, perrors.Wrapf(err, perrors.CodeInvalidInput, "Invalid path %q", arg)
		}
		p = core.Local(filepath.ToSlash(abs))
	}
	return p, nil
}

// open parses arg and returns the backend serving it.
func (d *Devices) open(arg string) (core.Path, core.Access, error) {
	p, err := parse(arg)
	if err != nil {
		return core.Path{}, nil, err
	}
	a, err := d.Router.Resolve(p)
	if err != nil {
		return core.Path{}, nil, err
	}
	return p, a, nil
}

// synthetic reports whether arg names a directory that only exists in the
// engine's view, such as the device root listing.
func (d *Devices) synthetic(arg string) bool {
	switch d.Engine.Route(arg).Kind {
	case engine.FixedList, engine.RootInject:
		return true
	default:
		return false
	}
}

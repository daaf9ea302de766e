package tarpipe

import (
	"context"
	"io"
	"log/slog"
	"sync"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/exec"
	"github.com/jmgilman/devaccess/fs/core"
	"golang.org/x/sync/errgroup"
)

// Copier copies directory trees between devices.
type Copier struct {
	resolver core.Resolver
	logger   *slog.Logger
	disabled bool

	mu  sync.Mutex
	tar map[string]core.Path
}

// Option configures a Copier.
type Option func(*Copier)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Copier) {
		c.logger = l
	}
}

// WithoutTar always copies file by file.
func WithoutTar() Option {
	return func(c *Copier) {
		c.disabled = true
	}
}

// New creates a Copier that finds the backend for each path through r.
func New(r core.Resolver, opts ...Option) *Copier {
	c := &Copier{
		resolver: r,
		logger:   slog.New(slog.DiscardHandler),
		tar:      make(map[string]core.Path),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// end is one side of the pipe.
type end struct {
	starter core.ProcessStarter
	tar     core.Path
}

// CopyRecursively copies the contents of the directory src into the
// directory dst, creating dst if needed.
//
// When both devices can start processes and have an executable tar, the
// tree is streamed as a tar archive from a producer on the source device to
// a consumer on the target device. Otherwise the files are copied one by
// one with core.CopyTree.
func (c *Copier) CopyRecursively(ctx context.Context, src, dst core.Path) error {
	if err := core.CheckCopyRecursively(ctx, c.resolver, src, dst); err != nil {
		return err
	}

	from, to, ok := c.ends(ctx, src, dst)
	if !ok {
		return core.CopyTree(ctx, c.resolver, src, dst)
	}
	return c.pipe(ctx, from, to, src, dst)
}

func (c *Copier) ends(ctx context.Context, src, dst core.Path) (end, end, bool) {
	if c.disabled || src.IsVirtual() || dst.IsVirtual() {
		return end{}, end{}, false
	}
	from, ok := c.end(ctx, src)
	if !ok {
		return end{}, end{}, false
	}
	to, ok := c.end(ctx, dst)
	if !ok {
		return end{}, end{}, false
	}
	return from, to, true
}

// end resolves the process starter and tar executable for the device of p.
// The tar lookup is done once per device.
func (c *Copier) end(ctx context.Context, p core.Path) (end, bool) {
	a, err := c.resolver.Resolve(p)
	if err != nil {
		return end{}, false
	}
	starter, ok := a.(core.ProcessStarter)
	if !ok {
		return end{}, false
	}

	device := p.WithPath("/").String()
	c.mu.Lock()
	defer c.mu.Unlock()

	tar, cached := c.tar[device]
	if !cached {
		if found, err := starter.SearchInPath(ctx, p, "tar"); err == nil && a.IsExecutableFile(ctx, found) {
			tar = found
		} else {
			c.logger.Info("tar is not available, copying file by file", "device", device)
		}
		c.tar[device] = tar
	}
	if tar.Path == "" {
		return end{}, false
	}
	return end{starter: starter, tar: tar}, true
}

// pipe runs "tar xf - -C dst" on the target and "tar -C src -cf - ." on the
// source and pumps the archive between them. The consumer is started first
// and its standard input is closed only after the producer has exited.
func (c *Copier) pipe(ctx context.Context, from, to end, src, dst core.Path) error {
	consumerCmd := exec.NewCommandLine(to.tar.Path, "xf", "-", "-C", dst.Path)
	producerCmd := exec.NewCommandLine(from.tar.Path, "-C", src.Path, "-cf", "-", ".")
	c.logger.Debug("starting tar pipe", "src", src.String(), "dst", dst.String())

	consumer, err := to.starter.StartProcess(ctx, dst, consumerCmd)
	if err != nil {
		return perrors.Wrapf(err, perrors.CodeExecutionFailed,
			"Failed to copy recursively from %q to %q while trying to extract tar archive to target", src, dst)
	}

	producer, err := from.starter.StartProcess(ctx, src, producerCmd)
	if err != nil {
		_ = consumer.Kill()
		_, _ = consumer.Wait()
		return perrors.Wrapf(err, perrors.CodeExecutionFailed,
			"Failed to copy recursively from %q to %q while trying to create tar archive from source", src, dst)
	}

	var (
		g           errgroup.Group
		pumpErr     error
		producerErr error
	)
	g.Go(func() error {
		_, pumpErr = io.Copy(consumer.Stdin(), producer.Stdout())
		if pumpErr != nil {
			// The consumer stopped reading. Drain so the producer can exit.
			_, _ = io.Copy(io.Discard, producer.Stdout())
		}
		_, producerErr = producer.Wait()
		if producerErr != nil {
			_ = consumer.Kill()
		}
		return consumer.CloseStdin()
	})
	g.Go(func() error {
		// tar x prints nothing, but remote shells may.
		_, err := io.Copy(io.Discard, consumer.Stdout())
		return err
	})
	// Closing the consumer's input or draining its output only fails when
	// the consumer failed too, so these errors rank after the exit status.
	streamErr := g.Wait()
	_, consumerErr := consumer.Wait()

	if producerErr != nil {
		return pipeError(producerErr, producer.Stderr(), producerCmd,
			"Failed to copy recursively from %q to %q while trying to create tar archive from source", src, dst)
	}
	if consumerErr == nil {
		consumerErr = pumpErr
	}
	if consumerErr == nil {
		consumerErr = streamErr
	}
	if consumerErr != nil {
		return pipeError(consumerErr, consumer.Stderr(), consumerCmd,
			"Failed to copy recursively from %q to %q while trying to extract tar archive to target", src, dst)
	}
	return nil
}

func pipeError(cause error, stderr string, cmd exec.CommandLine, format string, args ...interface{}) error {
	msg := perrors.FromStderr(stderr, format, args...).Message()
	return perrors.WithContext(perrors.Wrap(cause, perrors.CodeExecutionFailed, msg), perrors.ContextCommand, cmd.String())
}

package engine

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	perrors "github.com/jmgilman/devaccess/errors"
	"github.com/jmgilman/devaccess/fs/core"
)

// Kind says which engine serves a file name.
type Kind int

const (
	// NotHandled leaves the name to native filesystem access.
	NotHandled Kind = iota
	// FixedList serves a read-only directory with a fixed set of entries.
	FixedList
	// Device serves a file on a registered device.
	Device
	// RootInject serves the local root with DeviceRoot added to it.
	RootInject
)

func (k Kind) String() string {
	switch k {
	case FixedList:
		return "fixed-list"
	case Device:
		return "device"
	case RootInject:
		return "root-inject"
	default:
		return "not-handled"
	}
}

// Registry lists the known device schemes and device roots. *core.Router
// implements it.
type Registry interface {
	Schemes() []string
	DeviceRoots(scheme string) []core.Path
}

// Route is the outcome of routing one file name.
type Route struct {
	Kind Kind
	// Name is the file name as requested, not cleaned.
	Name string
	// Entries holds the listing of a FixedList route.
	Entries []core.Path
	// Target is the device path of a Device route.
	Target core.Path
}

// Handler routes file names below DeviceRoot to the devices in a registry.
type Handler struct {
	registry Registry
	resolver core.Resolver
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// New creates a Handler. Device routes are served by the backend r returns
// for them.
func New(registry Registry, r core.Resolver, opts ...Option) *Handler {
	h := &Handler{
		registry: registry,
		resolver: r,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Route decides which engine serves name.
func (h *Handler) Route(name string) Route {
	if strings.HasPrefix(name, ":") {
		return Route{Kind: NotHandled, Name: name}
	}

	clean := path.Clean(name)
	if clean == core.DeviceRoot {
		schemes := h.registry.Schemes()
		entries := make([]core.Path, 0, len(schemes))
		for _, s := range schemes {
			entries = append(entries, core.Local(path.Join(core.DeviceRoot, s)))
		}
		return Route{Kind: FixedList, Name: name, Entries: entries}
	}

	if strings.HasPrefix(clean, core.DeviceRoot+"/") {
		for _, s := range h.registry.Schemes() {
			if clean == path.Join(core.DeviceRoot, s) {
				return Route{Kind: FixedList, Name: name, Entries: h.registry.DeviceRoots(s)}
			}
		}

		if p, err := core.ParsePath(name); err == nil && p.NeedsDevice() {
			return Route{Kind: Device, Name: name, Target: p}
		}
	}

	if clean == "/" {
		return Route{Kind: RootInject, Name: name}
	}
	return Route{Kind: NotHandled, Name: name}
}

// ReadDir lists the directory name through the engine serving it. handled
// is false for names left to native access.
func (h *Handler) ReadDir(ctx context.Context, name string) (entries []core.Path, handled bool, err error) {
	route := h.Route(name)
	h.logger.Debug("routed directory listing", "name", name, "engine", route.Kind.String())

	switch route.Kind {
	case FixedList:
		return route.Entries, true, nil

	case Device:
		a, err := h.resolver.Resolve(route.Target)
		if err != nil {
			return nil, true, err
		}
		entries, err := list(ctx, a, route.Target)
		return entries, true, err

	case RootInject:
		a, err := h.resolver.Resolve(core.Local("/"))
		if err != nil {
			return nil, true, err
		}
		entries, err := list(ctx, a, core.Local("/"))
		if err != nil {
			return nil, true, err
		}
		return append(entries, core.Local(core.DeviceRoot)), true, nil
	}

	return nil, false, nil
}

// Stat reports the entry name through the engine serving it. Fixed lists
// and the injected root are directories.
func (h *Handler) Stat(ctx context.Context, name string) (info core.StatInfo, handled bool, err error) {
	route := h.Route(name)

	switch route.Kind {
	case FixedList, RootInject:
		flags := core.FlagDirectory | core.FlagExists
		if route.Kind == RootInject {
			flags |= core.FlagRoot
		}
		return core.StatInfo{
			Size:         0,
			LastModified: time.Now(),
			Flags:        flags.WithPermissions(0x555),
		}, true, nil

	case Device:
		a, err := h.resolver.Resolve(route.Target)
		if err != nil {
			return core.StatInfo{Size: -1}, true, err
		}
		info := a.Stat(ctx, route.Target)
		if !info.Exists() && !info.IsSymlink() {
			return info, true, perrors.WithPath(
				perrors.Newf(perrors.CodeNotFound, "%s does not exist", route.Target),
				route.Target.String(),
			)
		}
		return info, true, nil
	}

	return core.StatInfo{Size: -1}, false, nil
}

func list(ctx context.Context, a core.Access, dir core.Path) ([]core.Path, error) {
	var out []core.Path
	filter := core.Filter{Flags: core.FilterHidden | core.FilterNoDotAndDotDot}
	err := a.IterateDirectory(ctx, dir, filter, core.PathCallback(func(p core.Path) core.IterationPolicy {
		out = append(out, p)
		return core.Continue
	}))
	return out, err
}

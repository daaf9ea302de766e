package core

import (
	"fmt"
	"path"
	"strings"
)

// DeviceRoot is the synthetic directory under which every registered device
// appears on the local filesystem view.
const DeviceRoot = "/__devices__"

// Path addresses one file on one device. The zero Scheme denotes the local
// machine. Path values are immutable.
type Path struct {
	Scheme string
	Host   string
	Path   string
}

// Local returns a Path on the local machine.
func Local(p string) Path {
	return Path{Path: p}
}

// ParsePath parses "scheme://host/path", a device path below DeviceRoot
// ("/__devices__/scheme/host/path") or a plain local path.
func ParsePath(s string) (Path, error) {
	if scheme, rest, ok := strings.Cut(s, "://"); ok {
		if scheme == "" {
			return Path{}, fmt.Errorf("missing scheme in %q", s)
		}
		host, p, _ := strings.Cut(rest, "/")
		if host == "" {
			return Path{}, fmt.Errorf("missing host in %q", s)
		}
		return Path{Scheme: scheme, Host: host, Path: "/" + p}, nil
	}

	if rest, ok := strings.CutPrefix(s, DeviceRoot+"/"); ok {
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			p := "/"
			if len(parts) == 3 {
				p += parts[2]
			}
			return Path{Scheme: parts[0], Host: parts[1], Path: p}, nil
		}
	}

	return Path{Path: s}, nil
}

// String renders the path in the form accepted by ParsePath.
func (p Path) String() string {
	if p.Scheme == "" {
		return p.Path
	}
	return p.Scheme + "://" + p.Host + p.Path
}

// DevicePath renders the path below DeviceRoot. Local paths are returned
// unchanged.
func (p Path) DevicePath() string {
	if p.Scheme == "" {
		return p.Path
	}
	return DeviceRoot + "/" + p.Scheme + "/" + p.Host + p.Path
}

// NeedsDevice reports whether the path lives on a device other than the
// local machine.
func (p Path) NeedsDevice() bool {
	return p.Scheme != ""
}

// IsAbsolute reports whether the path component is absolute.
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(p.Path, "/")
}

// IsVirtual reports whether the path is a synthetic path (a resource path
// starting with ":/" or anything below DeviceRoot) that no device can
// resolve by itself.
func (p Path) IsVirtual() bool {
	if strings.HasPrefix(p.Path, ":/") {
		return true
	}
	return p.Scheme == "" && (p.Path == DeviceRoot || strings.HasPrefix(p.Path, DeviceRoot+"/"))
}

// IsRoot reports whether the path is the root directory of its device.
func (p Path) IsRoot() bool {
	return p.Path == "/"
}

// WithPath returns a path on the same device with the path component replaced.
func (p Path) WithPath(np string) Path {
	p.Path = np
	return p
}

// Join appends the slash-separated elements to the path.
func (p Path) Join(elem ...string) Path {
	return p.WithPath(path.Join(append([]string{p.Path}, elem...)...))
}

// Clean returns the path with its path component lexically cleaned.
func (p Path) Clean() Path {
	return p.WithPath(path.Clean(p.Path))
}

// Parent returns the directory containing the path.
func (p Path) Parent() Path {
	return p.WithPath(path.Dir(path.Clean(p.Path)))
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return path.Base(p.Path)
}

// SameDevice reports whether both paths address the same device.
func (p Path) SameDevice(o Path) bool {
	return p.Scheme == o.Scheme && p.Host == o.Host
}

// RelativeTo returns the slash-separated path of p relative to base. It
// reports false if p is on another device or not below base.
func (p Path) RelativeTo(base Path) (string, bool) {
	if !p.SameDevice(base) {
		return "", false
	}
	child := path.Clean(p.Path)
	parent := path.Clean(base.Path)
	if child == parent {
		return ".", true
	}
	if parent != "/" {
		parent += "/"
	}
	rel, ok := strings.CutPrefix(child, parent)
	return rel, ok
}

package shell

import "sync"

type availability int

const (
	unknown availability = iota
	available
	unavailable
)

// capability remembers whether a utility works on the device. A negative
// answer is permanent for the lifetime of the backend.
type capability struct {
	mu    sync.Mutex
	state availability
}

// usable reports whether the utility may still be tried.
func (c *capability) usable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != unavailable
}

// resolve returns the cached answer, running check on first use.
func (c *capability) resolve(check func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == unknown {
		if check() {
			c.state = available
		} else {
			c.state = unavailable
		}
	}
	return c.state == available
}

// record stores the outcome of a use. It never upgrades an unavailable
// utility and reports whether the call downgraded it.
func (c *capability) record(ok bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state == unavailable:
		return false
	case ok:
		c.state = available
		return false
	default:
		c.state = unavailable
		return true
	}
}

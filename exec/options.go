package exec

import "time"

// config holds the configuration for command execution.
// Global settings are fixed at creation time; local settings apply to the
// next execution only and are reset afterwards.
type config struct {
	globalEnv        map[string]string
	globalDir        string
	globalInheritEnv bool
	globalTimeout    time.Duration

	localEnv        map[string]string
	localDir        string
	localInheritEnv *bool
	localTimeout    *time.Duration
}

func newConfig() *config {
	return &config{
		globalEnv: make(map[string]string),
		localEnv:  make(map[string]string),
	}
}

func (c *config) clone() *config {
	out := &config{
		globalEnv:        make(map[string]string, len(c.globalEnv)),
		globalDir:        c.globalDir,
		globalInheritEnv: c.globalInheritEnv,
		globalTimeout:    c.globalTimeout,
		localEnv:         make(map[string]string, len(c.localEnv)),
		localDir:         c.localDir,
	}
	for k, v := range c.globalEnv {
		out.globalEnv[k] = v
	}
	for k, v := range c.localEnv {
		out.localEnv[k] = v
	}
	if c.localInheritEnv != nil {
		v := *c.localInheritEnv
		out.localInheritEnv = &v
	}
	if c.localTimeout != nil {
		v := *c.localTimeout
		out.localTimeout = &v
	}
	return out
}

// environ returns the KEY=VALUE list for the child process, or nil to let
// os/exec inherit the parent environment unchanged.
func (c *config) environ(parent []string) []string {
	env := make(map[string]string, len(c.globalEnv)+len(c.localEnv))
	for k, v := range c.globalEnv {
		env[k] = v
	}
	for k, v := range c.localEnv {
		env[k] = v
	}

	inherit := c.globalInheritEnv
	if c.localInheritEnv != nil {
		inherit = *c.localInheritEnv
	}

	if !inherit && len(env) == 0 {
		return nil
	}

	var out []string
	if inherit {
		out = append(out, parent...)
	}
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}

func (c *config) dir() string {
	if c.localDir != "" {
		return c.localDir
	}
	return c.globalDir
}

func (c *config) timeout() time.Duration {
	if c.localTimeout != nil {
		return *c.localTimeout
	}
	return c.globalTimeout
}

// resetLocal clears all local settings after an execution.
func (c *config) resetLocal() {
	c.localEnv = make(map[string]string)
	c.localDir = ""
	c.localInheritEnv = nil
	c.localTimeout = nil
}

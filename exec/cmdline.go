package exec

import (
	"regexp"
	"strings"
)

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// CommandLine is an executable plus arguments destined for a POSIX shell.
//
// Arguments added with AddArg are quoted when rendered; fragments added with
// AddRaw are emitted verbatim, which allows shell syntax such as `\;` or
// adjacent quoted strings.
type CommandLine struct {
	parts []part
}

type part struct {
	text string
	raw  bool
}

// NewCommandLine returns a command line for executable with the given
// quoted arguments.
func NewCommandLine(executable string, args ...string) CommandLine {
	c := CommandLine{parts: []part{{text: executable}}}
	return c.AddArgs(args...)
}

// AddArg appends a single argument that is quoted on rendering.
func (c CommandLine) AddArg(arg string) CommandLine {
	c.parts = append(c.clone(), part{text: arg})
	return c
}

// AddArgs appends several quoted arguments.
func (c CommandLine) AddArgs(args ...string) CommandLine {
	parts := c.clone()
	for _, a := range args {
		parts = append(parts, part{text: a})
	}
	c.parts = parts
	return c
}

// AddRaw appends text that is passed to the shell unmodified.
func (c CommandLine) AddRaw(text string) CommandLine {
	c.parts = append(c.clone(), part{text: text, raw: true})
	return c
}

// Executable returns the program name.
func (c CommandLine) Executable() string {
	if len(c.parts) == 0 {
		return ""
	}
	return c.parts[0].text
}

// Argv returns the unquoted words of the command line, suitable for direct
// execution without a shell. Raw fragments are included as-is.
func (c CommandLine) Argv() []string {
	out := make([]string, len(c.parts))
	for i, p := range c.parts {
		out[i] = p.text
	}
	return out
}

// HasRaw reports whether the command line contains raw shell fragments and
// therefore must be run through a shell.
func (c CommandLine) HasRaw() bool {
	for _, p := range c.parts {
		if p.raw {
			return true
		}
	}
	return false
}

// String renders the command line for sh -c.
func (c CommandLine) String() string {
	words := make([]string, len(c.parts))
	for i, p := range c.parts {
		if p.raw {
			words[i] = p.text
		} else {
			words[i] = Quote(p.text)
		}
	}
	return strings.Join(words, " ")
}

func (c CommandLine) clone() []part {
	out := make([]part, len(c.parts), len(c.parts)+1)
	copy(out, c.parts)
	return out
}

// Quote returns s quoted for a POSIX shell. Words made only of safe
// characters are returned unchanged.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

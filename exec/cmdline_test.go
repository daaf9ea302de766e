package exec

import (
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "/tmp/file.txt", want: "/tmp/file.txt"},
		{name: "empty", in: "", want: "''"},
		{name: "space", in: "/my dir", want: "'/my dir'"},
		{name: "single quote", in: "it's", want: `'it'"'"'s'`},
		{name: "glob", in: "*.txt", want: "'*.txt'"},
		{name: "dollar", in: "$HOME", want: "'$HOME'"},
		{name: "flag", in: "-maxdepth", want: "-maxdepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCommandLineString(t *testing.T) {
	line := NewCommandLine("find", "-L", "/a b").
		AddArgs("-maxdepth", "1").
		AddRaw(`-exec echo -n "{}"" " \;`)

	want := `find -L '/a b' -maxdepth 1 -exec echo -n "{}"" " \;`
	if got := line.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !line.HasRaw() {
		t.Error("expected HasRaw to be true")
	}
	if line.Executable() != "find" {
		t.Errorf("Executable() = %q", line.Executable())
	}
}

func TestCommandLineImmutable(t *testing.T) {
	base := NewCommandLine("ls")
	a := base.AddArg("-1")
	b := base.AddArg("-A")

	if a.String() != "ls -1" || b.String() != "ls -A" {
		t.Errorf("unexpected sharing between derived command lines: %q %q", a.String(), b.String())
	}
	if base.String() != "ls" {
		t.Errorf("base changed: %q", base.String())
	}
	if len(base.Argv()) != 1 {
		t.Errorf("expected 1 word, got %v", base.Argv())
	}
}

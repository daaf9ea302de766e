package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/jmgilman/devaccess/fs/core"
	"github.com/spf13/cobra"
)

// EntryOutput is the JSON form of one file.
type EntryOutput struct {
	Path        string    `json:"path"`
	Type        string    `json:"type"`
	Size        int64     `json:"size"`
	Permissions string    `json:"permissions"`
	Modified    time.Time `json:"modified"`
	Flags       []string  `json:"flags,omitempty"`
}

func entryOutput(p core.Path, info core.StatInfo) EntryOutput {
	out := EntryOutput{
		Path:        p.String(),
		Type:        kind(info),
		Size:        info.Size,
		Permissions: info.Permissions().String(),
		Modified:    info.LastModified,
	}
	for _, f := range []struct {
		set  bool
		name string
	}{
		{info.IsSymlink(), "symlink"},
		{info.IsHidden(), "hidden"},
		{info.IsBundle(), "bundle"},
		{info.IsRoot(), "root"},
	} {
		if f.set {
			out.Flags = append(out.Flags, f.name)
		}
	}
	return out
}

func kind(info core.StatInfo) string {
	switch {
	case !info.Exists():
		return "missing"
	case info.IsDirectory():
		return "directory"
	case info.IsFile():
		return "file"
	default:
		return "other"
	}
}

// long renders one entry the way "ls -l" does.
func (e EntryOutput) long() string {
	t := "-"
	switch {
	case slices.Contains(e.Flags, "symlink"):
		t = "l"
	case e.Type == "directory":
		t = "d"
	}
	return fmt.Sprintf("%s%s %10d %s %s", t, e.Permissions, e.Size, e.Modified.Local().Format("2006-01-02 15:04"), e.Path)
}

// emit prints v as JSON in --json mode and through text otherwise.
func (a *App) emit(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}

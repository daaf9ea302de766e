package core

import (
	"context"
	"iter"
)

// Entry is one result of a directory iteration.
type Entry struct {
	Path Path
	Info StatInfo
}

// Entries returns the result of IterateDirectory as a sequence. Breaking out
// of the range loop stops the iteration. A failed iteration yields its error
// as the last element.
func Entries(ctx context.Context, a Access, p Path, filter Filter) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		stopped := false
		err := a.IterateDirectory(ctx, p, filter, InfoCallback(func(ep Path, info StatInfo) IterationPolicy {
			if !yield(Entry{Path: ep, Info: info}, nil) {
				stopped = true
				return Stop
			}
			return Continue
		}))
		if err != nil && !stopped {
			yield(Entry{}, err)
		}
	}
}

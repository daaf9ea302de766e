package core

// FilterFlags select entries by kind and access during directory iteration.
type FilterFlags uint16

const (
	// FilterFiles includes regular files. If neither FilterFiles nor
	// FilterDirs is set, both are included.
	FilterFiles FilterFlags = 1 << iota
	// FilterDirs includes directories.
	FilterDirs
	// FilterNoSymlinks excludes symbolic links.
	FilterNoSymlinks
	// FilterHidden includes names starting with a dot.
	FilterHidden
	FilterReadable
	FilterWritable
	FilterExecutable
	// FilterCaseSensitive makes name globs case sensitive.
	FilterCaseSensitive
	// FilterNoDotAndDotDot excludes "." and "..". Iteration never reports
	// them, so the flag is accepted everywhere.
	FilterNoDotAndDotDot
)

// structuralFilters are the flags that restrict entries by kind or access.
const structuralFilters = FilterFiles | FilterDirs | FilterNoSymlinks |
	FilterReadable | FilterWritable | FilterExecutable

// Filter describes which entries IterateDirectory reports.
type Filter struct {
	// NameFilters are glob patterns matched against the entry name. An entry
	// matches if any pattern matches. No patterns match everything.
	NameFilters []string
	Flags       FilterFlags
	// Recursive descends into subdirectories.
	Recursive bool
	// FollowSymlinks resolves symbolic links while descending.
	FollowSymlinks bool
}

// Has reports whether all of the given flags are set.
func (f Filter) Has(flags FilterFlags) bool {
	return f.Flags&flags == flags
}

// Structural reports whether the filter restricts entries by kind or access.
func (f Filter) Structural() bool {
	return f.Flags&structuralFilters != 0
}

// WantsFiles reports whether regular files pass the kind filter.
func (f Filter) WantsFiles() bool {
	return f.Has(FilterFiles) || !f.Has(FilterDirs)
}

// WantsDirs reports whether directories pass the kind filter.
func (f Filter) WantsDirs() bool {
	return f.Has(FilterDirs) || !f.Has(FilterFiles)
}

// IterationPolicy tells IterateDirectory whether to continue.
type IterationPolicy int

const (
	Continue IterationPolicy = iota
	Stop
)

// Callback receives the entries produced by IterateDirectory. Construct one
// with PathCallback or InfoCallback.
type Callback struct {
	path func(Path) IterationPolicy
	info func(Path, StatInfo) IterationPolicy
}

// PathCallback returns a Callback that receives only entry paths.
func PathCallback(fn func(Path) IterationPolicy) Callback {
	return Callback{path: fn}
}

// InfoCallback returns a Callback that receives entry paths with their
// metadata. Backends may collect the metadata in the same round trip.
func InfoCallback(fn func(Path, StatInfo) IterationPolicy) Callback {
	return Callback{info: fn}
}

// WantsInfo reports whether the callback needs StatInfo.
func (c Callback) WantsInfo() bool {
	return c.info != nil
}

// Call delivers one entry. info is ignored by path callbacks.
func (c Callback) Call(p Path, info StatInfo) IterationPolicy {
	switch {
	case c.info != nil:
		return c.info(p, info)
	case c.path != nil:
		return c.path(p)
	default:
		return Stop
	}
}

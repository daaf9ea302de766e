// Package desktop implements core.Access for the local machine.
//
// File operations go through a go-billy osfs filesystem rooted at "/".
// Recursive directory iteration uses fastwalk and name filters are matched
// with doublestar.
//
// RemoveRecursively refuses the filesystem root and the user's home
// directory, independent of what the caller asks for.
package desktop

// Package scanner orchestrates sequence detection across one or more root
// directories.
//
// A Scanner owns an immutable Config and runs the traversal, grouping, and
// building pipeline: roots scan in parallel, and within each root a worker
// pool processes one directory at a time, so memory tracks the largest
// directory rather than the whole tree. Failures degrade instead of
// aborting: unreadable roots, directories, and even panicking workers end
// up as entries in Result.Errors while every sibling keeps going.
//
// Rescan re-runs the stored configuration and swaps the stored Result
// atomically; callers never observe a half-updated result. FromFile is the
// single-file reverse lookup, reusing the exact grouping code over one
// parent directory listing.
package scanner

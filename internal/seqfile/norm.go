package seqfile

import (
	"runtime"
	"strings"
)

// foldPaths is true on platforms whose default filesystems compare paths
// case-insensitively. Folding applies to grouping keys only; parsed fields
// always keep the original case.
var foldPaths = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// normalize canonicalizes a path fragment for hashing and equality:
// separators become forward slashes and, on case-insensitive platforms,
// the text is lowercased. String-level only, no filesystem access.
func normalize(fragment string) string {
	fragment = strings.ReplaceAll(fragment, `\`, "/")
	if foldPaths {
		fragment = strings.ToLower(fragment)
	}
	return fragment
}

// DirKey is the normalized grouping key of the file's location
// (drive + directory).
func (f File) DirKey() string {
	return normalize(f.Drive) + normalize(f.Dir)
}

// SigKey is the normalized signature shared by all candidate members of one
// sequence family: location, mask, and extension. Two files with equal
// SigKey differ at most in their digit runs.
func (f File) SigKey() string {
	return f.DirKey() + "\x00" + normalize(f.Mask) + "\x00" + normalize(f.Ext)
}

// PathKey is the normalized identity of the full path, used to match a
// lookup target against directory listings regardless of separator style
// or case on insensitive platforms.
func (f File) PathKey() string {
	return f.DirKey() + normalize(f.Name) + normalize(f.Ext)
}

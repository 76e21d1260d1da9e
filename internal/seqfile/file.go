package seqfile

import (
	"fmt"
	"strconv"
	"strings"
)

// DigitGroup marks one maximal run of ASCII digits inside a file name.
type DigitGroup struct {
	// Start is the byte offset of the run within the name.
	Start int
	// Len is the run length in bytes.
	Len int
}

// File is a parsed path with digit-group metadata.
//
// Drive, Dir, Name, and Ext preserve the original spelling; concatenating
// them in that order reproduces the path exactly.
type File struct {
	// Path is the full path string as given by the caller.
	Path string
	// Drive is a Windows drive prefix ("c:") or empty for Unix paths.
	Drive string
	// Dir is the directory part including the trailing separator,
	// original separators intact.
	Dir string
	// Name is the file name without extension.
	Name string
	// Ext is the extension including the leading dot, or empty.
	Ext string
	// Groups lists the digit runs inside Name, left to right.
	Groups []DigitGroup
	// Mask is Name with every digit run replaced by @.
	Mask string
}

// Parse splits a path into components and extracts digit groups.
// Accepts Windows, Unix, and mixed separator styles; no I/O is performed.
func Parse(path string) File {
	drive, dir, name, ext := splitPath(path)
	groups := digitGroups(name)
	return File{
		Path:   path,
		Drive:  drive,
		Dir:    dir,
		Name:   name,
		Ext:    ext,
		Groups: groups,
		Mask:   buildMask(name, groups),
	}
}

// HasDigits reports whether the name contains at least one digit run.
func (f File) HasDigits() bool {
	return len(f.Groups) > 0
}

// GroupText returns the raw digit text of group idx. The second return is
// false when idx is out of range or the recorded offsets do not fit the
// name (malformed group data is skipped, never sliced blindly).
func (f File) GroupText(idx int) (string, bool) {
	if idx < 0 || idx >= len(f.Groups) {
		return "", false
	}
	g := f.Groups[idx]
	end := g.Start + g.Len
	if g.Start < 0 || g.Len <= 0 || end > len(f.Name) {
		return "", false
	}
	return f.Name[g.Start:end], true
}

// GroupValue parses group idx as a frame number. Runs wider than an int64
// can hold fail the parse and the group contributes no frame candidate.
func (f File) GroupValue(idx int) (int64, bool) {
	text, ok := f.GroupText(idx)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DisplayDir returns drive plus directory with separators canonicalized to
// forward slashes, keeping the original case. Used for pattern output.
func (f File) DisplayDir() string {
	return f.Drive + strings.ReplaceAll(f.Dir, `\`, "/")
}

func (f File) String() string {
	return fmt.Sprintf("File(%q, mask=%q)", f.Path, f.Mask)
}

func isSep(b byte) bool {
	return b == '/' || b == '\\'
}

// splitPath breaks a path into (drive, dir, name, ext).
// The drive is everything before the first separator; paths without any
// separator are treated as a bare file name.
func splitPath(path string) (drive, dir, name, ext string) {
	firstSep := strings.IndexAny(path, `/\`)
	if firstSep < 0 {
		name, ext = splitName(path)
		return "", "", name, ext
	}

	drive = path[:firstSep]
	rest := path[firstSep:]

	lastSep := strings.LastIndexAny(rest, `/\`)
	dir = rest[:lastSep+1]
	name, ext = splitName(rest[lastSep+1:])
	return drive, dir, name, ext
}

// splitName separates the extension at the last dot. A leading dot is part
// of the name (".hidden" has no extension).
func splitName(base string) (name, ext string) {
	dot := strings.LastIndexByte(base, '.')
	if dot > 0 {
		return base[:dot], base[dot:]
	}
	return base, ""
}

// digitGroups finds every maximal run of ASCII digits in name.
func digitGroups(name string) []DigitGroup {
	var groups []DigitGroup
	start := -1
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			groups = append(groups, DigitGroup{Start: start, Len: i - start})
			start = -1
		}
	}
	if start >= 0 {
		groups = append(groups, DigitGroup{Start: start, Len: len(name) - start})
	}
	return groups
}

// buildMask replaces each digit run with a single @ placeholder, keeping
// all literal text.
func buildMask(name string, groups []DigitGroup) string {
	if len(groups) == 0 {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	pos := 0
	for _, g := range groups {
		b.WriteString(name[pos:g.Start])
		b.WriteByte('@')
		pos = g.Start + g.Len
	}
	b.WriteString(name[pos:])
	return b.String()
}

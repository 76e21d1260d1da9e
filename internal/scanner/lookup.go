package scanner

import (
	"path/filepath"

	"framescan/internal/filter"
	"framescan/internal/seqfile"
	"framescan/internal/sequence"
	"framescan/internal/walk"
)

// FromFile rebuilds the sequence containing path by listing only its
// parent directory and reusing the scan-time grouping and building code.
// Returns nil when the parent cannot be listed or no bucket containing the
// file reaches minLen (values below 1 fall back to the default minimum).
func FromFile(path string, minLen int) *sequence.Seq {
	if minLen < 1 {
		minLen = DefaultMinLen
	}

	// Rebuild the target path the same way the directory listing spells
	// its entries, so "./dir/x" and "dir//x" resolve to the same keys.
	parent := filepath.Dir(path)
	target := seqfile.Parse(filepath.Join(parent, filepath.Base(path)))
	if !target.HasDigits() {
		return nil
	}
	files, err := walk.List(parent, filter.All())
	if err != nil {
		return nil
	}

	siblings := make([]seqfile.File, 0, len(files))
	for _, p := range files {
		siblings = append(siblings, seqfile.Parse(p))
	}
	return sequence.ForFile(target, siblings, minLen)
}

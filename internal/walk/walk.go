package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"framescan/internal/filter"
)

// Dirs discovers the directories to process under root. The root itself is
// always included; with recursive set, every subdirectory is added. The
// returned list is sorted and deduplicated. Unreadable subdirectories are
// reported as warnings; an unreadable root is an error.
func Dirs(root string, recursive bool) (dirs []string, warnings []string, err error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s: not a directory", root)
	}

	if !recursive {
		return []string{root}, nil, nil
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			return nil
		}
		// WalkDir does not follow symlinks, so a link to a directory is a
		// plain entry here and never descended into.
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, warnings, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	sort.Strings(dirs)
	dirs = dedupSorted(dirs)
	return dirs, warnings, nil
}

// List returns the full paths of regular files in one directory whose names
// pass the filter. Symlinks and subdirectories are skipped.
func List(dir string, f filter.Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	if f == nil {
		f = filter.All()
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !f.Match(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Files is the flat scan mode: it collects every matching file under the
// given roots without sequence grouping. Roots are walked in parallel; the
// result is sorted for deterministic output. Failures are returned as
// warning strings so one bad root never aborts the others.
func Files(roots []string, recursive bool, f filter.Filter) (files []string, warnings []string) {
	if f == nil {
		f = filter.All()
	}

	results := make([]rootResult, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = scanRoot(root, recursive, f)
		}()
	}
	wg.Wait()

	for _, res := range results {
		files = append(files, res.files...)
		warnings = append(warnings, res.warnings...)
	}
	sort.Strings(files)
	return files, warnings
}

type rootResult struct {
	files    []string
	warnings []string
}

func scanRoot(root string, recursive bool, f filter.Filter) (res rootResult) {
	dirs, warns, err := Dirs(root, recursive)
	res.warnings = warns
	if err != nil {
		res.warnings = append(res.warnings, fmt.Sprintf("%s: %v", root, err))
		return res
	}
	for _, dir := range dirs {
		names, err := List(dir, f)
		if err != nil {
			res.warnings = append(res.warnings, fmt.Sprintf("%s: %v", dir, err))
			continue
		}
		res.files = append(res.files, names...)
	}
	return res
}

func dedupSorted(values []string) []string {
	if len(values) < 2 {
		return values
	}
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

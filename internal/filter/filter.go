package filter

import (
	"fmt"
	"path"
	"strings"
)

// Filter reports whether a file name participates in a scan.
type Filter interface {
	// Match tests a base file name (no directory part).
	Match(name string) bool
	// String returns the filter spelling for display and persistence.
	String() string
}

// All returns a filter that matches every file.
func All() Filter {
	return allFilter{}
}

type allFilter struct{}

func (allFilter) Match(string) bool { return true }
func (allFilter) String() string    { return "" }

// Extensions builds a filter matching files whose extension equals one of
// exts (case-insensitive, leading dots ignored). Entries containing * or ?
// are matched as patterns against the extension, so "jp*" covers jpg, jpeg,
// and jp2.
func Extensions(exts ...string) Filter {
	f := extFilter{spec: strings.Join(exts, ",")}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		if strings.ContainsAny(e, "*?") {
			f.patterns = append(f.patterns, e)
		} else {
			if f.exact == nil {
				f.exact = make(map[string]struct{})
			}
			f.exact[e] = struct{}{}
		}
	}
	return f
}

type extFilter struct {
	spec     string
	exact    map[string]struct{}
	patterns []string
}

func (f extFilter) Match(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return false
	}
	ext := strings.ToLower(name[dot+1:])
	if _, ok := f.exact[ext]; ok {
		return true
	}
	for _, p := range f.patterns {
		if ok, err := path.Match(p, ext); err == nil && ok {
			return true
		}
	}
	return false
}

func (f extFilter) String() string { return f.spec }

// Glob compiles a pattern over the whole file name. Supports * and ? via
// path.Match plus {a,b} alternatives, which are expanded before
// compilation. Matching is case-insensitive to align with extension
// filtering on media trees.
func Glob(pattern string) (Filter, error) {
	alternatives, err := expandBraces(strings.ToLower(pattern))
	if err != nil {
		return nil, err
	}
	for _, alt := range alternatives {
		if _, err := path.Match(alt, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	return globFilter{spec: pattern, alternatives: alternatives}, nil
}

type globFilter struct {
	spec         string
	alternatives []string
}

func (f globFilter) Match(name string) bool {
	name = strings.ToLower(name)
	for _, alt := range f.alternatives {
		if ok, _ := path.Match(alt, name); ok {
			return true
		}
	}
	return false
}

func (f globFilter) String() string { return f.spec }

// Parse builds a filter from a user-supplied spec. An empty spec matches
// all files; a spec containing glob metacharacters becomes a Glob over the
// file name; anything else is a comma-separated extension list.
func Parse(spec string) (Filter, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return All(), nil
	}
	if strings.ContainsAny(spec, "*?{") {
		return Glob(spec)
	}
	return Extensions(strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' '
	})...), nil
}

// expandBraces rewrites {a,b} alternatives into the list of plain patterns
// they denote. Nested braces expand recursively; an unclosed brace is an
// error.
func expandBraces(pattern string) ([]string, error) {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}, nil
	}

	depth := 0
	closing := -1
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				closing = i
			}
		}
		if closing >= 0 {
			break
		}
	}
	if closing < 0 {
		return nil, fmt.Errorf("invalid pattern %q: unclosed brace", pattern)
	}

	prefix := pattern[:open]
	suffix := pattern[closing+1:]

	var out []string
	depth = 0
	segStart := open + 1
	for i := open + 1; i <= closing; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			if i == closing {
				break
			}
			depth--
		}
		if i == closing || (pattern[i] == ',' && depth == 0) {
			seg := pattern[segStart:i]
			expanded, err := expandBraces(prefix + seg + suffix)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			segStart = i + 1
		}
	}
	return out, nil
}

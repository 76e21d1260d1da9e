package scanner

import (
	"runtime"

	"framescan/internal/filter"
)

// DefaultMinLen is the minimum sequence length applied when none is
// configured.
const DefaultMinLen = 2

// fallbackWorkers is used when hardware concurrency cannot be determined.
const fallbackWorkers = 8

// Config describes one scan. It is a plain value: the With methods return
// modified copies, and a Scanner keeps the copy it was built with for the
// lifetime of its rescans.
type Config struct {
	// Roots are the directories to scan, in the order given.
	Roots []string
	// Recursive walks subdirectories when set.
	Recursive bool
	// Filter restricts which file names are considered; nil matches all.
	Filter filter.Filter
	// MinLen drops sequences with fewer files from the result.
	MinLen int
	// Workers sizes the per-root directory pool; 0 resolves to the
	// hardware concurrency at scan time.
	Workers int
}

// NewConfig returns a config with the default recursive scan over the
// given roots.
func NewConfig(roots ...string) Config {
	return Config{
		Roots:     append([]string(nil), roots...),
		Recursive: true,
		Filter:    filter.All(),
		MinLen:    DefaultMinLen,
	}
}

// WithRecursive returns a copy with the recursion flag set.
func (c Config) WithRecursive(recursive bool) Config {
	c.Recursive = recursive
	return c
}

// WithFilter returns a copy using the given file filter.
func (c Config) WithFilter(f filter.Filter) Config {
	c.Filter = f
	return c
}

// WithExtensions returns a copy filtering on the given extensions.
func (c Config) WithExtensions(exts ...string) Config {
	c.Filter = filter.Extensions(exts...)
	return c
}

// WithMinLen returns a copy with the minimum sequence length set.
func (c Config) WithMinLen(minLen int) Config {
	c.MinLen = minLen
	return c
}

// WithWorkers returns a copy with an explicit worker count, letting tests
// and callers pin a deterministic value instead of querying hardware.
func (c Config) WithWorkers(workers int) Config {
	c.Workers = workers
	return c
}

func (c Config) minLen() int {
	if c.MinLen < 1 {
		return DefaultMinLen
	}
	return c.MinLen
}

func (c Config) filter() filter.Filter {
	if c.Filter == nil {
		return filter.All()
	}
	return c.Filter
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return fallbackWorkers
}

package scanner

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"framescan/internal/filter"
	"framescan/internal/logging"
	"framescan/internal/testsupport"
)

func TestNewRequiresRoots(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoRoots) {
		t.Fatalf("expected ErrNoRoots, got %v", err)
	}
}

func TestScanFindsSequences(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, filepath.Join(root, "comp"), "plate.", ".exr", 4, 1, 2, 3)
	testsupport.WriteFrames(t, filepath.Join(root, "comp"), "bg.", ".exr", 4, 1, 2)
	testsupport.WriteFiles(t, filepath.Join(root, "comp"), "notes.txt")
	testsupport.WriteFrames(t, filepath.Join(root, "roto", "v001"), "mask.", ".png", 0, 1, 2, 4)

	s, err := New(NewConfig(root).WithWorkers(2))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if len(result.Seqs) != 3 {
		t.Fatalf("got %d sequences", len(result.Seqs))
	}
	if result.TotalFiles() != 8 {
		t.Fatalf("total files: %d", result.TotalFiles())
	}

	// Results are sorted by pattern; check the gapped png sequence.
	var found bool
	for _, seq := range result.Seqs {
		if filepath.Base(filepath.Dir(seq.Pattern())) == "v001" {
			found = true
			if len(seq.Missed) != 1 || seq.Missed[0] != 3 {
				t.Fatalf("missed: %v", seq.Missed)
			}
		}
	}
	if !found {
		t.Fatal("nested sequence not detected")
	}

	if s.Result() != result {
		t.Fatal("stored result should be the returned one")
	}
}

func TestScanResultOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, root, "b.", ".exr", 4, 1, 2)
	testsupport.WriteFrames(t, root, "a.", ".exr", 4, 1, 2)

	s, err := New(NewConfig(root))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()
	if len(result.Seqs) != 2 {
		t.Fatalf("got %d sequences", len(result.Seqs))
	}
	if result.Seqs[0].Pattern() > result.Seqs[1].Pattern() {
		t.Fatalf("unsorted: %q, %q", result.Seqs[0].Pattern(), result.Seqs[1].Pattern())
	}
}

func TestScanNonRecursiveStaysAtRoot(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, root, "top.", ".exr", 4, 1, 2)
	testsupport.WriteFrames(t, filepath.Join(root, "sub"), "deep.", ".exr", 4, 1, 2)

	s, err := New(NewConfig(root).WithRecursive(false))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()
	if len(result.Seqs) != 1 {
		t.Fatalf("non-recursive scan leaked into subdirectories: %d sequences", len(result.Seqs))
	}
}

func TestScanAppliesFilter(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, root, "plate.", ".exr", 4, 1, 2)
	testsupport.WriteFrames(t, root, "plate.", ".dpx", 4, 1, 2)

	s, err := New(NewConfig(root).WithFilter(filter.Extensions("exr")))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()
	if len(result.Seqs) != 1 {
		t.Fatalf("got %d sequences", len(result.Seqs))
	}
}

func TestScanBadRootIsPartialFailure(t *testing.T) {
	good := t.TempDir()
	testsupport.WriteFrames(t, good, "ok.", ".exr", 4, 1, 2)
	bad := filepath.Join(good, "missing")

	s, err := New(NewConfig(good, bad))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()
	if len(result.Seqs) != 1 {
		t.Fatalf("good root result lost: %d sequences", len(result.Seqs))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("bad root should produce one error, got %v", result.Errors)
	}
}

func TestRescanReplacesResult(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, root, "f.", ".exr", 4, 1, 2)

	s, err := New(NewConfig(root))
	if err != nil {
		t.Fatal(err)
	}
	first := s.Scan()

	testsupport.WriteFrames(t, root, "f.", ".exr", 4, 3)
	second := s.Rescan()

	if first == second {
		t.Fatal("rescan must build a fresh result")
	}
	if first.TotalFiles() != 2 || second.TotalFiles() != 3 {
		t.Fatalf("counts: first=%d second=%d", first.TotalFiles(), second.TotalFiles())
	}
	if s.Result() != second {
		t.Fatal("stored result should be the latest")
	}
}

func TestProgressReachesTotal(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFrames(t, filepath.Join(root, "a"), "f.", ".exr", 4, 1, 2)
	testsupport.WriteFrames(t, filepath.Join(root, "b"), "f.", ".exr", 4, 1, 2)

	var mu sync.Mutex
	var lastDone, lastTotal int64
	progress := func(done, total int64) {
		mu.Lock()
		if done > lastDone {
			lastDone = done
		}
		if total > lastTotal {
			lastTotal = total
		}
		mu.Unlock()
	}

	s, err := New(NewConfig(root).WithWorkers(2), WithProgress(progress))
	if err != nil {
		t.Fatal(err)
	}
	s.Scan()

	mu.Lock()
	defer mu.Unlock()
	if lastTotal != 3 {
		t.Fatalf("total: %d", lastTotal)
	}
	if lastDone != lastTotal {
		t.Fatalf("done %d never reached total %d", lastDone, lastTotal)
	}
}

func TestScanLogsOverwideDigitRuns(t *testing.T) {
	root := t.TempDir()
	// 20 digits overflow int64; the run is kept in the mask but cannot
	// serve as a frame number.
	testsupport.WriteFiles(t, root,
		"take_99999999999999999990.exr",
		"take_99999999999999999991.exr",
	)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	s, err := New(NewConfig(root), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	result := s.Scan()

	if len(result.Seqs) != 0 {
		t.Fatalf("overflowing runs must not form a sequence: %v", result.Seqs)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unparseable frames are not scan errors: %v", result.Errors)
	}
	if !strings.Contains(buf.String(), "digit run unusable as frame number") {
		t.Fatalf("expected a debug line per rejected run, got:\n%s", buf.String())
	}
}

func TestConfigResolution(t *testing.T) {
	cfg := Config{}
	if cfg.minLen() != DefaultMinLen {
		t.Fatalf("min len fallback: %d", cfg.minLen())
	}
	if cfg.filter() == nil {
		t.Fatal("filter fallback must not be nil")
	}
	if cfg.workers() < 1 {
		t.Fatalf("workers fallback: %d", cfg.workers())
	}
	if got := cfg.WithWorkers(3).workers(); got != 3 {
		t.Fatalf("explicit workers: %d", got)
	}
	if got := cfg.WithMinLen(5).minLen(); got != 5 {
		t.Fatalf("explicit min len: %d", got)
	}
}

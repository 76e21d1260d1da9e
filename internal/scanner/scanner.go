package scanner

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"framescan/internal/logging"
	"framescan/internal/seqfile"
	"framescan/internal/sequence"
	"framescan/internal/walk"
)

// ErrNoRoots reports a configuration without any scan roots.
var ErrNoRoots = errors.New("scanner: no roots configured")

// ProgressFunc observes directory completion. done is the post-increment
// counter value for the finished directory; total may still grow while
// roots are being discovered.
type ProgressFunc func(done, total int64)

// Result is the immutable outcome of one scan pass. A rescan produces a
// fresh Result; existing ones are never mutated.
type Result struct {
	// Seqs are the detected sequences, sorted by pattern then start.
	Seqs []*sequence.Seq
	// Elapsed is the wall time of the pass.
	Elapsed time.Duration
	// Errors lists non-fatal failures, one entry per failed root or
	// sub-path.
	Errors []string
}

// TotalFiles sums the file counts of all sequences.
func (r *Result) TotalFiles() int {
	total := 0
	for _, s := range r.Seqs {
		total += s.Len()
	}
	return total
}

// MarshalJSON emits the stable wire shape shared by the CLI and catalog.
func (r *Result) MarshalJSON() ([]byte, error) {
	seqs := r.Seqs
	if seqs == nil {
		seqs = []*sequence.Seq{}
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return json.Marshal(struct {
		Seqs      []*sequence.Seq `json:"seqs"`
		ElapsedMS float64         `json:"elapsed_ms"`
		Errors    []string        `json:"errors"`
	}{seqs, float64(r.Elapsed) / float64(time.Millisecond), errs})
}

// Option adjusts scanner construction.
type Option func(*Scanner)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress registers a directory-completion observer.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scanner) { s.progress = fn }
}

// Scanner runs scans over a fixed configuration.
type Scanner struct {
	cfg      Config
	logger   *slog.Logger
	progress ProgressFunc
	result   atomic.Pointer[Result]
}

// New validates the configuration and builds a scanner. No scan runs until
// Scan is called.
func New(cfg Config, opts ...Option) (*Scanner, error) {
	if len(cfg.Roots) == 0 {
		return nil, ErrNoRoots
	}
	s := &Scanner{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the stored configuration value.
func (s *Scanner) Config() Config { return s.cfg }

// Result returns the most recent scan result, or nil before the first
// scan. The pointer swap is atomic, so a caller never sees a partially
// updated result during a rescan.
func (s *Scanner) Result() *Result { return s.result.Load() }

// Scan runs one full pass over every root and stores the result.
func (s *Scanner) Scan() *Result {
	start := time.Now()
	agg := newAggregate(s.progress)

	var wg sync.WaitGroup
	for _, root := range s.cfg.Roots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.scanRoot(root, agg)
		}()
	}
	wg.Wait()

	result := &Result{
		Seqs:    agg.seqs,
		Elapsed: time.Since(start),
		Errors:  agg.errors,
	}
	sortSeqs(result.Seqs)

	s.logger.Info("scan complete",
		slog.Int("sequences", len(result.Seqs)),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("elapsed", result.Elapsed))

	s.result.Store(result)
	return result
}

// Rescan re-runs the stored configuration and atomically replaces the
// stored result.
func (s *Scanner) Rescan() *Result { return s.Scan() }

// scanRoot runs the discover-then-process pipeline for one root. The
// worker pool is sized by the configured worker count; directories hand
// work over a channel so only one directory's files are in flight per
// worker.
func (s *Scanner) scanRoot(root string, agg *aggregate) {
	dirs, warnings, err := walk.Dirs(root, s.cfg.Recursive)
	agg.addErrors(warnings)
	if err != nil {
		agg.addErrors([]string{err.Error()})
		return
	}
	s.logger.Debug("root discovered", slog.String("root", root), slog.Int("dirs", len(dirs)))

	agg.growTotal(int64(len(dirs)))

	dirCh := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dir := range dirCh {
				s.processDir(dir, agg)
				agg.dirDone()
			}
		}()
	}
	for _, dir := range dirs {
		dirCh <- dir
	}
	close(dirCh)
	wg.Wait()
}

// processDir lists, decomposes, groups, and builds one directory's files.
// A panic inside the pipeline is converted into a named error entry so a
// crashed worker can never hang the scan or corrupt the aggregate.
func (s *Scanner) processDir(dir string, agg *aggregate) {
	defer func() {
		if r := recover(); r != nil {
			agg.addErrors([]string{fmt.Sprintf("worker panic in %s: %v", dir, r)})
		}
	}()

	files, err := walk.List(dir, s.cfg.filter())
	if err != nil {
		agg.addErrors([]string{err.Error()})
		return
	}
	if len(files) == 0 {
		return
	}

	parsed := make([]seqfile.File, 0, len(files))
	for _, path := range files {
		f := seqfile.Parse(path)
		for idx := range f.Groups {
			if _, ok := f.GroupValue(idx); !ok {
				s.logger.Debug("digit run unusable as frame number",
					slog.String("file", path), slog.Int("group", idx))
			}
		}
		parsed = append(parsed, f)
	}

	seqs := sequence.Group(parsed, s.cfg.minLen())
	if len(seqs) > 0 {
		s.logger.Debug("directory grouped", slog.String("dir", dir), slog.Int("sequences", len(seqs)))
		agg.addSeqs(seqs)
	}
}

// sortSeqs imposes the deterministic result order: pattern, then start.
// Parallel workers finish in arbitrary order, so consumers get a stable
// view only through this final sort.
func sortSeqs(seqs []*sequence.Seq) {
	sort.Slice(seqs, func(i, j int) bool {
		pi, pj := seqs[i].Pattern(), seqs[j].Pattern()
		if pi != pj {
			return pi < pj
		}
		return seqs[i].Start < seqs[j].Start
	})
}

// aggregate collects results from parallel workers. The sequence and error
// slices sit behind a mutex; the progress counters are atomics whose
// post-increment values feed the progress callback directly, never a
// separate stale load.
type aggregate struct {
	mu     sync.Mutex
	seqs   []*sequence.Seq
	errors []string

	done     atomic.Int64
	total    atomic.Int64
	progress ProgressFunc
}

func newAggregate(progress ProgressFunc) *aggregate {
	return &aggregate{progress: progress}
}

func (a *aggregate) addSeqs(seqs []*sequence.Seq) {
	a.mu.Lock()
	a.seqs = append(a.seqs, seqs...)
	a.mu.Unlock()
}

func (a *aggregate) addErrors(errs []string) {
	if len(errs) == 0 {
		return
	}
	a.mu.Lock()
	a.errors = append(a.errors, errs...)
	a.mu.Unlock()
}

func (a *aggregate) growTotal(n int64) int64 {
	total := a.total.Add(n)
	if a.progress != nil {
		a.progress(a.done.Load(), total)
	}
	return total
}

func (a *aggregate) dirDone() {
	done := a.done.Add(1)
	if a.progress != nil {
		a.progress(done, a.total.Load())
	}
}

package catalog

import (
	"time"

	"framescan/internal/sequence"
)

// ScanRecord is the input to RecordScan: the configuration values and
// outcome of one scan run. A plain value type so the catalog stays below
// the scanner in the import graph.
type ScanRecord struct {
	Roots     []string
	Recursive bool
	Filter    string
	MinLen    int
	Elapsed   time.Duration
	Errors    []string
	Seqs      []*sequence.Seq
}

// Scan is one recorded scan run.
type Scan struct {
	ID        string
	StartedAt time.Time
	Elapsed   time.Duration
	Roots     []string
	Recursive bool
	Filter    string
	MinLen    int
	SeqCount  int
	FileCount int
	Errors    []string
}

// SequenceRow summarizes one sequence of a recorded scan. Frame-level
// detail (indices, missed lists) lives only in the live ScanResult; the
// catalog keeps the counts needed for history views.
type SequenceRow struct {
	ScanID      string
	Pattern     string
	Start       int64
	End         int64
	Padding     int
	FrameCount  int
	MissedCount int
}

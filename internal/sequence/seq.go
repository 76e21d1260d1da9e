package sequence

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"framescan/internal/seqfile"
)

// maxMissedGap bounds how many frames a single gap may contribute to the
// missed list. Larger gaps still leave the sequence incomplete but are not
// enumerated.
const maxMissedGap = 100_000

// maxExpand bounds Expand to keep absurd ranges from allocating unbounded
// path lists.
const maxExpand = 1_000_000

// Seq is one detected file sequence.
//
// Indices holds the frame numbers actually present, ascending and
// deduplicated. Missed holds the integers strictly between Start and End
// with no corresponding file. The pattern is derived on demand from the
// stored name template and Padding, so it can never drift from the mask.
type Seq struct {
	Indices []int64
	Missed  []int64
	Start   int64
	End     int64
	// Padding is the fixed zero-padded width when every member shares a
	// digit width of at least 2; otherwise 0 (unpadded or mixed widths).
	Padding int

	dir    string // display directory, forward slashes
	prefix string // name text before the frame digits
	suffix string // name text after the frame digits
	ext    string
}

// Build constructs a sequence from one anchor bucket, reading each file's
// frame number at the elected digit position. Returns nil when no file
// yields a parseable frame.
func Build(files []seqfile.File, frameIdx int) *Seq {
	if len(files) == 0 {
		return nil
	}

	frames := make([]int64, 0, len(files))
	var template *seqfile.File
	for i := range files {
		v, ok := files[i].GroupValue(frameIdx)
		if !ok {
			continue
		}
		frames = append(frames, v)
		if template == nil {
			template = &files[i]
		}
	}
	if len(frames) == 0 {
		return nil
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })
	frames = dedupInt64(frames)

	seq := &Seq{
		Indices: frames,
		Start:   frames[0],
		End:     frames[len(frames)-1],
		Padding: detectPadding(files, frameIdx),
	}
	seq.Missed = missedFrames(frames)

	g := template.Groups[frameIdx]
	seq.dir = template.DisplayDir()
	seq.prefix = template.Name[:g.Start]
	seq.suffix = template.Name[g.Start+g.Len:]
	seq.ext = template.Ext
	return seq
}

// Pattern renders the sequence path with # repeated Padding times for
// padded sequences, or @ for unpadded ones.
func (s *Seq) Pattern() string {
	return s.dir + s.prefix + s.placeholder() + s.suffix + s.ext
}

func (s *Seq) placeholder() string {
	if s.Padding >= 2 {
		return strings.Repeat("#", s.Padding)
	}
	return "@"
}

// Len is the number of files in the sequence.
func (s *Seq) Len() int { return len(s.Indices) }

// FrameCount is the number of frames actually present.
func (s *Seq) FrameCount() int { return len(s.Indices) }

// RangeCount is the total span End-Start+1, saturating at the int64 limit.
func (s *Seq) RangeCount() int64 {
	return satAdd(satSub(s.End, s.Start), 1)
}

// IsComplete reports whether the sequence has no missing frames.
func (s *Seq) IsComplete() bool { return len(s.Missed) == 0 }

// Contains reports whether the given frame exists in the sequence. Binary
// search over Indices, so very large gaps are answered correctly without
// consulting the missed list.
func (s *Seq) Contains(frame int64) bool {
	i := sort.Search(len(s.Indices), func(i int) bool { return s.Indices[i] >= frame })
	return i < len(s.Indices) && s.Indices[i] == frame
}

// GetFile returns the path for the given frame, or false when the frame is
// not present.
func (s *Seq) GetFile(frame int64) (string, bool) {
	if !s.Contains(frame) {
		return "", false
	}
	return s.formatFrame(frame), true
}

// FirstFile is the path of the first present frame.
func (s *Seq) FirstFile() string { return s.formatFrame(s.Start) }

// LastFile is the path of the last present frame.
func (s *Seq) LastFile() string { return s.formatFrame(s.End) }

// Expand returns the path of every frame in the range, present or missing.
// Ranges over one million frames fail with ErrRangeTooLarge.
func (s *Seq) Expand() ([]string, error) {
	count := s.RangeCount()
	if count > maxExpand {
		return nil, fmt.Errorf("%w: %d frames (max %d)", ErrRangeTooLarge, count, maxExpand)
	}
	paths := make([]string, 0, count)
	for f := s.Start; ; f++ {
		paths = append(paths, s.formatFrame(f))
		if f == s.End {
			break
		}
	}
	return paths, nil
}

// ExpandExisting returns the path of every present frame.
func (s *Seq) ExpandExisting() []string {
	paths := make([]string, 0, len(s.Indices))
	for _, f := range s.Indices {
		paths = append(paths, s.formatFrame(f))
	}
	return paths
}

func (s *Seq) formatFrame(frame int64) string {
	var digits string
	if s.Padding >= 2 && frame >= 0 {
		digits = fmt.Sprintf("%0*d", s.Padding, frame)
	} else {
		digits = fmt.Sprintf("%d", frame)
	}
	return s.dir + s.prefix + digits + s.suffix + s.ext
}

func (s *Seq) String() string {
	if len(s.Missed) == 0 {
		return fmt.Sprintf("Seq(%q, range: %d-%d)", s.Pattern(), s.Start, s.End)
	}
	return fmt.Sprintf("Seq(%q, range: %d-%d, missed: %d)", s.Pattern(), s.Start, s.End, len(s.Missed))
}

// seqJSON fixes the serialized field set and order across every consumer.
type seqJSON struct {
	Pattern string  `json:"pattern"`
	Start   int64   `json:"start"`
	End     int64   `json:"end"`
	Padding int     `json:"padding"`
	Indices []int64 `json:"indices"`
	Missed  []int64 `json:"missed"`
}

// MarshalJSON emits the stable wire shape with the derived pattern.
func (s *Seq) MarshalJSON() ([]byte, error) {
	indices := s.Indices
	if indices == nil {
		indices = []int64{}
	}
	missed := s.Missed
	if missed == nil {
		missed = []int64{}
	}
	return json.Marshal(seqJSON{
		Pattern: s.Pattern(),
		Start:   s.Start,
		End:     s.End,
		Padding: s.Padding,
		Indices: indices,
		Missed:  missed,
	})
}

// missedFrames walks the sorted frame list once and collects every integer
// strictly inside each gap. One pass, no auxiliary set.
func missedFrames(frames []int64) []int64 {
	var missed []int64
	for i := 0; i+1 < len(frames); i++ {
		gap := satSub(frames[i+1], frames[i])
		if gap <= 1 || gap > maxMissedGap {
			continue
		}
		for v := frames[i] + 1; v < frames[i+1]; v++ {
			missed = append(missed, v)
		}
	}
	return missed
}

// detectPadding returns the common digit width at the frame position when
// every file agrees and the width is at least 2; widths of 1 are unpadded
// notation and mixed widths disable padding entirely.
func detectPadding(files []seqfile.File, frameIdx int) int {
	width := -1
	for i := range files {
		text, ok := files[i].GroupText(frameIdx)
		if !ok {
			continue
		}
		switch {
		case width < 0:
			width = len(text)
		case width != len(text):
			return 0
		}
	}
	if width < 2 {
		return 0
	}
	return width
}

func dedupInt64(values []int64) []int64 {
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

// satSub is a-b clamped to the int64 range.
func satSub(a, b int64) int64 {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		if b < 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return diff
}

// satAdd is a+b clamped to the int64 range.
func satAdd(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		if b > 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return sum
}

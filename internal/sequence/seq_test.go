package sequence

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"framescan/internal/seqfile"
)

func parseAll(paths ...string) []seqfile.File {
	files := make([]seqfile.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, seqfile.Parse(p))
	}
	return files
}

func TestBuildContiguous(t *testing.T) {
	seq := Build(parseAll(
		"/r/plate.0001.exr",
		"/r/plate.0002.exr",
		"/r/plate.0003.exr",
	), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}

	if seq.Start != 1 || seq.End != 3 {
		t.Fatalf("range: %d-%d", seq.Start, seq.End)
	}
	if !seq.IsComplete() {
		t.Fatalf("missed: %v", seq.Missed)
	}
	if seq.Len() != 3 || seq.FrameCount() != 3 || seq.RangeCount() != 3 {
		t.Fatalf("counts: len=%d frames=%d range=%d", seq.Len(), seq.FrameCount(), seq.RangeCount())
	}
	if got := seq.Pattern(); got != "/r/plate.####.exr" {
		t.Fatalf("pattern: %q", got)
	}
}

func TestBuildGaps(t *testing.T) {
	seq := Build(parseAll(
		"/r/f.0001.exr",
		"/r/f.0002.exr",
		"/r/f.0004.exr",
		"/r/f.0007.exr",
	), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}

	if !reflect.DeepEqual(seq.Missed, []int64{3, 5, 6}) {
		t.Fatalf("missed: %v", seq.Missed)
	}
	if seq.IsComplete() {
		t.Fatal("sequence with gaps reported complete")
	}
	if seq.RangeCount() != 7 {
		t.Fatalf("range count: %d", seq.RangeCount())
	}
}

func TestBuildDeduplicatesFrames(t *testing.T) {
	seq := Build(parseAll(
		"/r/f.0002.exr",
		"/r/f.0001.exr",
		"/r/f.0002.exr",
	), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}
	if !reflect.DeepEqual(seq.Indices, []int64{1, 2}) {
		t.Fatalf("indices: %v", seq.Indices)
	}
}

func TestBuildNoParseableFrames(t *testing.T) {
	// 20 digits overflow int64, so no file contributes a frame.
	seq := Build(parseAll("/r/f.99999999999999999999.exr"), 0)
	if seq != nil {
		t.Fatalf("expected nil, got %v", seq)
	}
	if Build(nil, 0) != nil {
		t.Fatal("empty input must yield nil")
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		padding int
		pattern string
	}{
		{
			name:    "common width four",
			paths:   []string{"/r/f.0001.exr", "/r/f.0010.exr"},
			padding: 4,
			pattern: "/r/f.####.exr",
		},
		{
			name:    "width one is unpadded",
			paths:   []string{"/r/f.1.exr", "/r/f.2.exr"},
			padding: 0,
			pattern: "/r/f.@.exr",
		},
		{
			name:    "mixed widths disable padding",
			paths:   []string{"/r/f.99.exr", "/r/f.100.exr"},
			padding: 0,
			pattern: "/r/f.@.exr",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Build(parseAll(tt.paths...), 0)
			if seq == nil {
				t.Fatal("expected a sequence")
			}
			if seq.Padding != tt.padding {
				t.Fatalf("padding: got %d, want %d", seq.Padding, tt.padding)
			}
			if got := seq.Pattern(); got != tt.pattern {
				t.Fatalf("pattern: got %q, want %q", got, tt.pattern)
			}
		})
	}
}

func TestContainsAndGetFile(t *testing.T) {
	seq := Build(parseAll("/r/f.0001.exr", "/r/f.0003.exr"), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}

	if !seq.Contains(1) || !seq.Contains(3) {
		t.Fatal("present frames not found")
	}
	if seq.Contains(2) || seq.Contains(0) || seq.Contains(4) {
		t.Fatal("absent frames reported present")
	}

	path, ok := seq.GetFile(3)
	if !ok || path != "/r/f.0003.exr" {
		t.Fatalf("GetFile(3): %q, %v", path, ok)
	}
	if _, ok := seq.GetFile(2); ok {
		t.Fatal("GetFile must fail for a missing frame")
	}
	if seq.FirstFile() != "/r/f.0001.exr" || seq.LastFile() != "/r/f.0003.exr" {
		t.Fatalf("first/last: %q / %q", seq.FirstFile(), seq.LastFile())
	}
}

func TestExpand(t *testing.T) {
	seq := Build(parseAll("/r/f.0001.exr", "/r/f.0003.exr"), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}

	paths, err := seq.Expand()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/r/f.0001.exr", "/r/f.0002.exr", "/r/f.0003.exr"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("expand: %v", paths)
	}

	existing := seq.ExpandExisting()
	if !reflect.DeepEqual(existing, []string{"/r/f.0001.exr", "/r/f.0003.exr"}) {
		t.Fatalf("existing: %v", existing)
	}
}

func TestExpandRangeTooLarge(t *testing.T) {
	seq := Build(parseAll("/r/f.1.exr", "/r/f.2000000.exr"), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}
	if _, err := seq.Expand(); !errors.Is(err, ErrRangeTooLarge) {
		t.Fatalf("expected ErrRangeTooLarge, got %v", err)
	}
}

func TestHugeGapIsNotEnumerated(t *testing.T) {
	seq := Build(parseAll("/r/f.1.exr", "/r/f.2000000.exr"), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}
	if len(seq.Missed) != 0 {
		t.Fatalf("gap beyond the cap must not be enumerated, got %d entries", len(seq.Missed))
	}
	// The hole still shows in the span even though the missed list is empty.
	if seq.RangeCount() == int64(seq.Len()) {
		t.Fatal("range count should exceed frame count")
	}
}

func TestBuildAdjacentExtremeFrames(t *testing.T) {
	// MaxInt64-1 and MaxInt64: the gap computation must not wrap.
	seq := Build(parseAll(
		"/r/f.9223372036854775806.exr",
		"/r/f.9223372036854775807.exr",
	), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}
	if seq.Start != math.MaxInt64-1 || seq.End != math.MaxInt64 {
		t.Fatalf("range: %d-%d", seq.Start, seq.End)
	}
	if len(seq.Missed) != 0 {
		t.Fatalf("adjacent frames have no gap, got %v", seq.Missed)
	}
	if seq.RangeCount() != 2 {
		t.Fatalf("range count: %d", seq.RangeCount())
	}
}

func TestMissedFramesExtremeSpan(t *testing.T) {
	// A span covering the whole int64 range saturates instead of wrapping
	// and exceeds the enumeration cap, so nothing is listed.
	if got := missedFrames([]int64{math.MinInt64, math.MaxInt64}); len(got) != 0 {
		t.Fatalf("got %d entries", len(got))
	}
	if got := missedFrames([]int64{math.MaxInt64 - 1, math.MaxInt64}); len(got) != 0 {
		t.Fatalf("adjacent extremes: %v", got)
	}
}

func TestExtremeFramesSaturate(t *testing.T) {
	seq := &Seq{
		Indices: []int64{math.MinInt64, math.MaxInt64},
		Start:   math.MinInt64,
		End:     math.MaxInt64,
	}
	if got := seq.RangeCount(); got != math.MaxInt64 {
		t.Fatalf("range count must saturate, got %d", got)
	}
	if _, err := seq.Expand(); !errors.Is(err, ErrRangeTooLarge) {
		t.Fatalf("expected ErrRangeTooLarge, got %v", err)
	}
}

func TestNegativeFramesStayUnpadded(t *testing.T) {
	seq := &Seq{Indices: []int64{-2, 3}, Start: -2, End: 3, Padding: 4, prefix: "f.", ext: ".exr", dir: "/r/"}
	if got := seq.formatFrame(-2); got != "/r/f.-2.exr" {
		t.Fatalf("negative frame: %q", got)
	}
	if got := seq.formatFrame(3); got != "/r/f.0003.exr" {
		t.Fatalf("positive frame: %q", got)
	}
}

func TestMarshalJSONShape(t *testing.T) {
	seq := Build(parseAll("/r/f.0001.exr", "/r/f.0003.exr"), 0)
	if seq == nil {
		t.Fatal("expected a sequence")
	}

	raw, err := json.Marshal(seq)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Pattern string  `json:"pattern"`
		Start   int64   `json:"start"`
		End     int64   `json:"end"`
		Padding int     `json:"padding"`
		Indices []int64 `json:"indices"`
		Missed  []int64 `json:"missed"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Pattern != "/r/f.####.exr" || decoded.Start != 1 || decoded.End != 3 {
		t.Fatalf("decoded: %+v", decoded)
	}
	if !reflect.DeepEqual(decoded.Missed, []int64{2}) {
		t.Fatalf("missed: %v", decoded.Missed)
	}

	// Complete sequences serialize empty arrays, never null.
	complete := Build(parseAll("/r/g.1.exr"), 0)
	raw, err = json.Marshal(complete)
	if err != nil {
		t.Fatal(err)
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatal(err)
	}
	if string(generic["missed"]) != "[]" {
		t.Fatalf("missed must be an empty array, got %s", generic["missed"])
	}
}

func TestSaturatingHelpers(t *testing.T) {
	if satSub(math.MaxInt64, -1) != math.MaxInt64 {
		t.Error("satSub overflow high")
	}
	if satSub(math.MinInt64, 1) != math.MinInt64 {
		t.Error("satSub overflow low")
	}
	if satAdd(math.MaxInt64, 1) != math.MaxInt64 {
		t.Error("satAdd overflow high")
	}
	if satAdd(math.MinInt64, -1) != math.MinInt64 {
		t.Error("satAdd overflow low")
	}
	if satSub(10, 4) != 6 || satAdd(10, 4) != 14 {
		t.Error("plain arithmetic broken")
	}
}

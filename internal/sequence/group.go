package sequence

import (
	"strings"

	"framescan/internal/seqfile"
)

// Group buckets parsed files into sequences. Files without digit groups are
// excluded; anchor buckets with fewer than minLen members are dropped.
// Grouping never touches the filesystem.
func Group(files []seqfile.File, minLen int) []*Seq {
	if minLen < 1 {
		minLen = 1
	}

	bySig := make(map[string][]seqfile.File, len(files)/8+1)
	for _, f := range files {
		if !f.HasDigits() {
			continue
		}
		key := f.SigKey()
		bySig[key] = append(bySig[key], f)
	}

	var seqs []*Seq
	for _, bucket := range bySig {
		frameIdx := frameGroupIndex(bucket)
		for _, sub := range splitByAnchors(bucket, frameIdx) {
			if len(sub) < minLen {
				continue
			}
			if seq := Build(sub, frameIdx); seq != nil && seq.Len() >= minLen {
				seqs = append(seqs, seq)
			}
		}
	}
	return seqs
}

// ForFile rebuilds the sequence containing target from its directory's
// sibling files, using the same election and bucketing as Group. Returns
// nil when the target is not part of a sequence of at least minLen files.
func ForFile(target seqfile.File, siblings []seqfile.File, minLen int) *Seq {
	if !target.HasDigits() {
		return nil
	}
	if minLen < 1 {
		minLen = 1
	}

	sig := target.SigKey()
	var bucket []seqfile.File
	for _, f := range siblings {
		if f.HasDigits() && f.SigKey() == sig {
			bucket = append(bucket, f)
		}
	}
	if len(bucket) == 0 {
		return nil
	}

	frameIdx := frameGroupIndex(bucket)
	anchor := anchorKey(target, frameIdx)
	var sub []seqfile.File
	for _, f := range bucket {
		if anchorKey(f, frameIdx) == anchor {
			sub = append(sub, f)
		}
	}
	if len(sub) < minLen {
		return nil
	}
	seq := Build(sub, frameIdx)
	if seq == nil || seq.Len() < minLen {
		return nil
	}
	return seq
}

// frameGroupIndex elects which digit position is the frame number: the one
// taking the most distinct values across the bucket. The election must see
// the whole bucket, a single file cannot reveal which position varies.
// Ties go to the rightmost position, matching the convention that the
// frame number sits closest to the extension.
func frameGroupIndex(files []seqfile.File) int {
	positions := 0
	for i := range files {
		if n := len(files[i].Groups); n > positions {
			positions = n
		}
	}
	if positions == 0 {
		return 0
	}

	best := positions - 1
	bestDistinct := 0
	distinct := make(map[int64]struct{}, len(files))
	for idx := 0; idx < positions; idx++ {
		clear(distinct)
		for i := range files {
			if v, ok := files[i].GroupValue(idx); ok {
				distinct[v] = struct{}{}
			}
		}
		if len(distinct) >= bestDistinct {
			bestDistinct = len(distinct)
			best = idx
		}
	}
	return best
}

// splitByAnchors partitions a signature bucket by the raw text of every
// non-frame digit group, so shot_01 and shot_02 frames never merge.
func splitByAnchors(files []seqfile.File, frameIdx int) map[string][]seqfile.File {
	out := make(map[string][]seqfile.File, 4)
	for _, f := range files {
		key := anchorKey(f, frameIdx)
		out[key] = append(out[key], f)
	}
	return out
}

func anchorKey(f seqfile.File, frameIdx int) string {
	if len(f.Groups) < 2 {
		return ""
	}
	parts := make([]string, 0, len(f.Groups)-1)
	for idx := range f.Groups {
		if idx == frameIdx {
			continue
		}
		if text, ok := f.GroupText(idx); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\x00")
}

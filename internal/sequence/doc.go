// Package sequence groups parsed files into numbered sequences and
// reconstructs each one's range, padding, and missing frames.
//
// Grouping is two-phase. Files first bucket by signature (normalized
// directory + mask + extension), so render_001.exr and beauty_001.exr never
// meet. Within a bucket the frame digit position is elected once, over all
// files: the position with the most distinct values wins, ties going to the
// rightmost position. Files then sub-bucket by anchor values (every digit
// group except the frame position), which keeps shot_01_frame_#### apart
// from shot_02_frame_####.
//
// Gap arithmetic saturates, so frame numbers at the int64 extremes neither
// wrap nor panic, and per-gap enumeration is capped to keep a sparse pair
// of frames from allocating millions of missed entries.
package sequence

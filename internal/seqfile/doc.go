// Package seqfile parses file paths into the components sequence detection
// works with: drive, directory, base name, extension, and the digit runs
// inside the name.
//
// Each digit run becomes a DigitGroup, and the name with every run replaced
// by the @ placeholder becomes the mask. Files sharing a mask are candidates
// for the same sequence regardless of padding, so img_1 and img_100 group
// together. Rejoining drive, directory, name, and extension always rebuilds
// the original path byte for byte; the same holds for substituting the
// original digit text back into the mask.
//
// Grouping keys produced here are normalized (canonical separators, case
// folded on case-insensitive platforms) while the parsed fields keep the
// caller's original spelling for I/O and display.
package seqfile

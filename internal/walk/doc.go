// Package walk traverses directory trees for sequence scanning.
//
// Traversal is split in two steps so memory stays proportional to a single
// directory: Dirs discovers the directories under a root, then List reads
// one directory's files at a time. Files is the flat scan mode that returns
// matching paths across whole trees without sequence grouping.
//
// Symbolic links are never followed, so link cycles cannot hang a walk.
// Unreadable entries are reported as warnings and do not abort siblings;
// only an unreadable root fails the walk itself.
package walk

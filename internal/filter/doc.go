// Package filter decides which file names a scan considers.
//
// A Filter is one of three shapes: match-everything, an extension set, or a
// glob pattern over the whole file name. Extension entries may themselves
// contain wildcards ("jp*" covers jpg, jpeg, jp2); glob patterns support
// *, ?, and {a,b} alternatives. Parse picks the shape from the spelling of
// the user's filter string so call sites never branch on string shape.
package filter

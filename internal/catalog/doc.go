// Package catalog persists scan runs in SQLite so past results can be
// listed, inspected, and pruned.
//
// The Store manages the database connection, schema initialization, and a
// file lock that serializes writers across processes. Each recorded scan
// keeps its configuration snapshot, timing, errors, and one row per
// detected sequence. The database is history, not a cache: the engine
// never reads it back during scans.
//
// Schema changes bump the version in schema.go; users clear the catalog to
// adopt the new schema.
package catalog

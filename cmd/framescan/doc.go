// Command framescan is the CLI for the sequence detection engine.
//
// It resolves configuration and flags into scanner values, runs scans with
// a progress bar on interactive terminals, renders results as tables,
// plain lines, or JSON, and records runs in the optional scan-history
// catalog. All detection logic lives in the internal packages; this layer
// only translates input and formats output.
package main

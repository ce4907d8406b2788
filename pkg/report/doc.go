// Package report is the debug side channel of a resolution. It records which
// targets triggered each required plugin and built-in, and renders resolution
// summaries for terminals, plain text and JSON.
package report

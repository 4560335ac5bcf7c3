// Package ingest drives the per-file ingestion pipeline.
//
// Every list file runs through the same line-oriented state machine:
// seeking the file's header marker, consuming record groups, and stopping
// at the terminator. The six sources differ only in their markers and in
// the grammar applied to group-start and continuation lines, so the driver
// is parameterized rather than duplicated.
//
// Parse failures and unresolved owners are diagnostics, never fatal; an
// unparsable year is fatal for the file because no safe default exists.
package ingest

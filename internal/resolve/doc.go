// Package resolve assigns stable surrogate IDs to natural keys, one ID
// space per entity kind.
//
// The resolver is the hot path of ingestion: every line of every list file
// resolves at least one owner, and a destination-store round trip per line
// would dominate the run. ResolveOrCreate and Lookup are therefore
// in-memory map operations, guarded per kind so creations are single-writer
// while lookups stay concurrent.
//
// State survives across runs through per-kind JSON snapshot files in the
// cache directory (atomic temp-file-and-rename writes). A missing or
// corrupt snapshot degrades to a cold start with a warning, never a fatal
// error: the destination store remains the authority and can repopulate the
// cache through Adopt.
package resolve

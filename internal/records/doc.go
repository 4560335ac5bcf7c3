// Package records defines the typed rows the ingester produces: people,
// productions, and the dependent rows that reference them, along with the
// enumerated kinds and sentinel values the list format implies.
//
// Every owning entity exposes a NaturalKey, the canonical string form of the
// fields that identify it in the source text. The resolver maps natural keys
// to surrogate IDs; the store persists rows by surrogate ID only. Optional
// numeric fields use -1 sentinels (unknown year, no season, no episode
// number) because the list format itself has no notion of null, and the
// sentinel participates in the natural key exactly like a real value.
package records

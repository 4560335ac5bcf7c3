// Package store persists normalized records to the SQLite destination
// database.
//
// The store never allocates identities of its own: every primary key is
// supplied by the resolver, so a row inserted in one run and looked up in
// the next resolves to the same integer. Writes go through a Batch that
// groups rows into transactions sized by the configured commit interval.
package store

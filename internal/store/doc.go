// Package store persists ingested datasets, flattened person records, and
// detection runs in a SQLite workspace database.
//
// The store owns candidate-pool assembly: persons load in (dataset, position)
// order and receive row references 1..N, the same ordering exports reproduce
// so annotation row references line up with spreadsheet rows. A flock-backed
// workspace lock serializes mutating commands.
package store

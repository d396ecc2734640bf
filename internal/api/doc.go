// Package api exposes the pipeline workflows the CLI invokes: ingest,
// detect, validate, export, status, and report.
//
// Each workflow takes a request struct carrying the config and logger, opens
// the workspace store for its own lifetime, and returns a result struct the
// command layer renders. Mutating workflows hold the workspace lock;
// read-only workflows do not.
package api

// Package ingest reads intake uploads into header-keyed tables.
//
// CSV and XLSX files are supported; both produce the same Table shape so
// flattening never cares which format an upload arrived in. Cell values are
// returned as formatted strings, headers trimmed, blank rows skipped.
package ingest

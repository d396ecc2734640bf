// Package export renders a detection run as an annotated spreadsheet.
//
// The combined sheet reproduces the candidate pool's row ordering, so the
// row numbers annotations reference line up with what reviewers see. The
// tier-to-color mapping and the header-row offset are configuration owned
// here; the detection core only ever emits tier, label, and row reference.
package export

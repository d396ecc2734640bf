// Package dedupe runs the duplicate-detection engine: the all-pairs scan
// over a candidate pool and the per-record annotation of its outcome.
//
// Scan validates the pool's structure (positive, unique row references and a
// source on every record), normalizes each record exactly once, and compares
// every unordered pair through the match rule ladder. Evidence accumulates
// per record keyed by tier, each tier keeping the partner row references and
// the strongest rule seen. The scan is quadratic on purpose: per-count
// survey volumes stay in the low thousands of records, and exhaustive
// comparison keeps the outcome exact and auditable. Comparison of one pair
// has no failure path, so a malformed record can degrade only its own
// signal, never abort the scan.
//
// Annotate reduces evidence to one annotation per record: the best tier's
// ordinal score, its human label, the winning rule's reason, and the
// ascending row references matched at that tier. Records whose profile
// carries no signal at all are labeled "Incomplete/No Identity Data", which
// is a distinct outcome from a confirmed "Not Duplicate". Annotations are
// deterministic: shuffling the input pool changes nothing.
package dedupe

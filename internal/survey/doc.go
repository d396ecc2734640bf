// Package survey defines the shared vocabulary for flattened intake data:
// the member Record, household roles, and the canonical field keys every
// downstream component (normalization, matching, validation, export) reads.
//
// Records are produced once by the flattening step and treated as immutable
// from then on. Field access goes through Record.Field and
// Record.FirstNonEmpty so trimming and alias fallback behave the same
// everywhere.
package survey

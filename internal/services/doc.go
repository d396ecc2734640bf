// Package services defines shared plumbing consumed by the pipeline
// workflows and the CLI.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so failures carry
//     component and operation context while staying errors.Is-matchable.
//   - Context helpers that stamp run identifiers, dataset identifiers, and
//     source labels for logging correlation.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error classification, observability) stays uniform across commands.
package services

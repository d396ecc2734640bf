// Package main hosts the pitcount CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// workflows: ingesting survey uploads, scanning for duplicates, auditing
// answers, summarizing runs, and exporting annotated sheets. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

// Package flatten turns household-per-row intake tables into one record per
// household member.
//
// A member slot exists when its sex or race answer is present; existing
// members get their canonical fields resolved through the region
// descriptor's header alias chains. Missing privacy initials are synthesized
// from captured full names so mixed-format uploads compare uniformly.
// Flattening also classifies each household per HUD reporting conventions
// and derives per-household composition counts.
//
// Row references are not assigned here; the candidate pool assigns them over
// the combined persons ordering at detection time.
package flatten

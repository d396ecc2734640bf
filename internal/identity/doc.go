// Package identity derives canonical identity profiles from flattened
// member records.
//
// A Profile carries at most one name signal (a folded full-name pair, or the
// privacy-preserving initials triple) and at most one age signal (birth
// date, exact age, or declared age bracket), each resolved through the
// region descriptor's ordered field plan. Full-name profiles also expose a
// derived triple when the surname supports one, so records captured as
// initials in one region remain comparable against full names from another.
//
// Normalization is pure and total: malformed dates, ages, and brackets
// degrade to the next fallback instead of erroring, and a record with no
// usable signal yields the NONE/NONE profile that downstream components
// surface as "no identity data" rather than comparing silently.
package identity

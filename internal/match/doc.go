// Package match evaluates the tiered duplicate rules between two identity
// profiles.
//
// The rule ladder runs strongest-first and the first satisfied rule wins:
// likely (name plus birth date, or name plus reconciled exact age), somewhat
// likely (initials plus exact age, or full name plus age-range containment/
// overlap), possible (initials plus age-range logic). A profile without a
// name signal never matches at any tier. Comparison is symmetric, pure, and
// has no failure path.
//
// Policy pins the reference date used to reconcile a birth date on one side
// with a stated age on the other: the stated age must equal the age the
// person turns in the reference year, or one less. Callers that need
// reproducible runs must set the date explicitly; a zero policy uses the
// current date per comparison.
package match

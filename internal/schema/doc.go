// Package schema models the regional data-capture formats an intake upload
// can arrive in and detects which one a file uses.
//
// A Descriptor enumerates, per member role and slot, the raw spreadsheet
// headers that feed each canonical survey field, as ordered alias chains
// (current header first, historical revisions after). It also fixes the
// household shape for the region: adult slot count, whether child rows carry
// birth dates or only ages, and how names are captured (privacy-preserving
// initials versus full first name plus a surname token).
//
// Detect scores a header row against each region's signature column groups
// and returns the best region with a confidence; uploads below the minimum
// confidence fail with the missing groups listed so the operator can fix the
// file or pass an explicit region.
//
// Keep this package as the single place that knows raw header spellings.
// Everything downstream works in canonical survey.FieldKey terms.
package schema

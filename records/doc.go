// Package records persists detected violations as daily CSV files and reads
// them back for statistics.
//
// One file per local calendar day, named YYYY-MM-DD.csv, with a header row.
// Files are append-only; the bot never rewrites history.
package records

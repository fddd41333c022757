// Package runlog persists conversion run history in SQLite.
//
// Each batch invocation is a run; each processed input is a file row with
// its outcome and warning count. The database is a convenience record for
// auditing past conversions, not an archive: schema changes bump the version
// in schema.go and users clear the log to adopt the new schema.
package runlog

// Package history keeps a SQLite journal of finished transcoder runs so the
// CLI can show what was produced, with which arguments, and how long it took.
//
// The journal is transient bookkeeping rather than an archive: schema changes
// bump schemaVersion in store.go and users clear the database to adopt them.
package history

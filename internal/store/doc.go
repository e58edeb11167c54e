// Package store manages recipe persistence backed by SQLite.
//
// Five collections share one database: recipes, admission locks, video
// metadata snapshots, the append-only progress log, and the content
// artifact tables written by the generation stages. The admission_locks
// table carries a unique index on the normalized URL so a concurrent
// resubmission fails at insert time, which is the only cross-request
// ordering guarantee the pipeline relies on.
package store

// Package database stores the diarypush run history.
//
// The [Store] interface is implemented by [Bolt], a single-file bbolt
// database with one bucket, "runs". Keys are the UTC start time of the run
// followed by its UID, so a cursor walking backwards yields runs newest
// first:
//
//	db, err := database.NewBolt(path)
//	runs, err := db.ListRuns(10)
//
// bbolt holds an exclusive lock on the file while it is open. The run command
// keeps the database open for the whole run, so a second concurrent
// invocation fails with [ErrLocked] instead of touching the working tree.
package database

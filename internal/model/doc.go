// Package model defines the data structures persisted by diarypush.
//
// # RunRecord
//
// A [RunRecord] is written to the history database after every run, whether
// it published or failed:
//
//	type RunRecord struct {
//	    UID        string    // Unique identifier (UUID)
//	    StartedAt  time.Time // When the run started
//	    FinishedAt time.Time // When the run ended
//	    Entry      string    // Entry file written, e.g. 15-03-2024.txt
//	    State      string    // "published" or "failed"
//	    FailedStep string    // Step that failed, if any
//	    Commit     string    // HEAD after the push
//	}
package model

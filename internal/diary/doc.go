// Package diary writes the daily entry file and publishes it.
//
// A run moves through a fixed sequence of states:
//
//	NotInitialized -> Initialized -> RemoteVerified -> EntryWritten -> Pruned -> Published
//
// Any failing transition moves the run to Failed and stops it. The caller
// reports the error and exits; nothing is retried or rolled back.
package diary

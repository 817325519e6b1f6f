// Package database provides SQLite-based storage for llscan run history.
//
// Every successful scan is stored as one row of the runs table: the input
// list, threshold, output path, digest and the complete result set as JSON.
// The history and compare commands read these rows back.
//
// The database is a single file (llscan.db) opened through modernc.org/sqlite,
// which needs no cgo.
package database

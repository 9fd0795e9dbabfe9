// Package storage persists device settings as string key/value pairs.
//
// Two backends are provided: Memory for tests and ephemeral runs, and SQLite
// (mattn/go-sqlite3) for durable storage across restarts of the process.
package storage

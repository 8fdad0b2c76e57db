// Package persistence provides storage for job sources and the records referencing them.
// The only implementation is SQLite (pure-go modernc driver accessed via sqlx) with WAL mode
// for better concurrency between readers and the single writer.
package persistence

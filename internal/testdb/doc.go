// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests skip when no database URL is configured, and each test body
// runs in a transaction that is always rolled back.
package testdb

// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It maps driver errors onto the store
// sentinels and embeds the goose migrations that create its tables.
package postgres

// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
//
// It owns the schema (embedded goose migrations), the connection pool opener
// and the classification of PostgreSQL integrity errors into store errors.
// Stores do not log; callers decide how to report the errors they return.
package postgres

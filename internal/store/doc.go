// Package store defines interfaces for data persistence operations and the
// error kinds they return. These interfaces abstract the underlying data
// storage mechanism from the application's core logic.
package store

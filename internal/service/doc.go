// Package service contains the user and post use cases that sit between a
// transport layer and the stores defined in internal/store.
//
// Services log outcomes and wrap store errors with context. Wrapping always
// uses %w, so callers can still classify an error with errors.Is against the
// kinds in internal/store (NotFound, Conflict, InvalidArgument, Unauthorized,
// WriteFailed).
package service

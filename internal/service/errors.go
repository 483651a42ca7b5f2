package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/feed-api/internal/redact"
	"github.com/phrazzld/feed-api/internal/store"
)

// logStoreError logs err at Debug when it is an expected outcome (not found,
// conflict, invalid argument) and at Error otherwise.
func logStoreError(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	switch store.KindOf(err) {
	case store.ErrNotFound, store.ErrConflict, store.ErrInvalidArgument:
		level = slog.LevelDebug
	}
	attrs = append(attrs, slog.String("error", redact.Error(err)))
	logger.LogAttrs(ctx, level, msg, attrs...)
}

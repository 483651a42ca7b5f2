package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/feed-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "entity not found: Post not found",
			expected: "entity not found: Post not found",
		},
		{
			name:     "connection url",
			input:    "failed to connect to postgres://feed:hunter22@db:5432/feed",
			expected: "failed to connect to [REDACTED_CREDENTIAL]db:5432/feed",
		},
		{
			name:     "key value dsn",
			input:    "host=db user=feed password=hunter22 dbname=feed",
			expected: "host=db user=feed [REDACTED_CREDENTIAL] dbname=feed",
		},
		{
			name:     "token secret",
			input:    "auth.access_token_secret=abcdefghijklmnop1234",
			expected: "auth.access_token_[REDACTED_KEY]",
		},
		{
			name: "jwt",
			input: "invalid token eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
				"eyJzdWIiOiI0MiJ9.SflKxwRJSMeKKF2QT4fwpMeJf36POk6yJV_adQssw5c",
			expected: "invalid token [REDACTED_JWT]",
		},
		{
			name:     "bcrypt hash",
			input:    "stored hash $2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy mismatch",
			expected: "stored hash [REDACTED_HASH] mismatch",
		},
		{
			name:     "sql statement",
			input:    "create operation on post failed: INSERT INTO posts (text, user_id) VALUES ($1, $2)",
			expected: "create operation on post failed: [REDACTED_SQL]",
		},
		{
			name:     "store error without sql",
			input:    "delete operation on user failed: sql: connection is already closed",
			expected: "delete operation on user failed: sql: connection is already closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, redact.String(tt.input))
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("failed to create user: %w", errors.New("dial postgres://a:b@h/db"))
	assert.Equal(t, "failed to create user: dial [REDACTED_CREDENTIAL]h/db", redact.Error(err))
}

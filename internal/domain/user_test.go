package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPatch_IsEmpty(t *testing.T) {
	name := "new_name"
	hash := "$2a$10$hash"

	tests := []struct {
		name  string
		patch UserPatch
		want  bool
	}{
		{name: "zero value", patch: UserPatch{}, want: true},
		{name: "user name only", patch: UserPatch{UserName: &name}, want: false},
		{name: "password hash only", patch: UserPatch{PasswordHash: &hash}, want: false},
		{name: "empty string is still a change", patch: UserPatch{FirstName: new(string)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.IsEmpty())
		})
	}
}

package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loreweave-api/pkg/errors"
)

func TestNormalizeTagName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"fantasy", "fantasy"},
		{"Fantasy", "fantasy"},
		{"  High Fantasy  ", "high fantasy"},
		{"dark-age_2", "dark-age_2"},
	}
	for _, tt := range tests {
		got, err := NormalizeTagName(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeTagName_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"a",
		" x ",
		strings.Repeat("a", 101),
		"magic!",
		"tag,name",
		"名前",
		"dark\tage",
		"dark\nage",
	}
	for _, raw := range invalid {
		_, err := NormalizeTagName(raw)
		assert.Error(t, err, raw)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTagName), raw)
	}
}

func TestNormalizeTagName_Reserved(t *testing.T) {
	for _, raw := range []string{"admin", "System", " NULL ", "delete", "edit", "api", "undefined"} {
		_, err := NormalizeTagName(raw)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeReservedTagName), raw)
	}
}

package errutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.Equal(t, tt.expected, result.Error())
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "formatted: %s", "x"))

	base := errors.New("original error")
	err := Wrapf(base, "failed to fetch %s after %d tries", "catalog", 2)
	require.Error(t, err)
	assert.Equal(t, "failed to fetch catalog after 2 tries: original error", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestDetailHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "invalid os",
			err:      ErrInvalidOSValueWithDetails("beos", []string{"Windows", "macOS", "Linux"}),
			sentinel: ErrInvalidOSValue,
			contains: "beos",
		},
		{
			name:     "invalid log level",
			err:      ErrInvalidLogLevelWithDetails("loud"),
			sentinel: ErrInvalidLogLevel,
			contains: "'loud'",
		},
		{
			name:     "missing mirror list",
			err:      ErrMirrorListNotFoundWithName("Nightly"),
			sentinel: ErrMirrorListNotFound,
			contains: "Nightly",
		},
		{
			name:     "missing item",
			err:      ErrItemNotFoundWithName("Stable", "Tor"),
			sentinel: ErrItemNotFound,
			contains: "Tor in Stable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

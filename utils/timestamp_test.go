package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01T09:00", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-01-01T09:30:15", time.Date(2025, 1, 1, 9, 30, 15, 0, time.UTC)},
		{"2025-01-01 09:30:15", time.Date(2025, 1, 1, 9, 30, 15, 0, time.UTC)},
		{"2025-01-01T09:30:15.250", time.Date(2025, 1, 1, 9, 30, 15, 250_000_000, time.UTC)},
		{"2025-01-01T09:00Z", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-01-01T12:00:00+03:00", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"  2025-01-01T09:00  ", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestampRejects(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2025-13-01T09:00", "2025-01-01T25:00", "01/02/2025 09:00", "2025-01-01T09"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTimestamp(in)
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
		})
	}
}

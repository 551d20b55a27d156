package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kone-app/route-planner/internal/journey"
)

func TestNormalizeArrival(t *testing.T) {
	tests := []struct {
		name     string
		arriveBy string
		expected string
	}{
		{"saturday shifts two days to monday", "20250913093000", "20250915093000"},
		{"sunday shifts one day to monday", "20250914093000", "20250915093000"},
		{"monday unchanged", "20250915093000", "20250915093000"},
		{"wednesday unchanged", "20250917143000", "20250917143000"},
		{"friday unchanged", "20250919235959", "20250919235959"},
		{"saturday preserves time of day", "20250913070102", "20250915070102"},
		{"saturday shift crosses month boundary", "20250830180000", "20250901180000"},
		{"sunday shift crosses month boundary", "20251130083000", "20251201083000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := journey.NormalizeArrival(tt.arriveBy)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, normalized)
		})
	}
}

func TestNormalizeArrival_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		arriveBy string
	}{
		{"empty", ""},
		{"not a timestamp", "next tuesday"},
		{"too short", "20250913"},
		{"invalid month", "20251313093000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := journey.NormalizeArrival(tt.arriveBy)
			require.Error(t, err)
			assert.ErrorIs(t, err, journey.ErrBadArriveBy)
		})
	}
}

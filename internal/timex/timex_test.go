package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"450ms"`, 450 * time.Millisecond, false},
		{"nanoseconds", `3000000000`, 3 * time.Second, false},
		{"bad string", `"soon"`, 0, true},
		{"bool", `true`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{2 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(b))
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-02-28", 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	_, err = AddDays("28/02/2024", 1)
	require.Error(t, err)
}

func TestRangesOverlap(t *testing.T) {
	assert.True(t, RangesOverlap("2024-01-01", "2024-01-05", "2024-01-05", "2024-01-09"))
	assert.True(t, RangesOverlap("2024-01-03", "2024-01-03", "2024-01-01", "2024-01-31"))
	assert.False(t, RangesOverlap("2024-01-01", "2024-01-04", "2024-01-05", "2024-01-09"))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("23:30")
	require.NoError(t, err)
	assert.Equal(t, 23*60+30, m)

	_, err = ParseClock("25:00")
	require.Error(t, err)
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Day(in))
	assert.Equal(t, "2024-01-02", FormatDate(in))
}

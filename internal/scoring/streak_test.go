package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/bardspeak/internal/scoring"
)

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name         string
		current      int
		hadYesterday bool
		want         int
	}{
		{
			name:         "consecutive day extends the run",
			current:      4,
			hadYesterday: true,
			want:         5,
		},
		{
			name:         "gap resets to one",
			current:      12,
			hadYesterday: false,
			want:         1,
		},
		{
			name:         "first ever activity starts at one",
			current:      0,
			hadYesterday: false,
			want:         1,
		},
		{
			name:         "stale counter still resets on a gap",
			current:      30,
			hadYesterday: false,
			want:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.NextStreak(tt.current, tt.hadYesterday)
			assert.Equal(t, tt.want, got)
		})
	}
}

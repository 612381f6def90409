package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/scoring"
)

func TestComputeBadges(t *testing.T) {
	tests := []struct {
		name        string
		totalPoints int
		bestStreak  int
		completions int
		want        []string
	}{
		{
			name: "fresh user has no badges",
			want: []string{},
		},
		{
			name:        "just below every threshold",
			totalPoints: 99,
			bestStreak:  6,
			completions: 9,
			want:        []string{},
		},
		{
			name:        "century scorer at exactly one hundred points",
			totalPoints: 100,
			want:        []string{scoring.BadgeCenturyScorer},
		},
		{
			name:       "week warrior at a seven day streak",
			bestStreak: 7,
			want:       []string{scoring.BadgeWeekWarrior},
		},
		{
			name:       "monthly master includes week warrior",
			bestStreak: 30,
			want:       []string{scoring.BadgeWeekWarrior, scoring.BadgeMonthlyMaster},
		},
		{
			name:        "practice champion at ten completions",
			completions: 10,
			want:        []string{scoring.BadgePracticeChampion},
		},
		{
			name:        "veteran earns the full set",
			totalPoints: 500,
			bestStreak:  45,
			completions: 60,
			want: []string{
				scoring.BadgeCenturyScorer,
				scoring.BadgeWeekWarrior,
				scoring.BadgeMonthlyMaster,
				scoring.BadgePracticeChampion,
				scoring.BadgeCommunicationExpert,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.ComputeBadges(tt.totalPoints, tt.bestStreak, tt.completions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCertificateReady(t *testing.T) {
	tests := []struct {
		name  string
		kinds []string
		want  bool
	}{
		{
			name: "all four kinds",
			kinds: []string{
				models.ModuleSpeaking,
				models.ModuleListening,
				models.ModuleWriting,
				models.ModuleObservation,
			},
			want: true,
		},
		{
			name: "order and duplicates do not matter",
			kinds: []string{
				models.ModuleObservation,
				models.ModuleSpeaking,
				models.ModuleSpeaking,
				models.ModuleWriting,
				models.ModuleListening,
			},
			want: true,
		},
		{
			name: "missing one kind",
			kinds: []string{
				models.ModuleSpeaking,
				models.ModuleListening,
				models.ModuleWriting,
			},
			want: false,
		},
		{
			name:  "no completions",
			kinds: []string{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.CertificateReady(tt.kinds)
			assert.Equal(t, tt.want, got)
		})
	}
}

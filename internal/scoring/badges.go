package scoring

import "github.com/vytor/bardspeak/internal/models"

// Badge names awarded by ComputeBadges.
const (
	BadgeCenturyScorer       = "Century Scorer"
	BadgeWeekWarrior         = "Week Warrior"
	BadgeMonthlyMaster       = "Monthly Master"
	BadgePracticeChampion    = "Practice Champion"
	BadgeCommunicationExpert = "Communication Expert"
)

// ComputeBadges derives the badge set from raw aggregates. Badges are never
// stored; callers recompute the set whenever they need it.
func ComputeBadges(totalPoints, bestStreak, completions int) []string {
	badges := []string{}
	if totalPoints >= 100 {
		badges = append(badges, BadgeCenturyScorer)
	}
	if bestStreak >= 7 {
		badges = append(badges, BadgeWeekWarrior)
	}
	if bestStreak >= 30 {
		badges = append(badges, BadgeMonthlyMaster)
	}
	if completions >= 10 {
		badges = append(badges, BadgePracticeChampion)
	}
	if completions >= 50 {
		badges = append(badges, BadgeCommunicationExpert)
	}
	return badges
}

// CertificateReady reports whether every practice module kind has at least
// one completion.
func CertificateReady(kinds []string) bool {
	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		seen[k] = true
	}
	for _, k := range models.ModuleKinds {
		if !seen[k] {
			return false
		}
	}
	return true
}

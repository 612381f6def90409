package scoring

import (
	"strings"

	"github.com/vytor/bardspeak/internal/models"
)

// Outcome is the result of grading one submission.
type Outcome struct {
	Score       int
	Points      int
	Celebration bool
}

// Score grades a submission for the given module kind. rating is the quality
// oracle's 1-5 judgment and is only consulted when oracleOK is true; without
// it the deterministic fallback formulas apply. reference is the module's
// reference content (unused for writing). Scores always land in [0, 100].
func Score(kind, submission, reference string, rating int, oracleOK bool) Outcome {
	switch kind {
	case models.ModuleSpeaking:
		if oracleOK {
			return speakingOracle(submission, reference, rating)
		}
		return speakingFallback(submission, reference)
	case models.ModuleListening:
		if oracleOK {
			return listeningOracle(submission, reference, rating)
		}
		return listeningFallback(submission, reference)
	case models.ModuleWriting:
		if oracleOK {
			return writingOracle(submission, rating)
		}
		return writingFallback(submission)
	case models.ModuleObservation:
		return observation(submission, reference, rating, oracleOK)
	}
	return Outcome{}
}

func speakingOracle(submission, reference string, rating int) Outcome {
	refSet := wordSet(reference)
	subSet := wordSet(submission)
	similarity := float64(intersect(refSet, subSet)) / float64(max(len(refSet), 1)) * 100

	points := 10
	switch {
	case similarity >= 80 && rating >= 4:
		points = 15
	case similarity >= 60 || rating >= 3:
		points = 12
	}

	score := min(100.0, similarity+float64(rating)*10)
	return Outcome{Score: int(score), Points: points, Celebration: similarity >= 70}
}

// speakingFallback matches submission tokens against the reference token
// list. The denominator keeps duplicate reference words, matching tokens
// count once per occurrence in the submission.
func speakingFallback(submission, reference string) Outcome {
	refWords := words(reference)
	refSet := make(map[string]struct{}, len(refWords))
	for _, w := range refWords {
		refSet[w] = struct{}{}
	}

	matching := 0
	for _, w := range words(submission) {
		if _, ok := refSet[w]; ok {
			matching++
		}
	}

	similarity := 0.0
	if len(refWords) > 0 {
		similarity = float64(matching) / float64(len(refWords)) * 100
	}

	points := 8
	if similarity >= 70 {
		points = 10
	}
	return Outcome{Score: int(min(100.0, similarity)), Points: points, Celebration: similarity >= 70}
}

func writingOracle(submission string, rating int) Outcome {
	wc := len(words(submission))
	depth := min(100.0, float64(wc)*1.5)
	quality := float64(rating * 20)
	score := int((depth + quality) / 2)

	points := 10
	switch {
	case wc >= 100 && rating >= 4:
		points = 15
	case wc >= 75 || rating >= 3:
		points = 12
	}
	return Outcome{Score: score, Points: points, Celebration: score >= 80}
}

func writingFallback(submission string) Outcome {
	wc := len(words(submission))
	score := min(100, wc*2)

	points := 8
	if wc >= 50 {
		points = 10
	}
	return Outcome{Score: score, Points: points, Celebration: score >= 80}
}

func listeningOracle(submission, reference string, rating int) Outcome {
	refSet := wordSet(reference)
	subSet := wordSet(submission)
	wordAccuracy := float64(intersect(refSet, subSet)) / float64(max(len(refSet), 1)) * 100
	accuracy := min(100.0, (wordAccuracy+float64(rating)*15)/2)

	points := 8
	if accuracy >= 80 {
		points = 10
	}
	return Outcome{Score: int(accuracy), Points: points, Celebration: accuracy >= 80}
}

func listeningFallback(submission, reference string) Outcome {
	ref := strings.ToLower(strings.TrimSpace(reference))
	sub := strings.ToLower(strings.TrimSpace(submission))

	accuracy := 0
	switch {
	case sub == ref:
		accuracy = 100
	case sub != "" && strings.Contains(sub, ref):
		accuracy = 80
	case sub != "":
		accuracy = 60
	}

	points := 8
	if accuracy >= 80 {
		points = 10
	}
	return Outcome{Score: accuracy, Points: points, Celebration: accuracy >= 80}
}

// observation grades against the expected answers: containing them verbatim
// scores the full base, anything else a participation base of 70.
func observation(submission, reference string, rating int, oracleOK bool) Outcome {
	base := 70
	if strings.Contains(strings.ToLower(submission), strings.ToLower(reference)) {
		base = 100
	}

	if oracleOK {
		accuracy := min(100, base+rating*5)
		points := 8
		if accuracy >= 90 {
			points = 10
		}
		return Outcome{Score: accuracy, Points: points, Celebration: accuracy == 100}
	}

	points := 8
	if base == 100 {
		points = 10
	}
	return Outcome{Score: base, Points: points, Celebration: base == 100}
}

func words(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range words(s) {
		set[w] = struct{}{}
	}
	return set
}

func intersect(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

package scoring

// NextStreak advances a user's running daily streak when their first
// activity of a day lands. hadYesterday reports whether the immediately
// preceding calendar day has a streak record; any gap resets the run to 1.
func NextStreak(current int, hadYesterday bool) int {
	if hadYesterday {
		return current + 1
	}
	return 1
}

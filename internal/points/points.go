// Package points maps CSAT scores to loyalty point awards.
package points

// Calculate returns the point award for a 1-5 CSAT score.
// Low scores earn the most (service-recovery compensation), high scores
// earn a reward, neutral scores a token amount. Callers validate the
// score range; out-of-range values fall through the same tiers.
func Calculate(score int) int {
	switch {
	case score <= 2:
		return 10 // compensation tier
	case score >= 4:
		return 15 // reward tier
	default:
		return 5 // neutral tier
	}
}

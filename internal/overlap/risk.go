// internal/overlap/risk.go
package overlap

// Risk is the qualitative dimer-formation tier for one scan result.
type Risk string

const (
	High   Risk = "HIGH"
	Medium Risk = "MEDIUM"
	Low    Risk = "LOW"
)

// Classify maps match/mismatch counts to a risk tier. HIGH requires a
// perfect 4+ base pairing; 4+ pairings carrying one mismatch rank MEDIUM,
// as do 2-3 base pairings regardless of mismatches.
func Classify(matches, mismatches int) Risk {
	switch {
	case matches >= 4 && mismatches == 0:
		return High
	case matches >= 2 && matches <= 3:
		return Medium
	case matches >= 4 && mismatches == 1:
		return Medium
	default:
		return Low
	}
}

// Tally counts results per risk tier.
func Tally(rs []Result) (high, medium, low int) {
	for _, r := range rs {
		switch r.Risk {
		case High:
			high++
		case Medium:
			medium++
		default:
			low++
		}
	}
	return
}

package password

import (
	"github.com/nbutton23/zxcvbn-go"
)

// Strength is the result of estimating a password's resistance to
// guessing.
type Strength struct {
	// Score is the zxcvbn 0-4 scale.
	Score int

	// Percent maps Score onto 0-100 for progress-bar style display.
	Percent int

	// Label is the user-facing name of the score.
	Label string

	// CrackTimeDisplay is a human-readable offline crack time estimate.
	CrackTimeDisplay string

	// Entropy is the estimated entropy in bits.
	Entropy float64
}

// Analyze scores a candidate password with the zxcvbn estimator. The empty
// password short-circuits to an "Empty" result without invoking the
// estimator.
func Analyze(candidate string) Strength {
	if candidate == "" {
		return Strength{Label: "Empty"}
	}

	result := zxcvbn.PasswordStrength(candidate, nil)

	return Strength{
		Score:            result.Score,
		Percent:          result.Score * 25,
		Label:            strengthLabel(result.Score),
		CrackTimeDisplay: result.CrackTimeDisplay,
		Entropy:          result.Entropy,
	}
}

func strengthLabel(score int) string {
	switch score {
	case 4:
		return "Very Strong"
	case 3:
		return "Strong"
	case 2:
		return "Medium"
	case 1:
		return "Weak"
	default:
		return "Very Weak"
	}
}

package titlematch

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b\d+\b`)

// Confidence grades a match score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // below 0.70
	ConfidenceLow                      // >= 0.70
	ConfidenceMedium                   // >= 0.85
	ConfidenceHigh                     // >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ParseConfidence reads "none", "low", "medium" or "high".
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ConfidenceNone, nil
	case "low":
		return ConfidenceLow, nil
	case "medium", "":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	default:
		return ConfidenceNone, fmt.Errorf("unknown confidence %q", s)
	}
}

func confidenceOf(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Result is the best candidate for a title. Index is -1 when nothing scored.
type Result struct {
	Title      string
	Index      int
	Score      float64
	Confidence Confidence
}

// Match scores every candidate against title with Jaro-Winkler similarity on
// cleaned titles, adjusted for sequel numbers, and returns the best one.
// Ties keep the earliest candidate.
func Match(title string, candidates []string) Result {
	best := Result{Index: -1}

	want := CleanTitle(title)
	wantNums := numberRegex.FindAllString(want, -1)

	for i, candidate := range candidates {
		got := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(want, got))
		score = adjustForNumbers(score, wantNums, numberRegex.FindAllString(got, -1))

		if score > best.Score {
			best = Result{Title: candidate, Index: i, Score: score}
		}
	}

	best.Confidence = confidenceOf(best.Score)
	if best.Confidence == ConfidenceNone {
		return Result{Index: -1, Score: best.Score}
	}
	return best
}

// adjustForNumbers favors candidates that share a sequel number with the title
// and penalizes ones that lack it or carry a different one.
func adjustForNumbers(score float64, want, got []string) float64 {
	if len(want) == 0 {
		return score
	}
	if len(got) == 0 {
		return score * 0.85
	}
	for _, n := range want {
		if slices.Contains(got, n) {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

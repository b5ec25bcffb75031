package recommend

import (
	"fmt"
	"strings"
)

// Similarity weights
const (
	weightGenre    = 1.0
	weightSubgenre = 0.8
	weightMood     = 0.6
	weightDuration = 0.5
	weightBPM      = 0.4
)

// Pair reasons
const (
	reasonMissing = "missing metadata"
	reasonMinimal = "minimal similarity"
)

// Metadata describes a song for similarity scoring.
// Zero Duration or BPM means unknown.
type Metadata struct {
	Genre    string `json:"genre"`
	Subgenre string `json:"subgenre,omitempty"`
	Mood     string `json:"mood,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Duration int    `json:"duration_seconds,omitempty"`
	BPM      int    `json:"bpm,omitempty"`
}

func sameLabel(a, b string) bool {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}

// proximity decays linearly from 1 at equal values to 0 at threshold
func proximity(a, b, threshold int) (score float64, diff int, ok bool) {
	if a <= 0 || b <= 0 {
		return 0, 0, false
	}
	diff = a - b
	if diff < 0 {
		diff = -diff
	}
	if diff > threshold {
		return 0, diff, false
	}
	return max(0, 1-float64(diff)/float64(threshold)), diff, true
}

// similarity scores candidate against seed and explains the match
func (r *Recommender) similarity(seed, candidate *Metadata) (float64, string) {
	if seed == nil || candidate == nil {
		return 0, reasonMissing
	}

	var (
		score   float64
		reasons []string
	)
	if sameLabel(seed.Genre, candidate.Genre) {
		score += weightGenre
		reasons = append(reasons, "same genre")
	}
	if sameLabel(seed.Subgenre, candidate.Subgenre) {
		score += weightSubgenre
		reasons = append(reasons, "same subgenre")
	}
	if sameLabel(seed.Mood, candidate.Mood) {
		score += weightMood
		reasons = append(reasons, "same mood")
	}
	if s, diff, ok := proximity(seed.Duration, candidate.Duration, r.cfg.DurationThreshold); ok {
		score += weightDuration * s
		if s > 0.5 {
			reasons = append(reasons, fmt.Sprintf("similar duration (±%ds)", diff))
		}
	}
	if s, diff, ok := proximity(seed.BPM, candidate.BPM, r.cfg.BPMThreshold); ok {
		score += weightBPM * s
		if s > 0.5 {
			reasons = append(reasons, fmt.Sprintf("similar BPM (±%d)", diff))
		}
	}

	if len(reasons) == 0 {
		return score, reasonMinimal
	}
	return score, strings.Join(reasons, ", ")
}

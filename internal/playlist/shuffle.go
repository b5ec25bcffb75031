package playlist

import (
	"math/rand"
	"strings"
	"time"

	"github.com/1mb-dev/playwise/internal/song"
)

// DefaultShuffleAttempts bounds how many random arrangements are tried
const DefaultShuffleAttempts = 1000

// Shuffler produces random arrangements in which no two neighbouring
// songs share an artist (compared case-insensitively).
type Shuffler struct {
	maxAttempts int
	rng         *rand.Rand

	// lastFallback is set when the most recent Shuffle returned the input order
	lastFallback bool
}

// NewShuffler creates a shuffler. A nil rng is seeded from the clock;
// a non-positive maxAttempts uses DefaultShuffleAttempts.
func NewShuffler(maxAttempts int, rng *rand.Rand) *Shuffler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultShuffleAttempts
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shuffler{maxAttempts: maxAttempts, rng: rng}
}

// Shuffle returns a new arrangement of songs; the input is not modified.
//
// If the most frequent artist has more than ceil(n/2) songs no valid
// arrangement exists and a single plain shuffle is returned. Otherwise
// random permutations are drawn until one has no adjacent same-artist pair.
// When the attempt budget runs out the original order is returned.
func (s *Shuffler) Shuffle(songs []*song.Song) []*song.Song {
	s.lastFallback = false
	out := make([]*song.Song, len(songs))
	copy(out, songs)
	if len(out) <= 1 {
		return out
	}

	if !Feasible(songs) {
		s.fisherYates(out)
		return out
	}

	for range s.maxAttempts {
		s.fisherYates(out)
		if !HasAdjacentArtists(out) {
			return out
		}
	}

	s.lastFallback = true
	copy(out, songs)
	return out
}

// FellBack reports whether the last Shuffle gave up and kept the input order
func (s *Shuffler) FellBack() bool {
	return s.lastFallback
}

func (s *Shuffler) fisherYates(songs []*song.Song) {
	for i := len(songs) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		songs[i], songs[j] = songs[j], songs[i]
	}
}

func artistKey(s *song.Song) string {
	return strings.ToLower(s.Artist)
}

// HasAdjacentArtists reports whether two neighbours share an artist
func HasAdjacentArtists(songs []*song.Song) bool {
	for i := 0; i+1 < len(songs); i++ {
		if artistKey(songs[i]) == artistKey(songs[i+1]) {
			return true
		}
	}
	return false
}

// ArtistDistribution counts songs per lower-cased artist
func ArtistDistribution(songs []*song.Song) map[string]int {
	counts := make(map[string]int)
	for _, s := range songs {
		counts[artistKey(s)]++
	}
	return counts
}

// Feasible applies the pigeonhole bound: an arrangement without
// adjacent artists exists only if no artist has more than ceil(n/2) songs.
func Feasible(songs []*song.Song) bool {
	if len(songs) <= 1 {
		return true
	}
	maxCount := 0
	for _, c := range ArtistDistribution(songs) {
		maxCount = max(maxCount, c)
	}
	return maxCount <= (len(songs)+1)/2
}

package catalog

import (
	"github.com/1mb-dev/playwise/internal/explorer"
	"github.com/1mb-dev/playwise/internal/recommend"
)

// Indexer files songs by category
type Indexer interface {
	Add(id string, c explorer.Classification)
}

// MetadataSink stores song metadata for scoring
type MetadataSink interface {
	SetMetadata(id string, m recommend.Metadata)
}

// Seed feeds tracks to the explorer and the recommender. Either target
// may be nil. It returns the number of tracks fed.
func Seed(tracks []*Track, index Indexer, sink MetadataSink) int {
	for _, t := range tracks {
		if index != nil {
			index.Add(t.ID, t.Classification())
		}
		if sink != nil {
			sink.SetMetadata(t.ID, t.Metadata())
		}
	}
	return len(tracks)
}

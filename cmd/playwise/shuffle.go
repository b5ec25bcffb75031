package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/1mb-dev/playwise/internal/catalog"
	"github.com/1mb-dev/playwise/internal/playlist"
	"github.com/1mb-dev/playwise/internal/song"
)

type shuffleResult struct {
	Songs     []string       `json:"songs"`
	Feasible  bool           `json:"feasible"`
	Adjacent  bool           `json:"adjacent_artists"`
	PerArtist map[string]int `json:"per_artist"`
}

func newShuffleCmd(g *globalFlags) *cobra.Command {
	var genre string
	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Queue catalog songs and shuffle them without back-to-back artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.close()

			tracks := e.tracks
			if genre != "" {
				tracks = lo.Filter(tracks, func(t *catalog.Track, _ int) bool {
					return strings.EqualFold(strings.TrimSpace(t.Genre), strings.TrimSpace(genre))
				})
			}
			if len(tracks) == 0 {
				return fmt.Errorf("no songs to shuffle")
			}
			for _, t := range tracks {
				if _, err := e.queue(t); err != nil {
					return err
				}
			}

			pl := e.ctl.Playlist()
			order := pl.ShuffleWithArtistConstraints()
			res := shuffleResult{
				Songs:     lo.Map(order, func(s *song.Song, _ int) string { return s.ID }),
				Feasible:  playlist.Feasible(order),
				Adjacent:  playlist.HasAdjacentArtists(order),
				PerArtist: playlist.ArtistDistribution(order),
			}

			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderSongs(cmd.OutOrStdout(), order)
			switch {
			case !res.Feasible:
				cmd.Println("One artist has too many songs; adjacent repeats are unavoidable.")
			case res.Adjacent:
				cmd.Println("No valid arrangement found within the attempt budget; original order kept.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&genre, "genre", "", "Only shuffle songs of this genre")
	return cmd
}

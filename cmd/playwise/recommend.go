package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/1mb-dev/playwise/internal/recommend"
)

type recommendFlags struct {
	play          []string
	skip          []string
	top           int
	seeds         int
	includeActive bool
	popular       bool
}

type recommendRow struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

func newRecommendCmd(g *globalFlags) *cobra.Command {
	f := &recommendFlags{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Play songs by id and print recommendations",
		Example: `  playwise recommend --play s01,s02
  playwise recommend --play s07 --skip s08 --top 3
  playwise recommend --popular`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.close()

			for _, id := range f.play {
				t, err := e.track(id)
				if err != nil {
					return err
				}
				if err := e.play(t); err != nil {
					return fmt.Errorf("play %s: %w", id, err)
				}
			}
			for _, id := range f.skip {
				e.ctl.Skip(id)
			}

			var recs []recommend.Recommendation
			if f.popular {
				popts := []recommend.PopularOption{recommend.IncludeRecent()}
				if f.top > 0 {
					popts = append(popts, recommend.WithPopularTopN(f.top))
				}
				recs = e.ctl.Recommender().PopularSongs(popts...)
			} else {
				var ropts []recommend.RecommendOption
				if f.top > 0 {
					ropts = append(ropts, recommend.WithTopN(f.top))
				}
				if f.seeds > 0 {
					ropts = append(ropts, recommend.WithSeedCount(f.seeds))
				}
				if f.includeActive {
					ropts = append(ropts, recommend.IncludeActivePlaylist())
				}
				recs = e.ctl.Recommend(ropts...)
			}

			rows := make([]recommendRow, 0, len(recs))
			for _, r := range recs {
				row := recommendRow{ID: r.ID, Score: r.Score, Reason: r.Reason}
				if t, ok := e.byID[r.ID]; ok {
					row.Title, row.Artist = t.Title, t.Artist
				}
				rows = append(rows, row)
			}

			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				cmd.Println("No recommendations.")
				return nil
			}
			t := newTable(cmd.OutOrStdout(), table.Row{"ID", "Title", "Artist", "Score", "Reason"})
			for _, r := range rows {
				t.AppendRow(table.Row{r.ID, r.Title, r.Artist, fmt.Sprintf("%.2f", r.Score), r.Reason})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&f.play, "play", nil, "Song ids to play first, in order")
	cmd.Flags().StringSliceVar(&f.skip, "skip", nil, "Song ids to mark as skipped")
	cmd.Flags().IntVar(&f.top, "top", 0, "Number of results (default from config)")
	cmd.Flags().IntVar(&f.seeds, "seeds", 0, "Number of recent plays to use as seeds (default from config)")
	cmd.Flags().BoolVar(&f.includeActive, "include-active", false, "Allow songs already in the playlist")
	cmd.Flags().BoolVar(&f.popular, "popular", false, "Rank by total listen time instead of similarity")
	return cmd
}

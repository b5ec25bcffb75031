package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/1mb-dev/playwise/internal/catalog"
)

type statsReport struct {
	Genres   []catalog.GenreStats `json:"genres"`
	Explorer map[string]any       `json:"explorer"`
	Metrics  map[string]any       `json:"metrics,omitempty"`
}

func newStatsCmd(g *globalFlags) *cobra.Command {
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics per genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.close()

			genres, err := e.genreStats()
			if err != nil {
				return err
			}
			report := statsReport{Genres: genres, Explorer: e.index.Stats()}
			if withMetrics {
				report.Metrics = e.metrics.Snapshot()
			}

			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			t := newTable(cmd.OutOrStdout(), table.Row{"Genre", "Tracks", "Total"})
			for _, gs := range genres {
				t.AppendRow(table.Row{gs.Genre, gs.TrackCount, formatSeconds(gs.TotalSeconds)})
			}
			t.Render()

			if withMetrics {
				mt := newTable(cmd.OutOrStdout(), table.Row{"Metric", "Value"})
				keys := lo.Keys(report.Metrics)
				slices.Sort(keys)
				for _, k := range keys {
					mt.AppendRow(table.Row{k, report.Metrics[k]})
				}
				mt.Render()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Include session counters")
	return cmd
}

// genreStats asks the catalog when one is configured and otherwise
// aggregates the loaded tracks the same way
func (e *engine) genreStats() ([]catalog.GenreStats, error) {
	if e.cfg.Catalog.Path != "" {
		repo, err := catalog.NewRepository(e.cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer func() { _ = repo.Close() }()
		return repo.GenreStats()
	}

	groups := lo.GroupBy(e.tracks, func(t *catalog.Track) string {
		return strings.ToLower(strings.TrimSpace(t.Genre))
	})
	stats := lo.MapToSlice(groups, func(genre string, tracks []*catalog.Track) catalog.GenreStats {
		return catalog.GenreStats{
			Genre:        genre,
			TrackCount:   len(tracks),
			TotalSeconds: lo.SumBy(tracks, func(t *catalog.Track) int { return t.DurationSeconds }),
		}
	})
	slices.SortFunc(stats, func(a, b catalog.GenreStats) int { return strings.Compare(a.Genre, b.Genre) })
	return stats, nil
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

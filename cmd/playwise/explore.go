package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/1mb-dev/playwise/internal/explorer"
)

type exploreNode struct {
	Path  string   `json:"path"`
	Key   string   `json:"-"`
	Depth int      `json:"depth"`
	Songs []string `json:"songs,omitempty"`
}

func newExploreCmd(g *globalFlags) *cobra.Command {
	var (
		order    string
		criteria explorer.Criteria
	)
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the genre > subgenre > mood > artist tree",
		Example: `  playwise explore --order bfs
  playwise explore --genre rock --subgenre alternative`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.close()

			if !criteria.IsZero() {
				ids := e.index.Search(criteria)
				if g.jsonOut {
					return writeJSON(cmd.OutOrStdout(), ids)
				}
				if len(ids) == 0 {
					cmd.Println("No songs match.")
					return nil
				}
				t := newTable(cmd.OutOrStdout(), table.Row{"ID", "Title", "Artist"})
				for _, id := range ids {
					row := table.Row{id, "", ""}
					if tr, ok := e.byID[id]; ok {
						row = table.Row{id, tr.Title, tr.Artist}
					}
					t.AppendRow(row)
				}
				t.Render()
				return nil
			}

			o, err := explorer.ParseOrder(order)
			if err != nil {
				return err
			}
			var nodes []exploreNode
			e.index.Walk(o, func(n explorer.Node) bool {
				if n.Depth() == 0 {
					return true
				}
				nodes = append(nodes, exploreNode{
					Path:  strings.Join(n.Path, " > "),
					Key:   n.Path[len(n.Path)-1],
					Depth: n.Depth(),
					Songs: n.SongIDs,
				})
				return true
			})

			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), nodes)
			}
			out := cmd.OutOrStdout()
			for _, n := range nodes {
				label := n.Path
				if o == explorer.DepthFirst {
					label = strings.Repeat("  ", n.Depth-1) + n.Key
				}
				if len(n.Songs) > 0 {
					label = fmt.Sprintf("%s  [%s]", label, strings.Join(n.Songs, ", "))
				}
				_, _ = fmt.Fprintln(out, label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "order", string(explorer.DepthFirst), "Traversal order: dfs or bfs")
	cmd.Flags().StringVar(&criteria.Genre, "genre", "", "Search by genre")
	cmd.Flags().StringVar(&criteria.Subgenre, "subgenre", "", "Narrow the search by subgenre")
	cmd.Flags().StringVar(&criteria.Mood, "mood", "", "Narrow the search by mood")
	cmd.Flags().StringVar(&criteria.Artist, "artist", "", "Narrow the search by artist")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/1mb-dev/playwise/internal/favorites"
	"github.com/1mb-dev/playwise/internal/playlist"
	"github.com/1mb-dev/playwise/internal/recommend"
	"github.com/1mb-dev/playwise/internal/song"
)

type demoStep struct {
	Name   string   `json:"name"`
	Detail string   `json:"detail,omitempty"`
	Songs  []string `json:"songs,omitempty"`
}

// demo runs a scripted session against the sample catalog
type demo struct {
	e     *engine
	steps []demoStep
}

func newDemoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted session against the built-in sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The script refers to sample ids
			g.sampleOnly = true
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.close()

			d := &demo{e: e}
			if err := d.run(); err != nil {
				return err
			}

			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), d.steps)
			}
			d.render(cmd.OutOrStdout())
			return nil
		},
	}
}

func (d *demo) step(name, detail string, songs []*song.Song) {
	d.steps = append(d.steps, demoStep{
		Name:   name,
		Detail: detail,
		Songs:  lo.Map(songs, func(s *song.Song, _ int) string { return s.ID }),
	})
}

func (d *demo) queue(ids ...string) ([]playlist.AddResult, error) {
	results := make([]playlist.AddResult, 0, len(ids))
	for _, id := range ids {
		t, err := d.e.track(id)
		if err != nil {
			return nil, err
		}
		res, err := d.e.queue(t)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func describe(res playlist.AddResult) string {
	switch {
	case res.OK():
		return statusColor(res.Status)(res.Song.ID + " added")
	case res.ExistingID != "":
		return statusColor(res.Status)(fmt.Sprintf("%s (existing %s)", res.Status, res.ExistingID))
	default:
		return statusColor(res.Status)(string(res.Status))
	}
}

func (d *demo) run() error {
	ctl := d.e.ctl
	pl := ctl.Playlist()

	results, err := d.queue("s01", "s02", "s03", "s04")
	if err != nil {
		return err
	}
	d.step("queue", strings.Join(lo.Map(results, func(r playlist.AddResult, _ int) string { return describe(r) }), ", "), pl.Songs())

	pl.Blocklist().Add("Queen")
	results, err = d.queue("s05")
	if err != nil {
		return err
	}
	d.step("block artist queen", describe(results[0]), pl.Songs())
	pl.Blocklist().Remove("queen")

	res, err := pl.Add("  creep ", "RADIOHEAD", 240)
	if err != nil {
		return err
	}
	d.step("offer duplicate title", describe(res), pl.Songs())

	if err := pl.Delete(1); err != nil {
		return err
	}
	d.step("delete index 1", "", pl.Songs())
	if err := pl.Move(0, 2); err != nil {
		return err
	}
	d.step("move 0 to 2", "", pl.Songs())
	pl.Reverse()
	d.step("reverse", "", pl.Songs())
	undone, err := pl.UndoLastN(3)
	if err != nil {
		return err
	}
	d.step("undo 3", fmt.Sprintf("%v", undone), pl.Songs())

	order := pl.ShuffleWithArtistConstraints()
	d.step("shuffle", fmt.Sprintf("adjacent artists: %t", playlist.HasAdjacentArtists(order)), order)

	jazz, err := playlist.New(playlistOptions(d.e.cfg)...)
	if err != nil {
		return err
	}
	for _, id := range []string{"s07", "s08", "s09"} {
		s, _ := ctl.Registry().Get(id)
		jazz.AddSong(s)
	}
	d.step("merge alternately with jazz", "", pl.MergeAlternately(jazz).Songs())

	ctl.Skip("s01")
	var played []*song.Song
	for range 2 {
		if s := ctl.PlayNext(false); s != nil {
			played = append(played, s)
		}
	}
	d.step("skip s01, play next twice", "s01 stays queued", played)
	if s := ctl.PlayNext(true); s != nil {
		d.step("force play next", "", []*song.Song{s})
	}

	mp, err := ctl.Preview(2)
	if err != nil {
		return err
	}
	var detail string
	if s := mp.PlayNext(); s != nil {
		detail = "playing " + s.ID
	}
	d.step("preview window 2", detail, mp.Upcoming())

	ctl.AddFavorite("s07", "So What", "Miles Davis")
	ctl.AddFavorite("s12", "An Ending", "Brian Eno")
	for _, id := range []string{"s07", "s12", "s12", "s07", "s07"} {
		t, err := d.e.track(id)
		if err != nil {
			return err
		}
		if err := d.e.play(t); err != nil {
			return err
		}
	}
	top := ctl.TopFavorites(2)
	d.step("top favorites", strings.Join(lo.Map(top, func(f favorites.Summary, _ int) string {
		return fmt.Sprintf("%s %s", f.ID, formatSeconds(f.TotalListenSeconds))
	}), ", "), nil)

	if ctl.UndoLastPlay() {
		d.step("undo last play", "", pl.Songs())
	}
	if cur := ctl.Current(); cur != nil {
		d.step("now playing", cur.Title, []*song.Song{cur})
	}

	recs := ctl.Recommend()
	d.step("recommend", strings.Join(lo.Map(recs, func(r recommend.Recommendation, _ int) string {
		return fmt.Sprintf("%s %.2f (%s)", r.ID, r.Score, r.Reason)
	}), "; "), nil)

	d.step("history", "", ctl.History().All())
	return nil
}

func (d *demo) render(w io.Writer) {
	t := newTable(w, table.Row{"Step", "Songs", "Detail"})
	for _, s := range d.steps {
		t.AppendRow(table.Row{s.Name, strings.Join(s.Songs, " "), s.Detail})
	}
	t.Render()
}

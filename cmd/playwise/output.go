package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/1mb-dev/playwise/internal/catalog"
	"github.com/1mb-dev/playwise/internal/playlist"
	"github.com/1mb-dev/playwise/internal/song"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(getTermWidth())
	t.AppendHeader(header)
	return t
}

func getTermWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}

func renderSongs(w io.Writer, songs []*song.Song) {
	t := newTable(w, table.Row{"#", "ID", "Title", "Artist", "Genre", "Duration", "Plays"})
	for i, s := range songs {
		t.AppendRow(table.Row{i, s.ID, s.Title, s.Artist, s.Genre, fmt.Sprintf("%ds", s.Duration), s.PlayCount})
	}
	t.Render()
}

func statusColor(s playlist.Status) func(a ...any) string {
	switch s {
	case playlist.Added:
		return text.FgGreen.Sprint
	case playlist.Duplicate:
		return text.FgYellow.Sprint
	default:
		return text.FgHiRed.Sprint
	}
}

func songOptions(t *catalog.Track) []song.Option {
	return []song.Option{song.WithID(t.ID), song.WithGenre(t.Genre)}
}

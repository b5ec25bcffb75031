package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1mb-dev/playwise/internal/song"
)

func mustSong(t *testing.T, title, artist, id string) *song.Song {
	t.Helper()
	s, err := song.New(title, artist, 200, song.WithID(id))
	require.NoError(t, err)
	return s
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello   World ", "hello world"},
		{"TAB\tand\nnewline", "tab and newline"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
	assert.Equal(t, Key("Yesterday ", "the  Beatles"), Key("yesterday", "The Beatles"))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Latest")
	require.NoError(t, err)
	assert.Equal(t, KeepLatest, p)

	_, err = ParsePolicy("newest")
	assert.Error(t, err)
}

func TestMapKeepFirst(t *testing.T) {
	m := NewMap()
	first := mustSong(t, "Yesterday", "The Beatles", "1")
	dup := mustSong(t, "  yesterday", "THE BEATLES ", "2")

	assert.True(t, m.Add(first).Accepted)

	res := m.Add(dup)
	assert.False(t, res.Accepted)
	assert.Equal(t, "1", res.ExistingID)

	_, ok := m.ByID("2")
	assert.False(t, ok, "rejected song must not be indexed")
	got, ok := m.ByTitle("Yesterday")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestMapKeepLatest(t *testing.T) {
	m := NewMap(WithPolicy(KeepLatest))
	first := mustSong(t, "Yesterday", "The Beatles", "1")
	latest := mustSong(t, "Yesterday", "the beatles", "2")

	m.Add(first)
	res := m.Add(latest)
	require.True(t, res.Accepted)
	assert.Same(t, first, res.Replaced)

	_, ok := m.ByID("1")
	assert.False(t, ok)
	got, ok := m.ByID("2")
	require.True(t, ok)
	assert.Same(t, latest, got)
	assert.Equal(t, 1, m.Len())
}

func TestMapWithoutDedupe(t *testing.T) {
	m := NewMap(WithoutDedupe())
	assert.True(t, m.Add(mustSong(t, "A", "B", "1")).Accepted)
	assert.True(t, m.Add(mustSong(t, "A", "B", "2")).Accepted)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, Policy(""), m.Policy())
}

func TestMapRemove(t *testing.T) {
	m := NewMap()
	s := mustSong(t, "Creep", "Radiohead", "r1")
	m.Add(s)

	assert.True(t, m.Remove("r1"))
	assert.False(t, m.Remove("r1"))
	_, ok := m.ByTitle("Creep")
	assert.False(t, ok)

	// key released, so the same song can be re-added
	assert.True(t, m.Add(mustSong(t, "Creep", "Radiohead", "r2")).Accepted)
}

func TestDeregisterOnlyOwner(t *testing.T) {
	d := NewDuplicateCleaner(KeepLatest)
	a := mustSong(t, "X", "Y", "a")
	b := mustSong(t, "X", "Y", "b")
	d.Register(a)
	d.Register(b)

	d.Deregister(a)
	assert.True(t, d.IsDuplicate("x", "y"), "stale owner must not release the key")
	d.Deregister(b)
	assert.False(t, d.IsDuplicate("x", "y"))
}

func TestMapRejectsSameSongTwice(t *testing.T) {
	for _, p := range []Policy{KeepFirst, KeepLatest} {
		m := NewMap(WithPolicy(p))
		s := mustSong(t, "Creep", "Radiohead", "r1")
		require.True(t, m.Add(s).Accepted)

		res := m.Add(s)
		assert.False(t, res.Accepted, "policy %s", p)
		assert.Equal(t, "r1", res.ExistingID)
		assert.Nil(t, res.Replaced)
	}
}

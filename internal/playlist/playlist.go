package playlist

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/1mb-dev/playwise/internal/lookup"
	"github.com/1mb-dev/playwise/internal/metrics"
	"github.com/1mb-dev/playwise/internal/song"
)

// ErrStaleAction is returned when an undo record no longer matches the
// playlist, typically because later edits moved or removed its song.
var ErrStaleAction = errors.New("action no longer applies")

// Status is the outcome of an add
type Status string

// Add outcomes. Rejections are results, not errors.
const (
	Added         Status = "added"
	BlockedArtist Status = "BLOCKED_ARTIST"
	Duplicate     Status = "duplicate"
)

// AddResult reports what happened to a song offered to the playlist
type AddResult struct {
	Status Status

	// ExistingID is the id of the song a Duplicate collided with
	ExistingID string

	// Song is the admitted song (nil on rejection)
	Song *song.Song
}

// OK reports whether the song was admitted
func (r AddResult) OK() bool {
	return r.Status == Added
}

// Playlist is an ordered, editable list of songs with undo, an artist
// blocklist and duplicate detection.
type Playlist struct {
	list      List
	lookup    *lookup.Map
	blocklist *Blocklist
	actions   *ActionLog
	shuffler  *Shuffler

	policy  lookup.Policy
	dedupe  bool
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type options struct {
	policy       lookup.Policy
	dedupe       bool
	undoCapacity int
	shuffler     *Shuffler
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// Option configures a Playlist
type Option func(*options)

// WithDedupePolicy sets how duplicates are treated (default KeepFirst)
func WithDedupePolicy(p lookup.Policy) Option {
	return func(o *options) {
		o.policy = p
		o.dedupe = true
	}
}

// WithoutDedupe admits duplicate title+artist pairs
func WithoutDedupe() Option {
	return func(o *options) { o.dedupe = false }
}

// WithUndoCapacity bounds the action log
func WithUndoCapacity(n int) Option {
	return func(o *options) { o.undoCapacity = n }
}

// WithShuffler replaces the default shuffler
func WithShuffler(s *Shuffler) Option {
	return func(o *options) { o.shuffler = s }
}

// WithLogger sets the logger for rejections, undo and shuffle events
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the counters updated by playlist edits
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates an empty playlist
func New(opts ...Option) (*Playlist, error) {
	o := options{
		policy:       lookup.KeepFirst,
		dedupe:       true,
		undoCapacity: DefaultUndoCapacity,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	actions, err := NewActionLog(o.undoCapacity)
	if err != nil {
		return nil, fmt.Errorf("undo history: %w", err)
	}
	if o.shuffler == nil {
		o.shuffler = NewShuffler(DefaultShuffleAttempts, nil)
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}

	lookupOpt := lookup.WithPolicy(o.policy)
	if !o.dedupe {
		lookupOpt = lookup.WithoutDedupe()
	}

	return &Playlist{
		lookup:    lookup.NewMap(lookupOpt),
		blocklist: NewBlocklist(),
		actions:   actions,
		shuffler:  o.shuffler,
		policy:    o.policy,
		dedupe:    o.dedupe,
		logger:    o.logger,
		metrics:   o.metrics,
	}, nil
}

// evicted is the older duplicate a KeepLatest admission removed
type evicted struct {
	song  *song.Song
	index int
}

// admit runs the blocklist and dedupe filters and appends s on success.
// A KeepLatest admission physically removes the older duplicate.
func (p *Playlist) admit(s *song.Song) (AddResult, *evicted) {
	if p.blocklist.IsBlocked(s.Artist) {
		p.metrics.RecordBlocked()
		p.logger.Debug().Str("title", s.Title).Str("artist", s.Artist).Msg("rejected blocked artist")
		return AddResult{Status: BlockedArtist}, nil
	}

	res := p.lookup.Add(s)
	if !res.Accepted {
		p.metrics.RecordDuplicate()
		p.logger.Debug().Str("title", s.Title).Str("existing_id", res.ExistingID).Msg("rejected duplicate")
		return AddResult{Status: Duplicate, ExistingID: res.ExistingID}, nil
	}

	var ev *evicted
	if res.Replaced != nil {
		if idx := p.list.IndexOf(res.Replaced); idx >= 0 {
			_, _ = p.list.RemoveAt(idx)
			ev = &evicted{song: res.Replaced, index: idx}
		}
		p.logger.Debug().Str("title", s.Title).Str("replaced_id", res.Replaced.ID).Msg("replaced older duplicate")
	}

	p.list.Append(s)
	p.metrics.RecordAdd()
	return AddResult{Status: Added, Song: s}, ev
}

// Add creates a song and appends it. Blocked artists and duplicates are
// reported through AddResult; the error is only for invalid song input.
func (p *Playlist) Add(title, artist string, duration int, opts ...song.Option) (AddResult, error) {
	s, err := song.New(title, artist, duration, opts...)
	if err != nil {
		return AddResult{}, err
	}

	res, ev := p.admit(s)
	if !res.OK() {
		return res, nil
	}

	act := Action{Kind: ActionAdd, Index: p.list.Len() - 1, Song: s}
	if ev != nil {
		act.Replaced, act.ReplacedIndex = ev.song, ev.index
	}
	p.actions.Push(act)
	return res, nil
}

// AddSong appends an existing song through the same filters as Add,
// without recording an undo action.
func (p *Playlist) AddSong(s *song.Song) AddResult {
	res, _ := p.admit(s)
	return res
}

// Delete removes the song at index
func (p *Playlist) Delete(index int) error {
	s, err := p.list.RemoveAt(index)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	p.lookup.RemoveSong(s)
	p.actions.Push(Action{Kind: ActionDelete, Index: index, Song: s})
	return nil
}

// Move relocates the song at from to position to
func (p *Playlist) Move(from, to int) error {
	if err := p.list.Move(from, to); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	p.actions.Push(Action{Kind: ActionMove, From: from, To: to})
	return nil
}

// Reverse flips the playlist order
func (p *Playlist) Reverse() {
	p.list.Reverse()
	p.actions.Push(Action{Kind: ActionReverse})
}

// UndoLastN reverts up to n of the most recent edits, newest first, and
// returns the kinds undone. It stops at the first record that no longer
// applies and returns ErrStaleAction.
func (p *Playlist) UndoLastN(n int) ([]ActionKind, error) {
	if n <= 0 {
		return nil, nil
	}
	n = min(n, p.actions.Len())

	undone := make([]ActionKind, 0, n)
	defer func() { p.metrics.RecordUndo(len(undone)) }()

	for range n {
		act, ok := p.actions.Pop()
		if !ok {
			break
		}
		if err := p.applyUndo(act); err != nil {
			p.logger.Debug().Err(err).Str("kind", string(act.Kind)).Msg("undo failed")
			return undone, fmt.Errorf("undo %s: %w", act.Kind, err)
		}
		undone = append(undone, act.Kind)
	}
	p.logger.Debug().Int("count", len(undone)).Msg("undid actions")
	return undone, nil
}

// applyUndo interprets a single action record
func (p *Playlist) applyUndo(act Action) error {
	switch act.Kind {
	case ActionAdd:
		idx := act.Index
		if at, err := p.list.At(idx); err != nil || at != act.Song {
			idx = p.list.IndexOf(act.Song)
		}
		if idx < 0 {
			return ErrStaleAction
		}
		if _, err := p.list.RemoveAt(idx); err != nil {
			return err
		}
		p.lookup.RemoveSong(act.Song)
		if act.Replaced != nil {
			return p.restore(act.Replaced, act.ReplacedIndex)
		}
		return nil

	case ActionDelete:
		if act.Index > p.list.Len() {
			return ErrStaleAction
		}
		return p.restore(act.Song, act.Index)

	case ActionMove:
		if err := p.list.Move(act.To, act.From); err != nil {
			return errors.Join(ErrStaleAction, err)
		}
		return nil

	case ActionReverse:
		p.list.Reverse()
		return nil

	case ActionShuffle:
		current := p.list.Songs()
		if len(current) != len(act.Order) || !lo.Every(current, act.Order) {
			return ErrStaleAction
		}
		p.list.Clear()
		for _, s := range act.Order {
			p.list.Append(s)
		}
		return nil
	}
	return fmt.Errorf("unknown action kind %q", act.Kind)
}

// restore re-registers s and reinserts it at index (clamped to the tail).
// If a song admitted since then holds its key, KeepFirst leaves the list
// untouched and reports ErrStaleAction; KeepLatest retires the newer song.
func (p *Playlist) restore(s *song.Song, index int) error {
	res := p.lookup.Add(s)
	if !res.Accepted {
		return ErrStaleAction
	}
	if res.Replaced != nil {
		if idx := p.list.IndexOf(res.Replaced); idx >= 0 {
			_, _ = p.list.RemoveAt(idx)
		}
		p.logger.Debug().Str("title", s.Title).Str("replaced_id", res.Replaced.ID).Msg("undo replaced newer duplicate")
	}
	return p.list.InsertAt(min(index, p.list.Len()), s)
}

// ShuffleWithArtistConstraints rearranges the playlist so that, when
// possible, no two neighbours share an artist. It returns the new order.
func (p *Playlist) ShuffleWithArtistConstraints() []*song.Song {
	before := p.list.Songs()
	after := p.shuffler.Shuffle(before)

	p.list.Clear()
	for _, s := range after {
		p.list.Append(s)
	}
	p.actions.Push(Action{Kind: ActionShuffle, Order: before})

	fellBack := p.shuffler.FellBack()
	p.metrics.RecordShuffle(fellBack)
	if fellBack {
		p.logger.Debug().Int("songs", len(after)).Msg("shuffle kept original order")
	}
	return p.list.Songs()
}

// MergeAlternately returns a new playlist taking one song from p, then
// one from other, until the shorter runs out; the rest of the longer
// follows in order. Neither input is modified.
func (p *Playlist) MergeAlternately(other *Playlist) *Playlist {
	merged := p.sibling()

	a, b := p.list.Songs(), other.list.Songs()
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		merged.AddSong(a[i])
		merged.AddSong(b[j])
		i++
		j++
	}
	for ; i < len(a); i++ {
		merged.AddSong(a[i])
	}
	for ; j < len(b); j++ {
		merged.AddSong(b[j])
	}
	return merged
}

// sibling creates an empty playlist with p's dedupe and undo settings
func (p *Playlist) sibling() *Playlist {
	actions, _ := NewActionLog(p.actions.Capacity())
	lookupOpt := lookup.WithPolicy(p.policy)
	if !p.dedupe {
		lookupOpt = lookup.WithoutDedupe()
	}
	return &Playlist{
		lookup:    lookup.NewMap(lookupOpt),
		blocklist: NewBlocklist(),
		actions:   actions,
		shuffler:  p.shuffler,
		policy:    p.policy,
		dedupe:    p.dedupe,
		logger:    p.logger,
		metrics:   p.metrics,
	}
}

// PopNext removes and returns the head song, or nil when empty.
// It is not recorded in the action log.
func (p *Playlist) PopNext() *song.Song {
	return p.PopFirstMatch(func(*song.Song) bool { return true })
}

// PopFirstMatch removes and returns the first song accepted by keep,
// leaving every song before it in place. It is not recorded in the action log.
func (p *Playlist) PopFirstMatch(keep func(*song.Song) bool) *song.Song {
	for i, s := range p.list.Songs() {
		if keep(s) {
			_, _ = p.list.RemoveAt(i)
			p.lookup.RemoveSong(s)
			return s
		}
	}
	return nil
}

// Songs returns the songs in order
func (p *Playlist) Songs() []*song.Song {
	return p.list.Songs()
}

// At returns the song at index
func (p *Playlist) At(index int) (*song.Song, error) {
	return p.list.At(index)
}

// Len returns the number of songs
func (p *Playlist) Len() int {
	return p.list.Len()
}

// IsEmpty reports whether the playlist has no songs
func (p *Playlist) IsEmpty() bool {
	return p.list.Len() == 0
}

// Blocklist returns the playlist's artist blocklist
func (p *Playlist) Blocklist() *Blocklist {
	return p.blocklist
}

// ActionHistory lists logged edit kinds, oldest first
func (p *Playlist) ActionHistory() []ActionKind {
	return p.actions.Kinds()
}

// ClearActionHistory forgets every logged edit
func (p *Playlist) ClearActionHistory() {
	p.actions.Clear()
}

// SetUndoCapacity changes how many edits are kept
func (p *Playlist) SetUndoCapacity(n int) error {
	return p.actions.SetCapacity(n)
}

// LookupByID finds a song in the playlist by id
func (p *Playlist) LookupByID(id string) (*song.Song, bool) {
	return p.lookup.ByID(id)
}

// LookupByTitle finds a song in the playlist by exact title
func (p *Playlist) LookupByTitle(title string) (*song.Song, bool) {
	return p.lookup.ByTitle(title)
}

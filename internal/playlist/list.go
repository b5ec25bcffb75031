package playlist

import (
	"errors"
	"fmt"

	"github.com/1mb-dev/playwise/internal/song"
)

// ErrIndexOutOfRange is returned for positions outside the list
var ErrIndexOutOfRange = errors.New("index out of range")

type node struct {
	song *song.Song
	prev *node
	next *node
}

// List is a doubly linked sequence of songs.
// Append is O(1); positional operations walk from the head.
type List struct {
	head *node
	tail *node
	size int
}

// Len returns the number of songs
func (l *List) Len() int {
	return l.size
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= l.size {
		return fmt.Errorf("position %d of %d: %w", i, l.size, ErrIndexOutOfRange)
	}
	return nil
}

// nodeAt walks to position i, which must be valid
func (l *List) nodeAt(i int) *node {
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// Append adds s at the tail
func (l *List) Append(s *song.Song) {
	n := &node{song: s}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// InsertAt places s so that it ends up at position i.
// i == Len() appends.
func (l *List) InsertAt(i int, s *song.Song) error {
	if i == l.size {
		l.Append(s)
		return nil
	}
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.linkBefore(&node{song: s}, l.nodeAt(i))
	l.size++
	return nil
}

// linkBefore links n in front of at. Size is not touched.
func (l *List) linkBefore(n, at *node) {
	n.next = at
	n.prev = at.prev
	if at.prev != nil {
		at.prev.next = n
	} else {
		l.head = n
	}
	at.prev = n
}

// unlink detaches n. Size is not touched.
func (l *List) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// At returns the song at position i
func (l *List) At(i int) (*song.Song, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	return l.nodeAt(i).song, nil
}

// IndexOf returns the position of s by identity, or -1
func (l *List) IndexOf(s *song.Song) int {
	i := 0
	for n := l.head; n != nil; n = n.next {
		if n.song == s {
			return i
		}
		i++
	}
	return -1
}

// RemoveAt unlinks and returns the song at position i
func (l *List) RemoveAt(i int) (*song.Song, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	n := l.nodeAt(i)
	l.unlink(n)
	l.size--
	return n.song, nil
}

// Move relocates the song at from so that it ends up at position to,
// preserving the relative order of every other song.
func (l *List) Move(from, to int) error {
	if err := l.checkIndex(from); err != nil {
		return err
	}
	if err := l.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	n := l.nodeAt(from)
	l.unlink(n)
	l.size--

	// After unlinking, position to is the node n must precede,
	// or the tail when to is the last slot.
	if to == l.size {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	} else {
		l.linkBefore(n, l.nodeAt(to))
	}
	l.size++
	return nil
}

// Reverse flips the order in place
func (l *List) Reverse() {
	l.tail = l.head
	var prev *node
	for cur := l.head; cur != nil; {
		next := cur.next
		cur.next, cur.prev = prev, next
		prev = cur
		cur = next
	}
	l.head = prev
}

// Songs returns the songs head to tail
func (l *List) Songs() []*song.Song {
	out := make([]*song.Song, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.song)
	}
	return out
}

// Clear drops every node
func (l *List) Clear() {
	l.head, l.tail, l.size = nil, nil, 0
}

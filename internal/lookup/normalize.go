// Package lookup provides constant-time song lookup by id or title and
// duplicate detection on normalized title and artist.
package lookup

import "strings"

// Normalize trims, lower-cases and collapses runs of whitespace to a single space
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Key returns the composite duplicate key for a title and artist
func Key(title, artist string) string {
	return Normalize(title) + "|" + Normalize(artist)
}

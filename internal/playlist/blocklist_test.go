package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocklist(t *testing.T) {
	b := NewBlocklist()
	b.Add("  Taylor Swift ")
	b.Add("NICKELBACK")

	assert.True(t, b.IsBlocked("taylor swift"))
	assert.True(t, b.IsBlocked("Nickelback  "))
	assert.False(t, b.IsBlocked("Queen"))
	assert.Equal(t, []string{"nickelback", "taylor swift"}, b.Artists())

	assert.True(t, b.Remove("Taylor SWIFT"))
	assert.False(t, b.Remove("Taylor Swift"))
	assert.Equal(t, 1, b.Len())

	b.Clear()
	assert.False(t, b.IsBlocked("nickelback"))
}

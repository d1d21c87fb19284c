package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewManual(base)

	assert.Equal(t, base, c.Now())
	assert.Equal(t, base, c.Now()) // frozen until moved

	c.Advance(90 * time.Second)
	assert.Equal(t, base.Add(90*time.Second), c.Now())

	c.Advance(-time.Minute)
	assert.Equal(t, base.Add(30*time.Second), c.Now())

	other := base.AddDate(0, 1, 0)
	c.Set(other)
	assert.Equal(t, other, c.Now())
}

func TestSystemTracksWallClock(t *testing.T) {
	c := NewSystem()
	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

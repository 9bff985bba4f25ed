package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntervalRejectsDegenerate(t *testing.T) {
	_, err := NewInterval(day(2025, time.June, 5), day(2025, time.June, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInterval))

	_, err = NewInterval(day(2025, time.June, 6), day(2025, time.June, 5))
	assert.True(t, errors.Is(err, ErrInvalidInterval))
}

func TestNewIntervalNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	iv, err := NewInterval(
		time.Date(2025, time.March, 10, 14, 30, 0, 0, loc),
		time.Date(2025, time.March, 12, 11, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.March, 10), iv.CheckIn)
	assert.Equal(t, day(2025, time.March, 12), iv.CheckOut)
}

func TestOverlapsSymmetry(t *testing.T) {
	a, _ := NewInterval(day(2025, time.January, 1), day(2025, time.January, 10))
	b, _ := NewInterval(day(2025, time.January, 5), day(2025, time.January, 15))
	c, _ := NewInterval(day(2025, time.February, 1), day(2025, time.February, 3))

	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	assert.Equal(t, a.Overlaps(c), c.Overlaps(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestOverlapsSelf(t *testing.T) {
	a, _ := NewInterval(day(2025, time.January, 1), day(2025, time.January, 2))
	assert.True(t, a.Overlaps(a))
}

func TestAdjacentIntervalsDoNotOverlap(t *testing.T) {
	// Checkout morning and check-in afternoon of Jan 5 do not conflict.
	a, _ := NewInterval(day(2025, time.January, 1), day(2025, time.January, 5))
	b, _ := NewInterval(day(2025, time.January, 5), day(2025, time.January, 10))
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestContainsHalfOpen(t *testing.T) {
	iv, _ := NewInterval(day(2025, time.March, 10), day(2025, time.March, 15))

	assert.True(t, iv.Contains(day(2025, time.March, 10)))
	assert.True(t, iv.Contains(day(2025, time.March, 14)))
	assert.False(t, iv.Contains(day(2025, time.March, 15)), "checkout day is not occupied")
	assert.False(t, iv.Contains(day(2025, time.March, 9)))
}

func TestNights(t *testing.T) {
	iv, _ := NewInterval(day(2025, time.March, 10), day(2025, time.March, 15))
	assert.Equal(t, 5, iv.Nights())
}

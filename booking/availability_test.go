package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

func TestIsAvailableAroundConfirmedStay(t *testing.T) {
	store := newFakeStore()
	store.seedReservation(models.StatusConfirmed,
		day(2025, time.March, 10), day(2025, time.March, 15), models.Client{})
	engine := NewEngine(store, Policy{})

	cases := []struct {
		name      string
		in, out   time.Time
		available bool
	}{
		{"overlapping tail", day(2025, time.March, 12), day(2025, time.March, 20), false},
		{"back to back after", day(2025, time.March, 15), day(2025, time.March, 20), true},
		{"back to back before", day(2025, time.March, 1), day(2025, time.March, 10), true},
		{"fully inside", day(2025, time.March, 11), day(2025, time.March, 13), false},
		{"fully covering", day(2025, time.March, 1), day(2025, time.March, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv, err := NewInterval(tc.in, tc.out)
			require.NoError(t, err)
			got, err := engine.IsAvailable(iv, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.available, got)
		})
	}
}

func TestPendingDoesNotBlockByDefault(t *testing.T) {
	store := newFakeStore()
	store.seedReservation(models.StatusPending,
		day(2025, time.March, 10), day(2025, time.March, 15), models.Client{})
	engine := NewEngine(store, Policy{})

	iv, _ := NewInterval(day(2025, time.March, 12), day(2025, time.March, 14))
	got, err := engine.IsAvailable(iv, 0)
	require.NoError(t, err)
	assert.True(t, got, "pending is a soft hold with no blocking guarantee")
}

func TestPendingBlocksWhenPolicySaysSo(t *testing.T) {
	store := newFakeStore()
	store.seedReservation(models.StatusPending,
		day(2025, time.March, 10), day(2025, time.March, 15), models.Client{})
	engine := NewEngine(store, Policy{PendingBlocks: true})

	iv, _ := NewInterval(day(2025, time.March, 12), day(2025, time.March, 14))
	got, err := engine.IsAvailable(iv, 0)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCancelledAndCompletedNeverBlock(t *testing.T) {
	store := newFakeStore()
	store.seedReservation(models.StatusCancelled,
		day(2025, time.March, 10), day(2025, time.March, 15), models.Client{})
	store.seedReservation(models.StatusCompleted,
		day(2025, time.March, 12), day(2025, time.March, 18), models.Client{})
	engine := NewEngine(store, Policy{PendingBlocks: true})

	iv, _ := NewInterval(day(2025, time.March, 10), day(2025, time.March, 18))
	got, err := engine.IsAvailable(iv, 0)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsAvailableExcludesGivenReservation(t *testing.T) {
	store := newFakeStore()
	existing := store.seedReservation(models.StatusConfirmed,
		day(2025, time.March, 10), day(2025, time.March, 15), models.Client{})
	engine := NewEngine(store, Policy{})

	// Rescheduling the same stay by one day must not conflict with itself.
	iv, _ := NewInterval(day(2025, time.March, 11), day(2025, time.March, 16))
	got, err := engine.IsAvailable(iv, existing.ID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = engine.IsAvailable(iv, 0)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsAvailableRefusesToAnswerOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failReads = true
	engine := NewEngine(store, Policy{})

	iv, _ := NewInterval(day(2025, time.March, 10), day(2025, time.March, 12))
	got, err := engine.IsAvailable(iv, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, got, "an availability check that cannot read data must not answer affirmatively")
}

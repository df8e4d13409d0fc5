package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(tripID, ownerEmail string) TripRecord {
	plan, _ := ParsePlan(primerReply)
	return TripRecord{
		TripID: tripID,
		Request: TripRequest{
			Location:   "Bhopal",
			Days:       2,
			GroupSize:  "4-5",
			BudgetTier: BudgetLuxury,
		},
		Plan:       *plan,
		OwnerName:  "Asha",
		OwnerEmail: ownerEmail,
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec := testRecord("1700000000000000001", "asha@example.com")
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.Get(ctx, rec.TripID)
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "nope")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestMemoryStore_OverwriteLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := testRecord("42", "asha@example.com")
	require.NoError(t, store.Put(ctx, first))

	second := first
	second.OwnerName = "Ravi"
	require.NoError(t, store.Put(ctx, second))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.OwnerName)
}

func TestMemoryStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, testRecord("1", "asha@example.com")))
	require.NoError(t, store.Put(ctx, testRecord("2", "asha@example.com")))
	require.NoError(t, store.Put(ctx, testRecord("3", "ravi@example.com")))

	trips, err := store.ListByOwner(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, "1", trips[0].TripID)
	assert.Equal(t, "2", trips[1].TripID)
}

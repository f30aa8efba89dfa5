package redemptions_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"spotly/internal/redemptions"
	"spotly/internal/reservations"
	"spotly/internal/shared/apperrors"
	"spotly/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveOne(t *testing.T, spotID uuid.UUID, repo reservations.Repository) *reservations.Ticket {
	t.Helper()
	ticket, err := repo.AllocateTicket(context.Background(), reservations.AllocationRequest{SpotID: spotID})
	require.NoError(t, err)
	return ticket
}

func TestRedeemSequential(t *testing.T) {
	db := testutil.NewDB(t)
	spot := testutil.CreateSpot(t, db, "fair", testutil.SlotSpec{Start: testutil.At(9, 0), Capacity: 2})
	ticket := reserveOne(t, spot.ID, reservations.NewRepository(db, 0))
	repo := redemptions.NewRepository(db)
	at := testutil.At(9, 5)

	for want := 0; want < 3; want++ {
		previous, err := repo.Redeem(context.Background(), spot.ID, ticket.ID, at)
		require.NoError(t, err)
		assert.Equal(t, want, previous)
	}

	got, err := repo.GetTicket(context.Background(), spot.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PresentmentCount)
	require.NotNil(t, got.LastPresentedAt)
	assert.True(t, at.Equal(*got.LastPresentedAt))
	require.NotNil(t, got.Slot)
	assert.Equal(t, spot.Slots[0].ID, got.Slot.ID)
	assert.True(t, spot.Slots[0].StartTime.Equal(got.Slot.StartTime))

	// Presenting a ticket never touches capacity
	testutil.AssertCapacityInvariant(t, db, spot.ID)
}

func TestRedeemCrossSpotIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateSpot(t, db, "a", testutil.SlotSpec{Start: testutil.At(9, 0), Capacity: 1})
	b := testutil.CreateSpot(t, db, "b", testutil.SlotSpec{Start: testutil.At(9, 0), Capacity: 1})
	ticket := reserveOne(t, a.ID, reservations.NewRepository(db, 0))
	repo := redemptions.NewRepository(db)

	_, err := repo.Redeem(context.Background(), b.ID, ticket.ID, testutil.At(9, 5))
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	_, err = repo.GetTicket(context.Background(), b.ID, ticket.ID)
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	_, err = repo.Redeem(context.Background(), a.ID, uuid.New(), testutil.At(9, 5))
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)

	got, err := repo.GetTicket(context.Background(), a.ID, ticket.ID)
	require.NoError(t, err)
	assert.Zero(t, got.PresentmentCount, "failed lookups must not count as presentments")
}

func TestRedeemConcurrent(t *testing.T) {
	db := testutil.NewDB(t)
	spot := testutil.CreateSpot(t, db, "fair", testutil.SlotSpec{Start: testutil.At(9, 0), Capacity: 1})
	ticket := reserveOne(t, spot.ID, reservations.NewRepository(db, 0))
	svc := redemptions.NewService(redemptions.NewRepository(db))

	const callers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		previous []int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Redeem(context.Background(), spot.ID.String(), ticket.ID.String())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			previous = append(previous, resp.PreviousPresentments)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(previous)
	want := make([]int, callers)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, previous)

	got, err := svc.GetTicket(context.Background(), spot.ID.String(), ticket.ID.String())
	require.NoError(t, err)
	assert.Equal(t, callers, got.PresentmentCount)
}

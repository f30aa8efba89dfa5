package spots_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"spotly/internal/shared/apperrors"
	"spotly/internal/spots"
	"spotly/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpot(name string, starts ...time.Time) *spots.Spot {
	spot := &spots.Spot{ID: uuid.New(), Name: name}
	for i, start := range starts {
		spot.Slots = append(spot.Slots, spots.Slot{
			ID:                uuid.New(),
			SpotID:            spot.ID,
			Position:          i,
			StartTime:         start,
			EndTime:           start.Add(time.Hour),
			CapacityTotal:     5,
			CapacityRemaining: 5,
		})
	}
	return spot
}

func TestCreateWithSlotsAndGetByName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := spots.NewRepository(db)
	ctx := context.Background()

	// Input order is preserved even when it is not chronological
	spot := newSpot("Fair", testutil.At(11, 0), testutil.At(9, 0), testutil.At(10, 0))
	require.NoError(t, repo.CreateWithSlots(ctx, spot))

	got, err := repo.GetByName(ctx, "Fair")
	require.NoError(t, err)
	assert.Equal(t, spot.ID, got.ID)
	require.Len(t, got.Slots, 3)
	for i, slot := range got.Slots {
		assert.Equal(t, spot.Slots[i].ID, slot.ID)
		assert.True(t, spot.Slots[i].StartTime.Equal(slot.StartTime))
		assert.Equal(t, 5, slot.CapacityRemaining)
	}

	ref, err := repo.GetRefByName(ctx, "Fair")
	require.NoError(t, err)
	assert.Equal(t, spots.SpotRef{ID: spot.ID, Name: "Fair"}, *ref)
}

func TestGetMissingSpot(t *testing.T) {
	db := testutil.NewDB(t)
	repo := spots.NewRepository(db)
	ctx := context.Background()

	_, err := repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)

	_, err = repo.GetRefByName(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestNameConflictLeavesNoPartialSpot(t *testing.T) {
	db := testutil.NewDB(t)
	repo := spots.NewRepository(db)
	ctx := context.Background()

	first := newSpot("fair", testutil.At(9, 0))
	require.NoError(t, repo.CreateWithSlots(ctx, first))

	second := newSpot("fair", testutil.At(9, 0), testutil.At(10, 0))
	err := repo.CreateWithSlots(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrNameConflict)

	var slotCount int64
	require.NoError(t, db.Model(&spots.Slot{}).Where("spot_id = ?", second.ID).Count(&slotCount).Error)
	assert.Zero(t, slotCount)

	// Case sensitive uniqueness
	require.NoError(t, repo.CreateWithSlots(ctx, newSpot("Fair", testutil.At(9, 0))))
}

func TestCreateIsAllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := spots.NewRepository(db)
	ctx := context.Background()

	spot := newSpot("broken", testutil.At(9, 0), testutil.At(10, 0))
	spot.Slots[1].ID = spot.Slots[0].ID // duplicate primary key fails the slot insert

	require.Error(t, repo.CreateWithSlots(ctx, spot))

	_, err := repo.GetByName(ctx, "broken")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestConcurrentCreateSameName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := spots.NewRepository(db)
	ctx := context.Background()

	const creators = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateWithSlots(ctx, newSpot("launch", testutil.At(9, 0)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrNameConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, creators-1, conflicts)

	var count int64
	require.NoError(t, db.Model(&spots.Spot{}).Where("name = ?", "launch").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

package testutil

import (
	"context"
	"testing"
	"time"

	"spotly/internal/spots"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotSpec is a compact slot description for fixtures
type SlotSpec struct {
	Start    time.Time
	Capacity int
}

// At returns a fixed UTC instant on 2030-06-01 at hour:minute
func At(hour, minute int) time.Time {
	return time.Date(2030, time.June, 1, hour, minute, 0, 0, time.UTC)
}

// CreateSpot stores a spot directly, bypassing the service, and returns it
// with its slots in input order.
func CreateSpot(t *testing.T, db *gorm.DB, name string, slots ...SlotSpec) *spots.Spot {
	t.Helper()
	spot := &spots.Spot{ID: uuid.New(), Name: name}
	for i, s := range slots {
		spot.Slots = append(spot.Slots, spots.Slot{
			ID:                uuid.New(),
			SpotID:            spot.ID,
			Position:          i,
			StartTime:         s.Start,
			EndTime:           s.Start.Add(time.Hour),
			CapacityTotal:     s.Capacity,
			CapacityRemaining: s.Capacity,
		})
	}

	if err := spots.NewRepository(db).CreateWithSlots(context.Background(), spot); err != nil {
		t.Fatalf("create spot %q: %v", name, err)
	}
	return spot
}

// AssertCapacityInvariant checks total - remaining == issued tickets for every slot of the spot
func AssertCapacityInvariant(t *testing.T, db *gorm.DB, spotID uuid.UUID) {
	t.Helper()

	var slots []spots.Slot
	if err := db.Where("spot_id = ?", spotID).Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}

	for i := range slots {
		slot := &slots[i]
		if slot.CapacityRemaining < 0 || slot.CapacityRemaining > slot.CapacityTotal {
			t.Errorf("slot %s: remaining %d out of [0, %d]", slot.ID, slot.CapacityRemaining, slot.CapacityTotal)
		}

		var tickets int64
		if err := db.Table("tickets").Where("slot_id = ?", slot.ID).Count(&tickets).Error; err != nil {
			t.Fatalf("count tickets: %v", err)
		}
		if int64(slot.Issued()) != tickets {
			t.Errorf("slot %s: %d issued by capacity, %d tickets stored", slot.ID, slot.Issued(), tickets)
		}
	}
}

package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/database/dberrors"
	"spotly/internal/spots"
	"spotly/pkg/idgen"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllocationRequest describes one reservation attempt
type AllocationRequest struct {
	SpotID uuid.UUID
	Note   *string

	// NotBefore excludes slots starting before the given instant when set
	NotBefore *time.Time
}

type Repository interface {
	// AllocateTicket claims one unit of capacity from the earliest open slot
	// and records the ticket in the same transaction.
	AllocateTicket(ctx context.Context, req AllocationRequest) (*Ticket, error)
}

type repository struct {
	db            *gorm.DB
	maxIterations int
}

const defaultMaxIterations = 64

func NewRepository(db *gorm.DB, maxIterations int) Repository {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &repository{db: db, maxIterations: maxIterations}
}

func (r *repository) AllocateTicket(ctx context.Context, req AllocationRequest) (*Ticket, error) {
	var ticket *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < r.maxIterations; i++ {
			slot, err := r.nextOpenSlot(tx, req)
			if err != nil {
				return err
			}

			// The conditional decrement is the capacity check. A zero row
			// count means another transaction took the last unit first.
			res := tx.Model(&spots.Slot{}).
				Where("id = ? AND capacity_remaining > 0", slot.ID).
				Update("capacity_remaining", gorm.Expr("capacity_remaining - 1"))
			if res.Error != nil {
				return fmt.Errorf("failed to claim slot capacity: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				continue
			}

			// The row stays locked until commit, so this read is stable
			var remaining int
			if err := tx.Model(&spots.Slot{}).
				Select("capacity_remaining").
				Where("id = ?", slot.ID).
				Scan(&remaining).Error; err != nil {
				return fmt.Errorf("failed to read slot capacity: %w", err)
			}

			t := &Ticket{
				ID:           idgen.NewTicketID(),
				SpotID:       req.SpotID,
				SlotID:       slot.ID,
				SerialNumber: slot.CapacityTotal - remaining - 1,
				Note:         req.Note,
			}
			if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
				return fmt.Errorf("failed to insert ticket: %w", err)
			}

			t.Slot = slot
			slot.CapacityRemaining = remaining
			ticket = t
			return nil
		}
		return dberrors.ErrContended
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// nextOpenSlot picks the earliest starting slot with capacity, ties broken by id
func (r *repository) nextOpenSlot(tx *gorm.DB, req AllocationRequest) (*spots.Slot, error) {
	q := tx.Where("spot_id = ? AND capacity_remaining > 0", req.SpotID)
	if req.NotBefore != nil {
		q = q.Where("start_time >= ?", req.NotBefore.UTC())
	}

	var slot spots.Slot
	err := q.Order("start_time ASC").Order("id ASC").Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSoldOut
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select slot: %w", err)
	}
	return &slot, nil
}

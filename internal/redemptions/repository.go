package redemptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotly/internal/reservations"
	"spotly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Redeem increments the presentment count of a ticket belonging to the
	// spot and returns the count it had before.
	Redeem(ctx context.Context, spotID, ticketID uuid.UUID, at time.Time) (int, error)
	GetTicket(ctx context.Context, spotID, ticketID uuid.UUID) (*reservations.Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Redeem(ctx context.Context, spotID, ticketID uuid.UUID, at time.Time) (int, error) {
	var previous int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&reservations.Ticket{}).
			Where("id = ? AND spot_id = ?", ticketID, spotID).
			Updates(map[string]interface{}{
				"presentment_count": gorm.Expr("presentment_count + ?", 1),
				"last_presented_at": at.UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to redeem ticket: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTicketNotFound
		}

		var count int
		if err := tx.Model(&reservations.Ticket{}).
			Select("presentment_count").
			Where("id = ?", ticketID).
			Scan(&count).Error; err != nil {
			return fmt.Errorf("failed to read presentment count: %w", err)
		}
		previous = count - 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return previous, nil
}

func (r *repository) GetTicket(ctx context.Context, spotID, ticketID uuid.UUID) (*reservations.Ticket, error) {
	var ticket reservations.Ticket
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("id = ? AND spot_id = ?", ticketID, spotID).
		Take(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

package redemptions

import (
	"context"

	"spotly/internal/reservations"
	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/clock"
	"spotly/internal/shared/retry"
	"spotly/pkg/idgen"
	"spotly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Redeem(ctx context.Context, spotID, ticketID string) (*RedeemResponse, error)

	// GetTicket looks a ticket up without presenting it
	GetTicket(ctx context.Context, spotID, ticketID string) (*reservations.TicketResponse, error)
}

// EventPublisher receives redemption events after commit
type EventPublisher interface {
	PublishTicketRedeemed(ctx context.Context, redemption *Redemption)
}

type service struct {
	repo      Repository
	publisher EventPublisher
	clock     clock.Clock
	retry     retry.Policy
}

type Option func(*service)

func WithPublisher(p EventPublisher) Option {
	return func(s *service) { s.publisher = p }
}

func WithClock(c clock.Clock) Option {
	return func(s *service) { s.clock = c }
}

func WithRetryPolicy(p retry.Policy) Option {
	return func(s *service) { s.retry = p }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:  repo,
		clock: clock.NewSystem(),
		retry: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Redeem(ctx context.Context, spotID, ticketID string) (*RedeemResponse, error) {
	spot, ticket, err := parseIDs(spotID, ticketID)
	if err != nil {
		return nil, err
	}

	at := s.clock.Now()
	previous, err := retry.Do(ctx, s.retry, "redeem", func(ctx context.Context) (int, error) {
		return s.repo.Redeem(ctx, spot, ticket, at)
	})
	if err != nil {
		return nil, err
	}

	redemption := &Redemption{SpotID: spot, TicketID: ticket, Previous: previous, PresentedAt: at}
	logger.FromContext(ctx).LogTicketRedeemed(ctx, ticket.String(), spot.String(), previous)
	if s.publisher != nil {
		s.publisher.PublishTicketRedeemed(ctx, redemption)
	}

	response := redemption.ToResponse()
	return &response, nil
}

func (s *service) GetTicket(ctx context.Context, spotID, ticketID string) (*reservations.TicketResponse, error) {
	spot, ticket, err := parseIDs(spotID, ticketID)
	if err != nil {
		return nil, err
	}

	t, err := retry.Do(ctx, s.retry, "get_ticket", func(ctx context.Context) (*reservations.Ticket, error) {
		return s.repo.GetTicket(ctx, spot, ticket)
	})
	if err != nil {
		return nil, err
	}

	response := t.ToResponse()
	return &response, nil
}

// parseIDs rejects malformed identifiers as unknown tickets; no such ticket
// can exist.
func parseIDs(spotID, ticketID string) (uuid.UUID, uuid.UUID, error) {
	spot, err := idgen.Parse(spotID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrTicketNotFound.WithDetail("malformed spot id")
	}
	ticket, err := idgen.Parse(ticketID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrTicketNotFound.WithDetail("malformed ticket id")
	}
	return spot, ticket, nil
}

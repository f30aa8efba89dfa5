package reservations

import (
	"context"
	"errors"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/clock"
	"spotly/internal/shared/retry"
	"spotly/internal/spots"
	"spotly/pkg/logger"
)

type Service interface {
	// Reserve allocates one ticket from the named spot
	Reserve(ctx context.Context, spotName string, req ReserveRequest) (*TicketResponse, error)
}

// SpotResolver maps a spot name to its identity
type SpotResolver interface {
	ResolveSpot(ctx context.Context, name string) (*spots.SpotRef, error)
}

// EventPublisher receives reservation events after commit
type EventPublisher interface {
	PublishTicketReserved(ctx context.Context, ticket *Ticket)
}

type service struct {
	repo             Repository
	spots            SpotResolver
	publisher        EventPublisher
	clock            clock.Clock
	retry            retry.Policy
	skipStartedSlots bool
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

// WithSkipStartedSlots stops allocation from slots whose start has passed
func WithSkipStartedSlots(skip bool) Option {
	return func(s *service) { s.skipStartedSlots = skip }
}

func NewService(repo Repository, resolver SpotResolver, opts ...Option) Service {
	s := &service{
		repo:  repo,
		spots: resolver,
		clock: clock.NewSystem(),
		retry: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Reserve(ctx context.Context, spotName string, req ReserveRequest) (*TicketResponse, error) {
	ref, err := s.spots.ResolveSpot(ctx, spotName)
	if err != nil {
		return nil, err
	}

	alloc := AllocationRequest{SpotID: ref.ID, Note: req.Note}
	if s.skipStartedSlots {
		now := s.clock.Now()
		alloc.NotBefore = &now
	}

	ticket, err := retry.Do(ctx, s.retry, "reserve", func(ctx context.Context) (*Ticket, error) {
		return s.repo.AllocateTicket(ctx, alloc)
	})
	if errors.Is(err, apperrors.ErrSoldOut) {
		logger.FromContext(ctx).LogSoldOut(ctx, ref.ID.String())
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).LogTicketReserved(ctx, ticket.ID.String(), ticket.SpotID.String(), ticket.SlotID.String(), ticket.SerialNumber)
	if s.publisher != nil {
		s.publisher.PublishTicketReserved(ctx, ticket)
	}

	response := ticket.ToResponse()
	return &response, nil
}

package spots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/config"
	"spotly/internal/shared/constants"
	"spotly/internal/shared/retry"
	"spotly/pkg/cache"
	"spotly/pkg/idgen"
	"spotly/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	CreateSpot(ctx context.Context, req CreateSpotRequest) (*SpotResponse, error)
	GetSpot(ctx context.Context, name string) (*SpotResponse, error)

	// ResolveSpot maps a spot name to its immutable identity
	ResolveSpot(ctx context.Context, name string) (*SpotRef, error)
}

// EventPublisher receives spot lifecycle events after commit
type EventPublisher interface {
	PublishSpotCreated(ctx context.Context, spot *Spot)
}

// Rules bounds what a spot may look like
type Rules struct {
	DefaultSlotCapacity int
	MaxSlotCapacity     int
	MaxSlots            int
	MaxNameLength       int
}

func RulesFromConfig(cfg config.ReservationConfig) Rules {
	return Rules{
		DefaultSlotCapacity: cfg.DefaultSlotCapacity,
		MaxSlotCapacity:     cfg.MaxSlotCapacity,
		MaxSlots:            cfg.MaxSlotsPerSpot,
		MaxNameLength:       cfg.MaxSpotNameLength,
	}
}

// resolveTimeout bounds a shared name lookup once it is detached from its callers
const resolveTimeout = 10 * time.Second

type service struct {
	repo      Repository
	cache     cache.Service
	publisher EventPublisher
	rules     Rules
	cacheTTL  time.Duration
	retry     retry.Policy
	lookups   singleflight.Group
}

type Option func(*service)

// WithCache enables the Redis backed name lookup cache
func WithCache(c cache.Service) Option {
	return func(s *service) { s.cache = c }
}

// WithCacheTTL overrides how long a cached name lookup lives
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *service) { s.publisher = p }
}

func WithRetryPolicy(p retry.Policy) Option {
	return func(s *service) { s.retry = p }
}

func NewService(repo Repository, rules Rules, opts ...Option) Service {
	s := &service{
		repo:     repo,
		rules:    rules,
		cacheTTL: constants.TTL_SPOT_REF,
		retry:    retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateSpot(ctx context.Context, req CreateSpotRequest) (*SpotResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	spot, err := s.buildSpot(req)
	if err != nil {
		return nil, err
	}

	_, err = retry.Do(ctx, s.retry, "create_spot", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.CreateWithSlots(ctx, spot)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).LogSpotCreated(ctx, spot.ID.String(), spot.Name, len(spot.Slots))
	if s.publisher != nil {
		s.publisher.PublishSpotCreated(ctx, spot)
	}

	response := spot.ToResponse()
	return &response, nil
}

func (s *service) GetSpot(ctx context.Context, name string) (*SpotResponse, error) {
	spot, err := retry.Do(ctx, s.retry, "get_spot", func(ctx context.Context) (*Spot, error) {
		return s.repo.GetByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}

	response := spot.ToResponse()
	return &response, nil
}

func (s *service) ResolveSpot(ctx context.Context, name string) (*SpotRef, error) {
	// Concurrent misses for the same name share one store round trip. The
	// shared load must outlive any single caller that gives up.
	ch := s.lookups.DoChan(name, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()
		return s.lookupRef(loadCtx, name)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*SpotRef), nil
	}
}

func (s *service) lookupRef(ctx context.Context, name string) (*SpotRef, error) {
	if s.cache == nil {
		return s.loadRef(ctx, name)
	}

	var ref SpotRef
	err := s.cache.GetOrSet(ctx, constants.BuildSpotRefKey(name), s.cacheTTL,
		func() (interface{}, error) {
			return s.loadRef(ctx, name)
		}, &ref)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *service) loadRef(ctx context.Context, name string) (*SpotRef, error) {
	return retry.Do(ctx, s.retry, "resolve_spot", func(ctx context.Context) (*SpotRef, error) {
		return s.repo.GetRefByName(ctx, name)
	})
}

// validate checks the request before anything touches the store
func (s *service) validate(req CreateSpotRequest) error {
	if req.Name == "" {
		return apperrors.ErrInvalidSpotName.WithDetail("name must not be empty")
	}
	if s.rules.MaxNameLength > 0 && utf8.RuneCountInString(req.Name) > s.rules.MaxNameLength {
		return apperrors.ErrInvalidSpotName.WithDetail("name must be at most %d characters", s.rules.MaxNameLength)
	}
	if !utf8.ValidString(req.Name) {
		return apperrors.ErrInvalidSpotName.WithDetail("name must be valid UTF-8")
	}

	if len(req.Slots) == 0 {
		return apperrors.ErrEmptySlotList
	}
	if s.rules.MaxSlots > 0 && len(req.Slots) > s.rules.MaxSlots {
		return apperrors.ErrInvalidSlotSpec.WithDetail("a spot may have at most %d slots", s.rules.MaxSlots)
	}

	for i, slot := range req.Slots {
		if slot.Start.IsZero() {
			return apperrors.ErrInvalidSlotSpec.WithDetail("slot %d: start is required", i)
		}
		if slot.End.IsZero() {
			return apperrors.ErrInvalidSlotSpec.WithDetail("slot %d: end is required", i)
		}
		if !slot.Start.Before(slot.End) {
			return apperrors.ErrInvalidSlotSpec.WithDetail("slot %d: start must be before end", i)
		}
		if slot.Capacity != nil {
			if *slot.Capacity < 0 {
				return apperrors.ErrInvalidSlotSpec.WithDetail("slot %d: capacity must not be negative", i)
			}
			if s.rules.MaxSlotCapacity > 0 && *slot.Capacity > s.rules.MaxSlotCapacity {
				return apperrors.ErrInvalidSlotSpec.WithDetail("slot %d: capacity must be at most %d", i, s.rules.MaxSlotCapacity)
			}
		}
	}
	return nil
}

// slotPayload is the canonical content hashed into a slot id
type slotPayload struct {
	SpotID   uuid.UUID `json:"spot_id"`
	Position int       `json:"position"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Capacity int       `json:"capacity"`
}

func (s *service) buildSpot(req CreateSpotRequest) (*Spot, error) {
	spot := &Spot{
		ID:    idgen.NewSpotID(),
		Name:  req.Name,
		Note:  req.Note,
		Slots: make([]Slot, 0, len(req.Slots)),
	}

	for i, in := range req.Slots {
		capacity := s.rules.DefaultSlotCapacity
		if in.Capacity != nil {
			capacity = *in.Capacity
		}

		payload, err := json.Marshal(slotPayload{
			SpotID:   spot.ID,
			Position: i,
			Start:    in.Start.UTC(),
			End:      in.End.UTC(),
			Capacity: capacity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode slot %d: %w", i, err)
		}
		slotID, err := idgen.NewSlotID(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slot id: %w", err)
		}

		spot.Slots = append(spot.Slots, Slot{
			ID:                slotID,
			SpotID:            spot.ID,
			Position:          i,
			StartTime:         in.Start.UTC(),
			EndTime:           in.End.UTC(),
			CapacityTotal:     capacity,
			CapacityRemaining: capacity,
			Note:              in.Note,
		})
	}
	return spot, nil
}

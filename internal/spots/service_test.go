package spots

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/constants"
	"spotly/internal/shared/retry"
	"spotly/pkg/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu          sync.Mutex
	byName      map[string]*Spot
	createCalls int
	refCalls    int
	createErrs  []error

	// refGate holds GetRefByName until closed; refStarted reports each entry
	refGate    chan struct{}
	refStarted chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byName: make(map[string]*Spot)}
}

func (r *fakeRepo) CreateWithSlots(ctx context.Context, spot *Spot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	if _, ok := r.byName[spot.Name]; ok {
		return apperrors.ErrNameConflict
	}
	r.byName[spot.Name] = spot
	return nil
}

func (r *fakeRepo) GetByName(ctx context.Context, name string) (*Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byName[name]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSpotNotFound
}

func (r *fakeRepo) GetRefByName(ctx context.Context, name string) (*SpotRef, error) {
	r.mu.Lock()
	r.refCalls++
	gate, started := r.refGate, r.refStarted
	r.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byName[name]; ok {
		return &SpotRef{ID: s.ID, Name: s.Name}, nil
	}
	return nil, apperrors.ErrSpotNotFound
}

type recordingPublisher struct {
	created []*Spot
}

func (p *recordingPublisher) PublishSpotCreated(ctx context.Context, spot *Spot) {
	p.created = append(p.created, spot)
}

var testRules = Rules{
	DefaultSlotCapacity: 8192,
	MaxSlotCapacity:     8192,
	MaxSlots:            16,
	MaxNameLength:       32,
}

func fastRetry() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}
}

func intPtr(v int) *int { return &v }

func nineToTen() CreateSlotRequest {
	start := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	return CreateSlotRequest{Start: start, End: start.Add(time.Hour), Capacity: intPtr(10)}
}

func TestCreateSpotValidation(t *testing.T) {
	start := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  CreateSpotRequest
		want *apperrors.Error
	}{
		{"empty name", CreateSpotRequest{Name: "", Slots: []CreateSlotRequest{nineToTen()}}, apperrors.ErrInvalidSpotName},
		{"name too long", CreateSpotRequest{Name: "this spot name is far too long to be accepted", Slots: []CreateSlotRequest{nineToTen()}}, apperrors.ErrInvalidSpotName},
		{"no slots", CreateSpotRequest{Name: "fair"}, apperrors.ErrEmptySlotList},
		{"end before start", CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
			nineToTen(),
			{Start: start, End: start.Add(-time.Minute), Capacity: intPtr(1)},
		}}, apperrors.ErrInvalidSlotSpec},
		{"end equals start", CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
			{Start: start, End: start, Capacity: intPtr(1)},
		}}, apperrors.ErrInvalidSlotSpec},
		{"missing end", CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
			{Start: start, Capacity: intPtr(1)},
		}}, apperrors.ErrInvalidSlotSpec},
		{"negative capacity", CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
			{Start: start, End: start.Add(time.Hour), Capacity: intPtr(-1)},
		}}, apperrors.ErrInvalidSlotSpec},
		{"capacity over max", CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
			{Start: start, End: start.Add(time.Hour), Capacity: intPtr(8193)},
		}}, apperrors.ErrInvalidSlotSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo, testRules)

			_, err := svc.CreateSpot(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Zero(t, repo.createCalls, "validation must happen before any write")
		})
	}
}

func TestCreateSpotInvalidSlotNamesIndex(t *testing.T) {
	start := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(newFakeRepo(), testRules)

	_, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{
		nineToTen(),
		{Start: start, End: start, Capacity: intPtr(1)},
	}})

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Detail, "slot 1")
}

func TestCreateSpotBuildsSlots(t *testing.T) {
	repo := newFakeRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, testRules, WithPublisher(pub))

	note := "bring your own chair"
	first := nineToTen()
	second := CreateSlotRequest{Start: first.Start.Add(2 * time.Hour), End: first.Start.Add(3 * time.Hour), Note: &note}

	resp, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "Fair", Slots: []CreateSlotRequest{first, second}})
	require.NoError(t, err)

	assert.Equal(t, "Fair", resp.Name)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 10, resp.Slots[0].CapacityTotal)
	assert.Equal(t, 10, resp.Slots[0].CapacityRemaining)
	assert.Equal(t, 8192, resp.Slots[1].CapacityTotal, "omitted capacity uses the default")
	assert.Equal(t, &note, resp.Slots[1].Note)
	assert.NotEqual(t, resp.Slots[0].ID, resp.Slots[1].ID)

	stored := repo.byName["Fair"]
	require.NotNil(t, stored)
	for i, slot := range stored.Slots {
		assert.Equal(t, stored.ID, slot.SpotID)
		assert.Equal(t, i, slot.Position)
	}
	require.Len(t, pub.created, 1)
	assert.Equal(t, stored.ID, pub.created[0].ID)
}

func TestCreateSpotZeroCapacityAllowed(t *testing.T) {
	svc := NewService(newFakeRepo(), testRules)
	slot := nineToTen()
	slot.Capacity = intPtr(0)

	resp, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "closed", Slots: []CreateSlotRequest{slot}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Slots[0].CapacityTotal)
}

func TestCreateSpotNameConflict(t *testing.T) {
	repo := newFakeRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, testRules, WithPublisher(pub))
	req := CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}}

	_, err := svc.CreateSpot(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateSpot(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrNameConflict)
	assert.Len(t, pub.created, 1)

	// Names are case sensitive
	req.Name = "Fair"
	_, err = svc.CreateSpot(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateSpotRetriesTransientFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErrs = []error{&pgconn.PgError{Code: "40001"}}
	svc := NewService(repo, testRules, WithRetryPolicy(fastRetry()))

	_, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}})

	require.NoError(t, err)
	assert.Equal(t, 2, repo.createCalls)
}

func TestCreateSpotRetryExhaustion(t *testing.T) {
	repo := newFakeRepo()
	transient := &pgconn.PgError{Code: "40P01"}
	repo.createErrs = []error{transient, transient, transient}
	svc := NewService(repo, testRules, WithRetryPolicy(fastRetry()))

	_, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}})

	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Equal(t, 3, repo.createCalls)
	assert.Empty(t, repo.byName)
}

func TestGetSpotNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), testRules)

	_, err := svc.GetSpot(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestResolveSpotWithoutCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testRules)
	created, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}})
	require.NoError(t, err)

	ref, err := svc.ResolveSpot(context.Background(), "fair")
	require.NoError(t, err)
	assert.Equal(t, created.ID, ref.ID.String())

	_, err = svc.ResolveSpot(context.Background(), "FAIR")
	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
}

func TestResolveSpotUsesCache(t *testing.T) {
	repo := newFakeRepo()
	client, mock := redismock.NewClientMock()
	svc := NewService(repo, testRules, WithCache(cache.NewService(client)))

	_, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}})
	require.NoError(t, err)
	stored := repo.byName["fair"]

	key := constants.BuildSpotRefKey("fair")
	payload, err := json.Marshal(&SpotRef{ID: stored.ID, Name: "fair"})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, constants.TTL_SPOT_REF).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(payload))

	first, err := svc.ResolveSpot(context.Background(), "fair")
	require.NoError(t, err)
	second, err := svc.ResolveSpot(context.Background(), "fair")
	require.NoError(t, err)

	assert.Equal(t, stored.ID, first.ID)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, repo.refCalls, "second lookup is served from cache")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSpotMissIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	client, mock := redismock.NewClientMock()
	svc := NewService(repo, testRules, WithCache(cache.NewService(client)))

	key := constants.BuildSpotRefKey("ghost")
	mock.ExpectGet(key).RedisNil()

	_, err := svc.ResolveSpot(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrSpotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSpotSurvivesCancelledPeer(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testRules)
	created, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "fair", Slots: []CreateSlotRequest{nineToTen()}})
	require.NoError(t, err)

	repo.mu.Lock()
	repo.refGate = make(chan struct{})
	repo.refStarted = make(chan struct{}, 4)
	repo.mu.Unlock()

	type result struct {
		ref *SpotRef
		err error
	}
	resolve := func(ctx context.Context) <-chan result {
		out := make(chan result, 1)
		go func() {
			ref, err := svc.ResolveSpot(ctx, "fair")
			out <- result{ref, err}
		}()
		return out
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	first := resolve(ctxA)
	<-repo.refStarted

	second := resolve(context.Background())
	// Let the second caller join the lookup that is already in flight
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case res := <-first:
		assert.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(repo.refGate)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, created.ID, res.ref.ID.String())
	case <-time.After(time.Second):
		t.Fatal("live caller did not return")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.refCalls, "both callers share one store lookup")
}

func TestCreateSpotKeepsNameVerbatim(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testRules)

	resp, err := svc.CreateSpot(context.Background(), CreateSpotRequest{Name: "   ", Slots: []CreateSlotRequest{nineToTen()}})
	require.NoError(t, err)
	assert.Equal(t, "   ", resp.Name)

	_, err = svc.CreateSpot(context.Background(), CreateSpotRequest{Name: " fair ", Slots: []CreateSlotRequest{nineToTen()}})
	require.NoError(t, err)
	assert.Contains(t, repo.byName, " fair ")
	assert.NotContains(t, repo.byName, "fair")
}

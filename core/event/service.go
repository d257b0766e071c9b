package event

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
	"github.com/apexdrive/console/core/identity"
)

var (
	ErrNotFound = errors.New("training event not found")
	// ErrStaleScope marks a response that resolved after the actor's scope
	// changed; the caller must drop it and re-issue under the new scope.
	ErrStaleScope = errors.New("scope changed while the read was in flight")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// QueryEvents applies the scope's organization constraint on the read
		// itself; it is never called with an Empty scope.
		QueryEvents(ctx context.Context, scope QueryScope) ([]RawEvent, error)
		GetEvent(ctx context.Context, id string) (RawEvent, error)
		// QueryAllocations is scope-agnostic: aggregation needs every
		// allocation row, scoping happens on the event read.
		QueryAllocations(ctx context.Context) ([]Allocation, error)
		QueryEventAllocations(ctx context.Context, eventID string) ([]Allocation, error)
		CreateEvent(ctx context.Context, raw RawEvent) (RawEvent, error)
		UpdateEvent(ctx context.Context, raw RawEvent) (RawEvent, error)
		DeleteEventsByID(ctx context.Context, ids ...string) error
		SetAllocation(ctx context.Context, alloc Allocation) error
	}

	// Cache fronts the repository reads, keyed by (query name, scope
	// parameters). Implemented by storage/cache.
	Cache interface {
		Get(key string) (interface{}, bool)
		Set(key string, value interface{})
		Invalidate(keys ...string)
		InvalidatePrefix(prefix string)
	}

	Service struct {
		repo     Repository
		cache    Cache
		resolver *identity.Resolver
		logger   core.Logger
	}

	// List is the filtered result plus its upcoming/past partition.
	List struct {
		Events   []TrainingEvent `json:"events"`
		Upcoming []TrainingEvent `json:"upcoming"`
		Past     []TrainingEvent `json:"past"`
	}
)

func NewService(repo Repository, cache Cache, resolver *identity.Resolver, logger core.Logger) *Service {
	return &Service{repo: repo, cache: cache, resolver: resolver, logger: logger}
}

// cache keys
const (
	allocationsKey = "allocations"
	eventListKey   = "events:list:"
	eventDetailKey = "events:detail:"
)

func listKey(scope QueryScope) string { return eventListKey + scope.Key() }
func detailKey(id string) string      { return eventDetailKey + id }
func eventAllocationsKey(id string) string {
	return allocationsKey + ":event:" + id
}

// Filter returns the actor's visible events under the given compound filter.
//
// The allocation read and the scoped event read are issued concurrently; the
// transformer joins them once both resolve. Latest request wins: if the
// impersonation overlay toggled while the reads were in flight the response
// is discarded with ErrStaleScope instead of being shown under the new scope.
func (svc *Service) Filter(ctx context.Context, ident identity.Identity, filter QueryFilter) (List, error) {
	res := svc.resolver.Resolve(ident)
	version := svc.resolver.ScopeVersion()
	scope := BuildQueryScope(res)
	if scope.Empty {
		// no membership at all: a valid empty result, not an error
		return List{Events: []TrainingEvent{}}, nil
	}

	raws, allocs, err := svc.fetch(ctx, scope)
	if err != nil {
		return List{}, err
	}
	if svc.resolver.ScopeVersion() != version {
		return List{}, ErrStaleScope
	}

	now := nowFunc()
	enrolled := AggregateAllocations(allocs)
	events := make([]TrainingEvent, 0, len(raws))
	for _, raw := range raws {
		events = append(events, Transform(raw, enrolled, now))
	}

	filter.Clean()
	filtered := filter.Apply(events, now)
	if filtered == nil {
		filtered = []TrainingEvent{}
	}
	upcoming, past := SplitUpcoming(filtered, now)
	return List{Events: filtered, Upcoming: upcoming, Past: past}, nil
}

// fetch issues both reads concurrently, serving each from cache when fresh.
func (svc *Service) fetch(ctx context.Context, scope QueryScope) ([]RawEvent, []Allocation, error) {
	var (
		wg     sync.WaitGroup
		raws   []RawEvent
		allocs []Allocation
		evErr  error
		alErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if cached, ok := svc.cache.Get(listKey(scope)); ok {
			raws = cached.([]RawEvent)
			return
		}
		if raws, evErr = svc.repo.QueryEvents(ctx, scope); evErr == nil {
			svc.cache.Set(listKey(scope), raws)
		}
	}()
	go func() {
		defer wg.Done()
		if cached, ok := svc.cache.Get(allocationsKey); ok {
			allocs = cached.([]Allocation)
			return
		}
		if allocs, alErr = svc.repo.QueryAllocations(ctx); alErr == nil {
			svc.cache.Set(allocationsKey, allocs)
		}
	}()
	wg.Wait()

	if evErr != nil {
		return nil, nil, core.NewLoadError("events", evErr)
	}
	if alErr != nil {
		return nil, nil, core.NewLoadError("allocations", alErr)
	}
	return raws, allocs, nil
}

// Get returns one event under the same scope rules as Filter.
func (svc *Service) Get(ctx context.Context, ident identity.Identity, id string) (TrainingEvent, error) {
	res := svc.resolver.Resolve(ident)
	scope := BuildQueryScope(res)
	if scope.Empty {
		return TrainingEvent{}, ErrNotFound
	}

	var raw RawEvent
	if cached, ok := svc.cache.Get(detailKey(id)); ok {
		raw = cached.(RawEvent)
	} else {
		var err error
		if raw, err = svc.repo.GetEvent(ctx, id); err != nil {
			if errors.Cause(err) == ErrNotFound {
				return TrainingEvent{}, err
			}
			return TrainingEvent{}, core.NewLoadError("event", err)
		}
		svc.cache.Set(detailKey(id), raw)
	}

	if !scope.Unrestricted && !contains(scope.OrgIDs, raw.OrgID) {
		// out of scope reads as absent
		return TrainingEvent{}, ErrNotFound
	}

	allocs, err := svc.eventAllocations(ctx, id)
	if err != nil {
		return TrainingEvent{}, err
	}
	return Transform(raw, AggregateAllocations(allocs), nowFunc()), nil
}

func (svc *Service) eventAllocations(ctx context.Context, eventID string) ([]Allocation, error) {
	if cached, ok := svc.cache.Get(eventAllocationsKey(eventID)); ok {
		return cached.([]Allocation), nil
	}
	allocs, err := svc.repo.QueryEventAllocations(ctx, eventID)
	if err != nil {
		return nil, core.NewLoadError("allocations", err)
	}
	svc.cache.Set(eventAllocationsKey(eventID), allocs)
	return allocs, nil
}

// NewEvent contains information needed to schedule a new event.
type NewEvent struct {
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	EndsAt         time.Time `json:"ends_at"`
	OpenEnrollment bool      `json:"open_enrollment"`
	PrivateSeats   *int      `json:"private_seats" validate:"omitempty,min=0"`
	OrgID          string    `json:"org_id" validate:"required"`
	ProgramID      string    `json:"program_id"`
	VenueID        string    `json:"venue_id"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.OrgID = core.CleanString(ne.OrgID)
	return validate.Struct(ne)
}

// UpdateEvent defines what may be modified on an existing event.
type UpdateEvent struct {
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OpenEnrollment *bool     `json:"open_enrollment"`
	PrivateSeats   *int      `json:"private_seats" validate:"omitempty,min=0"`
	Cancelled      *bool     `json:"cancelled"`
	OrgID          string    `json:"org_id"`
	ProgramID      string    `json:"program_id"`
	VenueID        string    `json:"venue_id"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.OrgID = core.CleanString(ue.OrgID)
	return validate.Struct(ue)
}

// Create persists a new event and invalidates every cache key the write can
// have made stale; skipping the invalidation would serve another scope's
// stale rows, which is a correctness bug rather than an inconvenience.
func (svc *Service) Create(ctx context.Context, ne NewEvent) (RawEvent, error) {
	raw := RawEvent{
		StartsAt:       ne.StartsAt,
		OpenEnrollment: ne.OpenEnrollment,
		OrgID:          ne.OrgID,
	}
	if !ne.EndsAt.IsZero() {
		raw.EndsAt.SetValid(ne.EndsAt)
	}
	if ne.PrivateSeats != nil {
		raw.PrivateSeats.SetValid(*ne.PrivateSeats)
	}
	if ne.ProgramID != "" {
		raw.ProgramID.SetValid(ne.ProgramID)
	}
	if ne.VenueID != "" {
		raw.VenueID.SetValid(ne.VenueID)
	}

	created, err := svc.repo.CreateEvent(ctx, raw)
	if err != nil {
		return RawEvent{}, errors.Wrap(err, "creating event")
	}
	svc.invalidateEvent(created.ID)
	return created, nil
}

func (svc *Service) Update(ctx context.Context, id string, ue UpdateEvent) (RawEvent, error) {
	orig, err := svc.repo.GetEvent(ctx, id)
	if err != nil {
		return RawEvent{}, err
	}

	raw := orig
	if !ue.StartsAt.IsZero() {
		raw.StartsAt = ue.StartsAt
	}
	if !ue.EndsAt.IsZero() {
		raw.EndsAt.SetValid(ue.EndsAt)
	}
	if ue.OpenEnrollment != nil {
		raw.OpenEnrollment = *ue.OpenEnrollment
	}
	if ue.PrivateSeats != nil {
		raw.PrivateSeats.SetValid(*ue.PrivateSeats)
	}
	if ue.Cancelled != nil {
		raw.Cancelled = *ue.Cancelled
	}
	if ue.OrgID != "" {
		raw.OrgID = ue.OrgID
	}
	if ue.ProgramID != "" {
		raw.ProgramID.SetValid(ue.ProgramID)
	}
	if ue.VenueID != "" {
		raw.VenueID.SetValid(ue.VenueID)
	}

	updated, err := svc.repo.UpdateEvent(ctx, raw)
	if err != nil {
		return RawEvent{}, errors.Wrap(err, "updating event")
	}
	// covers the previous hosting organization's list too when the event moved
	svc.invalidateEvent(id)
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteEventsByID(ctx, ids...); err != nil {
		return err
	}
	for _, id := range ids {
		svc.invalidateEvent(id)
	}
	return nil
}

// SetAllocation creates or replaces one organization's seat allocation.
func (svc *Service) SetAllocation(ctx context.Context, alloc Allocation) error {
	if err := svc.repo.SetAllocation(ctx, alloc); err != nil {
		return errors.Wrap(err, "setting allocation")
	}
	svc.cache.Invalidate(allocationsKey, eventAllocationsKey(alloc.EventID), detailKey(alloc.EventID))
	return nil
}

// invalidateEvent drops the event's detail, every scoped list key (which
// covers the hosting organization's list) and the allocation set.
func (svc *Service) invalidateEvent(id string) {
	svc.cache.Invalidate(detailKey(id), allocationsKey, eventAllocationsKey(id))
	svc.cache.InvalidatePrefix(eventListKey)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

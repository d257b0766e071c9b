package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/apexdrive/console/core/event"
)

type eventRepository struct {
	events *eventTable
	allocs *allocationTable
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{events: db.event, allocs: db.allocation}
}

func (repo *eventRepository) query() []event.RawEvent {
	raws := make([]event.RawEvent, 0, len(repo.events.table))
	for _, e := range repo.events.table {
		raws = append(raws, *e)
	}
	sort.Slice(raws, func(i, j int) bool { return raws[i].StartsAt.Before(raws[j].StartsAt) })
	return raws
}

func (repo *eventRepository) QueryEvents(_ context.Context, scope event.QueryScope) ([]event.RawEvent, error) {
	if scope.Empty {
		return nil, nil
	}

	repo.events.mutex.RLock()
	defer repo.events.mutex.RUnlock()

	raws := repo.query()
	if scope.Unrestricted {
		return raws, nil
	}
	var scoped []event.RawEvent
	for _, raw := range raws {
		for _, orgID := range scope.OrgIDs {
			if raw.OrgID == orgID {
				scoped = append(scoped, raw)
				break
			}
		}
	}
	return scoped, nil
}

func (repo *eventRepository) GetEvent(_ context.Context, id string) (event.RawEvent, error) {
	repo.events.mutex.RLock()
	defer repo.events.mutex.RUnlock()

	if raw, ok := repo.events.table[id]; ok {
		return *raw, nil
	}
	return event.RawEvent{}, event.ErrNotFound
}

func (repo *eventRepository) QueryAllocations(context.Context) ([]event.Allocation, error) {
	repo.allocs.mutex.RLock()
	defer repo.allocs.mutex.RUnlock()

	allocs := make([]event.Allocation, 0, len(repo.allocs.table))
	for _, a := range repo.allocs.table {
		allocs = append(allocs, *a)
	}
	return allocs, nil
}

func (repo *eventRepository) QueryEventAllocations(_ context.Context, eventID string) ([]event.Allocation, error) {
	repo.allocs.mutex.RLock()
	defer repo.allocs.mutex.RUnlock()

	var allocs []event.Allocation
	for _, a := range repo.allocs.table {
		if a.EventID == eventID {
			allocs = append(allocs, *a)
		}
	}
	return allocs, nil
}

func (repo *eventRepository) CreateEvent(_ context.Context, raw event.RawEvent) (event.RawEvent, error) {
	repo.events.mutex.Lock()
	defer repo.events.mutex.Unlock()

	if raw.ID == "" {
		raw.ID = uuid.New().String()
	}
	repo.events.table[raw.ID] = &raw
	return raw, nil
}

func (repo *eventRepository) UpdateEvent(_ context.Context, raw event.RawEvent) (event.RawEvent, error) {
	repo.events.mutex.Lock()
	defer repo.events.mutex.Unlock()

	if _, ok := repo.events.table[raw.ID]; !ok {
		return event.RawEvent{}, event.ErrNotFound
	}
	repo.events.table[raw.ID] = &raw
	return raw, nil
}

func (repo *eventRepository) DeleteEventsByID(_ context.Context, ids ...string) error {
	repo.events.mutex.Lock()
	defer repo.events.mutex.Unlock()
	for _, id := range ids {
		delete(repo.events.table, id)
	}
	return nil
}

func (repo *eventRepository) SetAllocation(_ context.Context, alloc event.Allocation) error {
	repo.allocs.mutex.Lock()
	defer repo.allocs.mutex.Unlock()

	// one allocation per (event, org): replace in place
	for id, a := range repo.allocs.table {
		if a.EventID == alloc.EventID && a.OrgID == alloc.OrgID {
			alloc.ID = a.ID
			repo.allocs.table[id] = &alloc
			return nil
		}
	}
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	repo.allocs.table[alloc.ID] = &alloc
	return nil
}

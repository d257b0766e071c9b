package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core/event"
)

const selectEvents = `
SELECT e.id, e.starts_at, e.ends_at, e.open_enrollment, e.private_seats, e.cancelled,
       e.org_id, e.program_id, e.venue_id,
       p.name AS program_name, p.max_students AS program_max_students,
       v.name AS venue_name, v.address AS venue_address,
       v.region AS venue_region, v.country AS venue_country,
       o.name AS org_name
FROM event e
         LEFT JOIN program p ON p.id = e.program_id
         LEFT JOIN venue v ON v.id = e.venue_id
         LEFT JOIN organization o ON o.id = e.org_id`

type EventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*EventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// QueryEvents constrains the read to the scope's hosting organizations; an
// unrestricted scope reads everything. Never called with an empty scope (the
// service short-circuits first), but be safe anyway.
func (repo *EventRepository) QueryEvents(ctx context.Context, scope event.QueryScope) ([]event.RawEvent, error) {
	if scope.Empty {
		return nil, nil
	}

	query := selectEvents + " ORDER BY e.starts_at"
	var args []interface{}
	if !scope.Unrestricted {
		var err error
		query, args, err = sqlx.In(selectEvents+" WHERE e.org_id IN (?) ORDER BY e.starts_at", scope.OrgIDs)
		if err != nil {
			return nil, errors.Wrap(err, "expanding org filter")
		}
		query = repo.db.Rebind(query)
	}

	var raws []event.RawEvent
	if err := repo.db.SelectContext(ctx, &raws, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	return raws, nil
}

func (repo *EventRepository) GetEvent(ctx context.Context, id string) (event.RawEvent, error) {
	var raw event.RawEvent
	err := repo.db.GetContext(ctx, &raw, repo.db.Rebind(selectEvents+" WHERE e.id = ?"), id)
	if err == sql.ErrNoRows {
		return event.RawEvent{}, event.ErrNotFound
	}
	if err != nil {
		return event.RawEvent{}, errors.Wrap(err, "getting event")
	}
	return raw, nil
}

func (repo *EventRepository) QueryAllocations(ctx context.Context) ([]event.Allocation, error) {
	var allocs []event.Allocation
	err := repo.db.SelectContext(ctx, &allocs, "SELECT id, event_id, org_id, seats_allocated FROM allocation")
	if err != nil {
		return nil, errors.Wrap(err, "querying allocations")
	}
	return allocs, nil
}

func (repo *EventRepository) QueryEventAllocations(ctx context.Context, eventID string) ([]event.Allocation, error) {
	var allocs []event.Allocation
	err := repo.db.SelectContext(ctx, &allocs,
		repo.db.Rebind("SELECT id, event_id, org_id, seats_allocated FROM allocation WHERE event_id = ?"), eventID)
	if err != nil {
		return nil, errors.Wrap(err, "querying event allocations")
	}
	return allocs, nil
}

func (repo *EventRepository) CreateEvent(ctx context.Context, raw event.RawEvent) (event.RawEvent, error) {
	if raw.ID == "" {
		raw.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind(`
		INSERT INTO event (id, starts_at, ends_at, open_enrollment, private_seats, cancelled, org_id, program_id, venue_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		raw.ID, raw.StartsAt, raw.EndsAt, raw.OpenEnrollment, raw.PrivateSeats, raw.Cancelled,
		raw.OrgID, raw.ProgramID, raw.VenueID,
	)
	if err != nil {
		return event.RawEvent{}, errors.Wrap(err, "inserting event")
	}
	return repo.GetEvent(ctx, raw.ID)
}

func (repo *EventRepository) UpdateEvent(ctx context.Context, raw event.RawEvent) (event.RawEvent, error) {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(`
		UPDATE event
		SET starts_at = ?, ends_at = ?, open_enrollment = ?, private_seats = ?,
		    cancelled = ?, org_id = ?, program_id = ?, venue_id = ?, updated_at = now()
		WHERE id = ?`),
		raw.StartsAt, raw.EndsAt, raw.OpenEnrollment, raw.PrivateSeats, raw.Cancelled,
		raw.OrgID, raw.ProgramID, raw.VenueID, raw.ID,
	)
	if err != nil {
		return event.RawEvent{}, errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.RawEvent{}, event.ErrNotFound
	}
	return repo.GetEvent(ctx, raw.ID)
}

func (repo *EventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM event WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "expanding id filter")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return nil
}

// SetAllocation upserts one organization's seat allocation for an event.
func (repo *EventRepository) SetAllocation(ctx context.Context, alloc event.Allocation) error {
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind(`
		INSERT INTO allocation (id, event_id, org_id, seats_allocated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (event_id, org_id) DO UPDATE SET seats_allocated = EXCLUDED.seats_allocated`),
		alloc.ID, alloc.EventID, alloc.OrgID, alloc.SeatsAllocated,
	)
	return errors.Wrap(err, "upserting allocation")
}

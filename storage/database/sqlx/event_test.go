package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/apexdrive/console/core/event"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "starts_at", "ends_at", "open_enrollment", "private_seats", "cancelled",
		"org_id", "program_id", "venue_id",
		"program_name", "program_max_students",
		"venue_name", "venue_address", "venue_region", "venue_country", "org_name",
	})
}

func TestQueryEventsScoped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT e\.id, .+ FROM event e.+WHERE e\.org_id IN \(\$1, \$2\) ORDER BY e\.starts_at`).
		WithArgs("org1", "org2").
		WillReturnRows(eventRows().
			AddRow("e1", now, nil, true, nil, false, "org1", nil, nil, "Evasive Driving L1", 24, "Apex Circuit", "1 Track Rd, Dover, UK", "EMEA", "GB", "Acme"))

	raws, err := repo.QueryEvents(context.Background(), event.QueryScope{OrgIDs: []string{"org1", "org2"}})
	if err != nil {
		t.Fatalf("QueryEvents() failed: %v", err)
	}
	if len(raws) != 1 || raws[0].ID != "e1" {
		t.Errorf("QueryEvents() = %v, want one raw event e1", raws)
	}
	if !raws[0].ProgramMaxStudents.Valid || raws[0].ProgramMaxStudents.Int != 24 {
		t.Errorf("ProgramMaxStudents = %+v, want 24", raws[0].ProgramMaxStudents)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQueryEventsUnrestricted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectQuery(`(?s)SELECT e\.id, .+ FROM event e.+ORDER BY e\.starts_at`).
		WillReturnRows(eventRows())

	raws, err := repo.QueryEvents(context.Background(), event.QueryScope{Unrestricted: true})
	if err != nil {
		t.Fatalf("QueryEvents() failed: %v", err)
	}
	if len(raws) != 0 {
		t.Errorf("QueryEvents() = %v, want none", raws)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestQueryEventsEmptyScopeDoesNotHitDB(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	raws, err := repo.QueryEvents(context.Background(), event.QueryScope{Empty: true})
	if err != nil || raws != nil {
		t.Errorf("QueryEvents(empty) = (%v, %v), want (nil, nil)", raws, err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetEventNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectQuery(`(?s)SELECT e\.id, .+ WHERE e\.id = \$1`).
		WithArgs("nope").
		WillReturnRows(eventRows())

	if _, err := repo.GetEvent(context.Background(), "nope"); err != event.ErrNotFound {
		t.Errorf("GetEvent() error = %v, want %v", err, event.ErrNotFound)
	}
}

func TestQueryAllocations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectQuery(`SELECT id, event_id, org_id, seats_allocated FROM allocation`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "org_id", "seats_allocated"}).
			AddRow("a1", "e1", "org1", 4).
			AddRow("a2", "e1", "org2", 2))

	allocs, err := repo.QueryAllocations(context.Background())
	if err != nil {
		t.Fatalf("QueryAllocations() failed: %v", err)
	}
	if len(allocs) != 2 {
		t.Errorf("got %d allocations, want 2", len(allocs))
	}
}

func TestSetAllocationUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	mock.ExpectExec(`(?s)INSERT INTO allocation .+ON CONFLICT \(event_id, org_id\) DO UPDATE`).
		WithArgs(sqlmock.AnyArg(), "e1", "org1", 8).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetAllocation(context.Background(), event.Allocation{EventID: "e1", OrgID: "org1", SeatsAllocated: 8})
	if err != nil {
		t.Fatalf("SetAllocation() failed: %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

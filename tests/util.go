package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/apexdrive/console/core/event"
)

func CreateEvent(
	t *testing.T,
	repo event.Repository,
	title, orgID, orgName string,
	startsAt time.Time,
	openEnrollment bool,
	privateSeats *int,
) event.RawEvent {
	raw := event.RawEvent{
		StartsAt:       startsAt.UTC(),
		OpenEnrollment: openEnrollment,
		OrgID:          orgID,
	}
	if title != "" {
		raw.ProgramName = null.StringFrom(title)
	}
	if orgName != "" {
		raw.OrgName = null.StringFrom(orgName)
	}
	if privateSeats != nil {
		raw.PrivateSeats = null.IntFrom(*privateSeats)
	}
	raw, err := repo.CreateEvent(context.Background(), raw)
	if err != nil {
		t.Fatalf("createEvent() failed: %v", err)
	}
	return raw
}

func CreateAllocation(t *testing.T, repo event.Repository, eventID, orgID string, seats int) event.Allocation {
	alloc := event.Allocation{
		EventID:        eventID,
		OrgID:          orgID,
		SeatsAllocated: seats,
	}
	if err := repo.SetAllocation(context.Background(), alloc); err != nil {
		t.Fatalf("createAllocation() failed: %v", err)
	}
	return alloc
}

package event

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func TestTransformCapacityPrecedence(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name         string
		privateSeats null.Int
		maxStudents  null.Int
		want         int
	}{
		{name: "private seats win over program max", privateSeats: null.IntFrom(10), maxStudents: null.IntFrom(30), want: 10},
		{name: "program max when no private seats", maxStudents: null.IntFrom(30), want: 30},
		{name: "both absent defaults to 0", want: 0},
		{name: "zero private seats still wins", privateSeats: null.IntFrom(0), maxStudents: null.IntFrom(30), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawEvent{ID: "e1", StartsAt: now, PrivateSeats: tt.privateSeats, ProgramMaxStudents: tt.maxStudents}
			if got := Transform(raw, nil, now); got.Capacity != tt.want {
				t.Errorf("Transform().Capacity = %d, want %d", got.Capacity, tt.want)
			}
		})
	}
}

func TestTransformEndDateDefaulting(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	evt := Transform(RawEvent{ID: "e1", StartsAt: start}, nil, now)
	if want := start.AddDate(0, 0, 1); !evt.EndDate.Equal(want) {
		t.Errorf("Transform().EndDate = %v, want %v", evt.EndDate, want)
	}

	ends := start.AddDate(0, 0, 3)
	evt = Transform(RawEvent{ID: "e1", StartsAt: start, EndsAt: null.TimeFrom(ends)}, nil, now)
	if !evt.EndDate.Equal(ends) {
		t.Errorf("Transform().EndDate = %v, want source end %v", evt.EndDate, ends)
	}
}

func TestTransformStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	future := Transform(RawEvent{ID: "e1", StartsAt: now.Add(time.Hour)}, nil, now)
	if future.Status != StatusScheduled {
		t.Errorf("future event status = %s, want %s", future.Status, StatusScheduled)
	}

	past := Transform(RawEvent{ID: "e2", StartsAt: now.Add(-time.Hour)}, nil, now)
	if past.Status != StatusCompleted {
		t.Errorf("past event status = %s, want %s", past.Status, StatusCompleted)
	}

	// cancellation is carried through untouched, not merged into status
	cancelled := Transform(RawEvent{ID: "e3", StartsAt: now.Add(time.Hour), Cancelled: true}, nil, now)
	if !cancelled.Cancelled || cancelled.Status != StatusScheduled {
		t.Errorf("cancelled event = {Status: %s, Cancelled: %v}, want scheduled + cancelled flag", cancelled.Status, cancelled.Cancelled)
	}
}

func TestTransformEnrolledCount(t *testing.T) {
	now := time.Now()
	enrolled := map[string]int{"e1": 12}

	if got := Transform(RawEvent{ID: "e1", StartsAt: now}, enrolled, now); got.EnrolledCount != 12 {
		t.Errorf("EnrolledCount = %d, want 12", got.EnrolledCount)
	}
	if got := Transform(RawEvent{ID: "e2", StartsAt: now}, enrolled, now); got.EnrolledCount != 0 {
		t.Errorf("EnrolledCount for unknown event = %d, want 0", got.EnrolledCount)
	}
}

func TestDisplayLocation(t *testing.T) {
	tests := []struct {
		name    string
		venue   string
		address string
		want    string
	}{
		{name: "no venue", want: ""},
		{name: "no address", venue: "Apex Circuit", want: "Apex Circuit"},
		{name: "country suffix appended", venue: "Apex Circuit", address: "1 Track Rd, Dover, United Kingdom", want: "Apex Circuit, United Kingdom"},
		{name: "single segment address", venue: "Apex Circuit", address: "Nevada", want: "Apex Circuit, Nevada"},
		{name: "trailing comma", venue: "Apex Circuit", address: "1 Track Rd,", want: "Apex Circuit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayLocation(tt.venue, tt.address); got != tt.want {
				t.Errorf("displayLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransformCountryComesFromVenueNotAddress(t *testing.T) {
	now := time.Now()
	raw := RawEvent{
		ID:           "e1",
		StartsAt:     now,
		VenueName:    null.StringFrom("Apex Circuit"),
		VenueAddress: null.StringFrom("1 Track Rd, Dover, United Kingdom"),
		VenueCountry: null.StringFrom("GB"),
	}
	evt := Transform(raw, nil, now)
	if evt.Country != "GB" {
		t.Errorf("Country = %q, want venue code %q", evt.Country, "GB")
	}
	if evt.Location != "Apex Circuit, United Kingdom" {
		t.Errorf("Location = %q, want display heuristic applied", evt.Location)
	}
}

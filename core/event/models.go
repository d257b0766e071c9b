package event

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/apexdrive/console/core"
)

// Status is derived from the start date only. Cancellation is tracked
// upstream and surfaced as TrainingEvent.Cancelled, never folded in here.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
)

type EnrollmentType string

const (
	EnrollmentOpen    EnrollmentType = "open"
	EnrollmentPrivate EnrollmentType = "private"
)

// RawEvent is one course instance as returned by the backend read, joined by
// the service with program, venue and hosting-organization projections.
// Immutable snapshot per fetch.
type RawEvent struct {
	ID             string    `db:"id" json:"id"`
	StartsAt       time.Time `db:"starts_at" json:"starts_at"`
	EndsAt         null.Time `db:"ends_at" json:"ends_at,omitempty"`
	OpenEnrollment bool      `db:"open_enrollment" json:"open_enrollment"`
	PrivateSeats   null.Int  `db:"private_seats" json:"private_seats,omitempty"`
	Cancelled      bool      `db:"cancelled" json:"cancelled"`
	OrgID          string    `db:"org_id" json:"org_id"`
	ProgramID      null.String `db:"program_id" json:"program_id,omitempty"`
	VenueID        null.String `db:"venue_id" json:"venue_id,omitempty"`

	// joined projections
	ProgramName        null.String `db:"program_name" json:"program_name,omitempty"`
	ProgramMaxStudents null.Int    `db:"program_max_students" json:"program_max_students,omitempty"`
	VenueName          null.String `db:"venue_name" json:"venue_name,omitempty"`
	VenueAddress       null.String `db:"venue_address" json:"venue_address,omitempty"`
	VenueRegion        null.String `db:"venue_region" json:"venue_region,omitempty"`
	VenueCountry       null.String `db:"venue_country" json:"venue_country,omitempty"`
	OrgName            null.String `db:"org_name" json:"org_name,omitempty"`
}

// Allocation records seats reserved against an event by one organization.
// This core only ever sums these; mutation lives with the CRUD dialogs.
type Allocation struct {
	ID             string `db:"id" json:"id"`
	EventID        string `db:"event_id" json:"event_id"`
	OrgID          string `db:"org_id" json:"org_id"`
	SeatsAllocated int    `db:"seats_allocated" json:"seats_allocated"`
}

// TrainingEvent is the normalized record rendered to the user. Recomputed on
// every fetch, never persisted.
type TrainingEvent struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         Status    `json:"status"`
	Cancelled      bool      `json:"cancelled"`
	Capacity       int       `json:"capacity"`
	EnrolledCount  int       `json:"enrolled_count"`
	OrgID          string    `json:"org_id"`
	OrgName        string    `json:"org_name,omitempty"`
	OpenEnrollment bool      `json:"open_enrollment"`
	Region         string    `json:"region,omitempty"`
	Country        string    `json:"country,omitempty"`
}

func (e TrainingEvent) EnrollmentType() EnrollmentType {
	if e.OpenEnrollment {
		return EnrollmentOpen
	}
	return EnrollmentPrivate
}

// DateRange is a named date-range preset, resolved against "now" at
// evaluation time.
type DateRange string

const (
	DateRangeAll         DateRange = "all"
	DateRangeThisMonth   DateRange = "this-month"
	DateRangeNext60      DateRange = "next-60"
	DateRangeThisQuarter DateRange = "this-quarter"
	DateRangeThisYear    DateRange = "this-year"
	DateRangeCustom      DateRange = "custom"
)

// QueryFilter is a compound predicate over TrainingEvents; all fields are
// ANDed together. Array-valued fields match everything when empty.
type QueryFilter struct {
	Search          string           `query:"search"`
	Statuses        []Status         `query:"status"`
	DateRange       DateRange        `query:"date_range"`
	From            time.Time        `query:"from"` // custom bounds, inclusive
	To              time.Time        `query:"to"`
	Countries       []string         `query:"country"`
	Regions         []string         `query:"region"`
	EnrollmentTypes []EnrollmentType `query:"enrollment_type"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	for i, c := range qf.Countries {
		qf.Countries[i] = core.CleanString(c)
	}
	if qf.DateRange == "" {
		qf.DateRange = DateRangeAll
	}
}

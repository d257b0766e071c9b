package event

import (
	"strings"
	"time"
)

const defaultTitle = "Training Event"

// Transform joins a raw event row with the aggregated enrollment map into a
// normalized TrainingEvent.
//
// Capacity precedence: private seats allocated on the event itself, else the
// linked program's max students, else 0. A missing end date defaults to one
// day after the start.
func Transform(raw RawEvent, enrolled map[string]int, now time.Time) TrainingEvent {
	evt := TrainingEvent{
		ID:             raw.ID,
		Title:          defaultTitle,
		Location:       displayLocation(raw.VenueName.String, raw.VenueAddress.String),
		StartDate:      raw.StartsAt,
		EndDate:        raw.StartsAt.AddDate(0, 0, 1),
		Status:         StatusCompleted,
		Cancelled:      raw.Cancelled,
		EnrolledCount:  enrolled[raw.ID],
		OrgID:          raw.OrgID,
		OrgName:        raw.OrgName.String,
		OpenEnrollment: raw.OpenEnrollment,
		Region:         raw.VenueRegion.String,
		Country:        raw.VenueCountry.String,
	}
	if raw.ProgramName.Valid {
		evt.Title = raw.ProgramName.String
	}
	if raw.EndsAt.Valid {
		evt.EndDate = raw.EndsAt.Time
	}
	if raw.StartsAt.After(now) {
		evt.Status = StatusScheduled
	}

	switch {
	case raw.PrivateSeats.Valid:
		evt.Capacity = raw.PrivateSeats.Int
	case raw.ProgramMaxStudents.Valid:
		evt.Capacity = raw.ProgramMaxStudents.Int
	}
	return evt
}

// displayLocation composes the venue name with the last comma-separated
// segment of its street address (a crude country/region suffix). Display
// only: filtering must use the venue's stored country/region fields.
func displayLocation(venueName, address string) string {
	if venueName == "" {
		return ""
	}
	if address == "" {
		return venueName
	}
	parts := strings.Split(address, ",")
	suffix := strings.TrimSpace(parts[len(parts)-1])
	if suffix == "" {
		return venueName
	}
	return venueName + ", " + suffix
}

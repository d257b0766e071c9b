package event

import (
	"strings"
	"time"
)

// Apply evaluates the compound filter against each event, ANDing every
// predicate. The filter is stable: matching events keep their input order.
func (qf QueryFilter) Apply(events []TrainingEvent, now time.Time) []TrainingEvent {
	// events with search keyword matching title, location or organization name ?
	if qf.Search != "" {
		search := strings.ToLower(qf.Search)
		var filtered []TrainingEvent
		for _, e := range events {
			if strings.Contains(strings.ToLower(e.Title), search) ||
				strings.Contains(strings.ToLower(e.Location), search) ||
				(e.OrgName != "" && strings.Contains(strings.ToLower(e.OrgName), search)) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	// events with any of the specified statuses
	if events != nil && len(qf.Statuses) > 0 {
		var filtered []TrainingEvent
		for _, e := range events {
			for _, s := range qf.Statuses {
				if e.Status == s {
					filtered = append(filtered, e)
					break
				}
			}
		}
		events = filtered
	}
	// events starting within the resolved date range
	if from, to, bounded := qf.resolveDateRange(now); events != nil && bounded {
		var filtered []TrainingEvent
		for _, e := range events {
			if inRange(e.StartDate, from, to) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	// events held in any of the specified countries (venue country code, never
	// the address-derived display suffix)
	if events != nil && len(qf.Countries) > 0 {
		var filtered []TrainingEvent
		for _, e := range events {
			for _, c := range qf.Countries {
				if e.Country != "" && strings.EqualFold(e.Country, c) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		events = filtered
	}
	// events held in any of the specified regions
	if events != nil && len(qf.Regions) > 0 {
		var filtered []TrainingEvent
		for _, e := range events {
			for _, r := range qf.Regions {
				if e.Region != "" && strings.EqualFold(e.Region, r) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		events = filtered
	}
	// events of any of the specified enrollment types
	if events != nil && len(qf.EnrollmentTypes) > 0 {
		var filtered []TrainingEvent
		for _, e := range events {
			for _, et := range qf.EnrollmentTypes {
				if e.EnrollmentType() == et {
					filtered = append(filtered, e)
					break
				}
			}
		}
		events = filtered
	}
	return events
}

// resolveDateRange turns the named preset (or the custom bounds) into a
// concrete inclusive [from, to] interval relative to now. A zero bound
// leaves that side open.
func (qf QueryFilter) resolveDateRange(now time.Time) (from, to time.Time, bounded bool) {
	switch qf.DateRange {
	case DateRangeThisMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case DateRangeNext60:
		from = now
		to = now.AddDate(0, 0, 60)
	case DateRangeThisQuarter:
		qStart := time.Month((int(now.Month())-1)/3*3 + 1)
		from = time.Date(now.Year(), qStart, 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 3, 0).Add(-time.Nanosecond)
	case DateRangeThisYear:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case DateRangeCustom:
		from, to = qf.From, qf.To
	default: // DateRangeAll
		return time.Time{}, time.Time{}, false
	}
	return from, to, !from.IsZero() || !to.IsZero()
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// SplitUpcoming partitions events into upcoming (start after now) and past
// views without altering the unified list.
func SplitUpcoming(events []TrainingEvent, now time.Time) (upcoming, past []TrainingEvent) {
	for _, e := range events {
		if e.StartDate.After(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}

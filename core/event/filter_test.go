package event

import (
	"testing"
	"time"
)

var filterNow = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

func testEvents() []TrainingEvent {
	return []TrainingEvent{
		{
			ID: "e1", Title: "Evasive Driving L1", Location: "Apex Circuit, United Kingdom",
			OrgName: "Acme Security", Status: StatusScheduled, Country: "GB", Region: "EMEA",
			OpenEnrollment: true, StartDate: filterNow.AddDate(0, 0, 10),
		},
		{
			ID: "e2", Title: "Evasive Driving L2", Location: "Desert Proving Ground, USA",
			OrgName: "Acme Security", Status: StatusScheduled, Country: "US", Region: "AMER",
			StartDate: filterNow.AddDate(0, 2, 0),
		},
		{
			ID: "e3", Title: "Convoy Operations", Location: "Apex Circuit, United Kingdom",
			OrgName: "Globex", Status: StatusCompleted, Country: "GB", Region: "EMEA",
			StartDate: filterNow.AddDate(0, -1, 0),
		},
	}
}

func ids(events []TrainingEvent) []string {
	res := make([]string, 0, len(events))
	for _, e := range events {
		res = append(res, e.ID)
	}
	return res
}

func assertIDs(t *testing.T, got []TrainingEvent, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("filtered ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("filtered ids = %v, want %v", gotIDs, want)
		}
	}
}

func TestFilterSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "empty search matches everything", search: "", want: []string{"e1", "e2", "e3"}},
		{name: "title match is case-insensitive", search: "eVaSiVe", want: []string{"e1", "e2"}},
		{name: "location match", search: "desert", want: []string{"e2"}},
		{name: "organization name match", search: "globex", want: []string{"e3"}},
		{name: "no match", search: "zeppelin", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qf := QueryFilter{Search: tt.search, DateRange: DateRangeAll}
			assertIDs(t, qf.Apply(testEvents(), filterNow), tt.want...)
		})
	}
}

func TestFilterArraySemantics(t *testing.T) {
	// empty set imposes no restriction
	qf := QueryFilter{DateRange: DateRangeAll}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1", "e2", "e3")

	qf = QueryFilter{DateRange: DateRangeAll, Statuses: []Status{StatusScheduled}}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1", "e2")

	qf = QueryFilter{DateRange: DateRangeAll, Countries: []string{"gb"}} // case-insensitive
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1", "e3")

	qf = QueryFilter{DateRange: DateRangeAll, Regions: []string{"AMER"}}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e2")

	qf = QueryFilter{DateRange: DateRangeAll, EnrollmentTypes: []EnrollmentType{EnrollmentOpen}}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1")

	qf = QueryFilter{DateRange: DateRangeAll, EnrollmentTypes: []EnrollmentType{EnrollmentPrivate}}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e2", "e3")
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	qf := QueryFilter{
		Search:    "evasive",
		Statuses:  []Status{StatusScheduled},
		Countries: []string{"GB"},
		DateRange: DateRangeAll,
	}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1")
}

func TestFilterDateRangePresets(t *testing.T) {
	tests := []struct {
		name string
		mode DateRange
		want []string
	}{
		{name: "all", mode: DateRangeAll, want: []string{"e1", "e2", "e3"}},
		{name: "this month", mode: DateRangeThisMonth, want: []string{"e1"}},
		{name: "next 60 days", mode: DateRangeNext60, want: []string{"e1"}},
		// the calendar quarter spans both sides of now: e3 (mid-April) is
		// still inside Q2 even though it already happened
		{name: "this quarter", mode: DateRangeThisQuarter, want: []string{"e1", "e3"}},
		{name: "this year", mode: DateRangeThisYear, want: []string{"e1", "e2", "e3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qf := QueryFilter{DateRange: tt.mode}
			assertIDs(t, qf.Apply(testEvents(), filterNow), tt.want...)
		})
	}
}

func TestFilterCustomDateRange(t *testing.T) {
	qf := QueryFilter{
		DateRange: DateRangeCustom,
		From:      filterNow.AddDate(0, 1, 0),
		To:        filterNow.AddDate(0, 3, 0),
	}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e2")

	// bounds are inclusive
	events := testEvents()
	qf = QueryFilter{DateRange: DateRangeCustom, From: events[0].StartDate, To: events[0].StartDate}
	assertIDs(t, qf.Apply(events, filterNow), "e1")

	// an open upper bound
	qf = QueryFilter{DateRange: DateRangeCustom, From: filterNow}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1", "e2")
}

func TestFilterPreservesOrder(t *testing.T) {
	qf := QueryFilter{DateRange: DateRangeAll, Countries: []string{"GB", "US"}}
	assertIDs(t, qf.Apply(testEvents(), filterNow), "e1", "e2", "e3")
}

func TestSplitUpcoming(t *testing.T) {
	upcoming, past := SplitUpcoming(testEvents(), filterNow)
	assertIDs(t, upcoming, "e1", "e2")
	assertIDs(t, past, "e3")
}

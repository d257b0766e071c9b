package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core/analytics"
)

// seed loads a small demo data set: two client organizations, a venue, two
// programs, a handful of events with seat allocations and one finished event
// with a performance report. Re-running is a no-op.
func (cli *commandLine) seed() error {
	var count int
	if err := cli.db.Get(&count, `SELECT count(*) FROM organization`); err != nil {
		return errors.Wrap(err, "checking for existing data")
	}
	if count > 0 {
		fmt.Println("database is not empty, nothing to do")
		return nil
	}

	var (
		acmeID   = uuid.New().String()
		globexID = uuid.New().String()

		trackID = uuid.New().String()

		evasionID = uuid.New().String()
		stressID  = uuid.New().String()

		upcomingID = uuid.New().String()
		privateID  = uuid.New().String()
		finishedID = uuid.New().String()
	)
	now := time.Now().UTC()

	tx, err := cli.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	steps := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO organization (id, name) VALUES ($1, $2)`, []interface{}{acmeID, "Acme Fleet Services"}},
		{`INSERT INTO organization (id, name) VALUES ($1, $2)`, []interface{}{globexID, "Globex Executive Protection"}},
		{`INSERT INTO venue (id, name, address, region, country) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{trackID, "Summit Point Proving Ground", "201 Motorsports Park Circle, Summit Point", "WV", "US"}},
		{`INSERT INTO program (id, name, max_students) VALUES ($1, $2, $3)`, []interface{}{evasionID, "Evasive Driving", 12}},
		{`INSERT INTO program (id, name, max_students) VALUES ($1, $2, $3)`, []interface{}{stressID, "Stress Inoculation", 8}},
		{`INSERT INTO event (id, starts_at, open_enrollment, org_id, program_id, venue_id) VALUES ($1, $2, TRUE, $3, $4, $5)`,
			[]interface{}{upcomingID, now.AddDate(0, 0, 14), acmeID, evasionID, trackID}},
		{`INSERT INTO event (id, starts_at, open_enrollment, private_seats, org_id, program_id, venue_id) VALUES ($1, $2, FALSE, $3, $4, $5, $6)`,
			[]interface{}{privateID, now.AddDate(0, 1, 0), 6, globexID, stressID, trackID}},
		{`INSERT INTO event (id, starts_at, ends_at, open_enrollment, org_id, program_id, venue_id) VALUES ($1, $2, $3, TRUE, $4, $5, $6)`,
			[]interface{}{finishedID, now.AddDate(0, -1, 0), now.AddDate(0, -1, 2), acmeID, evasionID, trackID}},
		{`INSERT INTO allocation (id, event_id, org_id, seats_allocated) VALUES ($1, $2, $3, $4)`,
			[]interface{}{uuid.New().String(), upcomingID, acmeID, 5}},
		{`INSERT INTO allocation (id, event_id, org_id, seats_allocated) VALUES ($1, $2, $3, $4)`,
			[]interface{}{uuid.New().String(), upcomingID, globexID, 3}},
		{`INSERT INTO allocation (id, event_id, org_id, seats_allocated) VALUES ($1, $2, $3, $4)`,
			[]interface{}{uuid.New().String(), finishedID, acmeID, 6}},
	}
	for _, step := range steps {
		if _, err = tx.Exec(step.query, step.args...); err != nil {
			return errors.Wrap(err, "inserting demo data")
		}
	}

	payload, err := json.Marshal(demoReport())
	if err != nil {
		return errors.Wrap(err, "marshalling demo report")
	}
	if _, err = tx.Exec(`INSERT INTO event_report (event_id, payload) VALUES ($1, $2)`, finishedID, payload); err != nil {
		return errors.Wrap(err, "inserting demo report")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing demo data")
	}
	fmt.Println("demo data loaded")
	return nil
}

func demoReport() analytics.Report {
	return analytics.Report{
		Students: []analytics.StudentPerformanceRecord{
			{StudentID: "s-100", Name: "A. Mercer", OverallScore: 91.5, SlalomControl: 93, EvasionControl: 90, BrakeControl: 92, ReverseControl: 89, LowStressScore: 84, HighStressScore: 92},
			{StudentID: "s-101", Name: "B. Okafor", OverallScore: 78.0, SlalomControl: 80, EvasionControl: 76, BrakeControl: 79, ReverseControl: 77, LowStressScore: 80, HighStressScore: 77},
			{StudentID: "s-102", Name: "C. Duval", OverallScore: 64.25, SlalomControl: 66, EvasionControl: 61, BrakeControl: 68, ReverseControl: 62, LowStressScore: 75, HighStressScore: 58},
		},
		Narrative: map[string]string{
			"summary": "Cohort of three completed the full evasive driving cycle.",
		},
	}
}

package analytics

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
	"github.com/apexdrive/console/services/logger"
)

type fakeRepo struct {
	report Report
	err    error
}

func (r *fakeRepo) GetEventReport(context.Context, string) (Report, error) {
	return r.report, r.err
}

func TestEventReport(t *testing.T) {
	repo := &fakeRepo{report: Report{
		EventID: "e1",
		Students: []StudentPerformanceRecord{
			{StudentID: "s1", OverallScore: 92, LowStressScore: 88, HighStressScore: 95},
			{StudentID: "s2", OverallScore: 64, LowStressScore: 72, HighStressScore: 55},
			{StudentID: "s3", OverallScore: 78, LowStressScore: 76, HighStressScore: 74},
		},
	}}
	svc := NewService(repo, logsvc.NewNopLogger())

	view, err := svc.EventReport(context.Background(), "e1")
	if err != nil {
		t.Fatalf("EventReport() failed: %v", err)
	}
	if len(view.Tiers) != 3 {
		t.Fatalf("got %d tiers, want 3", len(view.Tiers))
	}
	want := map[string]StressResponse{"s1": StressEnhanced, "s2": StressAffected, "s3": StressResilient}
	for id, resp := range want {
		if view.StressResponses[id] != resp {
			t.Errorf("stress response for %s = %s, want %s", id, view.StressResponses[id], resp)
		}
	}
}

func TestEventReportErrors(t *testing.T) {
	svc := NewService(&fakeRepo{err: ErrReportNotFound}, logsvc.NewNopLogger())
	if _, err := svc.EventReport(context.Background(), "e1"); errors.Cause(err) != ErrReportNotFound {
		t.Errorf("EventReport() error = %v, want %v", err, ErrReportNotFound)
	}

	svc = NewService(&fakeRepo{err: errors.New("timeout")}, logsvc.NewNopLogger())
	if _, err := svc.EventReport(context.Background(), "e1"); !core.IsLoadError(err) {
		t.Errorf("EventReport() error = %v, want load error", err)
	}

	// classifiers are never fed an empty cohort
	svc = NewService(&fakeRepo{report: Report{EventID: "e1"}}, logsvc.NewNopLogger())
	if _, err := svc.EventReport(context.Background(), "e1"); err != ErrEmptyCohort {
		t.Errorf("EventReport() error = %v, want %v", err, ErrEmptyCohort)
	}
}

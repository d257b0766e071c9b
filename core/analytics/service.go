package analytics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/apexdrive/console/core"
)

var ErrReportNotFound = errors.New("analytics report not found")

type (
	Repository interface {
		GetEventReport(ctx context.Context, eventID string) (Report, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}

	// ReportView is the report enriched with the derived classifications.
	ReportView struct {
		Report
		Tiers []PerformanceTier `json:"tiers"`
		// StressResponses keyed by student id.
		StressResponses map[string]StressResponse `json:"stress_responses"`
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// EventReport fetches the pre-computed payload and derives the performance
// tiers and per-student stress categories. Classifiers never run on a failed
// or empty fetch.
func (svc *Service) EventReport(ctx context.Context, eventID string) (ReportView, error) {
	report, err := svc.repo.GetEventReport(ctx, eventID)
	if err != nil {
		if errors.Cause(err) == ErrReportNotFound {
			return ReportView{}, err
		}
		return ReportView{}, core.NewLoadError("report", err)
	}

	tiers, err := ClassifyTiers(report.Students)
	if err != nil {
		return ReportView{}, err
	}

	responses := make(map[string]StressResponse, len(report.Students))
	for _, s := range report.Students {
		responses[s.StudentID] = ClassifyStressResponse(s.LowStressScore, s.HighStressScore)
	}
	return ReportView{Report: report, Tiers: tiers, StressResponses: responses}, nil
}

package inmemdb

import (
	"context"

	"github.com/apexdrive/console/core/analytics"
)

type AnalyticsRepository struct {
	db *reportTable
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db.report}
}

func (repo *AnalyticsRepository) GetEventReport(_ context.Context, eventID string) (analytics.Report, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if report, ok := repo.db.table[eventID]; ok {
		return *report, nil
	}
	return analytics.Report{}, analytics.ErrReportNotFound
}

// SetEventReport stores a pre-computed payload; used by tests and the demo seed.
func (repo *AnalyticsRepository) SetEventReport(report analytics.Report) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.table[report.EventID] = &report
}

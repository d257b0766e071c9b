package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core/analytics"
)

type AnalyticsRepository struct {
	db *sqlx.DB
}

var _ analytics.Repository = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// GetEventReport reads the pre-computed payload stored as JSON against the
// event.
func (repo *AnalyticsRepository) GetEventReport(ctx context.Context, eventID string) (analytics.Report, error) {
	var payload []byte
	err := repo.db.GetContext(ctx, &payload,
		repo.db.Rebind("SELECT payload FROM event_report WHERE event_id = ?"), eventID)
	if err == sql.ErrNoRows {
		return analytics.Report{}, analytics.ErrReportNotFound
	}
	if err != nil {
		return analytics.Report{}, errors.Wrap(err, "getting event report")
	}

	var report analytics.Report
	if err = json.Unmarshal(payload, &report); err != nil {
		return analytics.Report{}, errors.Wrap(err, "decoding report payload")
	}
	report.EventID = eventID
	return report, nil
}

package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepoCounts(t *testing.T) {
	mock := newMock(t)
	repo := NewDashboardRepo(mock)
	owner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY status")).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("planned", int64(2)).
			AddRow("running", int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY platform")).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"platform", "count"}).
			AddRow("youtube", int64(3)))

	statuses, err := repo.StatusCounts(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{{Status: "planned", Count: 2}, {Status: "running", Count: 1}}, statuses)

	platforms, err := repo.PlatformCounts(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, []models.PlatformCount{{Platform: "youtube", Count: 3}}, platforms)
}

func TestDashboardRepoBudgetTotals(t *testing.T) {
	mock := newMock(t)
	repo := NewDashboardRepo(mock)
	owner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE status = $2)")).
		WithArgs(owner, models.CampaignStatusRunning).
		WillReturnRows(pgxmock.NewRows([]string{"total", "running"}).AddRow("3500.50", "1000.00"))

	total, running, err := repo.BudgetTotals(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, "3500.50", models.FormatBudget(total))
	assert.Equal(t, "1000.00", models.FormatBudget(running))

	mock.ExpectQuery(regexp.QuoteMeta("FILTER (WHERE status = $2)")).
		WithArgs(owner, models.CampaignStatusRunning).
		WillReturnRows(pgxmock.NewRows([]string{"total", "running"}).AddRow("0", "0"))

	total, running, err = repo.BudgetTotals(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.True(t, running.IsZero())
}

func TestDashboardRepoTrends(t *testing.T) {
	mock := newMock(t)
	repo := NewDashboardRepo(mock)
	owner := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("(created_at AT TIME ZONE $2)::date")).
		WithArgs(owner, "Asia/Kolkata").
		WillReturnRows(pgxmock.NewRows([]string{"day", "count"}).
			AddRow("2024-10-01", int64(2)).
			AddRow("2024-10-03", int64(1)))

	trends, err := repo.Trends(context.Background(), owner, "Asia/Kolkata")
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, "2024-10-01", trends[0].Day.Format(models.DateLayout))
	assert.Equal(t, int64(2), trends[0].Count)
	assert.Equal(t, "2024-10-03", trends[1].Day.Format(models.DateLayout))
}

func TestDashboardRepoTrendsBindsTimeZone(t *testing.T) {
	for _, zone := range []string{"UTC", "America/New_York", "Asia/Tokyo"} {
		t.Run(zone, func(t *testing.T) {
			mock := newMock(t)
			repo := NewDashboardRepo(mock)
			owner := uuid.New()

			mock.ExpectQuery(regexp.QuoteMeta("GROUP BY day")).
				WithArgs(owner, zone).
				WillReturnRows(pgxmock.NewRows([]string{"day", "count"}))

			trends, err := repo.Trends(context.Background(), owner, zone)
			require.NoError(t, err)
			assert.Empty(t, trends)
		})
	}
}

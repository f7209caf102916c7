package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/query"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobColumnNames = []string{
	"id", "title", "company", "logo", "description", "experience", "location",
	"salary_min", "salary_max", "job_type", "application_deadline", "status",
	"views", "applications", "created_at", "updated_at",
}

func newTestStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStorage(sqlx.NewDb(db, "sqlmock"), logger), mock
}

func jobRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(jobColumnNames).AddRow(
		"b5ad3cf5-5e1f-4a9b-8f3e-111111111111", "Backend Engineer", "Globex", "generic",
		"Build services", "1-3 yr Exp", "ha noi",
		"1000", "2000", "full-time", nil, "published",
		int64(5), int64(2), now, now,
	)
}

func TestBuildListPredicate(t *testing.T) {
	t.Run("empty filter keeps the published gate", func(t *testing.T) {
		where, args := buildListPredicate(query.Filter{})

		assert.Equal(t, "status = $1", where)
		require.Len(t, args, 1)
		assert.Equal(t, domain.StatusPublished, args[0])
	})

	t.Run("all filters active", func(t *testing.T) {
		min := int64(1000)
		max := int64(5000)
		f := query.Filter{
			Search:    "golang",
			Location:  "ha noi",
			JobType:   "full-time",
			SalaryMin: &min,
			SalaryMax: &max,
		}

		where, args := buildListPredicate(f)

		assert.Contains(t, where, "status = $1")
		assert.Contains(t, where, "location ILIKE $2")
		assert.Contains(t, where, "job_type = $3")
		assert.Contains(t, where, "plainto_tsquery('english', $4)")
		assert.Contains(t, where, "salary_min ~ '^[0-9]+$' THEN salary_min::bigint END) >= $5")
		assert.Contains(t, where, "salary_max ~ '^[0-9]+$' THEN salary_max::bigint END) <= $6")

		assert.Equal(t, []interface{}{
			domain.StatusPublished, "%ha noi%", "full-time", "golang", min, max,
		}, args)
	})

	t.Run("argument indexes stay dense with sparse filters", func(t *testing.T) {
		min := int64(500)
		f := query.Filter{SalaryMin: &min}

		where, args := buildListPredicate(f)

		assert.Contains(t, where, "salary_min::bigint END) >= $2")
		assert.Equal(t, []interface{}{domain.StatusPublished, min}, args)
	})
}

func TestListJobs(t *testing.T) {
	s, mock := newTestStorage(t)
	now := time.Now()

	f := query.Filter{
		Location:   "ha noi",
		Page:       2,
		Limit:      10,
		SortColumn: "created_at",
		Descending: true,
	}

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE status = \$1 AND location ILIKE \$2 ORDER BY created_at DESC, id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(domain.StatusPublished, "%ha noi%", 10, 10).
		WillReturnRows(jobRow(now))

	jobs, err := s.ListJobs(context.Background(), f)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "ha noi", jobs[0].Location)
	assert.Nil(t, jobs[0].ApplicationDeadline)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountJobs(t *testing.T) {
	s, mock := newTestStorage(t)

	f := query.Filter{JobType: "full-time"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM jobs WHERE status = \$1 AND job_type = \$2`).
		WithArgs(domain.StatusPublished, "full-time").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := s.CountJobs(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetJobByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
			WithArgs("b5ad3cf5-5e1f-4a9b-8f3e-111111111111").
			WillReturnRows(jobRow(time.Now()))

		job, err := s.GetJobByID(context.Background(), "b5ad3cf5-5e1f-4a9b-8f3e-111111111111")

		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", job.Title)
		assert.Equal(t, int64(5), job.Views)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(jobColumnNames))

		job, err := s.GetJobByID(context.Background(), "missing")

		require.ErrorIs(t, err, domain.ErrJobNotFound)
		assert.Nil(t, job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateJob(t *testing.T) {
	s, mock := newTestStorage(t)
	now := time.Now()

	job := &model.Job{
		ID:          "b5ad3cf5-5e1f-4a9b-8f3e-111111111111",
		Title:       "Backend Engineer",
		Company:     "Globex",
		Logo:        "generic",
		Description: "Build services",
		Experience:  "1-3 yr Exp",
		Location:    "ha noi",
		SalaryMin:   "1000",
		SalaryMax:   "2000",
		JobType:     "full-time",
		Status:      "published",
	}

	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs(
			job.ID, job.Title, job.Company, job.Logo, job.Description,
			job.Experience, job.Location, job.SalaryMin, job.SalaryMax,
			job.JobType, nil, job.Status,
		).
		WillReturnRows(sqlmock.NewRows([]string{"views", "applications", "created_at", "updated_at"}).
			AddRow(int64(0), int64(0), now, now))

	err := s.CreateJob(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, int64(0), job.Views)
	assert.Equal(t, now, job.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJob(t *testing.T) {
	t.Run("patches only the provided fields", func(t *testing.T) {
		s, mock := newTestStorage(t)

		title := "Senior Backend Engineer"
		mock.ExpectQuery(`UPDATE jobs\s+SET title = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
			WithArgs(title, "b5ad3cf5-5e1f-4a9b-8f3e-111111111111").
			WillReturnRows(jobRow(time.Now()))

		job, err := s.UpdateJob(context.Background(), "b5ad3cf5-5e1f-4a9b-8f3e-111111111111", JobPatch{Title: &title})

		require.NoError(t, err)
		require.NotNil(t, job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStorage(t)

		title := "Senior Backend Engineer"
		mock.ExpectQuery(`UPDATE jobs`).
			WithArgs(title, "missing").
			WillReturnRows(sqlmock.NewRows(jobColumnNames))

		job, err := s.UpdateJob(context.Background(), "missing", JobPatch{Title: &title})

		require.ErrorIs(t, err, domain.ErrJobNotFound)
		assert.Nil(t, job)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
			WithArgs("b5ad3cf5-5e1f-4a9b-8f3e-111111111111").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.DeleteJob(context.Background(), "b5ad3cf5-5e1f-4a9b-8f3e-111111111111")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeleteJob(context.Background(), "missing")

		require.ErrorIs(t, err, domain.ErrJobNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementViews(t *testing.T) {
	s, mock := newTestStorage(t)

	mock.ExpectExec(`UPDATE jobs SET views = views \+ 1 WHERE id = \$1`).
		WithArgs("b5ad3cf5-5e1f-4a9b-8f3e-111111111111").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.IncrementViews(context.Background(), "b5ad3cf5-5e1f-4a9b-8f3e-111111111111")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats(t *testing.T) {
	overviewColumns := []string{
		"total_jobs", "total_views", "total_applications", "avg_salary_min", "avg_salary_max",
	}

	t.Run("aggregates published jobs", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectQuery(`SELECT\s+COUNT\(\*\) AS total_jobs`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows(overviewColumns).
				AddRow(int64(3), int64(120), int64(14), 1500.0, 2500.0))

		mock.ExpectQuery(`SELECT job_type, COUNT\(\*\) AS count`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows([]string{"job_type", "count"}).
				AddRow("full-time", int64(2)).
				AddRow("contract", int64(1)))

		mock.ExpectQuery(`SELECT location, COUNT\(\*\) AS count`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows([]string{"location", "count"}).
				AddRow("ha noi", int64(3)))

		stats, err := s.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Overview.TotalJobs)
		assert.Equal(t, int64(120), stats.Overview.TotalViews)
		assert.Equal(t, 1500.0, stats.Overview.AvgSalaryMin)
		require.Len(t, stats.ByType, 2)
		assert.Equal(t, "full-time", stats.ByType[0].JobType)
		require.Len(t, stats.ByLocation, 1)
		assert.Equal(t, int64(3), stats.ByLocation[0].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero published jobs is not an error", func(t *testing.T) {
		s, mock := newTestStorage(t)

		mock.ExpectQuery(`SELECT\s+COUNT\(\*\) AS total_jobs`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows(overviewColumns).
				AddRow(int64(0), int64(0), int64(0), 0.0, 0.0))

		mock.ExpectQuery(`SELECT job_type, COUNT\(\*\) AS count`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows([]string{"job_type", "count"}))

		mock.ExpectQuery(`SELECT location, COUNT\(\*\) AS count`).
			WithArgs(domain.StatusPublished).
			WillReturnRows(sqlmock.NewRows([]string{"location", "count"}))

		stats, err := s.GetStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.Overview.TotalJobs)
		assert.Zero(t, stats.Overview.AvgSalaryMin)
		assert.Empty(t, stats.ByType)
		assert.Empty(t, stats.ByLocation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

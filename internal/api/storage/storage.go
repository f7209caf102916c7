package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/query"
	"github.com/jmoiron/sqlx"
)

const jobColumns = `id, title, company, logo, description, experience, location,
		salary_min, salary_max, job_type, application_deadline, status,
		views, applications, created_at, updated_at`

// Storage handles all database operations for the API service.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance.
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// Ping reports whether the store is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// buildListPredicate turns a normalized filter into a WHERE clause. The
// published-only predicate is always present; everything else is appended
// per active filter. Salary bounds compare numerically and skip rows whose
// salary text is not a plain number, so a bad legacy value can never make
// the query fail.
func buildListPredicate(f query.Filter) (string, []interface{}) {
	clauses := []string{"status = $1"}
	args := []interface{}{domain.StatusPublished}
	argIdx := 2

	if f.Location != "" {
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", argIdx))
		args = append(args, "%"+f.Location+"%")
		argIdx++
	}

	if f.JobType != "" {
		clauses = append(clauses, fmt.Sprintf("job_type = $%d", argIdx))
		args = append(args, f.JobType)
		argIdx++
	}

	if f.Search != "" {
		clauses = append(clauses, fmt.Sprintf(
			"to_tsvector('english', title || ' ' || company || ' ' || description) @@ plainto_tsquery('english', $%d)",
			argIdx,
		))
		args = append(args, f.Search)
		argIdx++
	}

	if f.SalaryMin != nil {
		clauses = append(clauses, fmt.Sprintf(
			"(CASE WHEN salary_min ~ '^[0-9]+$' THEN salary_min::bigint END) >= $%d", argIdx))
		args = append(args, *f.SalaryMin)
		argIdx++
	}

	if f.SalaryMax != nil {
		clauses = append(clauses, fmt.Sprintf(
			"(CASE WHEN salary_max ~ '^[0-9]+$' THEN salary_max::bigint END) <= $%d", argIdx))
		args = append(args, *f.SalaryMax)
		argIdx++
	}

	return strings.Join(clauses, " AND "), args
}

// ListJobs returns one page of published jobs matching the filter. The
// record id is a secondary sort key so page boundaries stay stable when
// the primary key ties.
func (s *Storage) ListJobs(ctx context.Context, f query.Filter) ([]model.Job, error) {
	where, args := buildListPredicate(f)

	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}

	q := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE %s
		ORDER BY %s %s, id %s
		LIMIT $%d OFFSET $%d
	`, jobColumns, where, f.SortColumn, dir, dir, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// CountJobs counts the published jobs matching the filter. It reuses the
// exact predicate of ListJobs so the reported total always describes the
// same set the pages are drawn from.
func (s *Storage) CountJobs(ctx context.Context, f query.Filter) (int64, error) {
	where, args := buildListPredicate(f)

	var total int64
	q := "SELECT COUNT(*) FROM jobs WHERE " + where
	if err := s.db.GetContext(ctx, &total, q, args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return total, nil
}

// GetJobByID fetches a single job regardless of status.
func (s *Storage) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	q := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns)

	var job model.Job
	if err := s.db.GetContext(ctx, &job, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// CreateJob inserts a new job and fills in the store-assigned timestamps.
func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	q := `
		INSERT INTO jobs (
			id, title, company, logo, description, experience, location,
			salary_min, salary_max, job_type, application_deadline, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12
		)
		RETURNING views, applications, created_at, updated_at
	`

	err := s.db.QueryRowContext(
		ctx, q,
		job.ID,
		job.Title,
		job.Company,
		job.Logo,
		job.Description,
		job.Experience,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.JobType,
		job.ApplicationDeadline,
		job.Status,
	).Scan(&job.Views, &job.Applications, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Debug("Job inserted",
		slog.String("job_id", job.ID),
		slog.String("status", job.Status),
	)

	return nil
}

// JobPatch is a partial update; nil fields are left unchanged. Logo is set
// by the handler whenever Company is, so the two always land in the same
// statement.
type JobPatch struct {
	Title               *string
	Company             *string
	Logo                *string
	Description         *string
	Experience          *string
	Location            *string
	SalaryMin           *string
	SalaryMax           *string
	JobType             *string
	ApplicationDeadline *time.Time
	Status              *string
}

// UpdateJob applies the patch and returns the updated record.
func (s *Storage) UpdateJob(ctx context.Context, id string, patch JobPatch) (*model.Job, error) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Company != nil {
		set("company", *patch.Company)
	}
	if patch.Logo != nil {
		set("logo", *patch.Logo)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Experience != nil {
		set("experience", *patch.Experience)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.SalaryMin != nil {
		set("salary_min", *patch.SalaryMin)
	}
	if patch.SalaryMax != nil {
		set("salary_max", *patch.SalaryMax)
	}
	if patch.JobType != nil {
		set("job_type", *patch.JobType)
	}
	if patch.ApplicationDeadline != nil {
		set("application_deadline", *patch.ApplicationDeadline)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}

	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argIdx, jobColumns)
	args = append(args, id)

	var job model.Job
	if err := s.db.GetContext(ctx, &job, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &job, nil
}

// DeleteJob removes a job permanently.
func (s *Storage) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	s.logger.Debug("Job deleted", slog.String("job_id", id))

	return nil
}

// IncrementViews bumps the view counter by one. The increment happens in
// the database so concurrent bumps never lose updates.
func (s *Storage) IncrementViews(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE jobs SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// GetStats aggregates the published subset: an overview plus counts per
// job type and per location. With zero published jobs the overview comes
// back fully zeroed, not as an error.
func (s *Storage) GetStats(ctx context.Context) (*model.Stats, error) {
	overviewQuery := `
		SELECT
			COUNT(*) AS total_jobs,
			COALESCE(SUM(views), 0) AS total_views,
			COALESCE(SUM(applications), 0) AS total_applications,
			COALESCE(AVG(CASE WHEN salary_min ~ '^[0-9]+$' THEN salary_min::numeric END), 0) AS avg_salary_min,
			COALESCE(AVG(CASE WHEN salary_max ~ '^[0-9]+$' THEN salary_max::numeric END), 0) AS avg_salary_max
		FROM jobs
		WHERE status = $1
	`

	var stats model.Stats
	if err := s.db.GetContext(ctx, &stats.Overview, overviewQuery, domain.StatusPublished); err != nil {
		return nil, fmt.Errorf("failed to aggregate overview: %w", err)
	}

	typeQuery := `
		SELECT job_type, COUNT(*) AS count
		FROM jobs
		WHERE status = $1
		GROUP BY job_type
	`
	if err := s.db.SelectContext(ctx, &stats.ByType, typeQuery, domain.StatusPublished); err != nil {
		return nil, fmt.Errorf("failed to group jobs by type: %w", err)
	}

	locationQuery := `
		SELECT location, COUNT(*) AS count
		FROM jobs
		WHERE status = $1
		GROUP BY location
	`
	if err := s.db.SelectContext(ctx, &stats.ByLocation, locationQuery, domain.StatusPublished); err != nil {
		return nil, fmt.Errorf("failed to group jobs by location: %w", err)
	}

	return &stats, nil
}

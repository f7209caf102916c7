package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/jobboard-be/internal/sweeper/domain"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the sweeper.
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

// GetJob loads the expiry-relevant fields of a posting.
func (s *Storage) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	q := `
		SELECT id, status, application_deadline
		FROM jobs
		WHERE id = $1
	`

	var job domain.Job
	if err := s.db.GetContext(ctx, &job, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// ExpireJob marks one posting expired. The predicate re-checks status and
// deadline so racing sweepers and concurrent publisher updates stay
// harmless. Reports whether this call performed the transition.
func (s *Storage) ExpireJob(ctx context.Context, id string) (bool, error) {
	q := `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND status = $3
		  AND application_deadline IS NOT NULL
		  AND application_deadline <= NOW()
	`

	result, err := s.db.ExecContext(ctx, q, domain.StatusExpired, id, domain.StatusPublished)
	if err != nil {
		return false, fmt.Errorf("failed to expire job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// ExpireDueJobs bulk-expires every published posting whose deadline has
// passed, catching deadlines that lapse without a triggering event.
func (s *Storage) ExpireDueJobs(ctx context.Context) (int64, error) {
	q := `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		  AND application_deadline IS NOT NULL
		  AND application_deadline <= NOW()
	`

	result, err := s.db.ExecContext(ctx, q, domain.StatusExpired, domain.StatusPublished)
	if err != nil {
		return 0, fmt.Errorf("failed to expire due jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/sweeper/domain"
)

// processEvent checks the event's posting against its deadline and
// expires it when due. A posting deleted between publish and delivery is
// treated as done, not as a failure. Future deadlines are left to the
// periodic bulk sweep.
func (s *Sweeper) processEvent(ctx context.Context, msg *domain.EventMessage) error {
	job, err := s.storage.GetJob(ctx, msg.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			s.logger.Debug("Event for missing job, skipping",
				slog.String("job_id", msg.JobID),
			)
			return nil
		}
		return err
	}

	if !job.DeadlinePassed(time.Now()) {
		return nil
	}

	expired, err := s.storage.ExpireJob(ctx, job.ID)
	if err != nil {
		return err
	}

	if expired {
		s.logger.Info("Job expired",
			slog.String("job_id", job.ID),
			slog.String("event", msg.Event),
		)
	}

	return nil
}

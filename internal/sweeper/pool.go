package sweeper

import (
	"context"
	"fmt"
	"log/slog"
)

// spawnWorkers starts the processing goroutines that drain jobsChan.
func (s *Sweeper) spawnWorkers(ctx context.Context) {
	s.logger.Info("Spawning sweeper workers",
		slog.Int("concurrency", s.concurrency),
	)

	for i := 0; i < s.concurrency; i++ {
		s.wg.Add(1)
		go s.workerLoop(ctx, i)
	}
}

// workerLoop processes dispatched events and ACKs or NACKs each one.
// Transient storage failures are requeued so the event gets another shot.
func (s *Sweeper) workerLoop(ctx context.Context, workerNum int) {
	defer s.wg.Done()

	workerName := fmt.Sprintf("%s-%d", s.sweeperID, workerNum)

	for {
		select {
		case <-s.stopChan:
			s.logger.Info("Sweeper worker stopping",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			s.logger.Info("Sweeper worker stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-s.jobsChan:
			if !ok {
				return
			}

			if err := s.processEvent(ctx, msg); err != nil {
				s.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.String("job_id", msg.JobID),
					slog.String("error", err.Error()),
				)
				s.nack(msg.DeliveryTag, true)
				continue
			}

			s.ack(msg.DeliveryTag)
		}
	}
}

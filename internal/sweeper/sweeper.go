package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/sweeper/domain"
	"github.com/cuongbtq/jobboard-be/internal/sweeper/storage"
	"github.com/cuongbtq/jobboard-be/shared/postgresql"
	"github.com/cuongbtq/jobboard-be/shared/rabbitmq"
	"github.com/google/uuid"
)

// Config holds sweeper configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	SweepInterval time.Duration
}

// Sweeper expires published postings whose application deadline has
// passed. Job lifecycle events trigger a targeted check; a periodic bulk
// sweep catches deadlines that lapse with no event at all.
type Sweeper struct {
	logger        *slog.Logger
	storage       *storage.Storage
	rabbitClient  *rabbitmq.Client
	concurrency   int
	sweepInterval time.Duration
	sweeperID     string
	jobsChan      chan *domain.EventMessage
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// New creates a new sweeper instance
func New(cfg *Config) *Sweeper {
	return &Sweeper{
		logger:        cfg.Logger,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		rabbitClient:  cfg.RabbitClient,
		concurrency:   cfg.Concurrency,
		sweepInterval: cfg.SweepInterval,
		sweeperID:     "sweeper-" + uuid.New().String()[:8],
		jobsChan:      make(chan *domain.EventMessage, cfg.Concurrency*2),
		stopChan:      make(chan struct{}),
	}
}

// Start consumes lifecycle events and runs the periodic sweep. It blocks
// until the context is canceled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("Starting sweeper",
		slog.String("sweeper_id", s.sweeperID),
		slog.Int("concurrency", s.concurrency),
		slog.Duration("sweep_interval", s.sweepInterval),
	)

	deliveries, err := s.setupConsumer()
	if err != nil {
		return err
	}

	s.spawnWorkers(ctx)
	go s.dispatchDeliveries(ctx, deliveries)

	s.runSweepLoop(ctx)
	return nil
}

// Stop gracefully stops the sweeper
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping sweeper...")
	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info("Sweeper stopped")
}

// runSweepLoop sweeps once at startup, then on every tick.
func (s *Sweeper) runSweepLoop(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweep loop stopped - context canceled")
			return
		case <-s.stopChan:
			s.logger.Info("Sweep loop stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.storage.ExpireDueJobs(ctx)
	if err != nil {
		s.logger.Error("Bulk sweep failed", slog.String("error", err.Error()))
		return
	}

	if expired > 0 {
		s.logger.Info("Expired overdue jobs",
			slog.Int64("count", expired),
			slog.String("sweeper_id", s.sweeperID),
		)
	}
}

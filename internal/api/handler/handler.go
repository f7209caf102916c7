package handler

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/query"
	"github.com/cuongbtq/jobboard-be/internal/api/storage"
)

// JobStore is the persistence surface the handlers depend on.
// *storage.Storage implements it; tests substitute a stub.
type JobStore interface {
	Ping(ctx context.Context) error
	ListJobs(ctx context.Context, f query.Filter) ([]model.Job, error)
	CountJobs(ctx context.Context, f query.Filter) (int64, error)
	GetJobByID(ctx context.Context, id string) (*model.Job, error)
	CreateJob(ctx context.Context, job *model.Job) error
	UpdateJob(ctx context.Context, id string, patch storage.JobPatch) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*model.Stats, error)
}

// EventPublisher publishes job lifecycle events. Satisfied by
// rabbitmq.Client; may be nil when event publishing is disabled.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	Store       JobStore
	Events      EventPublisher
	Environment string
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger      *slog.Logger
	store       JobStore
	events      EventPublisher
	environment string
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:      deps.Logger,
		store:       deps.Store,
		events:      deps.Events,
		environment: deps.Environment,
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/query"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	pingTimeout  = 2 * time.Second
	eventTimeout = 5 * time.Second
)

// ListJobs handles GET /api/jobs
// Lists published jobs with filtering, search, sorting, and pagination.
func (h *JobHandler) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()

	// Health gate: surface a disconnected store as 503 instead of a
	// confusing query failure.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.store.Ping(pingCtx); err != nil {
		h.logger.Error("Database not reachable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Database not connected",
			"error":   "Service temporarily unavailable",
		})
		return
	}

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid query parameters",
		})
		return
	}

	filter := query.Normalize(req)

	jobs, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.serverError(c, "Server error while fetching jobs", err)
		return
	}

	// Total over the same filtered predicate, so totalPages always
	// describes the set the pages are drawn from.
	total, err := h.store.CountJobs(ctx, filter)
	if err != nil {
		h.serverError(c, "Server error while fetching jobs", err)
		return
	}

	limit := int64(filter.Limit)
	totalPages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Success:     true,
		Count:       len(jobs),
		TotalJobs:   total,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
		Data:        toJobDTOs(jobs, time.Now()),
	})
}

// GetJob handles GET /api/jobs/:id
// Fetches a single job and bumps its view counter.
func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	job, err := h.store.GetJobByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Job not found",
			})
			return
		}
		h.serverError(c, "Server error while fetching job", err)
		return
	}

	// Best-effort telemetry: the read succeeds even if the bump fails.
	go h.bumpViews(job.ID)
	job.Views++

	c.JSON(http.StatusOK, dto.JobResponse{
		Success: true,
		Data:    toJobDTO(job, time.Now()),
	})
}

// CreateJob handles POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation errors",
			"errors":  validationMessages(err),
		})
		return
	}

	job, msgs := jobFromCreateRequest(&req, time.Now())
	if len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation errors",
			"errors":  msgs,
		})
		return
	}

	job.ID = uuid.New().String()
	job.Logo = domain.DeriveLogo(job.Company)

	if err := h.store.CreateJob(c.Request.Context(), job); err != nil {
		h.serverError(c, "Server error while creating job", err)
		return
	}

	h.publishEvent(domain.EventJobCreated, job)

	c.JSON(http.StatusCreated, dto.JobResponse{
		Success: true,
		Message: "Job created successfully",
		Data:    toJobDTO(job, time.Now()),
	})
}

// UpdateJob handles PUT /api/jobs/:id
// Applies a partial update; the logo is re-derived whenever the company
// changes and lands in the same write.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation errors",
			"errors":  validationMessages(err),
		})
		return
	}

	patch, msgs := patchFromUpdateRequest(&req, time.Now())
	if len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation errors",
			"errors":  msgs,
		})
		return
	}

	job, err := h.store.UpdateJob(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Job not found",
			})
			return
		}
		h.serverError(c, "Server error while updating job", err)
		return
	}

	h.publishEvent(domain.EventJobUpdated, job)

	c.JSON(http.StatusOK, dto.JobResponse{
		Success: true,
		Message: "Job updated successfully",
		Data:    toJobDTO(job, time.Now()),
	})
}

// DeleteJob handles DELETE /api/jobs/:id
// Hard delete, no tombstone.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Job not found",
			})
			return
		}
		h.serverError(c, "Server error while deleting job", err)
		return
	}

	h.publishEvent(domain.EventJobDeleted, &model.Job{ID: id})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted successfully",
		"data":    gin.H{},
	})
}

// GetJobStats handles GET /api/jobs/stats
func (h *JobHandler) GetJobStats(c *gin.Context) {
	stats, err := h.store.GetStats(c.Request.Context())
	if err != nil {
		h.serverError(c, "Server error while fetching job statistics", err)
		return
	}

	byType := make([]dto.TypeCountDTO, len(stats.ByType))
	for i, tc := range stats.ByType {
		byType[i] = dto.TypeCountDTO{JobType: tc.JobType, Count: tc.Count}
	}

	byLocation := make([]dto.LocationCountDTO, len(stats.ByLocation))
	for i, lc := range stats.ByLocation {
		byLocation[i] = dto.LocationCountDTO{Location: lc.Location, Count: lc.Count}
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Success: true,
		Data: dto.StatsData{
			Overview: dto.StatsOverviewDTO{
				TotalJobs:         stats.Overview.TotalJobs,
				TotalViews:        stats.Overview.TotalViews,
				TotalApplications: stats.Overview.TotalApplications,
				AvgSalaryMin:      stats.Overview.AvgSalaryMin,
				AvgSalaryMax:      stats.Overview.AvgSalaryMax,
			},
			JobsByType:     byType,
			JobsByLocation: byLocation,
		},
	})
}

// bumpViews runs the atomic view increment detached from the request. A
// failure here is logged and never reaches the client.
func (h *JobHandler) bumpViews(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := h.store.IncrementViews(ctx, id); err != nil {
		h.logger.Warn("Failed to increment views",
			slog.String("job_id", id),
			slog.String("error", err.Error()),
		)
	}
}

// publishEvent emits a lifecycle event without blocking the response. A
// broker outage degrades to a warning.
func (h *JobHandler) publishEvent(event string, job *model.Job) {
	if h.events == nil {
		return
	}

	body, err := json.Marshal(domain.JobEvent{
		Event:    event,
		JobID:    job.ID,
		Status:   job.Status,
		Deadline: job.ApplicationDeadline,
	})
	if err != nil {
		h.logger.Error("Failed to marshal job event", slog.String("error", err.Error()))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()

		if err := h.events.Publish(ctx, body, "application/json"); err != nil {
			h.logger.Warn("Failed to publish job event",
				slog.String("event", event),
				slog.String("job_id", job.ID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// serverError writes a 500 envelope, exposing the cause outside
// production only.
func (h *JobHandler) serverError(c *gin.Context, message string, err error) {
	h.logger.Error(message, slog.String("error", err.Error()))

	body := gin.H{"success": false, "message": message}
	if h.environment != "production" {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

func toJobDTO(job *model.Job, now time.Time) dto.JobDTO {
	d := dto.JobDTO{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Logo:         job.Logo,
		Description:  job.Description,
		Experience:   job.Experience,
		Location:     job.Location,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		JobType:      job.JobType,
		Status:       job.Status,
		Views:        job.Views,
		Applications: job.Applications,
		CreatedAt:    job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    job.UpdatedAt.Format(time.RFC3339),
		PostedTime:   job.PostedTime(now),
		Salary:       job.DisplaySalary(),
	}
	if job.ApplicationDeadline != nil {
		d.ApplicationDeadline = job.ApplicationDeadline.Format(time.RFC3339)
	}
	return d
}

func toJobDTOs(jobs []model.Job, now time.Time) []dto.JobDTO {
	out := make([]dto.JobDTO, len(jobs))
	for i := range jobs {
		out[i] = toJobDTO(&jobs[i], now)
	}
	return out
}

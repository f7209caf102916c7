package router

import (
	"net/http"

	"github.com/cuongbtq/jobboard-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "job-board-api",
		})
	})

	jobHandler := handler.NewJobHandler(deps)

	api := r.Group("/api")
	{
		jobs := api.Group("/jobs")
		{
			// GET /api/jobs - List published jobs with filters and pagination
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/jobs/stats - registered ahead of /:id so "stats"
			// is never parsed as a job id
			jobs.GET("/stats", jobHandler.GetJobStats)

			// GET /api/jobs/:id - Get a single job (bumps views)
			jobs.GET("/:id", jobHandler.GetJob)

			// POST /api/jobs - Create a new job posting
			jobs.POST("", jobHandler.CreateJob)

			// PUT /api/jobs/:id - Partially update a job posting
			jobs.PUT("/:id", jobHandler.UpdateJob)

			// DELETE /api/jobs/:id - Hard delete a job posting
			jobs.DELETE("/:id", jobHandler.DeleteJob)
		}
	}

	return r
}

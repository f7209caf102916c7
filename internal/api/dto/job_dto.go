package dto

// ListJobsRequest carries the raw listing query parameters. Everything is
// bound as a string; the query package normalizes them into a typed filter.
type ListJobsRequest struct {
	Search    string `form:"search"`
	Location  string `form:"location"`
	JobType   string `form:"jobType"`
	SalaryMin string `form:"salaryMin"`
	SalaryMax string `form:"salaryMax"`
	Page      string `form:"page"`
	Limit     string `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

type CreateJobRequest struct {
	Title               string `json:"title" binding:"required,max=100"`
	Company             string `json:"company" binding:"required,max=100"`
	Description         string `json:"description" binding:"required"`
	Experience          string `json:"experience"`
	Location            string `json:"location" binding:"required"`
	SalaryMin           string `json:"salaryMin" binding:"required"`
	SalaryMax           string `json:"salaryMax" binding:"required"`
	JobType             string `json:"jobType" binding:"required"`
	ApplicationDeadline string `json:"applicationDeadline"`
	Status              string `json:"status" binding:"omitempty,oneof=draft published expired closed"`
}

// UpdateJobRequest is a partial update; nil means "leave unchanged".
type UpdateJobRequest struct {
	Title               *string `json:"title" binding:"omitempty,max=100"`
	Company             *string `json:"company" binding:"omitempty,max=100"`
	Description         *string `json:"description"`
	Experience          *string `json:"experience"`
	Location            *string `json:"location"`
	SalaryMin           *string `json:"salaryMin"`
	SalaryMax           *string `json:"salaryMax"`
	JobType             *string `json:"jobType"`
	ApplicationDeadline *string `json:"applicationDeadline"`
	Status              *string `json:"status" binding:"omitempty,oneof=draft published expired closed"`
}

// JobDTO is the wire representation of a posting, including the derived
// read-only fields postedTime and salary.
type JobDTO struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Company             string `json:"company"`
	Logo                string `json:"logo"`
	Description         string `json:"description"`
	Experience          string `json:"experience"`
	Location            string `json:"location"`
	SalaryMin           string `json:"salaryMin"`
	SalaryMax           string `json:"salaryMax"`
	JobType             string `json:"jobType"`
	ApplicationDeadline string `json:"applicationDeadline,omitempty"`
	Status              string `json:"status"`
	Views               int64  `json:"views"`
	Applications        int64  `json:"applications"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
	PostedTime          string `json:"postedTime"`
	Salary              string `json:"salary"`
}

type ListJobsResponse struct {
	Success     bool     `json:"success"`
	Count       int      `json:"count"`
	TotalJobs   int64    `json:"totalJobs"`
	TotalPages  int64    `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
	Data        []JobDTO `json:"data"`
}

type JobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    JobDTO `json:"data"`
}

type StatsOverviewDTO struct {
	TotalJobs         int64   `json:"totalJobs"`
	TotalViews        int64   `json:"totalViews"`
	TotalApplications int64   `json:"totalApplications"`
	AvgSalaryMin      float64 `json:"avgSalaryMin"`
	AvgSalaryMax      float64 `json:"avgSalaryMax"`
}

type TypeCountDTO struct {
	JobType string `json:"jobType"`
	Count   int64  `json:"count"`
}

type LocationCountDTO struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type StatsData struct {
	Overview       StatsOverviewDTO   `json:"overview"`
	JobsByType     []TypeCountDTO     `json:"jobsByType"`
	JobsByLocation []LocationCountDTO `json:"jobsByLocation"`
}

type StatsResponse struct {
	Success bool      `json:"success"`
	Data    StatsData `json:"data"`
}

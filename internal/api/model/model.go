package model

import (
	"fmt"
	"time"
)

// Job is a single posting as stored in the jobs table.
type Job struct {
	ID                  string     `db:"id"`
	Title               string     `db:"title"`
	Company             string     `db:"company"`
	Logo                string     `db:"logo"`
	Description         string     `db:"description"`
	Experience          string     `db:"experience"`
	Location            string     `db:"location"`
	SalaryMin           string     `db:"salary_min"`
	SalaryMax           string     `db:"salary_max"`
	JobType             string     `db:"job_type"`
	ApplicationDeadline *time.Time `db:"application_deadline"`
	Status              string     `db:"status"`
	Views               int64      `db:"views"`
	Applications        int64      `db:"applications"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// PostedTime buckets the record age for display: "Just now" under an
// hour, hours under a day, whole days otherwise.
func (j *Job) PostedTime(now time.Time) string {
	hours := int(now.Sub(j.CreatedAt).Hours())
	days := hours / 24

	if days > 0 {
		return fmt.Sprintf("%dd Ago", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh Ago", hours)
	}
	return "Just now"
}

// DisplaySalary is the presentation salary: the max bound when present,
// the min bound as a fallback, otherwise a fixed placeholder.
func (j *Job) DisplaySalary() string {
	if j.SalaryMax != "" {
		return j.SalaryMax
	}
	if j.SalaryMin != "" {
		return j.SalaryMin
	}
	return "Not specified"
}

// StatsOverview summarizes the published subset of postings. Averages
// cover only rows whose salary text parses numerically and are zero when
// no row does.
type StatsOverview struct {
	TotalJobs         int64   `db:"total_jobs"`
	TotalViews        int64   `db:"total_views"`
	TotalApplications int64   `db:"total_applications"`
	AvgSalaryMin      float64 `db:"avg_salary_min"`
	AvgSalaryMax      float64 `db:"avg_salary_max"`
}

// TypeCount is the number of published postings for one job type.
type TypeCount struct {
	JobType string `db:"job_type"`
	Count   int64  `db:"count"`
}

// LocationCount is the number of published postings in one location.
type LocationCount struct {
	Location string `db:"location"`
	Count    int64  `db:"count"`
}

// Stats bundles the aggregation results returned by the stats endpoint.
type Stats struct {
	Overview   StatsOverview
	ByType     []TypeCount
	ByLocation []LocationCount
}

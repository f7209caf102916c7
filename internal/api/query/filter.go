package query

import (
	"strconv"
	"strings"

	"github.com/cuongbtq/jobboard-be/internal/api/dto"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSortKey is used when sortBy is absent or not in the allow-list.
const DefaultSortKey = "createdAt"

// sortColumns is the allow-list of sortable keys mapped to their jobs
// table columns. Anything else falls back to DefaultSortKey.
var sortColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"title":        "title",
	"company":      "company",
	"location":     "location",
	"jobType":      "job_type",
	"salaryMin":    "salary_min",
	"salaryMax":    "salary_max",
	"views":        "views",
	"applications": "applications",
}

// Filter is the normalized, typed form of the listing query parameters.
type Filter struct {
	Search     string
	Location   string
	JobType    string
	SalaryMin  *int64
	SalaryMax  *int64
	Page       int
	Limit      int
	SortColumn string
	Descending bool
}

// Offset is the number of records skipped for the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Normalize converts raw string query parameters into a Filter. It never
// fails: unparseable page/limit values clamp to their defaults, unknown
// sort keys fall back to created_at, and non-numeric salary bounds are
// dropped. Location and job type are lowercased to match the stored form.
func Normalize(req dto.ListJobsRequest) Filter {
	f := Filter{
		Search:     strings.TrimSpace(req.Search),
		Location:   strings.ToLower(strings.TrimSpace(req.Location)),
		JobType:    strings.ToLower(strings.TrimSpace(req.JobType)),
		Page:       parsePositive(req.Page, DefaultPage),
		Limit:      parsePositive(req.Limit, DefaultLimit),
		Descending: true,
	}

	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(req.SalaryMin), 10, 64); err == nil {
		f.SalaryMin = &v
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(req.SalaryMax), 10, 64); err == nil {
		f.SalaryMax = &v
	}

	sortBy := req.SortBy
	if _, ok := sortColumns[sortBy]; !ok {
		sortBy = DefaultSortKey
	}
	f.SortColumn = sortColumns[sortBy]

	if strings.EqualFold(strings.TrimSpace(req.SortOrder), "asc") {
		f.Descending = false
	}

	return f
}

// parsePositive parses s as a positive integer, falling back to def for
// anything non-numeric or non-positive so pagination can never go
// negative.
func parsePositive(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cuongbtq/jobboard-be/internal/api/domain"
	"github.com/cuongbtq/jobboard-be/internal/api/dto"
	"github.com/cuongbtq/jobboard-be/internal/api/model"
	"github.com/cuongbtq/jobboard-be/internal/api/storage"
	"github.com/go-playground/validator/v10"
)

// fieldLabels maps request struct fields to the labels used in
// client-facing validation messages.
var fieldLabels = map[string]string{
	"Title":               "Job title",
	"Company":             "Company name",
	"Description":         "Job description",
	"Location":            "Location",
	"SalaryMin":           "Minimum salary",
	"SalaryMax":           "Maximum salary",
	"JobType":             "Job type",
	"Status":              "Status",
	"ApplicationDeadline": "Application deadline",
	"Experience":          "Experience",
}

// validationMessages turns a gin binding error into per-field messages.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.StructField()]
	if !ok {
		label = fe.StructField()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// jobFromCreateRequest normalizes a create request into a Job: fields are
// trimmed, location and job type lowercased, defaults applied. Returned
// messages are non-empty when a required field is blank after trimming or
// the deadline is not strictly in the future.
func jobFromCreateRequest(req *dto.CreateJobRequest, now time.Time) (*model.Job, []string) {
	var msgs []string

	job := &model.Job{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Description: strings.TrimSpace(req.Description),
		Experience:  strings.TrimSpace(req.Experience),
		Location:    strings.ToLower(strings.TrimSpace(req.Location)),
		SalaryMin:   strings.TrimSpace(req.SalaryMin),
		SalaryMax:   strings.TrimSpace(req.SalaryMax),
		JobType:     strings.ToLower(strings.TrimSpace(req.JobType)),
		Status:      req.Status,
	}

	if job.Title == "" {
		msgs = append(msgs, "Job title is required")
	}
	if job.Company == "" {
		msgs = append(msgs, "Company name is required")
	}
	if job.Description == "" {
		msgs = append(msgs, "Job description is required")
	}
	if job.Location == "" {
		msgs = append(msgs, "Location is required")
	}
	if job.SalaryMin == "" {
		msgs = append(msgs, "Minimum salary is required")
	}
	if job.SalaryMax == "" {
		msgs = append(msgs, "Maximum salary is required")
	}
	if job.JobType == "" {
		msgs = append(msgs, "Job type is required")
	}

	if job.Experience == "" {
		job.Experience = domain.DefaultExperience
	}
	if job.Status == "" {
		job.Status = domain.StatusPublished
	}

	if deadline, msg := parseDeadline(req.ApplicationDeadline, now); msg != "" {
		msgs = append(msgs, msg)
	} else {
		job.ApplicationDeadline = deadline
	}

	return job, msgs
}

// patchFromUpdateRequest normalizes an update request into a storage
// patch. The logo is re-derived whenever the company is part of the
// patch so both land in the same write.
func patchFromUpdateRequest(req *dto.UpdateJobRequest, now time.Time) (storage.JobPatch, []string) {
	var (
		patch storage.JobPatch
		msgs  []string
	)

	trimmed := func(raw *string, label string) *string {
		if raw == nil {
			return nil
		}
		v := strings.TrimSpace(*raw)
		if v == "" {
			msgs = append(msgs, fmt.Sprintf("%s cannot be empty", label))
			return nil
		}
		return &v
	}

	patch.Title = trimmed(req.Title, "Job title")
	patch.Description = trimmed(req.Description, "Job description")
	patch.Experience = trimmed(req.Experience, "Experience")
	patch.SalaryMin = trimmed(req.SalaryMin, "Minimum salary")
	patch.SalaryMax = trimmed(req.SalaryMax, "Maximum salary")

	if company := trimmed(req.Company, "Company name"); company != nil {
		logo := domain.DeriveLogo(*company)
		patch.Company = company
		patch.Logo = &logo
	}

	if location := trimmed(req.Location, "Location"); location != nil {
		v := strings.ToLower(*location)
		patch.Location = &v
	}

	if jobType := trimmed(req.JobType, "Job type"); jobType != nil {
		v := strings.ToLower(*jobType)
		patch.JobType = &v
	}

	if req.Status != nil {
		patch.Status = req.Status
	}

	if req.ApplicationDeadline != nil {
		if deadline, msg := parseDeadline(*req.ApplicationDeadline, now); msg != "" {
			msgs = append(msgs, msg)
		} else {
			patch.ApplicationDeadline = deadline
		}
	}

	return patch, msgs
}

// parseDeadline parses an optional RFC3339 deadline and enforces that it
// lies strictly in the future.
func parseDeadline(raw string, now time.Time) (*time.Time, string) {
	if raw == "" {
		return nil, ""
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, "Application deadline must be a valid date"
	}
	if !t.After(now) {
		return nil, "Application deadline must be in the future"
	}
	return &t, ""
}

package domain

import "time"

// Event names published to the broker on every job mutation.
const (
	EventJobCreated = "job.created"
	EventJobUpdated = "job.updated"
	EventJobDeleted = "job.deleted"
)

// JobEvent is the message body published on job mutations. The sweeper
// service consumes these to expire postings whose deadline has passed.
type JobEvent struct {
	Event    string     `json:"event"`
	JobID    string     `json:"job_id"`
	Status   string     `json:"status,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

package domain

import (
	"errors"
	"time"
)

// Posting statuses the sweeper acts on.
const (
	StatusPublished = "published"
	StatusExpired   = "expired"
)

var (
	// ErrJobNotFound is returned when the posting no longer exists.
	ErrJobNotFound = errors.New("job not found")
)

// Job is the slice of a posting the sweeper cares about.
type Job struct {
	ID                  string     `db:"id"`
	Status              string     `db:"status"`
	ApplicationDeadline *time.Time `db:"application_deadline"`
}

// DeadlinePassed reports whether the posting is due for expiry: it is
// published, has a deadline, and the deadline is not in the future.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Status == StatusPublished &&
		j.ApplicationDeadline != nil &&
		!j.ApplicationDeadline.After(now)
}

// EventMessage is a job lifecycle event pulled off the queue.
type EventMessage struct {
	Event       string `json:"event"`
	JobID       string `json:"job_id"`
	DeliveryTag uint64 `json:"-"`
}

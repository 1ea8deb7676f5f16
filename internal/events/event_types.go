package events

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobPosted            EventType = "job_posted"
	EventJobUpdated           EventType = "job_updated"
	EventJobDeleted           EventType = "job_deleted"
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationDeleted   EventType = "application_deleted"
	EventResumeOrphaned       EventType = "resume_orphaned"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// JobPayload accompanies job events.
type JobPayload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Expired  bool   `json:"expired"`
}

// ApplicationPayload accompanies application events.
type ApplicationPayload struct {
	JobID          string `json:"job_id"`
	ResumePublicID string `json:"resume_public_id"`
}

package domain

import "time"

// Resume points at a file held by the external file store.
type Resume struct {
	URL      string
	PublicID string
}

// Application is a JobSeeker's submission to a Job. It is never edited.
// JobID may reference a Job that has since been deleted.
type Application struct {
	ID          string
	JobID       string
	ApplicantID string
	Name        string
	Email       string
	Phone       string
	Address     string
	CoverLetter string
	Resume      Resume
	CreatedAt   time.Time
}

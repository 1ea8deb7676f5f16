package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// CreateJobRequest payload. Exactly one of fixedSalary or salaryFrom/salaryTo is set.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Location    string `json:"location"`
	FixedSalary *int64 `json:"fixedSalary"`
	SalaryFrom  *int64 `json:"salaryFrom"`
	SalaryTo    *int64 `json:"salaryTo"`
	Expired     bool   `json:"expired"`
}

// UpdateJobRequest payload; absent fields are left unchanged.
type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Location    *string `json:"location"`
	FixedSalary *int64  `json:"fixedSalary"`
	SalaryFrom  *int64  `json:"salaryFrom"`
	SalaryTo    *int64  `json:"salaryTo"`
	Expired     *bool   `json:"expired"`
}

// HasSalary reports whether the update touches the salary.
func (r UpdateJobRequest) HasSalary() bool {
	return r.FixedSalary != nil || r.SalaryFrom != nil || r.SalaryTo != nil
}

// JobResponse is the wire form of a job.
type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Location    string    `json:"location"`
	FixedSalary *int64    `json:"fixedSalary,omitempty"`
	SalaryFrom  *int64    `json:"salaryFrom,omitempty"`
	SalaryTo    *int64    `json:"salaryTo,omitempty"`
	Expired     bool      `json:"expired"`
	PostedBy    string    `json:"postedBy"`
	JobPostedOn time.Time `json:"jobPostedOn"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	fixed, from, to := job.Salary.Parts()
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Country:     job.Country,
		City:        job.City,
		Location:    job.Location,
		FixedSalary: fixed,
		SalaryFrom:  from,
		SalaryTo:    to,
		Expired:     job.Expired,
		PostedBy:    job.PostedBy,
		JobPostedOn: job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

// NewJobResponses maps a slice of jobs.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}

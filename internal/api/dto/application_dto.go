package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/service"
)

// ApplicationFormFields are the multipart text fields of a submission.
type ApplicationFormFields struct {
	JobID       string `form:"jobId"`
	Name        string `form:"name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
	CoverLetter string `form:"coverLetter"`
}

// ResumeResponse points at the stored resume.
type ResumeResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ApplicationResponse is the wire form of an application. Job is null once the
// job has been deleted.
type ApplicationResponse struct {
	ID          string         `json:"id"`
	JobID       string         `json:"jobId"`
	ApplicantID string         `json:"applicantId"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	CoverLetter string         `json:"coverLetter"`
	Resume      ResumeResponse `json:"resume"`
	CreatedAt   time.Time      `json:"createdAt"`
	Job         *JobResponse   `json:"job"`
}

// NewApplicationResponse maps a service view.
func NewApplicationResponse(view service.ApplicationView) ApplicationResponse {
	app := view.Application
	resp := ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		Name:        app.Name,
		Email:       app.Email,
		Phone:       app.Phone,
		Address:     app.Address,
		CoverLetter: app.CoverLetter,
		Resume:      ResumeResponse{URL: app.Resume.URL, PublicID: app.Resume.PublicID},
		CreatedAt:   app.CreatedAt,
	}
	if view.Job != nil {
		job := NewJobResponse(view.Job)
		resp.Job = &job
	}
	return resp
}

// NewApplicationResponses maps a slice of views.
func NewApplicationResponses(views []service.ApplicationView) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewApplicationResponse(v))
	}
	return out
}

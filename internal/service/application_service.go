package service

import (
	"context"
	"errors"
	"io"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/filestore"
	"github.com/spec-kit/job-board/internal/policy"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// ApplicationService coordinates job applications.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	files        filestore.Store
	allowedTypes map[string]struct{}
	publisher
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo  repository.ApplicationRepository
	JobRepo          repository.JobRepository
	FileStore        filestore.Store
	AllowedMimeTypes []string
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// ApplicationInput holds the applicant's form fields.
type ApplicationInput struct {
	JobID       string
	Name        string
	Email       string
	Phone       string
	Address     string
	CoverLetter string
}

// ResumeUpload is the file attached to a submission.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ApplicationView pairs an application with its job. Job is nil once the job is deleted.
type ApplicationView struct {
	Application domain.Application
	Job         *domain.Job
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	allowed := make(map[string]struct{}, len(deps.AllowedMimeTypes))
	for _, t := range deps.AllowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		files:        deps.FileStore,
		allowedTypes: allowed,
		publisher:    publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Submit uploads the resume and then records the application. A failed upload leaves
// no application behind.
func (s *ApplicationService) Submit(ctx context.Context, actor policy.Actor, input ApplicationInput, resume *ResumeUpload) (*domain.Application, error) {
	if err := policy.Authorize(actor, policy.PostApplication, ""); err != nil {
		return nil, err
	}
	app := &domain.Application{
		JobID:       strings.TrimSpace(input.JobID),
		ApplicantID: actor.ID,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Address:     strings.TrimSpace(input.Address),
		CoverLetter: strings.TrimSpace(input.CoverLetter),
	}
	if missing := missingApplicationFields(app); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please fill all fields", map[string]any{"missing": missing})
	}
	if _, err := mail.ParseAddress(app.Email); err != nil {
		return nil, apperrors.NewValidationError("please provide a valid email", map[string]any{"email": app.Email})
	}
	if resume == nil || resume.Body == nil {
		return nil, apperrors.NewValidationError("resume file required", nil)
	}
	if !s.typeAllowed(resume.ContentType) {
		return nil, apperrors.NewValidationError("invalid file type", map[string]any{"content_type": resume.ContentType})
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}
	if job.Expired {
		return nil, apperrors.NewValidationError("job is expired and no longer accepts applications", nil)
	}

	stored, err := s.files.Upload(ctx, resume.Filename, resume.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("failed to upload resume", err)
	}
	app.Resume = stored

	if err := s.applications.Create(ctx, app); err != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventResumeOrphaned,
			Actor:   eventActor(actor),
			Payload: events.ApplicationPayload{JobID: app.JobID, ResumePublicID: stored.PublicID},
		})
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventApplicationSubmitted,
		ResourceID: app.ID,
		Actor:      eventActor(actor),
		Payload:    events.ApplicationPayload{JobID: app.JobID, ResumePublicID: stored.PublicID},
	})
	return app, nil
}

// ListForEmployer returns applications to jobs the acting employer owns.
func (s *ApplicationService) ListForEmployer(ctx context.Context, actor policy.Actor) ([]ApplicationView, error) {
	if err := policy.AuthorizeRole(actor, policy.ListEmployerApplications); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJobOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, apps)
}

// ListForJobSeeker returns applications created by the acting job seeker.
func (s *ApplicationService) ListForJobSeeker(ctx context.Context, actor policy.Actor) ([]ApplicationView, error) {
	if err := policy.AuthorizeRole(actor, policy.ListJobSeekerApplications); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, apps)
}

// Delete removes an application created by the acting job seeker. The resume is
// removed from the file store asynchronously.
func (s *ApplicationService) Delete(ctx context.Context, actor policy.Actor, applicationID string) error {
	if err := policy.AuthorizeRole(actor, policy.DeleteApplication); err != nil {
		return err
	}
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return notFoundOr(err, "application")
	}
	if err := policy.Authorize(actor, policy.DeleteApplication, app.ApplicantID); err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, app.ID); err != nil {
		return notFoundOr(err, "application")
	}
	s.publish(ctx, events.Event{
		Type:       events.EventApplicationDeleted,
		ResourceID: app.ID,
		Actor:      eventActor(actor),
		Payload:    events.ApplicationPayload{JobID: app.JobID, ResumePublicID: app.Resume.PublicID},
	})
	return nil
}

// withJobs attaches each application's job, tolerating jobs that no longer exist.
func (s *ApplicationService) withJobs(ctx context.Context, apps []domain.Application) ([]ApplicationView, error) {
	cache := make(map[string]*domain.Job)
	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		job, seen := cache[app.JobID]
		if !seen {
			found, err := s.jobs.GetByID(ctx, app.JobID)
			switch {
			case err == nil:
				job = found
			case errors.Is(err, repository.ErrNotFound):
				job = nil
			default:
				return nil, err
			}
			cache[app.JobID] = job
		}
		views = append(views, ApplicationView{Application: app, Job: job})
	}
	return views, nil
}

func (s *ApplicationService) typeAllowed(contentType string) bool {
	if len(s.allowedTypes) == 0 {
		return true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	_, ok := s.allowedTypes[mediaType]
	return ok
}

func missingApplicationFields(app *domain.Application) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"jobId", app.JobID},
		{"name", app.Name},
		{"email", app.Email},
		{"phone", app.Phone},
		{"address", app.Address},
		{"coverLetter", app.CoverLetter},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/policy"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// JobService coordinates job postings.
type JobService struct {
	jobs repository.JobRepository
	publisher
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// JobInput describes a new posting.
type JobInput struct {
	Title       string
	Description string
	Category    string
	Country     string
	City        string
	Location    string
	Salary      domain.Salary
	Expired     bool
}

// JobPatch carries the fields to change; nil fields are left untouched.
// Setting Salary replaces the whole variant, so switching fixed <-> range clears the other form.
type JobPatch struct {
	Title       *string
	Description *string
	Category    *string
	Country     *string
	City        *string
	Location    *string
	Salary      *domain.Salary
	Expired     *bool
}

// Empty reports whether the patch changes nothing.
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Country == nil &&
		p.City == nil && p.Location == nil && p.Salary == nil && p.Expired == nil
}

// JobListFilter describes public listing filters.
type JobListFilter struct {
	Category   string
	SearchTerm string
	Expired    *bool
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:      deps.JobRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Create persists a new Job owned by the acting employer.
func (s *JobService) Create(ctx context.Context, actor policy.Actor, input JobInput) (*domain.Job, error) {
	if err := policy.Authorize(actor, policy.PostJob, ""); err != nil {
		return nil, err
	}
	job := &domain.Job{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Country:     strings.TrimSpace(input.Country),
		City:        strings.TrimSpace(input.City),
		Location:    strings.TrimSpace(input.Location),
		Salary:      input.Salary,
		Expired:     input.Expired,
		PostedBy:    actor.ID,
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:       events.EventJobPosted,
		ResourceID: job.ID,
		Actor:      eventActor(actor),
		Payload:    jobPayload(job),
	})
	return job, nil
}

// ListAll returns every job matching the filter, newest first. No identity is required.
func (s *JobService) ListAll(ctx context.Context, filter JobListFilter) ([]domain.Job, error) {
	repoFilter := repository.JobFilter{Expired: filter.Expired}
	if c := strings.TrimSpace(filter.Category); c != "" {
		repoFilter.Category = &c
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		repoFilter.SearchTerm = &term
	}
	return s.jobs.List(ctx, repoFilter)
}

// GetOne fetches a single job.
func (s *JobService) GetOne(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}
	return job, nil
}

// ListMine returns the jobs posted by the acting employer.
func (s *JobService) ListMine(ctx context.Context, actor policy.Actor) ([]domain.Job, error) {
	if err := policy.AuthorizeRole(actor, policy.ListOwnJobs); err != nil {
		return nil, err
	}
	owner := actor.ID
	return s.jobs.List(ctx, repository.JobFilter{PostedBy: &owner})
}

// Update merges patch into the job when the actor owns it.
func (s *JobService) Update(ctx context.Context, actor policy.Actor, jobID string, patch JobPatch) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, actor, policy.UpdateJob, jobID)
	if err != nil {
		return nil, err
	}
	applyJobPatch(job, patch)
	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, notFoundOr(err, "job")
	}
	s.publish(ctx, events.Event{
		Type:       events.EventJobUpdated,
		ResourceID: job.ID,
		Actor:      eventActor(actor),
		Payload:    jobPayload(job),
	})
	return job, nil
}

// Delete removes the job when the actor owns it. Applications to it are kept.
func (s *JobService) Delete(ctx context.Context, actor policy.Actor, jobID string) error {
	job, err := s.ownedJob(ctx, actor, policy.DeleteJob, jobID)
	if err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return notFoundOr(err, "job")
	}
	s.publish(ctx, events.Event{
		Type:       events.EventJobDeleted,
		ResourceID: job.ID,
		Actor:      eventActor(actor),
		Payload:    jobPayload(job),
	})
	return nil
}

func (s *JobService) ownedJob(ctx context.Context, actor policy.Actor, op policy.Operation, jobID string) (*domain.Job, error) {
	if err := policy.AuthorizeRole(actor, op); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}
	if err := policy.Authorize(actor, op, job.PostedBy); err != nil {
		return nil, err
	}
	return job, nil
}

func applyJobPatch(job *domain.Job, patch JobPatch) {
	setTrimmed(&job.Title, patch.Title)
	setTrimmed(&job.Description, patch.Description)
	setTrimmed(&job.Category, patch.Category)
	setTrimmed(&job.Country, patch.Country)
	setTrimmed(&job.City, patch.City)
	setTrimmed(&job.Location, patch.Location)
	if patch.Salary != nil {
		job.Salary = *patch.Salary
	}
	if patch.Expired != nil {
		job.Expired = *patch.Expired
	}
}

func setTrimmed(dst *string, val *string) {
	if val != nil {
		*dst = strings.TrimSpace(*val)
	}
}

func validateJob(job *domain.Job) error {
	if missing := job.MissingFields(); len(missing) > 0 {
		return apperrors.NewValidationError("please provide full job details", map[string]any{"missing": missing})
	}
	if err := job.Salary.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return nil
}

func jobPayload(job *domain.Job) events.JobPayload {
	return events.JobPayload{Title: job.Title, Category: job.Category, Expired: job.Expired}
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/policy"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

type fakeFileStore struct {
	mu       sync.Mutex
	uploads  int
	deleted  []string
	failNext bool
}

func (f *fakeFileStore) Upload(_ context.Context, filename string, body io.Reader) (domain.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return domain.Resume{}, errors.New("upload refused")
	}
	if _, err := io.ReadAll(body); err != nil {
		return domain.Resume{}, err
	}
	f.uploads++
	id := "resumes/" + filename
	return domain.Resume{URL: "https://files.example.com/" + id, PublicID: id}, nil
}

func (f *fakeFileStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fixture struct {
	store        *repository.MemoryStore
	files        *fakeFileStore
	dispatcher   events.Dispatcher
	published    []events.Event
	jobs         *JobService
	applications *ApplicationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:      repository.NewMemoryStore(),
		files:      &fakeFileStore{},
		dispatcher: events.NewInMemoryDispatcher(),
	}
	for _, et := range []events.EventType{
		events.EventJobPosted, events.EventJobUpdated, events.EventJobDeleted,
		events.EventApplicationSubmitted, events.EventApplicationDeleted, events.EventResumeOrphaned,
	} {
		f.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.jobs = NewJobService(JobDependencies{JobRepo: f.store.Jobs(), Dispatcher: f.dispatcher, Logger: zap.NewNop()})
	f.applications = NewApplicationService(ApplicationDependencies{
		ApplicationRepo:  f.store.Applications(),
		JobRepo:          f.store.Jobs(),
		FileStore:        f.files,
		AllowedMimeTypes: []string{"image/png", "image/jpeg", "image/webp"},
		Dispatcher:       f.dispatcher,
		Logger:           zap.NewNop(),
	})
	return f
}

var (
	employer1 = policy.Actor{ID: "e1", Role: domain.RoleEmployer}
	employer2 = policy.Actor{ID: "e2", Role: domain.RoleEmployer}
	seeker1   = policy.Actor{ID: "s1", Role: domain.RoleJobSeeker}
	seeker2   = policy.Actor{ID: "s2", Role: domain.RoleJobSeeker}
	anonymous = policy.Actor{}
)

func backendJob() JobInput {
	return JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the Go services behind the job board.",
		Category:    "MERN Stack Development",
		Country:     "Pakistan",
		City:        "Lahore",
		Location:    "Gulberg III, Main Boulevard",
		Salary:      domain.FixedSalary(5000),
	}
}

func (f *fixture) postJob(t *testing.T, actor policy.Actor, input JobInput) *domain.Job {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), actor, input)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func applicationInput(jobID string) ApplicationInput {
	return ApplicationInput{
		JobID:       jobID,
		Name:        "Sara",
		Email:       "sara@example.com",
		Phone:       "+92 300 0000000",
		Address:     "House 1, Street 2",
		CoverLetter: "I would like to join.",
	}
}

func pngResume(name string) *ResumeUpload {
	return &ResumeUpload{Filename: name, ContentType: "image/png", Body: strings.NewReader("\x89PNG")}
}

func (f *fixture) apply(t *testing.T, actor policy.Actor, jobID string) *domain.Application {
	t.Helper()
	app, err := f.applications.Submit(context.Background(), actor, applicationInput(jobID), pngResume(actor.ID+"-"+jobID+".png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return app
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !apperrors.IsCode(err, code) {
		t.Fatalf("err = %v, want %s", err, code)
	}
}

func strPtr(s string) *string { return &s }

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

func TestEmployerSeesOnlyApplicationsToOwnJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())
	app := f.apply(t, seeker1, job.ID)

	got, err := f.applications.ListForEmployer(ctx, employer1)
	if err != nil {
		t.Fatalf("list e1: %v", err)
	}
	if len(got) != 1 || got[0].Application.ID != app.ID {
		t.Fatalf("e1 got %+v", got)
	}
	if got[0].Job == nil || got[0].Job.ID != job.ID {
		t.Fatalf("job not attached: %+v", got[0])
	}

	other, err := f.applications.ListForEmployer(ctx, employer2)
	if err != nil {
		t.Fatalf("list e2: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("e2 got %+v", other)
	}
}

func TestListForEmployerMatchesOwnershipForMixedPopulation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jobs := []*domain.Job{
		f.postJob(t, employer1, backendJob()),
		f.postJob(t, employer2, backendJob()),
		f.postJob(t, employer1, backendJob()),
	}
	want := map[string]int{}
	for i, job := range jobs {
		for _, s := range []int{1, 2} {
			actor := seeker1
			if s == 2 {
				actor = seeker2
			}
			if i == 1 && s == 2 {
				continue
			}
			f.apply(t, actor, job.ID)
			want[job.PostedBy]++
		}
	}

	for _, e := range []struct {
		id    string
		count int
	}{{"e1", want["e1"]}, {"e2", want["e2"]}} {
		actor := employer1
		actor.ID = e.id
		got, err := f.applications.ListForEmployer(ctx, actor)
		if err != nil {
			t.Fatalf("list %s: %v", e.id, err)
		}
		if len(got) != e.count {
			t.Fatalf("%s: got %d, want %d", e.id, len(got), e.count)
		}
		for _, v := range got {
			if v.Job == nil || v.Job.PostedBy != e.id {
				t.Fatalf("%s received foreign application %+v", e.id, v)
			}
		}
	}
}

func TestListForEmployerRequiresEmployer(t *testing.T) {
	f := newFixture(t)
	_, err := f.applications.ListForEmployer(context.Background(), seeker1)
	assertCode(t, err, apperrors.CodeForbidden)
	_, err = f.applications.ListForJobSeeker(context.Background(), employer1)
	assertCode(t, err, apperrors.CodeForbidden)
	_, err = f.applications.ListForJobSeeker(context.Background(), anonymous)
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestDeleteApplicationScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())
	app := f.apply(t, seeker1, job.ID)

	assertCode(t, f.applications.Delete(ctx, seeker2, app.ID), apperrors.CodeForbidden)
	assertCode(t, f.applications.Delete(ctx, employer1, app.ID), apperrors.CodeForbidden)

	if err := f.applications.Delete(ctx, seeker1, app.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mine, err := f.applications.ListForJobSeeker(ctx, seeker1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("expected empty, got %+v", mine)
	}
	assertCode(t, f.applications.Delete(ctx, seeker1, app.ID), apperrors.CodeNotFound)

	last := f.published[len(f.published)-1]
	if last.Type != events.EventApplicationDeleted {
		t.Fatalf("last event = %s", last.Type)
	}
	if p, ok := last.Payload.(events.ApplicationPayload); !ok || p.ResumePublicID != app.Resume.PublicID {
		t.Fatalf("payload = %+v", last.Payload)
	}
}

func TestDeletingJobKeepsApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())
	app := f.apply(t, seeker1, job.ID)

	if err := f.jobs.Delete(ctx, employer1, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if _, err := f.store.Applications().GetByID(ctx, app.ID); err != nil {
		t.Fatalf("application was removed with its job: %v", err)
	}

	mine, err := f.applications.ListForJobSeeker(ctx, seeker1)
	if err != nil {
		t.Fatalf("list after job delete: %v", err)
	}
	if len(mine) != 1 || mine[0].Application.ID != app.ID || mine[0].Job != nil {
		t.Fatalf("got %+v", mine)
	}
	if err := f.applications.Delete(ctx, seeker1, app.ID); err != nil {
		t.Fatalf("delete dangling application: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())

	input := applicationInput(job.ID)
	input.CoverLetter = " "
	_, err := f.applications.Submit(ctx, seeker1, input, pngResume("a.png"))
	assertCode(t, err, apperrors.CodeValidation)

	_, err = f.applications.Submit(ctx, seeker1, applicationInput(job.ID), nil)
	assertCode(t, err, apperrors.CodeValidation)

	for _, email := range []string{"not-an-email", "sara@", "@example.com"} {
		input := applicationInput(job.ID)
		input.Email = email
		_, err = f.applications.Submit(ctx, seeker1, input, pngResume("a.png"))
		assertCode(t, err, apperrors.CodeValidation)
	}

	pdf := &ResumeUpload{Filename: "cv.exe", ContentType: "application/x-msdownload", Body: strings.NewReader("MZ")}
	_, err = f.applications.Submit(ctx, seeker1, applicationInput(job.ID), pdf)
	assertCode(t, err, apperrors.CodeValidation)

	_, err = f.applications.Submit(ctx, employer2, applicationInput(job.ID), pngResume("a.png"))
	assertCode(t, err, apperrors.CodeForbidden)

	if f.files.uploads != 0 {
		t.Fatalf("rejected submissions uploaded %d files", f.files.uploads)
	}
}

func TestSubmitToMissingOrExpiredJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, seeker1, applicationInput("missing"), pngResume("a.png"))
	assertCode(t, err, apperrors.CodeNotFound)

	input := backendJob()
	input.Expired = true
	expired := f.postJob(t, employer1, input)
	_, err = f.applications.Submit(ctx, seeker1, applicationInput(expired.ID), pngResume("a.png"))
	assertCode(t, err, apperrors.CodeValidation)
}

func TestSubmitUploadFailureLeavesNoApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())
	f.files.failNext = true

	_, err := f.applications.Submit(ctx, seeker1, applicationInput(job.ID), pngResume("a.png"))
	assertCode(t, err, apperrors.CodeUpstream)

	mine, _ := f.store.Applications().ListByApplicant(ctx, seeker1.ID)
	if len(mine) != 0 {
		t.Fatalf("partial state left behind: %+v", mine)
	}
}

type failingApplications struct {
	repository.ApplicationRepository
}

func (failingApplications) Create(context.Context, *domain.Application) error {
	return context.DeadlineExceeded
}

func TestSubmitPersistFailureOrphansResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.postJob(t, employer1, backendJob())
	f.applications.applications = failingApplications{f.store.Applications()}

	if _, err := f.applications.Submit(ctx, seeker1, applicationInput(job.ID), pngResume("a.png")); err == nil {
		t.Fatal("expected persist failure")
	}
	last := f.published[len(f.published)-1]
	if last.Type != events.EventResumeOrphaned {
		t.Fatalf("last event = %s", last.Type)
	}
}

func TestSubmitAcceptsContentTypeParameters(t *testing.T) {
	f := newFixture(t)
	job := f.postJob(t, employer1, backendJob())
	upload := &ResumeUpload{Filename: "cv.jpg", ContentType: "IMAGE/JPEG; charset=binary", Body: strings.NewReader("jpg")}
	app, err := f.applications.Submit(context.Background(), seeker1, applicationInput(job.ID), upload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Resume.PublicID == "" || app.Resume.URL == "" || app.ApplicantID != seeker1.ID || app.JobID != job.ID {
		t.Fatalf("app = %+v", app)
	}
}

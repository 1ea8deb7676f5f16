package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/persistence"
)

// newTestPool connects to POSTGRES_DSN and applies migrations, or skips.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := persistence.RunMigrations(pool, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if acquired := pool.Stat().AcquiredConns(); acquired != 0 {
		t.Fatalf("migrations left %d connections checked out", acquired)
	}
	return pool
}

func createTestUser(t *testing.T, users UserRepository, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		Phone:        "03001234567",
		PasswordHash: "hash",
		Role:         role,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestJob(t *testing.T, jobs JobRepository, owner, title string) *domain.Job {
	t.Helper()
	job := &domain.Job{
		Title:       title,
		Description: "Ship features on the Go backend.",
		Category:    "MERN Stack Development",
		Country:     "Pakistan",
		City:        "Lahore",
		Location:    "Gulberg III",
		Salary:      domain.RangeSalary(4000, 7000),
		PostedBy:    owner,
	}
	if err := jobs.Create(context.Background(), job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func TestPostgresUsers(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()

	user := createTestUser(t, users, domain.RoleEmployer)
	dup := *user
	if err := users.Create(ctx, &dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate create err = %v", err)
	}
	got, err := users.GetByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID || got.Role != domain.RoleEmployer {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
	if _, err := users.GetByID(ctx, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed id err = %v", err)
	}
}

func TestPostgresJobs(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	jobs := NewJobRepository(pool)
	ctx := context.Background()

	owner := createTestUser(t, users, domain.RoleEmployer)
	remote := createTestJob(t, jobs, owner.ID, "100% Remote Engineer")
	backend := createTestJob(t, jobs, owner.ID, "Backend Engineer")

	got, err := jobs.GetByID(ctx, remote.ID)
	if err != nil || got.Salary != domain.RangeSalary(4000, 7000) || got.PostedBy != owner.ID {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		if _, err := jobs.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetByID(%q) err = %v", id, err)
		}
	}

	for term, want := range map[string]int{"%": 1, "_": 0, "engineer": 2} {
		term := term
		list, err := jobs.List(ctx, JobFilter{PostedBy: &owner.ID, SearchTerm: &term})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != want {
			t.Errorf("search %q: got %v, want %d", term, titles(list), want)
		}
	}

	backend.Salary = domain.FixedSalary(9000)
	backend.City = "Karachi"
	if err := jobs.Update(ctx, backend); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = jobs.GetByID(ctx, backend.ID)
	if got.Salary != domain.FixedSalary(9000) || got.City != "Karachi" {
		t.Fatalf("after update = %+v", got)
	}

	if err := jobs.Delete(ctx, backend.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := jobs.Delete(ctx, backend.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestPostgresApplicationsByJobOwner(t *testing.T) {
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	jobs := NewJobRepository(pool)
	applications := NewApplicationRepository(pool)
	ctx := context.Background()

	owner := createTestUser(t, users, domain.RoleEmployer)
	other := createTestUser(t, users, domain.RoleEmployer)
	seeker := createTestUser(t, users, domain.RoleJobSeeker)
	ownJob := createTestJob(t, jobs, owner.ID, "Backend Engineer")
	otherJob := createTestJob(t, jobs, other.ID, "Designer")

	apply := func(jobID string) *domain.Application {
		app := &domain.Application{
			JobID:       jobID,
			ApplicantID: seeker.ID,
			Name:        "Sara",
			Email:       "sara@example.com",
			Phone:       "03000000000",
			Address:     "House 1",
			CoverLetter: "Hello",
			Resume:      domain.Resume{URL: "https://files.example.com/cv.png", PublicID: "resumes/cv"},
		}
		if err := applications.Create(ctx, app); err != nil {
			t.Fatalf("create application: %v", err)
		}
		return app
	}
	mine := apply(ownJob.ID)
	apply(otherJob.ID)

	owned, err := applications.ListByJobOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != mine.ID || owned[0].Resume.PublicID != "resumes/cv" {
		t.Fatalf("owner sees %+v", owned)
	}

	if err := jobs.Delete(ctx, ownJob.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	owned, _ = applications.ListByJobOwner(ctx, owner.ID)
	if len(owned) != 0 {
		t.Fatalf("owner still sees %d applications to a deleted job", len(owned))
	}
	byApplicant, _ := applications.ListByApplicant(ctx, seeker.ID)
	if len(byApplicant) != 2 {
		t.Fatalf("applicant sees %d applications, want 2", len(byApplicant))
	}

	if _, err := applications.GetByID(ctx, "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("malformed id err = %v", err)
	}
	if err := applications.Delete(ctx, mine.ID); err != nil {
		t.Fatalf("delete application: %v", err)
	}
	if _, err := applications.GetByID(ctx, mine.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted application err = %v", err)
	}
}

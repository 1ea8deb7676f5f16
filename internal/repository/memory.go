package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-board/internal/domain"
)

// MemoryStore keeps users, jobs and applications in process memory. It backs the
// service when no POSTGRES_DSN is configured and in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	jobs         map[string]domain.Job
	applications map[string]domain.Application
	seq          int64
	now          func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]domain.User),
		jobs:         make(map[string]domain.Job),
		applications: make(map[string]domain.Application),
		now:          time.Now,
	}
}

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Jobs exposes the store as a JobRepository.
func (s *MemoryStore) Jobs() JobRepository { return memoryJobs{s} }

// Applications exposes the store as an ApplicationRepository.
func (s *MemoryStore) Applications() ApplicationRepository { return memoryApplications{s} }

// stamp returns a strictly increasing timestamp so creation order is total.
func (s *MemoryStore) stamp() time.Time {
	s.seq++
	return s.now().Add(time.Duration(s.seq) * time.Microsecond)
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.s.stamp()
	r.s.users[user.ID] = *user
	return nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

type memoryJobs struct{ s *MemoryStore }

func (r memoryJobs) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job.ID = uuid.NewString()
	job.CreatedAt = r.s.stamp()
	job.UpdatedAt = job.CreatedAt
	r.s.jobs[job.ID] = *job
	return nil
}

func (r memoryJobs) Update(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.jobs[job.ID]
	if !ok {
		return ErrNotFound
	}
	// ownership and creation time are not writable
	job.PostedBy = existing.PostedBy
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = r.s.stamp()
	r.s.jobs[job.ID] = *job
	return nil
}

func (r memoryJobs) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.jobs, id)
	return nil
}

func (r memoryJobs) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (r memoryJobs) List(_ context.Context, filter JobFilter) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var search string
	if filter.SearchTerm != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	}
	result := []domain.Job{}
	for _, job := range r.s.jobs {
		if filter.PostedBy != nil && job.PostedBy != *filter.PostedBy {
			continue
		}
		if filter.Category != nil && strings.TrimSpace(*filter.Category) != "" && job.Category != strings.TrimSpace(*filter.Category) {
			continue
		}
		if filter.Expired != nil && job.Expired != *filter.Expired {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.Description), search) {
			continue
		}
		result = append(result, job)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

type memoryApplications struct{ s *MemoryStore }

func (r memoryApplications) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app.ID = uuid.NewString()
	app.CreatedAt = r.s.stamp()
	r.s.applications[app.ID] = *app
	return nil
}

func (r memoryApplications) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &app, nil
}

func (r memoryApplications) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.applications, id)
	return nil
}

func (r memoryApplications) ListByApplicant(_ context.Context, applicantID string) ([]domain.Application, error) {
	return r.filter(func(app domain.Application) bool { return app.ApplicantID == applicantID }), nil
}

func (r memoryApplications) ListByJobOwner(_ context.Context, ownerID string) ([]domain.Application, error) {
	return r.filter(func(app domain.Application) bool {
		job, ok := r.s.jobs[app.JobID]
		return ok && job.PostedBy == ownerID
	}), nil
}

func (r memoryApplications) filter(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Application{}
	for _, app := range r.s.applications {
		if keep(app) {
			result = append(result, app)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

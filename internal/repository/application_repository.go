package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	// ListByJobOwner returns applications whose job currently exists and is owned by ownerID.
	ListByJobOwner(ctx context.Context, ownerID string) ([]domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository constructs repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

type applicationRow struct {
	ID             string    `db:"id"`
	JobID          string    `db:"job_id"`
	ApplicantID    string    `db:"applicant_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	CoverLetter    string    `db:"cover_letter"`
	ResumeURL      string    `db:"resume_url"`
	ResumePublicID string    `db:"resume_public_id"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row applicationRow) toDomain() domain.Application {
	return domain.Application{
		ID:          row.ID,
		JobID:       row.JobID,
		ApplicantID: row.ApplicantID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		Address:     row.Address,
		CoverLetter: row.CoverLetter,
		Resume:      domain.Resume{URL: row.ResumeURL, PublicID: row.ResumePublicID},
		CreatedAt:   row.CreatedAt,
	}
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.name, a.email, a.phone, a.address,
               a.cover_letter, a.resume_url, a.resume_public_id, a.created_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, applicant_id, name, email, phone, address, cover_letter,
                                  resume_url, resume_public_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.Name,
		app.Email,
		app.Phone,
		app.Address,
		app.CoverLetter,
		app.Resume.URL,
		app.Resume.PublicID,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var row applicationRow
	if err := pgxscan.Get(ctx, r.pool, &row, `SELECT `+applicationColumns+` FROM applications a WHERE a.id=$1`, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, lookupErr(err)
	}
	app := row.toDomain()
	return &app, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return lookupErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a
             WHERE a.applicant_id=$1 ORDER BY a.created_at DESC, a.id DESC`
	return r.list(ctx, query, applicantID)
}

func (r *applicationRepository) ListByJobOwner(ctx context.Context, ownerID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a
             JOIN jobs j ON j.id = a.job_id
             WHERE j.posted_by=$1 ORDER BY a.created_at DESC, a.id DESC`
	return r.list(ctx, query, ownerID)
}

func (r *applicationRepository) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	var rows []applicationRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, arg); err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, row.toDomain())
	}
	return apps, nil
}

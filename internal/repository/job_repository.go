package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobFilter narrows job listings. Nil fields are ignored.
type JobFilter struct {
	PostedBy   *string
	Category   *string
	SearchTerm *string
	Expired    *bool
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

// jobRow mirrors the jobs table; the salary variant is spread over three nullable columns.
type jobRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Country     string    `db:"country"`
	City        string    `db:"city"`
	Location    string    `db:"location"`
	FixedSalary *int64    `db:"fixed_salary"`
	SalaryFrom  *int64    `db:"salary_from"`
	SalaryTo    *int64    `db:"salary_to"`
	Expired     bool      `db:"expired"`
	PostedBy    string    `db:"posted_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row jobRow) toDomain() domain.Job {
	job := domain.Job{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		Country:     row.Country,
		City:        row.City,
		Location:    row.Location,
		Expired:     row.Expired,
		PostedBy:    row.PostedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	// the table CHECK guarantees at most one form is set
	if row.FixedSalary != nil {
		job.Salary = domain.FixedSalary(*row.FixedSalary)
	} else if row.SalaryFrom != nil && row.SalaryTo != nil {
		job.Salary = domain.RangeSalary(*row.SalaryFrom, *row.SalaryTo)
	}
	return job
}

const jobColumns = `id, title, description, category, country, city, location,
               fixed_salary, salary_from, salary_to, expired, posted_by, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, category, country, city, location,
                          fixed_salary, salary_from, salary_to, expired, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	fixed, from, to := job.Salary.Parts()
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Category,
		job.Country,
		job.City,
		job.Location,
		fixed,
		from,
		to,
		job.Expired,
		job.PostedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, category=$3, country=$4, city=$5, location=$6,
            fixed_salary=$7, salary_from=$8, salary_to=$9, expired=$10, updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`
	fixed, from, to := job.Salary.Parts()
	err := r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Category,
		job.Country,
		job.City,
		job.Location,
		fixed,
		from,
		to,
		job.Expired,
		job.ID,
	).Scan(&job.UpdatedAt)
	return lookupErr(err)
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return lookupErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var row jobRow
	if err := pgxscan.Get(ctx, r.pool, &row, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, lookupErr(err)
	}
	job := row.toDomain()
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PostedBy != nil {
		args = append(args, *filter.PostedBy)
		clauses = append(clauses, fmt.Sprintf("posted_by=$%d", len(args)))
	}
	if filter.Category != nil && strings.TrimSpace(*filter.Category) != "" {
		args = append(args, strings.TrimSpace(*filter.Category))
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Expired != nil {
		args = append(args, *filter.Expired)
		clauses = append(clauses, fmt.Sprintf("expired=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, containsPattern(*filter.SearchTerm))
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(`(LOWER(title) LIKE %[1]s ESCAPE '\' OR LOWER(description) LIKE %[1]s ESCAPE '\')`, placeholder))
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY created_at DESC, id DESC`,
		jobColumns, strings.Join(clauses, " AND "))

	var rows []jobRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toDomain())
	}
	return jobs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term literally, case-folded.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

package repository

import (
	"context"
	"errors"

	"jobfinder/internal/database"
	"jobfinder/internal/domain/application"

	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationForbidden = errors.New("application owned by another user")
	ErrApplicationConflict  = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	ListByUser(ctx context.Context, userID string) ([]application.Application, error)
	// DeleteOwned removes id only when it belongs to userID. Nothing is mutated otherwise.
	DeleteOwned(ctx context.Context, id uuid.UUID, userID string) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// ApplicationColumns lists every column the repository reads or writes.
var ApplicationColumns = []string{
	"id", "clerk_user_id", "user_email", "job_title", "company", "location", "job_url", "applied_at",
}

const selectApplication = `SELECT id, clerk_user_id, user_email, job_title, company, location, job_url, applied_at
	 FROM applications`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, clerk_user_id, user_email, job_title, company, location, job_url, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, clerk_user_id, user_email, job_title, company, location, job_url, applied_at`,
		a.ID, a.ClerkUserID, a.UserEmail, a.JobTitle, a.Company, a.Location, a.JobURL, a.AppliedAt,
	)

	created, err := scanApplication(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return application.Application{}, ErrApplicationConflict
		}
		return application.Application{}, err
	}
	return created, nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID string) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		selectApplication+`
		 WHERE clerk_user_id = $1
		 ORDER BY applied_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) DeleteOwned(ctx context.Context, id uuid.UUID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	var owner string
	if err := tx.QueryRow(ctx,
		`SELECT clerk_user_id FROM applications WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&owner); err != nil {
		if database.IsNoRows(err) {
			return ErrApplicationNotFound
		}
		return err
	}
	if owner != userID {
		return ErrApplicationForbidden
	}

	affected, err := tx.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND clerk_user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrApplicationNotFound
	}
	return tx.Commit(ctx)
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	if err := row.Scan(&a.ID, &a.ClerkUserID, &a.UserEmail, &a.JobTitle, &a.Company, &a.Location, &a.JobURL, &a.AppliedAt); err != nil {
		return application.Application{}, err
	}
	a.AppliedAt = a.AppliedAt.UTC()
	return a, nil
}

var _ ApplicationRepository = (*PostgresApplicationRepository)(nil)

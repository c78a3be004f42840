package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/smartoffice/platform/internal/core/domain"
)

const pgErrUniqueViolation = "23505"

// CredentialRepository implements ports.CredentialStore on Postgres.
type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStoreUnavailable, err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// Insert stores user. The users_username_key constraint turns a concurrent
// duplicate into domain.ErrUserExists.
func (r *CredentialRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		created.ID, created.Username, created.PasswordHash, string(created.Role), created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%w: insert user: %v", domain.ErrStoreUnavailable, err)
	}
	return &created, nil
}

package repo

import (
	"context"

	dom "blogapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, username, password, email string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password, email, created_at, last_modified FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.CreatedAt, &u.LastModified)
	return u, err
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password, email, created_at, last_modified FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.CreatedAt, &u.LastModified)
	return u, err
}

// Create inserts a new user and returns it. The UNIQUE constraint on
// username makes concurrent signups with the same name lose with a
// unique-violation error instead of racing.
func (r *PGUserRepo) Create(ctx context.Context, username, password, email string) (dom.User, error) {
	query := `
		INSERT INTO users (username, password, email)
		VALUES ($1, $2, $3)
		RETURNING id, username, password, email, created_at, last_modified`
	var u dom.User
	err := r.db.QueryRow(ctx, query, username, password, email).Scan(
		&u.ID, &u.Username, &u.Password, &u.Email, &u.CreatedAt, &u.LastModified,
	)
	return u, err
}

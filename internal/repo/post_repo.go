package repo

import (
	"context"

	dom "blogapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRepo provides post persistence.
type PostRepo interface {
	Create(ctx context.Context, subject, content string) (dom.Post, error)
	GetByID(ctx context.Context, id int64) (dom.Post, error)
	// List returns posts newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]dom.Post, error)
}

// PGPostRepo implements PostRepo with Postgres.
type PGPostRepo struct {
	db *pgxpool.Pool
}

// NewPGPostRepo returns a new PGPostRepo.
func NewPGPostRepo(db *pgxpool.Pool) *PGPostRepo {
	return &PGPostRepo{db: db}
}

func (r *PGPostRepo) Create(ctx context.Context, subject, content string) (dom.Post, error) {
	query := `
		INSERT INTO posts (subject, content)
		VALUES ($1, $2)
		RETURNING id, subject, content, created_at, last_modified`
	var p dom.Post
	err := r.db.QueryRow(ctx, query, subject, content).Scan(
		&p.ID, &p.Subject, &p.Content, &p.CreatedAt, &p.LastModified,
	)
	return p, err
}

func (r *PGPostRepo) GetByID(ctx context.Context, id int64) (dom.Post, error) {
	query := `
		SELECT id, subject, content, created_at, last_modified
		FROM posts WHERE id = $1`
	var p dom.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Subject, &p.Content, &p.CreatedAt, &p.LastModified,
	)
	return p, err
}

func (r *PGPostRepo) List(ctx context.Context, limit int) ([]dom.Post, error) {
	query := `
		SELECT id, subject, content, created_at, last_modified
		FROM posts ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Post
	for rows.Next() {
		var p dom.Post
		if err := rows.Scan(&p.ID, &p.Subject, &p.Content, &p.CreatedAt, &p.LastModified); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

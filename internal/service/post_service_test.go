package service

import (
	"context"
	"testing"

	dom "blogapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostRepo struct {
	posts     []dom.Post
	lastLimit int
}

func (r *stubPostRepo) Create(_ context.Context, subject, content string) (dom.Post, error) {
	p := dom.Post{ID: int64(len(r.posts) + 1), Subject: subject, Content: content}
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *stubPostRepo) GetByID(_ context.Context, id int64) (dom.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return dom.Post{}, pgx.ErrNoRows
}

func (r *stubPostRepo) List(_ context.Context, limit int) ([]dom.Post, error) {
	r.lastLimit = limit
	out := make([]dom.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func TestGetByIDMapsNoRows(t *testing.T) {
	svc := NewPostService(&stubPostRepo{}, nil)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPassesLimitThrough(t *testing.T) {
	repo := &stubPostRepo{}
	svc := NewPostService(repo, nil)

	_, err := svc.List(context.Background(), FrontPageLimit)
	require.NoError(t, err)
	assert.Equal(t, FrontPageLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.lastLimit, "the feed listing is unbounded")
}

func TestCreateReturnsStoredPost(t *testing.T) {
	repo := &stubPostRepo{}
	svc := NewPostService(repo, nil)

	p, err := svc.Create(context.Background(), "Hello", "World")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Hello", p.Subject)
}

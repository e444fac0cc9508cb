package service

import (
	"context"
	"errors"
	"strconv"

	"blogapp/internal/cache"
	dom "blogapp/internal/domain"
	"blogapp/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// FrontPageLimit bounds the HTML listing. The JSON feed stays
// unbounded; the asymmetry matches the public feed contract.
const FrontPageLimit = 10

// PostService handles post creation and listing.
type PostService struct {
	repo  repo.PostRepo
	cache *cache.PostCache
	sf    singleflight.Group
}

// NewPostService creates a PostService. If c is nil, caching is disabled.
func NewPostService(r repo.PostRepo, c *cache.PostCache) *PostService {
	return &PostService{repo: r, cache: c}
}

func (s *PostService) Create(ctx context.Context, subject, content string) (dom.Post, error) {
	p, err := s.repo.Create(ctx, subject, content)
	if err != nil {
		return dom.Post{}, err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	return p, nil
}

func (s *PostService) GetByID(ctx context.Context, id int64) (dom.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, ErrNotFound
		}
		return dom.Post{}, err
	}
	return p, nil
}

// List returns posts newest first. limit <= 0 means all of them.
func (s *PostService) List(ctx context.Context, limit int) ([]dom.Post, error) {
	if s.cache != nil {
		key := "list:" + strconv.Itoa(limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, limit)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Post), nil
	}
	return s.repo.List(ctx, limit)
}

// InvalidateCache drops the cached listings. No-op without a cache.
func (s *PostService) InvalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

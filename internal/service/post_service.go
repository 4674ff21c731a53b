package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/board-api/internal/model"
	"github.com/d60-Lab/board-api/internal/repository"
	"github.com/d60-Lab/board-api/pkg/apperr"
)

const (
	MsgPostFieldsRequired = "제목, 내용, 작성자는 필수입니다."
	MsgPostNotFound       = "게시글을 찾을 수 없습니다."

	DefaultPage  = 1
	DefaultLimit = 10
)

type CreatePostInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

// PostPage 分页结果
type PostPage struct {
	Posts []*model.Post `json:"posts"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int64         `json:"pages"`
}

// PostService 帖子增删改查
type PostService interface {
	ListPosts(ctx context.Context, page, limit int) (*PostPage, error)
	// GetPost 每次读取都会使浏览数 +1
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) (*model.Post, error)
}

type postService struct {
	store    repository.Store
	validate *validator.Validate
	now      func() time.Time
}

func NewPostService(store repository.Store) PostService {
	return &postService{store: store, validate: newValidator(), now: utcNow}
}

// NormalizePage 小于 1 的页码和条数回退到默认值
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

func (s *postService) ListPosts(ctx context.Context, page, limit int) (*PostPage, error) {
	page, limit = NormalizePage(page, limit)

	res := &PostPage{Page: page}
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		total, err := r.Posts.Count(ctx)
		if err != nil {
			return err
		}
		res.Total = total
		res.Pages = pageCount(total, limit)

		// 偏移量溢出时必然越过末尾
		if page-1 > math.MaxInt/limit {
			res.Posts = []*model.Post{}
			return nil
		}
		posts, err := r.Posts.Page(ctx, (page-1)*limit, limit)
		if err != nil {
			return err
		}
		res.Posts = posts
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

// pageCount ceil(total/limit)，不做加法以免溢出
func pageCount(total int64, limit int) int64 {
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}

func (s *postService) findPost(ctx context.Context, r repository.Repositories, id int64) (*model.Post, error) {
	p, err := r.Posts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(MsgPostNotFound)
	}
	return p, err
}

func (s *postService) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	var res *model.Post
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		p, err := s.findPost(ctx, r, id)
		if err != nil {
			return err
		}
		p.Views++
		if err := r.Posts.Update(ctx, p); err != nil {
			return fmt.Errorf("increment views: %w", err)
		}
		res = p
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

func (s *postService) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if err := s.validate.Struct(in); err != nil {
		if _, verr := failedFields(err); verr != nil {
			return nil, apperr.Internal(verr)
		}
		return nil, apperr.Validation(MsgPostFieldsRequired)
	}

	var res *model.Post
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		id, err := r.Posts.NextID(ctx)
		if err != nil {
			return err
		}
		p := &model.Post{
			ID:        id,
			Title:     in.Title,
			Content:   in.Content,
			Author:    in.Author,
			CreatedAt: s.now(),
			Views:     0,
		}
		if err := r.Posts.Create(ctx, p); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		res = p
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

func (s *postService) UpdatePost(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	var res *model.Post
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		p, err := s.findPost(ctx, r, id)
		if err != nil {
			return err
		}
		patch.Apply(p)
		// 即使没有字段变化也刷新 updatedAt
		now := s.now()
		p.UpdatedAt = &now
		if err := r.Posts.Update(ctx, p); err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		res = p
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

func (s *postService) DeletePost(ctx context.Context, id int64) (*model.Post, error) {
	var res *model.Post
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		p, err := r.Posts.Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(MsgPostNotFound)
		}
		if err != nil {
			return err
		}
		res = p
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/d60-Lab/board-api/internal/model"
)

var ErrNotFound = errors.New("record not found")

// UserRepository 用户仓储
type UserRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// PostRepository 帖子仓储
type PostRepository interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	// Page 按插入顺序返回 [offset, offset+limit)，越界自动截断
	Page(ctx context.Context, offset, limit int) ([]*model.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) (*model.Post, error)
}

// Repositories 一次事务内可用的仓储集合
type Repositories struct {
	Users UserRepository
	Posts PostRepository
}

// Store Record Store。fn 内的读写整体执行完毕后才会开始下一个事务
type Store interface {
	Transaction(ctx context.Context, fn func(r Repositories) error) error
	Close() error
}

// 进程启动时的固定种子数据
func seedUsers(now time.Time) []*model.User {
	return []*model.User{
		{ID: 1, Username: "user1", Email: "user1@example.com", Password: "password123", CreatedAt: now},
		{ID: 2, Username: "user2", Email: "user2@example.com", Password: "password456", CreatedAt: now},
	}
}

func seedPosts(now time.Time) []*model.Post {
	return []*model.Post{
		{ID: 1, Title: "첫 번째 게시글", Content: "안녕하세요!", Author: "사용자1", CreatedAt: now, Views: 10},
		{ID: 2, Title: "두 번째 게시글", Content: "반갑습니다!", Author: "사용자2", CreatedAt: now, Views: 5},
	}
}

const seedNextID int64 = 3

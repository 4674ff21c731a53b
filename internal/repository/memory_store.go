package repository

import (
	"context"
	"sync"
	"time"

	"github.com/d60-Lab/board-api/internal/model"
)

// MemoryStore 进程内存储，单把锁串行化所有事务
type MemoryStore struct {
	mu    sync.Mutex
	users *memoryUserRepository
	posts *memoryPostRepository
}

func NewMemoryStore() *MemoryStore {
	now := time.Now().UTC()
	return &MemoryStore{
		users: &memoryUserRepository{items: seedUsers(now), nextID: seedNextID},
		posts: &memoryPostRepository{items: seedPosts(now), nextID: seedNextID},
	}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(r Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(Repositories{Users: s.users, Posts: s.posts})
}

func (s *MemoryStore) Close() error { return nil }

// 以下仓储只在持锁的事务内被调用

type memoryUserRepository struct {
	items  []*model.User
	nextID int64
}

func (r *memoryUserRepository) NextID(ctx context.Context) (int64, error) {
	id := r.nextID
	r.nextID++
	return id, nil
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	cp := *user
	r.items = append(r.items, &cp)
	return nil
}

func (r *memoryUserRepository) find(match func(*model.User) bool) (*model.User, error) {
	for _, u := range r.items {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) List(ctx context.Context) ([]*model.User, error) {
	res := make([]*model.User, len(r.items))
	for i, u := range r.items {
		cp := *u
		res[i] = &cp
	}
	return res, nil
}

type memoryPostRepository struct {
	items  []*model.Post
	nextID int64
}

func (r *memoryPostRepository) NextID(ctx context.Context) (int64, error) {
	id := r.nextID
	r.nextID++
	return id, nil
}

func (r *memoryPostRepository) Create(ctx context.Context, post *model.Post) error {
	r.items = append(r.items, post.Clone())
	return nil
}

func (r *memoryPostRepository) indexOf(id int64) int {
	for i, p := range r.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return r.items[i].Clone(), nil
}

func (r *memoryPostRepository) Page(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.items) || limit <= 0 {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > len(r.items) {
		end = len(r.items)
	}
	res := make([]*model.Post, 0, end-offset)
	for _, p := range r.items[offset:end] {
		res = append(res, p.Clone())
	}
	return res, nil
}

func (r *memoryPostRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memoryPostRepository) Update(ctx context.Context, post *model.Post) error {
	i := r.indexOf(post.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.items[i] = post.Clone()
	return nil
}

func (r *memoryPostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	return removed, nil
}

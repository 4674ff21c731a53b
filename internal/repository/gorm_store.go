package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/board-api/internal/model"
)

// GormStore 基于 gorm 的存储，配合 sqlite :memory: 使用；调用方需将连接池限制为 1
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 建表并重置为种子数据
func NewGormStore(ctx context.Context, db *gorm.DB) (*GormStore, error) {
	s := &GormStore{db: db}
	if err := s.InitSchema(); err != nil {
		return nil, err
	}
	if err := s.reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}
	return s, nil
}

// InitSchema 初始化表结构
func (s *GormStore) InitSchema() error {
	if err := s.db.AutoMigrate(&model.User{}, &model.Post{}, &model.Counter{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

func (s *GormStore) reset(ctx context.Context) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.User{}, &model.Post{}, &model.Counter{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(seedUsers(now)).Error; err != nil {
			return err
		}
		if err := tx.Create(seedPosts(now)).Error; err != nil {
			return err
		}
		counters := []model.Counter{{Kind: model.KindUser, Value: seedNextID}, {Kind: model.KindPost, Value: seedNextID}}
		return tx.Create(&counters).Error
	})
}

func (s *GormStore) Transaction(ctx context.Context, fn func(r Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repositories{
			Users: &gormUserRepository{db: tx},
			Posts: &gormPostRepository{db: tx},
		})
	})
}

// Close 关闭数据库连接
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func nextID(ctx context.Context, db *gorm.DB, kind string) (int64, error) {
	var c model.Counter
	if err := db.WithContext(ctx).Where("kind = ?", kind).First(&c).Error; err != nil {
		return 0, fmt.Errorf("load %s counter: %w", kind, err)
	}
	if err := db.WithContext(ctx).Model(&model.Counter{}).
		Where("kind = ?", kind).
		Update("value", gorm.Expr("value + ?", 1)).Error; err != nil {
		return 0, fmt.Errorf("bump %s counter: %w", kind, err)
	}
	return c.Value, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, model.KindUser)
}

func (r *gormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *gormUserRepository) List(ctx context.Context) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).Order("id").Find(&res).Error
	return res, err
}

type gormPostRepository struct {
	db *gorm.DB
}

func (r *gormPostRepository) NextID(ctx context.Context) (int64, error) {
	return nextID(ctx, r.db, model.KindPost)
}

func (r *gormPostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *gormPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormPostRepository) Page(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	res := []*model.Post{}
	if limit <= 0 {
		return res, nil
	}
	if offset < 0 {
		offset = 0
	}
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *gormPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

func (r *gormPostRepository) Update(ctx context.Context, post *model.Post) error {
	res := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":      post.Title,
			"content":    post.Content,
			"views":      post.Views,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormPostRepository) Delete(ctx context.Context, id int64) (*model.Post, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error; err != nil {
		return nil, err
	}
	return p, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/board-api/internal/model"
	"github.com/d60-Lab/board-api/internal/repository"
	"github.com/d60-Lab/board-api/pkg/apperr"
)

const (
	MsgRegisterFieldsRequired = "모든 필드가 필요합니다."
	MsgUsernameTooShort       = "사용자명은 3자 이상이어야 합니다."
	MsgPasswordTooShort       = "비밀번호는 6자 이상이어야 합니다."
	MsgInvalidEmail           = "유효한 이메일을 입력하세요."
	MsgUsernameTaken          = "이미 사용 중인 사용자명입니다."
	MsgEmailTaken             = "이미 등록된 이메일입니다."
	MsgLoginFieldsRequired    = "사용자명과 비밀번호가 필요합니다."
	MsgBadCredentials         = "사용자명 또는 비밀번호가 올바르지 않습니다."
	MsgUserNotFound           = "사용자를 찾을 수 없습니다."
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult token 仅为占位字符串，系统内没有任何校验逻辑
type LoginResult struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// UserService 用户注册与登录
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.PublicUser, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	GetUser(ctx context.Context, id int64) (*model.PublicUser, error)
}

type userService struct {
	store    repository.Store
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store, validate: newValidator(), now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

func (s *userService) validateRegister(in RegisterInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	failed, err := failedFields(err)
	if err != nil {
		return apperr.Internal(err)
	}
	switch {
	case anyMissing(failed):
		return apperr.Validation(MsgRegisterFieldsRequired)
	case failed["Username"] != "":
		return apperr.Validation(MsgUsernameTooShort)
	case failed["Password"] != "":
		return apperr.Validation(MsgPasswordTooShort)
	default:
		return apperr.Validation(MsgInvalidEmail)
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.PublicUser, error) {
	if err := s.validateRegister(in); err != nil {
		return nil, err
	}

	var created model.PublicUser
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		if err := ensureAbsent(r.Users.FindByUsername(ctx, in.Username)); err != nil {
			return conflictOr(err, MsgUsernameTaken)
		}
		if err := ensureAbsent(r.Users.FindByEmail(ctx, in.Email)); err != nil {
			return conflictOr(err, MsgEmailTaken)
		}
		id, err := r.Users.NextID(ctx)
		if err != nil {
			return err
		}
		u := &model.User{
			ID:        id,
			Username:  in.Username,
			Email:     in.Email,
			Password:  in.Password,
			CreatedAt: s.now(),
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		created = u.Public()
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &created, nil
}

var errTaken = errors.New("already taken")

// ensureAbsent 查到记录返回 errTaken，未找到返回 nil
func ensureAbsent(_ *model.User, err error) error {
	switch {
	case err == nil:
		return errTaken
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func conflictOr(err error, msg string) error {
	if errors.Is(err, errTaken) {
		return apperr.Conflict(msg)
	}
	return err
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := s.validate.Struct(in); err != nil {
		if _, verr := failedFields(err); verr != nil {
			return nil, apperr.Internal(verr)
		}
		return nil, apperr.Validation(MsgLoginFieldsRequired)
	}

	var res *LoginResult
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		u, err := r.Users.FindByUsername(ctx, in.Username)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Auth(MsgBadCredentials)
		}
		if err != nil {
			return err
		}
		if u.Password != in.Password {
			return apperr.Auth(MsgBadCredentials)
		}
		res = &LoginResult{User: u.Public(), Token: fmt.Sprintf("fake_token_%d", u.ID)}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	var res []model.PublicUser
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		users, err := r.Users.List(ctx)
		if err != nil {
			return err
		}
		res = make([]model.PublicUser, len(users))
		for i, u := range users {
			res[i] = u.Public()
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return res, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*model.PublicUser, error) {
	var res model.PublicUser
	err := s.store.Transaction(ctx, func(r repository.Repositories) error {
		u, err := r.Users.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(MsgUserNotFound)
		}
		if err != nil {
			return err
		}
		res = u.Public()
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &res, nil
}
